// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhv

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// IntegrationType defines what the integrator must compute
type IntegrationType int

const (
	PredictionTangentOperator            IntegrationType = -3 // only the prediction operator (tangent)
	PredictionSecantOperator             IntegrationType = -2 // only the prediction operator (secant)
	PredictionElasticOperator            IntegrationType = -1 // only the prediction operator (elastic)
	IntegrationNoTangentOperator         IntegrationType = 0  // update state; no tangent
	IntegrationElasticOperator           IntegrationType = 1  // update state and compute the elastic operator
	IntegrationSecantOperator            IntegrationType = 2  // update state and compute the secant operator
	IntegrationTangentOperator           IntegrationType = 3  // update state and compute the tangent operator
	IntegrationConsistentTangentOperator IntegrationType = 4  // update state and compute the consistent tangent operator
)

// IsPrediction tells whether only a prediction operator is requested
func (o IntegrationType) IsPrediction() bool { return o < 0 }

// RequiresTangent tells whether an operator must be written into the tangent block
func (o IntegrationType) RequiresTangent() bool { return o != IntegrationNoTangentOperator }

// StateView holds the slices of one integration point at one time level.
// All slices alias the storage of the state manager
type StateView struct {
	Gradients              []float64 // [ngrad]
	ThermodynamicForces    []float64 // [nforce]
	MaterialProperties     []float64 // [nmps] evaluated at the point
	InternalStateVariables []float64 // [nisv]
	StoredEnergy           *float64  // stored energy of the point
	DissipatedEnergy       *float64  // dissipated energy of the point
	ExternalStateVariables []float64 // [nesv] evaluated at the point
}

// DataView holds everything an integrator reads and writes for one integration point
type DataView struct {
	Type         IntegrationType // what to compute
	Dt           float64         // time increment
	K            []float64       // [nK] tangent operator block; nil if not requested
	SpeedOfSound *float64        // nil if not requested
	S0           StateView       // state at the beginning of the time step
	S1           StateView       // state at the end of the time step
	ErrorMessage []byte          // buffer for messages on failure
}

// Integrator defines the routines integrating a behaviour over one time step at one point.
// Integrate returns a negative status on failure, 0 on success without a consistent tangent
// operator, 1 on success
type Integrator interface {
	Init(b *Behaviour) error   // checks the description and initialises
	Integrate(d *DataView) int // integrates the behaviour
}

// New returns a new integrator
func New(name string) (itg Integrator, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("integrator %q is not available in 'bhv' database", name)
	}
	return allocator(), nil
}

// NewFor returns a new integrator initialised for the given behaviour
func NewFor(b *Behaviour) (itg Integrator, err error) {
	itg, err = New(b.Integrator)
	if err != nil {
		return
	}
	err = itg.Init(b)
	if err != nil {
		return nil, chk.Err("cannot initialise integrator %q:\n%v", b.Integrator, err)
	}
	return
}

// Register adds an integrator allocator to the database
func Register(name string, allocator func() Integrator) {
	if _, ok := allocators[name]; ok {
		chk.Panic("integrator %q is already registered", name)
	}
	allocators[name] = allocator
}

// Available returns the names of all registered integrators
func Available() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// SetMessage writes msg into buf, truncating it if needed
func SetMessage(buf []byte, msg string) {
	n := copy(buf, msg)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
}

// allocators holds all available integrators; name => allocator
var allocators = map[string]func() Integrator{}
