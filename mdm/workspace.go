// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"bytes"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
)

// ErrorMessageSize is the size of the error message buffer of workspaces
const ErrorMessageSize = 512

// IntegrationWorkspace holds the scratch buffers needed to integrate the behaviour at one point.
// A workspace must not be shared by concurrent integrations
type IntegrationWorkspace struct {
	ErrorMessage []byte    // [ErrorMessageSize] message written by integrators on failure
	Mps0         []float64 // [nmps] material properties at the beginning of the time step
	Mps1         []float64 // [nmps] material properties at the end of the time step
	Esvs0        []float64 // [nesv] external state variables at the beginning of the time step
	Esvs1        []float64 // [nesv] external state variables at the end of the time step
}

// newIntegrationWorkspace allocates a workspace for nmps material properties and nesv external state variables
func newIntegrationWorkspace(nmps, nesv int) *IntegrationWorkspace {
	return &IntegrationWorkspace{
		ErrorMessage: make([]byte, ErrorMessageSize),
		Mps0:         make([]float64, nmps),
		Mps1:         make([]float64, nmps),
		Esvs0:        make([]float64, nesv),
		Esvs1:        make([]float64, nesv),
	}
}

// NewIntegrationWorkspace returns a new workspace sized for the behaviour
func NewIntegrationWorkspace(b *bhv.Behaviour) (o *IntegrationWorkspace, err error) {
	nmps, err := b.MpsSize()
	if err != nil {
		return
	}
	nesv, err := b.EsvsSize()
	if err != nil {
		return
	}
	return newIntegrationWorkspace(nmps, nesv), nil
}

// Load evaluates the material properties and external state variables of point i,
// at both time levels of m, into the workspace buffers
func (o *IntegrationWorkspace) Load(m *DataManager, i int) (err error) {
	if i < 0 || i >= m.n {
		return chk.Err("Load: invalid point index %d; n=%d", i, m.n)
	}
	b := m.b
	if err = evaluate(o.Mps0, b.Mps, m.S0.MaterialProperties, "material property", i); err != nil {
		return
	}
	if err = evaluate(o.Mps1, b.Mps, m.S1.MaterialProperties, "material property", i); err != nil {
		return
	}
	if err = evaluate(o.Esvs0, b.Esvs, m.S0.ExternalStateVariables, "external state variable", i); err != nil {
		return
	}
	return evaluate(o.Esvs1, b.Esvs, m.S1.ExternalStateVariables, "external state variable", i)
}

// ClearMessage zeroes the error message buffer
func (o *IntegrationWorkspace) ClearMessage() {
	bhv.SetMessage(o.ErrorMessage, "")
}

// Message returns the error message written into the workspace
func (o *IntegrationWorkspace) Message() string {
	if k := bytes.IndexByte(o.ErrorMessage, 0); k >= 0 {
		return string(o.ErrorMessage[:k])
	}
	return string(o.ErrorMessage)
}

// evaluate writes the values of vars at point i into dst
func evaluate(dst []float64, vars []bhv.Variable, fm *FieldMap, kind string, i int) (err error) {
	for k, v := range vars {
		if v.Type != bhv.Scalar {
			return chk.Err("%s %q is not a scalar; type=%q", kind, v.Name, v.Type)
		}
		dst[k], err = fm.Value(v.Name, i)
		if err != nil {
			return chk.Err("%s %q is not defined", kind, v.Name)
		}
	}
	return
}
