// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// StateManagerInitializer holds external memory to be used by a StateManager.
// Nil slices are allocated by the StateManager
type StateManagerInitializer struct {
	Gradients              []float64 // [n * gradients stride]
	ThermodynamicForces    []float64 // [n * thermodynamic forces stride]
	InternalStateVariables []float64 // [n * internal state variables stride]
	StoredEnergies         []float64 // [n]
	DissipatedEnergies     []float64 // [n]
}

// StateManager holds the state of all integration points at one time level
type StateManager struct {

	// material properties and external state variables
	MaterialProperties     *FieldMap // uniform or non-uniform material properties
	ExternalStateVariables *FieldMap // uniform or non-uniform external state variables

	// constants
	b       *bhv.Behaviour // behaviour
	n       int            // number of integration points
	gStride int            // number of gradients components per point
	fStride int            // number of thermodynamic forces components per point
	vStride int            // number of internal state variables components per point

	// per point arrays
	g  Array // [n*gStride] gradients
	f  Array // [n*fStride] thermodynamic forces
	v  Array // [n*vStride] internal state variables
	se Array // [n] stored energies
	de Array // [n] dissipated energies
}

// NewStateManager returns a new StateManager with n points and zeroed arrays owned by the manager
func NewStateManager(b *bhv.Behaviour, n int) (o *StateManager, err error) {
	return NewStateManagerWith(b, n, StateManagerInitializer{})
}

// NewStateManagerWith returns a new StateManager with n points using the external memory given in i.
// The sizes of all external arrays are checked before any allocation
func NewStateManagerWith(b *bhv.Behaviour, n int, i StateManagerInitializer) (o *StateManager, err error) {

	// check input
	if b == nil {
		return nil, chk.Err("NewStateManager: behaviour is nil")
	}
	if n < 0 {
		return nil, chk.Err("NewStateManager: invalid number of points: %d", n)
	}

	// strides
	o = &StateManager{b: b, n: n}
	if o.gStride, err = b.GradientsSize(); err != nil {
		return nil, chk.Err("NewStateManager: %v", err)
	}
	if o.fStride, err = b.ThermodynamicForcesSize(); err != nil {
		return nil, chk.Err("NewStateManager: %v", err)
	}
	if o.vStride, err = b.IsvsSize(); err != nil {
		return nil, chk.Err("NewStateManager: %v", err)
	}

	// arrays
	arrays := []struct {
		key  string
		arr  *Array
		ext  []float64
		size int
	}{
		{"gradients", &o.g, i.Gradients, n * o.gStride},
		{"thermodynamic forces", &o.f, i.ThermodynamicForces, n * o.fStride},
		{"internal state variables", &o.v, i.InternalStateVariables, n * o.vStride},
		{"stored energies", &o.se, i.StoredEnergies, n},
		{"dissipated energies", &o.de, i.DissipatedEnergies, n},
	}
	for _, a := range arrays {
		if a.ext != nil && len(a.ext) != a.size {
			return nil, chk.Err("NewStateManager: the external memory for the %s has not been allocated properly: len=%d != %d",
				a.key, len(a.ext), a.size)
		}
	}
	for _, a := range arrays {
		if a.ext != nil {
			_ = a.arr.UseExternal(a.ext, a.size) // sizes checked above
			continue
		}
		a.arr.Allocate(a.size)
	}

	// fields
	o.MaterialProperties = NewFieldMap(n)
	o.ExternalStateVariables = NewFieldMap(n)
	return
}

// Behaviour returns the behaviour
func (o *StateManager) Behaviour() *bhv.Behaviour { return o.b }

// N returns the number of integration points
func (o *StateManager) N() int { return o.n }

// strides ////////////////////////////////////////////////////////////////////////////////////////

// GradientsStride returns the number of gradients components per point
func (o *StateManager) GradientsStride() int { return o.gStride }

// ThermodynamicForcesStride returns the number of thermodynamic forces components per point
func (o *StateManager) ThermodynamicForcesStride() int { return o.fStride }

// InternalStateVariablesStride returns the number of internal state variables components per point
func (o *StateManager) InternalStateVariablesStride() int { return o.vStride }

// arrays /////////////////////////////////////////////////////////////////////////////////////////

// Gradients returns all gradients [n * GradientsStride]
func (o *StateManager) Gradients() []float64 { return o.g.Data() }

// ThermodynamicForces returns all thermodynamic forces [n * ThermodynamicForcesStride]
func (o *StateManager) ThermodynamicForces() []float64 { return o.f.Data() }

// InternalStateVariables returns all internal state variables [n * InternalStateVariablesStride]
func (o *StateManager) InternalStateVariables() []float64 { return o.v.Data() }

// StoredEnergies returns the stored energies [n]
func (o *StateManager) StoredEnergies() []float64 { return o.se.Data() }

// DissipatedEnergies returns the dissipated energies [n]
func (o *StateManager) DissipatedEnergies() []float64 { return o.de.Data() }

// GradientsAt returns the gradients of point i. No bounds check is made
func (o *StateManager) GradientsAt(i int) []float64 { return o.g.Slice(i, o.gStride) }

// ThermodynamicForcesAt returns the thermodynamic forces of point i. No bounds check is made
func (o *StateManager) ThermodynamicForcesAt(i int) []float64 { return o.f.Slice(i, o.fStride) }

// InternalStateVariablesAt returns the internal state variables of point i. No bounds check is made
func (o *StateManager) InternalStateVariablesAt(i int) []float64 { return o.v.Slice(i, o.vStride) }

// IsExternal tells which arrays are views on external memory
//  Output: gradients, thermodynamic forces, internal state variables, stored energies, dissipated energies
func (o *StateManager) IsExternal() (g, f, v, se, de bool) {
	return o.g.IsExternal(), o.f.IsExternal(), o.v.IsExternal(), o.se.IsExternal(), o.de.IsExternal()
}

// material properties ////////////////////////////////////////////////////////////////////////////

// SetMaterialProperty sets a uniform material property
func (o *StateManager) SetMaterialProperty(name string, v float64) (err error) {
	if err = checkScalar(o.b.Mps, "material property", name); err != nil {
		return
	}
	o.MaterialProperties.SetUniform(name, v)
	return
}

// SetNonUniformMaterialProperty sets a material property with one value per point
func (o *StateManager) SetNonUniformMaterialProperty(name string, values []float64, mode StorageMode) (err error) {
	if err = checkScalar(o.b.Mps, "material property", name); err != nil {
		return
	}
	return o.MaterialProperties.SetNonUniform(name, values, mode)
}

// SetMaterialProperties sets uniform material properties from a list of parameters
func (o *StateManager) SetMaterialProperties(prms fun.Prms) (err error) {
	for _, p := range prms {
		if err = o.SetMaterialProperty(p.N, p.V); err != nil {
			return
		}
	}
	return
}

// IsMaterialPropertyDefined tells whether the material property is defined
func (o *StateManager) IsMaterialPropertyDefined(name string) bool {
	return o.MaterialProperties.IsDefined(name)
}

// IsMaterialPropertyUniform tells whether the material property is uniform
func (o *StateManager) IsMaterialPropertyUniform(name string) bool {
	return o.MaterialProperties.IsUniform(name)
}

// GetUniformMaterialProperty returns the value of a uniform material property
func (o *StateManager) GetUniformMaterialProperty(name string) (float64, error) {
	return o.MaterialProperties.GetUniform(name)
}

// GetNonUniformMaterialProperty returns the values of a non-uniform material property
func (o *StateManager) GetNonUniformMaterialProperty(name string) ([]float64, error) {
	return o.MaterialProperties.GetNonUniform(name)
}

// external state variables ///////////////////////////////////////////////////////////////////////

// SetExternalStateVariable sets a uniform external state variable
func (o *StateManager) SetExternalStateVariable(name string, v float64) (err error) {
	if err = checkScalar(o.b.Esvs, "external state variable", name); err != nil {
		return
	}
	o.ExternalStateVariables.SetUniform(name, v)
	return
}

// SetNonUniformExternalStateVariable sets an external state variable with one value per point
func (o *StateManager) SetNonUniformExternalStateVariable(name string, values []float64, mode StorageMode) (err error) {
	if err = checkScalar(o.b.Esvs, "external state variable", name); err != nil {
		return
	}
	return o.ExternalStateVariables.SetNonUniform(name, values, mode)
}

// SetExternalStateVariables sets uniform external state variables from a list of parameters
func (o *StateManager) SetExternalStateVariables(prms fun.Prms) (err error) {
	for _, p := range prms {
		if err = o.SetExternalStateVariable(p.N, p.V); err != nil {
			return
		}
	}
	return
}

// IsExternalStateVariableDefined tells whether the external state variable is defined
func (o *StateManager) IsExternalStateVariableDefined(name string) bool {
	return o.ExternalStateVariables.IsDefined(name)
}

// IsExternalStateVariableUniform tells whether the external state variable is uniform
func (o *StateManager) IsExternalStateVariableUniform(name string) bool {
	return o.ExternalStateVariables.IsUniform(name)
}

// GetUniformExternalStateVariable returns the value of a uniform external state variable
func (o *StateManager) GetUniformExternalStateVariable(name string) (float64, error) {
	return o.ExternalStateVariables.GetUniform(name)
}

// GetNonUniformExternalStateVariable returns the values of a non-uniform external state variable
func (o *StateManager) GetNonUniformExternalStateVariable(name string) ([]float64, error) {
	return o.ExternalStateVariables.GetNonUniform(name)
}

// update /////////////////////////////////////////////////////////////////////////////////////////

// UpdateValues copies all arrays and fields of src into dst.
//  Note: dst keeps its storage; i.e. external views remain valid
func UpdateValues(dst, src *StateManager) (err error) {
	if dst.n != src.n {
		return chk.Err("UpdateValues: number of points differ: %d != %d", dst.n, src.n)
	}
	if dst.b != src.b {
		if dst.b.Name != src.b.Name || dst.b.Hypothesis != src.b.Hypothesis ||
			dst.gStride != src.gStride || dst.fStride != src.fStride || dst.vStride != src.vStride {
			return chk.Err("UpdateValues: states hold different behaviours: %q (%v) != %q (%v)",
				dst.b.Name, dst.b.Hypothesis, src.b.Name, src.b.Hypothesis)
		}
	}
	copy(dst.g.Data(), src.g.Data())
	copy(dst.f.Data(), src.f.Data())
	copy(dst.v.Data(), src.v.Data())
	copy(dst.se.Data(), src.se.Data())
	copy(dst.de.Data(), src.de.Data())
	err = dst.MaterialProperties.CopyFrom(src.MaterialProperties)
	if err != nil {
		return
	}
	return dst.ExternalStateVariables.CopyFrom(src.ExternalStateVariables)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// checkScalar checks that name is declared in vars as a scalar
func checkScalar(vars []bhv.Variable, kind, name string) (err error) {
	v, err := bhv.GetVariable(vars, name)
	if err != nil {
		return chk.Err("%s %q is not declared by the behaviour", kind, name)
	}
	if v.Type != bhv.Scalar {
		return chk.Err("%s %q is not a scalar; type=%q", kind, name, v.Type)
	}
	return
}
