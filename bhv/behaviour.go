// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bhv implements the description of material behaviours (names and sizes of
// their variables) and the interface of the routines integrating them
package bhv

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
)

// VariableType defines the kind of a variable
type VariableType string

const (
	Scalar  VariableType = "scalar"  // one component
	Vector  VariableType = "vector"  // ndim components
	Stensor VariableType = "stensor" // symmetric tensor
	Tensor  VariableType = "tensor"  // unsymmetric tensor
)

// BehaviourType defines the type of behaviour
type BehaviourType string

const (
	General                      BehaviourType = "general"
	StandardStrainBasedBehaviour BehaviourType = "strain-based"
	StandardFiniteStrain         BehaviourType = "finite-strain"
	CohesiveZoneModel            BehaviourType = "cohesive-zone"
)

// Variable holds the name and type of a behaviour variable
type Variable struct {
	Name string       `json:"name" yaml:"name"` // e.g. "Strain"
	Type VariableType `json:"type" yaml:"type"` // e.g. "stensor"
}

// Block holds the names of the (force, gradient) pair defining one tangent operator block
type Block struct {
	Force    string `json:"force" yaml:"force"`       // thermodynamic force name; e.g. "Stress"
	Gradient string `json:"gradient" yaml:"gradient"` // gradient name; e.g. "Strain"
}

// Behaviour describes a material behaviour for a given modelling hypothesis.
// It is read once and must not be modified after being given to a manager
type Behaviour struct {

	// essential
	Name       string         `json:"name" yaml:"name"`             // behaviour name; e.g. "Elasticity"
	Hypothesis hyp.Hypothesis `json:"hypothesis" yaml:"hypothesis"` // modelling hypothesis
	Btype      BehaviourType  `json:"btype" yaml:"btype"`           // behaviour type
	Kinematic  string         `json:"kinematic" yaml:"kinematic"`   // informational; e.g. "small-strain"
	Integrator string         `json:"integrator" yaml:"integrator"` // name of integrator in the registry; e.g. "elasticity"

	// variables
	Gradients           []Variable `json:"gradients" yaml:"gradients"`         // gradients; e.g. strain
	ThermodynamicForces []Variable `json:"forces" yaml:"forces"`               // thermodynamic forces; e.g. stress
	Isvs                []Variable `json:"isvs" yaml:"isvs"`                   // internal state variables
	Mps                 []Variable `json:"mps" yaml:"mps"`                     // material properties
	Esvs                []Variable `json:"esvs" yaml:"esvs"`                   // external state variables
	Blocks              []Block    `json:"tangentblocks" yaml:"tangentblocks"` // tangent operator blocks; empty => forces vs gradients, pairwise
}

// VariableSize returns the number of components of a variable
func VariableSize(v Variable, h hyp.Hypothesis) (n int, err error) {
	switch v.Type {
	case Scalar:
		return 1, nil
	case Vector:
		return h.SpaceDimension()
	case Stensor:
		return h.StensorSize()
	case Tensor:
		return h.TensorSize()
	}
	return 0, chk.Err("variable %q has an unsupported type %q", v.Name, v.Type)
}

// ArraySize returns the total number of components of a list of variables
func ArraySize(vars []Variable, h hyp.Hypothesis) (n int, err error) {
	for _, v := range vars {
		s, e := VariableSize(v, h)
		if e != nil {
			return 0, e
		}
		n += s
	}
	return
}

// VariableOffset returns the position of the variable named 'name' in the array built from vars
func VariableOffset(vars []Variable, name string, h hyp.Hypothesis) (offset int, err error) {
	for _, v := range vars {
		if v.Name == name {
			return
		}
		s, e := VariableSize(v, h)
		if e != nil {
			return 0, e
		}
		offset += s
	}
	return 0, chk.Err("no variable named %q", name)
}

// GetVariable returns the variable named 'name'
func GetVariable(vars []Variable, name string) (v Variable, err error) {
	for _, v = range vars {
		if v.Name == name {
			return
		}
	}
	return Variable{}, chk.Err("no variable named %q", name)
}

// Contains tells whether vars holds a variable named 'name'
func Contains(vars []Variable, name string) bool {
	for _, v := range vars {
		if v.Name == name {
			return true
		}
	}
	return false
}

// TangentBlocks returns the tangent operator blocks.
// If none were declared, each thermodynamic force is paired with the gradient at the same position
func (o *Behaviour) TangentBlocks() (blocks []Block) {
	if len(o.Blocks) > 0 {
		return o.Blocks
	}
	for i, f := range o.ThermodynamicForces {
		if i < len(o.Gradients) {
			blocks = append(blocks, Block{Force: f.Name, Gradient: o.Gradients[i].Name})
		}
	}
	return
}

// GradientsSize returns the number of components of all gradients
func (o *Behaviour) GradientsSize() (int, error) { return ArraySize(o.Gradients, o.Hypothesis) }

// ThermodynamicForcesSize returns the number of components of all thermodynamic forces
func (o *Behaviour) ThermodynamicForcesSize() (int, error) {
	return ArraySize(o.ThermodynamicForces, o.Hypothesis)
}

// IsvsSize returns the number of components of all internal state variables
func (o *Behaviour) IsvsSize() (int, error) { return ArraySize(o.Isvs, o.Hypothesis) }

// MpsSize returns the number of components of all material properties
func (o *Behaviour) MpsSize() (int, error) { return ArraySize(o.Mps, o.Hypothesis) }

// EsvsSize returns the number of components of all external state variables
func (o *Behaviour) EsvsSize() (int, error) { return ArraySize(o.Esvs, o.Hypothesis) }

// TangentOperatorArraySize returns the number of components of the tangent operator of one point
func (o *Behaviour) TangentOperatorArraySize() (n int, err error) {
	for _, b := range o.TangentBlocks() {
		f, e := GetVariable(o.ThermodynamicForces, b.Force)
		if e != nil {
			return 0, chk.Err("invalid tangent block: %v", e)
		}
		g, e := GetVariable(o.Gradients, b.Gradient)
		if e != nil {
			return 0, chk.Err("invalid tangent block: %v", e)
		}
		nf, e := VariableSize(f, o.Hypothesis)
		if e != nil {
			return 0, e
		}
		ng, e := VariableSize(g, o.Hypothesis)
		if e != nil {
			return 0, e
		}
		n += nf * ng
	}
	return
}

// Validate checks the description
func (o *Behaviour) Validate() (err error) {
	if o.Name == "" {
		return chk.Err("behaviour name must not be empty")
	}
	if !o.Hypothesis.IsValid() {
		return chk.Err("behaviour %q: invalid hypothesis (%d)", o.Name, int(o.Hypothesis))
	}
	if o.Btype == "" {
		o.Btype = General
	}
	categories := []struct {
		key  string
		vars []Variable
	}{
		{"gradients", o.Gradients},
		{"forces", o.ThermodynamicForces},
		{"isvs", o.Isvs},
		{"mps", o.Mps},
		{"esvs", o.Esvs},
	}
	for _, c := range categories {
		names := make(map[string]bool)
		for _, v := range c.vars {
			if v.Name == "" {
				return chk.Err("behaviour %q: %s: variable names must not be empty", o.Name, c.key)
			}
			if names[v.Name] {
				return chk.Err("behaviour %q: %s: variable %q is declared twice", o.Name, c.key, v.Name)
			}
			names[v.Name] = true
			if _, err = VariableSize(v, o.Hypothesis); err != nil {
				return chk.Err("behaviour %q: %s: %v", o.Name, c.key, err)
			}
		}
	}
	if len(o.Blocks) == 0 && len(o.Gradients) != len(o.ThermodynamicForces) {
		return chk.Err("behaviour %q: the number of gradients (%d) and thermodynamic forces (%d) differ and no tangent blocks are given",
			o.Name, len(o.Gradients), len(o.ThermodynamicForces))
	}
	if _, err = o.TangentOperatorArraySize(); err != nil {
		return chk.Err("behaviour %q: %v", o.Name, err)
	}
	return
}
