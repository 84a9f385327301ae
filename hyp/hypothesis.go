// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hyp implements the modelling hypotheses (spatial symmetries) used
// to size the variables of material behaviours
package hyp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Hypothesis defines a modelling hypothesis
type Hypothesis int

const (
	AxisymmetricalGeneralisedPlaneStrain Hypothesis = iota // 1D axisymmetrical generalised plane strain
	AxisymmetricalGeneralisedPlaneStress                   // 1D axisymmetrical generalised plane stress
	Axisymmetrical                                         // 2D axisymmetrical
	PlaneStress                                            // 2D plane stress
	PlaneStrain                                            // 2D plane strain
	GeneralisedPlaneStrain                                 // 2D generalised plane strain
	Tridimensional                                         // 3D
)

// names holds the canonical names, ordered as the constants above
var names = []string{
	"AxisymmetricalGeneralisedPlaneStrain",
	"AxisymmetricalGeneralisedPlaneStress",
	"Axisymmetrical",
	"PlaneStress",
	"PlaneStrain",
	"GeneralisedPlaneStrain",
	"Tridimensional",
}

// All returns all hypotheses
func All() []Hypothesis {
	return []Hypothesis{
		AxisymmetricalGeneralisedPlaneStrain,
		AxisymmetricalGeneralisedPlaneStress,
		Axisymmetrical,
		PlaneStress,
		PlaneStrain,
		GeneralisedPlaneStrain,
		Tridimensional,
	}
}

// FromString returns the hypothesis with the given name.
// Both the camel case ("PlaneStrain") and the upper case ("PLANESTRAIN") spellings are accepted
func FromString(name string) (h Hypothesis, err error) {
	for i, n := range names {
		if name == n || name == strings.ToUpper(n) {
			return Hypothesis(i), nil
		}
	}
	return -1, chk.Err("invalid modelling hypothesis %q", name)
}

// String returns the canonical name of the hypothesis
func (o Hypothesis) String() string {
	if !o.IsValid() {
		return "Undefined"
	}
	return names[o]
}

// IsValid tells whether o is one of the known hypotheses
func (o Hypothesis) IsValid() bool {
	return o >= AxisymmetricalGeneralisedPlaneStrain && o <= Tridimensional
}

// SpaceDimension returns the space dimension; e.g. 2 for plane strain
func (o Hypothesis) SpaceDimension() (ndim int, err error) {
	switch o {
	case AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress:
		return 1, nil
	case Axisymmetrical, PlaneStress, PlaneStrain, GeneralisedPlaneStrain:
		return 2, nil
	case Tridimensional:
		return 3, nil
	}
	return 0, chk.Err("SpaceDimension: unsupported hypothesis (%d)", int(o))
}

// StensorSize returns the number of components of symmetric tensors
func (o Hypothesis) StensorSize() (n int, err error) {
	switch o {
	case AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress:
		return 3, nil
	case Axisymmetrical, PlaneStress, PlaneStrain, GeneralisedPlaneStrain:
		return 4, nil
	case Tridimensional:
		return 6, nil
	}
	return 0, chk.Err("StensorSize: unsupported hypothesis (%d)", int(o))
}

// TensorSize returns the number of components of unsymmetric tensors
func (o Hypothesis) TensorSize() (n int, err error) {
	switch o {
	case AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress:
		return 3, nil
	case Axisymmetrical, PlaneStress, PlaneStrain, GeneralisedPlaneStrain:
		return 5, nil
	case Tridimensional:
		return 9, nil
	}
	return 0, chk.Err("TensorSize: unsupported hypothesis (%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler; used by json and yaml
func (o Hypothesis) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, chk.Err("cannot marshal invalid hypothesis (%d)", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; used by json and yaml
func (o *Hypothesis) UnmarshalText(b []byte) (err error) {
	h, err := FromString(string(b))
	if err != nil {
		return
	}
	*o = h
	return
}
