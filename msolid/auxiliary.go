// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Mmatch computes M=q/p and qy0 from c and φ corresponding to the strength that would
// be modelled by the Mohr-Coulomb model matching one of the following cones:
//  typ == 0 : compression cone (outer)
//      == 1 : extension cone (inner)
//      == 2 : plane-strain
func Mmatch(c, φ float64, typ int) (M, qy0 float64, err error) {
	φr := φ * math.Pi / 180.0
	si := math.Sin(φr)
	co := math.Cos(φr)
	var ξ float64
	switch typ {
	case 0: // compression cone (outer)
		M = 6.0 * si / (3.0 - si)
		ξ = 6.0 * co / (3.0 - si)
	case 1: // extension cone (inner)
		M = 6.0 * si / (3.0 + si)
		ξ = 6.0 * co / (3.0 + si)
	case 2: // plane-strain
		t := si / co
		d := math.Sqrt(3.0 + 4.0*t*t)
		M = 3.0 * t / d
		ξ = 3.0 / d
	default:
		return 0, 0, chk.Err("typ=%d is invalid", typ)
	}
	qy0 = ξ * c
	return
}

// init_small_strain checks that b has one strain and one stress (symmetric tensors) under a
// supported hypothesis and returns the number of stress components
func init_small_strain(model string, b *bhv.Behaviour) (ncp int, err error) {
	switch b.Hypothesis {
	case hyp.Tridimensional, hyp.PlaneStrain, hyp.GeneralisedPlaneStrain, hyp.Axisymmetrical:
	default:
		return 0, chk.Err("%s: hypothesis %v is not supported", model, b.Hypothesis)
	}
	ncp, err = b.Hypothesis.StensorSize()
	if err != nil {
		return
	}
	if len(b.Gradients) != 1 || b.Gradients[0].Type != bhv.Stensor {
		return 0, chk.Err("%s: one symmetric tensor gradient (strain) is required", model)
	}
	if len(b.ThermodynamicForces) != 1 || b.ThermodynamicForces[0].Type != bhv.Stensor {
		return 0, chk.Err("%s: one symmetric tensor thermodynamic force (stress) is required", model)
	}
	return
}

// mps_positions returns the positions of the material properties; -1 if not declared
func mps_positions(model string, b *bhv.Behaviour, names ...string) (pos []int, err error) {
	pos = make([]int, len(names))
	for j, name := range names {
		pos[j] = -1
		offset := 0
		for _, p := range b.Mps {
			if p.Name == name {
				if p.Type != bhv.Scalar {
					return nil, chk.Err("%s: material property %q must be a scalar", model, p.Name)
				}
				pos[j] = offset
				break
			}
			n, e := bhv.VariableSize(p, b.Hypothesis)
			if e != nil {
				return nil, e
			}
			offset += n
		}
	}
	return
}

// set_speed_of_sound computes the speed of sound from the P-wave modulus; zero if the
// mass density is not declared (iRho < 0)
func set_speed_of_sound(model string, d *bhv.DataView, iRho int, Pmod float64) bool {
	if d.SpeedOfSound == nil {
		return true
	}
	*d.SpeedOfSound = 0
	if iRho < 0 {
		return true
	}
	ρ := d.S1.MaterialProperties[iRho]
	if ρ <= 0 {
		bhv.SetMessage(d.ErrorMessage, io.Sf("%s: invalid mass density: rho=%g", model, ρ))
		return false
	}
	*d.SpeedOfSound = math.Sqrt(Pmod / ρ)
	return true
}
