// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements integrators of solid models
package msolid

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Elasticity implements isotropic linear elasticity for small strains.
// Strains and stresses use Mandel's representation; e.g. [εxx, εyy, εzz, √2 εxy, ...]
//  Material properties: YoungModulus, PoissonRatio and (optional) MassDensity
type Elasticity struct {
	Ncp  int // number of stress components
	iE   int // position of YoungModulus in material properties
	iNu  int // position of PoissonRatio in material properties
	iRho int // position of MassDensity in material properties; -1 if not declared
}

// add model to factory
func init() {
	bhv.Register("elasticity", func() bhv.Integrator { return new(Elasticity) })
}

// Init checks the behaviour description and initialises the model
func (o *Elasticity) Init(b *bhv.Behaviour) (err error) {

	// gradients and forces
	o.Ncp, err = init_small_strain("elasticity", b)
	if err != nil {
		return
	}

	// material properties
	pos, err := mps_positions("elasticity", b, "YoungModulus", "PoissonRatio", "MassDensity")
	if err != nil {
		return
	}
	o.iE, o.iNu, o.iRho = pos[0], pos[1], pos[2]
	if o.iE < 0 || o.iNu < 0 {
		return chk.Err("elasticity: YoungModulus and PoissonRatio must be declared as material properties")
	}
	if io.Verbose {
		io.Pf("elasticity: %v; ncp=%d\n", b.Hypothesis, o.Ncp)
	}
	return
}

// Integrate computes the stress at the end of the time step.
//  Prediction types only compute the elastic operator
func (o *Elasticity) Integrate(d *bhv.DataView) int {

	// parameters
	E := d.S1.MaterialProperties[o.iE]
	ν := d.S1.MaterialProperties[o.iNu]
	if E <= 0 || ν <= -1 || ν >= 0.5 {
		bhv.SetMessage(d.ErrorMessage, io.Sf("elasticity: invalid parameters: E=%g, nu=%g", E, ν))
		return -1
	}
	λ := E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
	G := E / (2.0 * (1.0 + ν))

	// elastic modulus
	D := o.CalcD(λ, G)
	if d.K != nil {
		mat.NewDense(o.Ncp, o.Ncp, d.K).Copy(D)
	}
	if d.Type.IsPrediction() {
		return 1
	}

	// stress and energies
	ε := mat.NewVecDense(o.Ncp, d.S1.Gradients)
	σ := mat.NewVecDense(o.Ncp, d.S1.ThermodynamicForces)
	σ.MulVec(D, ε)
	*d.S1.StoredEnergy = 0.5 * mat.Dot(σ, ε)
	*d.S1.DissipatedEnergy = *d.S0.DissipatedEnergy

	// speed of sound
	if !set_speed_of_sound("elasticity", d, o.iRho, λ+2.0*G) {
		return -1
	}
	return 1
}

// CalcD computes the elastic modulus D = λ I⊗I + 2 G Isym (Mandel's representation)
func (o *Elasticity) CalcD(λ, G float64) *mat.Dense {
	D := mat.NewDense(o.Ncp, o.Ncp, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D.Set(i, j, λ)
		}
	}
	for i := 0; i < o.Ncp; i++ {
		D.Set(i, i, D.At(i, i)+2.0*G)
	}
	return D
}
