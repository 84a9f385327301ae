// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func get_behaviour(h hyp.Hypothesis, mps ...string) *bhv.Behaviour {
	b := &bhv.Behaviour{
		Name:                "Elasticity",
		Hypothesis:          h,
		Integrator:          "elasticity",
		Gradients:           []bhv.Variable{{Name: "Strain", Type: bhv.Stensor}},
		ThermodynamicForces: []bhv.Variable{{Name: "Stress", Type: bhv.Stensor}},
	}
	for _, name := range mps {
		b.Mps = append(b.Mps, bhv.Variable{Name: name, Type: bhv.Scalar})
	}
	return b
}

func get_view(ncp int, mps []float64) *bhv.DataView {
	zero := func() *float64 { return new(float64) }
	return &bhv.DataView{
		Type: bhv.IntegrationTangentOperator,
		K:    make([]float64, ncp*ncp),
		S0: bhv.StateView{
			Gradients:           make([]float64, ncp),
			ThermodynamicForces: make([]float64, ncp),
			MaterialProperties:  mps,
			StoredEnergy:        zero(),
			DissipatedEnergy:    zero(),
		},
		S1: bhv.StateView{
			Gradients:           make([]float64, ncp),
			ThermodynamicForces: make([]float64, ncp),
			MaterialProperties:  mps,
			StoredEnergy:        zero(),
			DissipatedEnergy:    zero(),
		},
		ErrorMessage: make([]byte, 128),
	}
}

func Test_elast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast01")

	// E=1, ν=0.25 => λ=0.4, G=0.4
	itg, err := bhv.NewFor(get_behaviour(hyp.PlaneStrain, "YoungModulus", "PoissonRatio"))
	if err != nil {
		tst.Errorf("NewFor failed: %v\n", err)
		return
	}
	o := itg.(*Elasticity)
	chk.IntAssert(o.Ncp, 4)

	d := get_view(4, []float64{1, 0.25})
	copy(d.S1.Gradients, []float64{1e-3, -2e-3, 0, 1e-3})
	*d.S0.DissipatedEnergy = 0.5
	chk.IntAssert(itg.Integrate(d), 1)
	io.Pforan("σ = %v\n", d.S1.ThermodynamicForces)

	// σ = λ tr(ε) I + 2 G ε
	chk.Vector(tst, "σ", 1e-15, d.S1.ThermodynamicForces, []float64{
		0.4*(-1e-3) + 0.8*1e-3,
		0.4*(-1e-3) - 0.8*2e-3,
		0.4 * (-1e-3),
		0.8 * 1e-3,
	})
	ε := mat.NewVecDense(4, d.S1.Gradients)
	σ := mat.NewVecDense(4, d.S1.ThermodynamicForces)
	chk.Scalar(tst, "energy", 1e-17, *d.S1.StoredEnergy, 0.5*mat.Dot(σ, ε))
	chk.Scalar(tst, "dissipated", 1e-17, *d.S1.DissipatedEnergy, 0.5)

	// tangent
	D := o.CalcD(0.4, 0.4)
	chk.Vector(tst, "K", 1e-15, d.K, []float64{
		1.2, 0.4, 0.4, 0,
		0.4, 1.2, 0.4, 0,
		0.4, 0.4, 1.2, 0,
		0, 0, 0, 0.8,
	})
	chk.Vector(tst, "D", 1e-15, D.RawMatrix().Data, d.K)
}

func Test_elast02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast02")

	b := get_behaviour(hyp.Tridimensional, "YoungModulus", "PoissonRatio", "MassDensity")
	itg, err := bhv.NewFor(b)
	if err != nil {
		tst.Errorf("NewFor failed: %v\n", err)
		return
	}

	// speed of sound: √((λ+2G)/ρ) = √(1.2/0.3) = 2
	d := get_view(6, []float64{1, 0.25, 0.3})
	d.SpeedOfSound = new(float64)
	chk.IntAssert(itg.Integrate(d), 1)
	chk.Scalar(tst, "c", 1e-15, *d.SpeedOfSound, 2)

	// invalid parameters
	d.S1.MaterialProperties = []float64{1, 0.5, 0.3}
	chk.IntAssert(itg.Integrate(d), -1)
	io.Pforan("msg = %s\n", d.ErrorMessage)

	// prediction does not change the stress
	d.S1.MaterialProperties = []float64{1, 0.25, 0.3}
	d.S1.Gradients[0] = 1
	d.Type = bhv.PredictionElasticOperator
	chk.IntAssert(itg.Integrate(d), 1)
	chk.Scalar(tst, "σ0", 1e-17, d.S1.ThermodynamicForces[0], 0)
	chk.Scalar(tst, "K00", 1e-15, d.K[0], 1.2)

	// unsupported
	_, err = bhv.NewFor(get_behaviour(hyp.PlaneStress, "YoungModulus", "PoissonRatio"))
	if err == nil {
		tst.Errorf("NewFor should have failed with plane stress\n")
		return
	}
	_, err = bhv.NewFor(get_behaviour(hyp.Tridimensional, "YoungModulus"))
	if err == nil {
		tst.Errorf("NewFor should have failed without the Poisson ratio\n")
	}
}
