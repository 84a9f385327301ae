// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"math"
	"testing"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/tsr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capped fails if the time step is greater than dtmax
type capped struct {
	bhv.Integrator
	dtmax float64
}

func (o capped) Integrate(d *bhv.DataView) int {
	if d.Dt > o.dtmax {
		bhv.SetMessage(d.ErrorMessage, io.Sf("time step is too large: %g", d.Dt))
		return -1
	}
	return o.Integrator.Integrate(d)
}

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01")

	m, itg := get_elastic_manager(tst, 4)
	for i := 0; i < 4; i++ {
		m.S1.GradientsAt(i)[0] = 0
	}

	var times []float64
	var drv Driver
	require.NoError(tst, drv.Init(m, itg))
	drv.Output = func(tidx int, t float64) error {
		times = append(times, t)
		return nil
	}
	require.NoError(tst, drv.Run([]float64{1e-3, 0, 0, 0, 0, 0}, 1, 0.25, 0.5))

	chk.IntAssert(drv.Naccept, 4)
	chk.IntAssert(drv.Nreject, 0)
	chk.IntAssert(drv.Tidx, 3)
	chk.Vector(tst, "times", 1e-15, times, []float64{0, 0.5, 1})
	chk.Scalar(tst, "time", 1e-15, drv.Time, 1)
	for i := 0; i < 4; i++ {
		chk.Scalar(tst, "ε0", 1e-15, m.S0.GradientsAt(i)[0], 1e-3)
		chk.Scalar(tst, "σ0", 1e-12, m.S0.ThermodynamicForcesAt(i)[0], 0.24)
		chk.Scalar(tst, "σ1", 1e-12, m.S1.ThermodynamicForcesAt(i)[1], 0.08)
	}
	chk.Scalar(tst, "K00", 1e-12, m.KAt(3)[0], 0)

	// wrong input
	assert.Error(tst, drv.Run([]float64{1}, 2, 0.25, 0.5))
	assert.Error(tst, drv.Run(make([]float64, 6), 2, 0, 0.5))
	drv.Nworkers = 2
	assert.Error(tst, drv.Run(make([]float64, 6), 2, 0.25, 0.5))
}

func Test_driver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver02")

	m, itg := get_elastic_manager(tst, 10)
	m.SetThreadSafe(true)

	var drv Driver
	require.NoError(tst, drv.Init(m, capped{itg, 0.3}))
	drv.Nworkers = 3
	require.NoError(tst, drv.Run([]float64{0, 2e-3, 0, 0, 0, 0}, 1, 0.5, 0.5))

	chk.IntAssert(drv.Naccept, 4)
	chk.IntAssert(drv.Nreject, 3)
	chk.IntAssert(drv.Nsteps, 7)
	chk.IntAssert(drv.Tidx, 3)
	chk.Scalar(tst, "σyy", 1e-12, m.S1.ThermodynamicForcesAt(9)[1], 240*2e-3)

	// no recovery possible
	drv.DtMin = 0.3
	err := drv.Run([]float64{0, 2e-3, 0, 0, 0, 0}, 2, 0.5, 0.5)
	assert.Error(tst, err)
	io.Pforan("err = %v\n", err)
	chk.Scalar(tst, "σyy", 1e-12, m.S1.ThermodynamicForcesAt(9)[1], 240*2e-3)
}

func Test_driver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver03")

	// von Mises plasticity: E=300, ν=0.25 => G=120; qy0=1
	b := &bhv.Behaviour{
		Name:                "Plasticity",
		Hypothesis:          hyp.PlaneStrain,
		Integrator:          "druckerprager",
		Gradients:           []bhv.Variable{{Name: "Strain", Type: bhv.Stensor}},
		ThermodynamicForces: []bhv.Variable{{Name: "Stress", Type: bhv.Stensor}},
		Isvs: []bhv.Variable{
			{Name: "ElasticStrain", Type: bhv.Stensor},
			{Name: "EquivalentPlasticStrain", Type: bhv.Scalar},
		},
		Mps: []bhv.Variable{
			{Name: "YoungModulus", Type: bhv.Scalar},
			{Name: "PoissonRatio", Type: bhv.Scalar},
			{Name: "YieldStress", Type: bhv.Scalar},
		},
	}
	require.NoError(tst, b.Validate())
	itg, err := bhv.NewFor(b)
	require.NoError(tst, err)
	m, err := NewDataManager(b, 4)
	require.NoError(tst, err)
	for _, s := range []*StateManager{m.S0, m.S1} {
		require.NoError(tst, s.SetMaterialProperty("YoungModulus", 300))
		require.NoError(tst, s.SetMaterialProperty("PoissonRatio", 0.25))
		require.NoError(tst, s.SetMaterialProperty("YieldStress", 1))
	}

	var drv Driver
	require.NoError(tst, drv.Init(m, itg))
	require.NoError(tst, drv.Run([]float64{0.01, -0.01, 0, 0}, 1, 0.25, 1))
	chk.IntAssert(drv.Naccept, 4)

	// all steps are plastic; q stays on the yield surface
	α := (4*0.6*math.Sqrt(3) - 1) / 360
	for i := 0; i < 4; i++ {
		σ := m.S0.ThermodynamicForcesAt(i)
		chk.Scalar(tst, "q", 1e-13, tsr.M_q(σ), 1)
		chk.Scalar(tst, "α0", 1e-13, m.S0.InternalStateVariablesAt(i)[4], α)
		chk.Scalar(tst, "α1", 1e-13, m.S1.InternalStateVariablesAt(i)[4], α)
		chk.Scalar(tst, "εe", 1e-13, m.S0.InternalStateVariablesAt(i)[0], σ[0]/240)
	}
	assert.Greater(tst, m.S0.DissipatedEnergies()[0], 0.0)
}
