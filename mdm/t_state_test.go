// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"testing"

	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	b := get_behaviour(hyp.Tridimensional)
	s, err := NewStateManager(b, 1000)
	if err != nil {
		tst.Errorf("NewStateManager failed: %v\n", err)
		return
	}
	io.Pforan("strides = %d %d %d\n", s.GradientsStride(), s.ThermodynamicForcesStride(), s.InternalStateVariablesStride())
	chk.IntAssert(s.N(), 1000)
	chk.IntAssert(s.GradientsStride(), 6)
	chk.IntAssert(s.ThermodynamicForcesStride(), 6)
	chk.IntAssert(s.InternalStateVariablesStride(), 6)
	chk.IntAssert(len(s.Gradients()), 6000)
	chk.IntAssert(len(s.ThermodynamicForces()), 6000)
	chk.IntAssert(len(s.InternalStateVariables()), 6000)
	chk.IntAssert(len(s.StoredEnergies()), 1000)
	chk.IntAssert(len(s.DissipatedEnergies()), 1000)
	chk.Scalar(tst, "max|g|", 1e-17, la.VecLargest(s.Gradients(), 1), 0)

	// material properties
	err = s.SetMaterialProperty("YoungModulus", 150e9)
	if err != nil {
		tst.Errorf("SetMaterialProperty failed: %v\n", err)
		return
	}
	E, err := s.GetUniformMaterialProperty("YoungModulus")
	if err != nil {
		tst.Errorf("GetUniformMaterialProperty failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "E", 1e-17, E, 150e9)
	if !s.IsMaterialPropertyDefined("YoungModulus") || !s.IsMaterialPropertyUniform("YoungModulus") {
		tst.Errorf("YoungModulus must be defined and uniform\n")
		return
	}
	if s.IsMaterialPropertyDefined("PoissonRatio") {
		tst.Errorf("PoissonRatio must not be defined\n")
		return
	}
	if err = s.SetMaterialProperty("YieldStress", 1); err == nil {
		tst.Errorf("SetMaterialProperty should have failed for an undeclared property\n")
		return
	}

	// list of parameters
	err = s.SetMaterialProperties(fun.Prms{
		&fun.Prm{N: "PoissonRatio", V: 0.3},
		&fun.Prm{N: "MassDensity", V: 7800},
	})
	if err != nil {
		tst.Errorf("SetMaterialProperties failed: %v\n", err)
		return
	}
	rho, _ := s.GetUniformMaterialProperty("MassDensity")
	chk.Scalar(tst, "rho", 1e-17, rho, 7800)

	// external state variables
	T := make([]float64, 1000)
	la.VecFill(T, 293.15)
	err = s.SetNonUniformExternalStateVariable("Temperature", T, ExternalStorage)
	if err != nil {
		tst.Errorf("SetNonUniformExternalStateVariable failed: %v\n", err)
		return
	}
	T[999] = 400
	vals, err := s.GetNonUniformExternalStateVariable("Temperature")
	if err != nil {
		tst.Errorf("GetNonUniformExternalStateVariable failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "T[999]", 1e-17, vals[999], 400)
	if s.IsExternalStateVariableUniform("Temperature") || !s.IsExternalStateVariableDefined("Temperature") {
		tst.Errorf("Temperature must be defined and non-uniform\n")
		return
	}
	if err = s.SetExternalStateVariable("YoungModulus", 1); err == nil {
		tst.Errorf("SetExternalStateVariable should have failed for a material property\n")
	}
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02")

	b := get_behaviour(hyp.Tridimensional)

	// wrong size: nothing is bound
	_, err := NewStateManagerWith(b, 1000, StateManagerInitializer{
		Gradients: make([]float64, 5999),
	})
	if err == nil {
		tst.Errorf("NewStateManagerWith should have failed with a wrong gradients buffer\n")
		return
	}
	io.Pforan("err = %v\n", err)

	// valid gradients but wrong forces in the same initializer
	gok := make([]float64, 6000)
	_, err = NewStateManagerWith(b, 1000, StateManagerInitializer{
		Gradients:           gok,
		ThermodynamicForces: make([]float64, 5999),
	})
	if err == nil {
		tst.Errorf("NewStateManagerWith should have failed with a wrong forces buffer\n")
		return
	}
	io.Pforan("err = %v\n", err)

	// external buffers
	g := make([]float64, 6000)
	se := make([]float64, 1000)
	s, err := NewStateManagerWith(b, 1000, StateManagerInitializer{Gradients: g, StoredEnergies: se})
	if err != nil {
		tst.Errorf("NewStateManagerWith failed: %v\n", err)
		return
	}
	ig, ifo, iv, ise, ide := s.IsExternal()
	if !ig || ifo || iv || !ise || ide {
		tst.Errorf("wrong external flags: %v %v %v %v %v\n", ig, ifo, iv, ise, ide)
		return
	}
	s.GradientsAt(2)[5] = 1.5
	chk.Scalar(tst, "g[17]", 1e-17, g[17], 1.5)
	s.StoredEnergies()[999] = 2.5
	chk.Scalar(tst, "se[999]", 1e-17, se[999], 2.5)

	// uniform fields
	if err = s.SetMaterialProperty("YoungModulus", 210e9); err != nil {
		tst.Errorf("SetMaterialProperty failed: %v\n", err)
		return
	}
	E, err := s.GetUniformMaterialProperty("YoungModulus")
	if err != nil {
		tst.Errorf("GetUniformMaterialProperty failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "E", 1e-17, E, 210e9)
	if _, err = s.GetUniformMaterialProperty("PoissonRatio"); err == nil {
		tst.Errorf("GetUniformMaterialProperty should have failed with an undefined property\n")
		return
	}
	if err = s.SetNonUniformMaterialProperty("PoissonRatio", make([]float64, 1000), LocalStorage); err != nil {
		tst.Errorf("SetNonUniformMaterialProperty failed: %v\n", err)
		return
	}
	if _, err = s.GetUniformMaterialProperty("PoissonRatio"); err == nil {
		tst.Errorf("GetUniformMaterialProperty should have failed on a non-uniform property\n")
		return
	}
	if _, err = s.GetUniformExternalStateVariable("Temperature"); err == nil {
		tst.Errorf("GetUniformExternalStateVariable should have failed with an undefined variable\n")
		return
	}
	if err = s.SetNonUniformExternalStateVariable("Temperature", make([]float64, 1000), LocalStorage); err != nil {
		tst.Errorf("SetNonUniformExternalStateVariable failed: %v\n", err)
		return
	}
	if _, err = s.GetUniformExternalStateVariable("Temperature"); err == nil {
		tst.Errorf("GetUniformExternalStateVariable should have failed on a non-uniform variable\n")
		return
	}

	// empty
	s, err = NewStateManager(b, 0)
	if err != nil {
		tst.Errorf("NewStateManager failed with zero points: %v\n", err)
		return
	}
	chk.IntAssert(len(s.Gradients()), 0)
	if _, err = NewStateManager(b, -1); err == nil {
		tst.Errorf("NewStateManager should have failed with negative number of points\n")
	}
}

func Test_state03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state03")

	b := get_behaviour(hyp.PlaneStrain)
	ext := make([]float64, 3*4)
	src, _ := NewStateManager(b, 3)
	dst, _ := NewStateManagerWith(b, 3, StateManagerInitializer{ThermodynamicForces: ext})

	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			src.GradientsAt(i)[j] = float64(10*i + j)
			src.ThermodynamicForcesAt(i)[j] = -float64(10*i + j)
		}
		src.InternalStateVariablesAt(i)[0] = float64(i)
		src.StoredEnergies()[i] = 1
		src.DissipatedEnergies()[i] = 2
	}
	src.SetMaterialProperty("YoungModulus", 10)
	src.SetNonUniformExternalStateVariable("Temperature", []float64{1, 2, 3}, LocalStorage)

	err := UpdateValues(dst, src)
	if err != nil {
		tst.Errorf("UpdateValues failed: %v\n", err)
		return
	}
	chk.Vector(tst, "g", 1e-17, dst.GradientsAt(2), []float64{20, 21, 22, 23})
	chk.Vector(tst, "ext", 1e-17, ext[4:8], []float64{-10, -11, -12, -13})
	chk.Vector(tst, "se", 1e-17, dst.StoredEnergies(), []float64{1, 1, 1})
	chk.Vector(tst, "de", 1e-17, dst.DissipatedEnergies(), []float64{2, 2, 2})
	chk.Scalar(tst, "v[2]", 1e-17, dst.InternalStateVariablesAt(2)[0], 2)
	E, _ := dst.GetUniformMaterialProperty("YoungModulus")
	chk.Scalar(tst, "E", 1e-17, E, 10)
	T, _ := dst.GetNonUniformExternalStateVariable("Temperature")
	chk.Vector(tst, "T", 1e-17, T, []float64{1, 2, 3})

	// copies are independent
	src.GradientsAt(0)[0] = 100
	chk.Scalar(tst, "g[0]", 1e-17, dst.GradientsAt(0)[0], 0)

	// mismatch
	other, _ := NewStateManager(b, 4)
	if err = UpdateValues(dst, other); err == nil {
		tst.Errorf("UpdateValues should have failed with different number of points\n")
		return
	}
	other, _ = NewStateManager(get_behaviour(hyp.Tridimensional), 3)
	if err = UpdateValues(dst, other); err == nil {
		tst.Errorf("UpdateValues should have failed with different behaviours\n")
	}
}
