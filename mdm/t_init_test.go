// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// get_behaviour returns a small strain elastic behaviour with one internal state variable
func get_behaviour(h hyp.Hypothesis) *bhv.Behaviour {
	b := &bhv.Behaviour{
		Name:                "Elasticity",
		Hypothesis:          h,
		Btype:               bhv.StandardStrainBasedBehaviour,
		Integrator:          "elasticity",
		Gradients:           []bhv.Variable{{Name: "Strain", Type: bhv.Stensor}},
		ThermodynamicForces: []bhv.Variable{{Name: "Stress", Type: bhv.Stensor}},
		Isvs:                []bhv.Variable{{Name: "ElasticStrain", Type: bhv.Stensor}},
		Mps: []bhv.Variable{
			{Name: "YoungModulus", Type: bhv.Scalar},
			{Name: "PoissonRatio", Type: bhv.Scalar},
			{Name: "MassDensity", Type: bhv.Scalar},
		},
		Esvs: []bhv.Variable{{Name: "Temperature", Type: bhv.Scalar}},
	}
	if err := b.Validate(); err != nil {
		chk.Panic("%v", err)
	}
	return b
}
