// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the post-processing of states saved by the material data manager
package out

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/inp"
	"github.com/chleh/MFrontGenericInterfaceSupport/mdm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// constants
var (
	TolT = 1e-3 // tolerance to compare times
)

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Global variables
var (

	// data set by Start
	Sim  *inp.Simulation  // simulation input data
	Sum  *mdm.Summary     // summary of outputs
	M    *mdm.DataManager // data manager receiving the saved states
	Keys []string         // all keys of point values; e.g. "Strain_0", "StoredEnergy"

	// defined entities and results loaded by LoadResults
	Results  ResultsMap // maps labels => points
	TimeInds []int      // selected output indices
	Times    []float64  // selected output times
)

// Start starts handling of results given a simulation input file
func Start(simfnpath, alias string) (err error) {

	// input data
	Sim, err = inp.ReadSim(simfnpath, alias, false)
	if err != nil {
		return
	}

	// summary
	Sum, err = mdm.ReadSum(Sim.DirOut, Sim.Key, Sim.EncType)
	if err != nil {
		return chk.Err("cannot read summary:\n%v", err)
	}

	// data manager
	M, err = mdm.NewDataManager(Sim.Behav, Sim.Points.Npoints)
	if err != nil {
		return
	}

	// keys; "SpeedOfSound" is added by LoadResults if saved
	Keys = make([]string, 0)
	b := Sim.Behav
	for _, vars := range [][]bhv.Variable{b.Gradients, b.ThermodynamicForces, b.Isvs} {
		for _, v := range vars {
			n, e := bhv.VariableSize(v, b.Hypothesis)
			if e != nil {
				return e
			}
			for k := 0; k < n; k++ {
				Keys = append(Keys, component_key(v.Name, n, k))
			}
		}
	}
	Keys = append(Keys, "StoredEnergy", "DissipatedEnergy")

	// clear previous data
	Results = make(map[string]Points)
	TimeInds = make([]int, 0)
	Times = make([]float64, 0)
	return
}

// point_values returns the values of point i at the beginning of the time step
func point_values(i int) map[string]float64 {
	res := make(map[string]float64)
	s := M.S0
	vals := append(append(append([]float64{}, s.GradientsAt(i)...), s.ThermodynamicForcesAt(i)...), s.InternalStateVariablesAt(i)...)
	for k, v := range vals {
		res[Keys[k]] = v
	}
	res["StoredEnergy"] = s.StoredEnergies()[i]
	res["DissipatedEnergy"] = s.DissipatedEnergies()[i]
	if c := M.SpeedOfSound(); c != nil {
		res["SpeedOfSound"] = c[i]
	}
	return res
}

func component_key(name string, size, k int) string {
	if size == 1 {
		return name
	}
	return io.Sf("%s_%d", name, k)
}
