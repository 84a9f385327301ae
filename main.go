// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/inp"
	"github.com/chleh/MFrontGenericInterfaceSupport/mdm"
	_ "github.com/chleh/MFrontGenericInterfaceSupport/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	alias := io.ArgToString(3, "")
	io.Verbose = verbose

	// message
	if verbose {
		io.PfWhite("\nMaterial data manager driver\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"word to add to results", "alias", alias,
		))
	}

	// input data
	sim, err := inp.ReadSim(fnamepath, alias, erasePrev)
	if err != nil {
		chk.Panic("cannot read simulation input data:\n%v", err)
	}

	// data manager
	m, err := mdm.NewDataManager(sim.Behav, sim.Points.Npoints)
	if err != nil {
		chk.Panic("cannot allocate data manager:\n%v", err)
	}
	defer m.Clean()
	m.SetThreadSafe(sim.Points.ThreadSafe)
	for _, s := range []*mdm.StateManager{m.S0, m.S1} {
		if err = s.SetMaterialProperties(sim.Points.Mps); err != nil {
			chk.Panic("cannot set material properties:\n%v", err)
		}
		if err = s.SetExternalStateVariables(sim.Points.Esvs); err != nil {
			chk.Panic("cannot set external state variables:\n%v", err)
		}
	}
	m.AllocateArrayOfSpeedOfSounds()

	// integrator
	itg, err := bhv.NewFor(sim.Behav)
	if err != nil {
		chk.Panic("cannot allocate integrator:\n%v", err)
	}

	// driver
	var drv mdm.Driver
	if err = drv.Init(m, itg); err != nil {
		chk.Panic("%v", err)
	}
	drv.Type = sim.Control.IntegrationType()
	drv.Nworkers = sim.Points.Nworkers
	drv.DtMin = sim.Control.DtMin
	drv.Silent = !verbose
	sum := mdm.Summary{Dirout: sim.DirOut, Fnkey: sim.Key, EncType: sim.EncType}
	if sim.Data.Save {
		drv.Sum = &sum
		drv.Output = func(tidx int, t float64) error {
			return m.Save(sim.DirOut, sim.Key, sim.EncType, tidx, verbose)
		}
	}

	// run simulation
	err = drv.Run(sim.Control.Rates, sim.Control.Tf, sim.Control.Dt, sim.Control.DtOut)
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
	if sim.Data.Save {
		if err = sum.Save(verbose); err != nil {
			chk.Panic("cannot save summary:\n%v", err)
		}
	}

	// results
	if verbose {
		n := m.N() - 1
		io.Pf("\n\n")
		io.Pfyel("gradients @ last point            = %v\n", m.S0.GradientsAt(n))
		io.Pfyel("thermodynamic forces @ last point = %v\n", m.S0.ThermodynamicForcesAt(n))
		io.Pfyel("speed of sound @ last point       = %v\n", m.SpeedOfSound()[n])
	}
}
