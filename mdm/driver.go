// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"log"
	"math"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Driver integrates the behaviour at all points of a data manager over a sequence of time
// steps with prescribed gradient rates. Rejected steps are reverted and the time step is halved
type Driver struct {

	// input
	M   *DataManager   // data manager
	Itg bhv.Integrator // integrator

	// settings
	Type     bhv.IntegrationType // integration type
	Nworkers int                 // number of workers; > 1 => parallel integration
	DtMin    float64             // minimum time step
	Silent   bool                // do not show messages

	// output
	Output func(tidx int, t float64) error // called before the first step and at output times; may be nil
	Sum    *Summary                        // records output times and stats; may be nil

	// results
	Time    float64 // current time
	Tidx    int     // number of outputs
	Nsteps  int     // total number of steps
	Naccept int     // number of accepted steps
	Nreject int     // number of rejected steps
}

// Init initialises the driver
func (o *Driver) Init(m *DataManager, itg bhv.Integrator) (err error) {
	if m == nil || itg == nil {
		return chk.Err("Driver: data manager and integrator must not be nil")
	}
	o.M = m
	o.Itg = itg
	o.Type = bhv.IntegrationConsistentTangentOperator
	o.Nworkers = 1
	o.DtMin = 1e-8
	o.Silent = !io.Verbose
	return
}

// Run runs the time loop from the current time until tf
//  Input:
//   rates -- [GradientsStride] rates of gradients applied to all points
//   tf    -- final time
//   dt    -- time step
//   dtout -- time step for output
func (o *Driver) Run(rates []float64, tf, dt, dtout float64) (err error) {

	// check
	m := o.M
	if len(rates) != m.S1.GradientsStride() {
		return chk.Err("Driver: the number of rates (%d) must be equal to the number of gradients components (%d)",
			len(rates), m.S1.GradientsStride())
	}
	if dt <= 0 {
		return chk.Err("Driver: time step must be positive: dt=%g", dt)
	}
	if o.Nworkers > 1 && !m.IsThreadSafe() {
		return chk.Err("Driver: parallel integration requires a thread safe data manager")
	}

	// stat
	defer func() {
		if o.Sum != nil {
			o.Sum.Nsteps, o.Sum.Naccept, o.Sum.Nreject = o.Nsteps, o.Naccept, o.Nreject
		}
		if !o.Silent {
			log.Printf("total number of steps    = %d\n", o.Nsteps)
			log.Printf("number of accepted steps = %d\n", o.Naccept)
			log.Printf("number of rejected steps = %d\n", o.Nreject)
		}
	}()

	// first output
	if err = o.output(); err != nil {
		return
	}

	// time loop
	t := o.Time
	tout := t + dtout
	Δt := dt
	ϵ := 1e-10 * dt
	for tf-t > ϵ {

		// check time step
		if Δt < o.DtMin {
			return chk.Err("Driver: Δt increment is too small: %g < %g", Δt, o.DtMin)
		}
		if t+Δt > tf-ϵ {
			Δt = tf - t
		}
		o.Nsteps++

		// gradients at the end of the time step
		for i := 0; i < m.n; i++ {
			g0 := m.S0.GradientsAt(i)
			g1 := m.S1.GradientsAt(i)
			for j, r := range rates {
				g1[j] = g0[j] + r*Δt
			}
		}

		// integrate
		var e error
		if o.Nworkers > 1 {
			_, e = IntegrateParallel(m, o.Itg, o.Type, Δt, o.Nworkers)
		} else {
			_, e = Integrate(m, o.Itg, o.Type, Δt, 0, m.n)
		}

		// rejected
		if e != nil {
			o.Nreject++
			if !o.Silent {
				io.Pforan("step rejected at t=%g (Δt=%g):\n%v\n", t, Δt, e)
			}
			if err = Revert(m); err != nil {
				return
			}
			Δt /= 2.0
			continue
		}

		// accepted
		o.Naccept++
		t += Δt
		o.Time = t
		if err = Update(m); err != nil {
			return
		}
		Δt = math.Min(2.0*Δt, dt)

		// output
		if t >= tout-ϵ || tf-t <= ϵ {
			if err = o.output(); err != nil {
				return
			}
			tout += dtout
		}
		if !o.Silent {
			io.PfWhite("%30.15f\r", t)
		}
	}
	return
}

// output calls the output function
func (o *Driver) output() (err error) {
	if o.Output != nil {
		err = o.Output(o.Tidx, o.Time)
		if err != nil {
			return chk.Err("Driver: output failed:\n%v", err)
		}
	}
	if o.Sum != nil {
		o.Sum.OutTimes = append(o.Sum.OutTimes, o.Time)
	}
	o.Tidx++
	return
}
