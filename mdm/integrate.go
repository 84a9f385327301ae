// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Integrate integrates the behaviour over one time step at the points in [b, e).
// The workspace of worker 0 is used. The tangent operator blocks are allocated if the
// integration type requires them.
//  Output:
//   status -- minimum of the statuses returned by the integrator; 1 if the range is empty
//   err    -- set if the range is invalid, if a point cannot be loaded or if a point fails
func Integrate(m *DataManager, itg bhv.Integrator, it bhv.IntegrationType, dt float64, b, e int) (status int, err error) {
	if b < 0 || e > m.n || b > e {
		return -1, chk.Err("Integrate: invalid range [%d, %d); n=%d", b, e, m.n)
	}
	if it.RequiresTangent() {
		m.AllocateArrayOfTangentOperatorBlocks()
	}
	return integrateRange(m, itg, it, dt, b, e, m.GetIntegrationWorkspace(0))
}

// IntegrateParallel integrates the behaviour over one time step at all points using nworkers
// goroutines, each one with its own workspace. The manager must be in thread safe mode and the
// integrator must be safe for concurrent use
func IntegrateParallel(m *DataManager, itg bhv.Integrator, it bhv.IntegrationType, dt float64, nworkers int) (status int, err error) {

	// check
	if !m.threadSafe {
		return -1, chk.Err("IntegrateParallel: the data manager must be in thread safe mode")
	}
	if nworkers < 1 {
		return -1, chk.Err("IntegrateParallel: invalid number of workers: %d", nworkers)
	}
	if nworkers > m.n {
		nworkers = max(m.n, 1)
	}
	if it.RequiresTangent() {
		m.AllocateArrayOfTangentOperatorBlocks()
	}

	// results
	type result struct {
		status int
		err    error
	}
	done := make(chan result, nworkers)

	// run
	chunk := (m.n + nworkers - 1) / nworkers
	for _, w := range utl.IntRange(nworkers) {
		b := min(w*chunk, m.n)
		e := min(b+chunk, m.n)
		go func(worker, b, e int) {
			s, err := integrateRange(m, itg, it, dt, b, e, m.GetIntegrationWorkspace(worker))
			done <- result{s, err}
		}(w, b, e)
	}

	// collect
	status = 1
	for i := 0; i < nworkers; i++ {
		res := <-done
		if res.status < status {
			status = res.status
		}
		if res.err != nil && err == nil {
			err = res.err
		}
	}
	if io.Verbose {
		io.Pf("integrated %d points with %d workers; status = %d\n", m.n, nworkers, status)
	}
	return
}

// integrateRange integrates the points in [b, e) using the workspace wk
func integrateRange(m *DataManager, itg bhv.Integrator, it bhv.IntegrationType, dt float64, b, e int, wk *IntegrationWorkspace) (status int, err error) {
	status = 1
	var d bhv.DataView
	for i := b; i < e; i++ {
		if err = wk.Load(m, i); err != nil {
			return -1, chk.Err("integration failed at point %d:\n%v", i, err)
		}
		wk.ClearMessage()
		m.setDataView(&d, wk, it, dt, i)
		r := itg.Integrate(&d)
		if r < status {
			status = r
		}
		if r < 0 {
			return status, chk.Err("integration failed at point %d: %s", i, wk.Message())
		}
	}
	return
}

// setDataView sets d with views on the storage of point i
func (o *DataManager) setDataView(d *bhv.DataView, wk *IntegrationWorkspace, it bhv.IntegrationType, dt float64, i int) {
	d.Type = it
	d.Dt = dt
	d.K = nil
	if it.RequiresTangent() {
		d.K = o.KAt(i)
	}
	d.SpeedOfSound = nil
	if sos := o.speedOfSound.Data(); sos != nil {
		d.SpeedOfSound = &sos[i]
	}
	setStateView(&d.S0, o.S0, wk.Mps0, wk.Esvs0, i)
	setStateView(&d.S1, o.S1, wk.Mps1, wk.Esvs1, i)
	d.ErrorMessage = wk.ErrorMessage
}

// setStateView sets v with views on the storage of point i of s
func setStateView(v *bhv.StateView, s *StateManager, mps, esvs []float64, i int) {
	v.Gradients = s.GradientsAt(i)
	v.ThermodynamicForces = s.ThermodynamicForcesAt(i)
	v.InternalStateVariables = s.InternalStateVariablesAt(i)
	v.MaterialProperties = mps
	v.ExternalStateVariables = esvs
	v.StoredEnergy = &s.se.Data()[i]
	v.DissipatedEnergy = &s.de.Data()[i]
}
