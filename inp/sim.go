// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc      string `json:"desc"`      // description of simulation
	Behaviour string `json:"behaviour"` // behaviour file path (.json, .yaml or .yml); relative to the .sim file
	DirOut    string `json:"dirout"`    // directory for output; e.g. /tmp/mgis
	Encoder   string `json:"encoder"`   // encoder name; e.g. "gob" "json"
	Save      bool   `json:"save"`      // save states at output times
}

// PointsData holds data of the integration points
type PointsData struct {
	Npoints    int      `json:"npoints"`    // number of integration points
	ThreadSafe bool     `json:"threadsafe"` // thread safe data manager
	Nworkers   int      `json:"nworkers"`   // number of workers; > 1 => parallel integration
	Mps        fun.Prms `json:"mps"`        // uniform material properties
	Esvs       fun.Prms `json:"esvs"`       // uniform external state variables
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf    float64   `json:"tf"`    // final time
	Dt    float64   `json:"dt"`    // time step size
	DtOut float64   `json:"dtout"` // time step size for output
	DtMin float64   `json:"dtmin"` // minimum time step size
	Itype int       `json:"itype"` // integration type; e.g. 4 => consistent tangent operator
	Rates []float64 `json:"rates"` // rates of gradients applied to all points
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data        `json:"data"`    // stores global simulation data
	Points  PointsData  `json:"points"`  // integration points data
	Control TimeControl `json:"control"` // time control

	// derived
	DirOut  string         // directory to save results
	Key     string         // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType string         // encoder type
	Behav   *bhv.Behaviour // behaviour
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values
	o.Points.SetDefault()
	o.Control.SetDefault()

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	fnkey := io.FnKey(fn)
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/mgis/" + fnkey
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// read behaviour
	if o.Data.Behaviour == "" {
		return nil, chk.Err("ReadSim: behaviour file must be given in %q", simfilepath)
	}
	o.Behav, err = bhv.ReadBehaviour(dir, o.Data.Behaviour)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read behaviour:\n%v", err)
	}

	// points and time control
	err = o.Points.PostProcess()
	if err != nil {
		return nil, chk.Err("ReadSim: %v", err)
	}
	ngrad, err := o.Behav.GradientsSize()
	if err != nil {
		return nil, chk.Err("ReadSim: %v", err)
	}
	err = o.Control.PostProcess(ngrad)
	if err != nil {
		return nil, chk.Err("ReadSim: %v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// IntegrationType returns the integration type
func (o *TimeControl) IntegrationType() bhv.IntegrationType {
	return bhv.IntegrationType(o.Itype)
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *PointsData) SetDefault() {
	o.Npoints = 1
	o.Nworkers = 1
}

// PostProcess checks the points data
func (o *PointsData) PostProcess() (err error) {
	if o.Npoints < 1 {
		return chk.Err("number of points must be positive: npoints=%d", o.Npoints)
	}
	if o.Nworkers < 1 {
		o.Nworkers = 1
	}
	if o.Nworkers > 1 {
		o.ThreadSafe = true
	}
	return
}

// SetDefault sets defaults values
func (o *TimeControl) SetDefault() {
	o.Tf = 1
	o.Dt = 1
	o.DtMin = 1e-8
	o.Itype = int(bhv.IntegrationConsistentTangentOperator)
}

// PostProcess fixes the time steps and checks the number of rates
func (o *TimeControl) PostProcess(ngrad int) (err error) {
	if o.Tf < 1e-14 {
		o.Tf = 1
	}
	if o.Dt < 1e-14 {
		o.Dt = 1
	}
	if o.DtOut < o.Dt {
		o.DtOut = o.Dt
	}
	if o.Itype < int(bhv.PredictionTangentOperator) || o.Itype > int(bhv.IntegrationConsistentTangentOperator) {
		return chk.Err("invalid integration type: itype=%d", o.Itype)
	}
	if o.IntegrationType().IsPrediction() {
		return chk.Err("prediction types cannot be used to run steps: itype=%d", o.Itype)
	}
	if len(o.Rates) != ngrad {
		return chk.Err("the number of rates (%d) must be equal to the number of gradients components (%d)", len(o.Rates), ngrad)
	}
	return
}
