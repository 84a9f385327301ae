// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// FieldData holds one field of a FieldMap when saving to files
type FieldData struct {
	Name    string    // field name
	Uniform bool      // uniform field
	Value   float64   // uniform value
	Values  []float64 // non-uniform values
}

// stateData holds the values of a StateManager when saving to files
type stateData struct {
	Behaviour  string      // behaviour name
	Hypothesis string      // modelling hypothesis
	N          int         // number of points
	G          []float64   // gradients
	F          []float64   // thermodynamic forces
	V          []float64   // internal state variables
	Se         []float64   // stored energies
	De         []float64   // dissipated energies
	Mps        []FieldData // material properties
	Esvs       []FieldData // external state variables
}

// managerData holds the values of a DataManager when saving to files
type managerData struct {
	S0           stateData // state at the beginning of the time step
	S1           stateData // state at the end of the time step
	K            []float64 // tangent operator blocks; empty if not allocated
	SpeedOfSound []float64 // speed of sound; empty if not allocated
}

// Encode encodes the state
func (o *StateManager) Encode(enc Encoder) (err error) {
	err = enc.Encode(o.data())
	if err != nil {
		return chk.Err("cannot encode state:\n%v", err)
	}
	return
}

// Decode decodes the state. The storage of the manager is kept; i.e. external views remain valid
func (o *StateManager) Decode(dec Decoder) (err error) {
	var d stateData
	err = dec.Decode(&d)
	if err != nil {
		return chk.Err("cannot decode state:\n%v", err)
	}
	return o.setData(&d)
}

// Save saves both states and the tangent operator and speed of sound arrays to a file which
// name is set with key and tidx (time output index)
func (o *DataManager) Save(dir, key, enctype string, tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode
	d := managerData{
		S0:           o.S0.data(),
		S1:           o.S1.data(),
		K:            o.k.Data(),
		SpeedOfSound: o.speedOfSound.Data(),
	}
	err = enc.Encode(&d)
	if err != nil {
		return chk.Err("cannot encode data manager:\n%v", err)
	}

	// save file
	fn := out_mdm_path(dir, key, enctype, tidx)
	return save_file(fn, &buf, verbose)
}

// Read reads the values saved by Save. The arrays of the manager are allocated if needed
func (o *DataManager) Read(dir, key, enctype string, tidx int) (err error) {

	// open file
	fn := out_mdm_path(dir, key, enctype, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decode
	var d managerData
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(&d)
	if err != nil {
		return chk.Err("cannot decode data manager:\n%v", err)
	}

	// check arrays
	if len(d.K) > 0 && len(d.K) != o.n*o.kStride {
		return chk.Err("cannot read tangent operator blocks: len=%d != %d", len(d.K), o.n*o.kStride)
	}
	if len(d.SpeedOfSound) > 0 && len(d.SpeedOfSound) != o.n {
		return chk.Err("cannot read speed of sound: len=%d != %d", len(d.SpeedOfSound), o.n)
	}

	// check states
	if err = o.S0.checkData(&d.S0); err != nil {
		return chk.Err("cannot read state at the beginning of the time step:\n%v", err)
	}
	if err = o.S1.checkData(&d.S1); err != nil {
		return chk.Err("cannot read state at the end of the time step:\n%v", err)
	}

	// states and arrays
	o.S0.applyData(&d.S0)
	o.S1.applyData(&d.S1)
	if len(d.K) > 0 {
		o.AllocateArrayOfTangentOperatorBlocks()
		copy(o.k.Data(), d.K)
	}
	if len(d.SpeedOfSound) > 0 {
		o.AllocateArrayOfSpeedOfSounds()
		copy(o.speedOfSound.Data(), d.SpeedOfSound)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// data returns the values of the state
func (o *StateManager) data() stateData {
	return stateData{
		Behaviour:  o.b.Name,
		Hypothesis: o.b.Hypothesis.String(),
		N:          o.n,
		G:          o.g.Data(),
		F:          o.f.Data(),
		V:          o.v.Data(),
		Se:         o.se.Data(),
		De:         o.de.Data(),
		Mps:        o.MaterialProperties.data(),
		Esvs:       o.ExternalStateVariables.data(),
	}
}

// setData copies the values in d into the state; nothing is changed if d is invalid
func (o *StateManager) setData(d *stateData) (err error) {
	if err = o.checkData(d); err != nil {
		return
	}
	o.applyData(d)
	return
}

// checkData checks that d can be copied into the state
func (o *StateManager) checkData(d *stateData) (err error) {
	if d.Behaviour != o.b.Name || d.Hypothesis != o.b.Hypothesis.String() {
		return chk.Err("behaviour in file (%q, %s) differs from behaviour of state (%q, %v)",
			d.Behaviour, d.Hypothesis, o.b.Name, o.b.Hypothesis)
	}
	if d.N != o.n {
		return chk.Err("number of points in file (%d) differs from number of points of state (%d)", d.N, o.n)
	}
	for _, a := range o.arrays(d) {
		if len(a.src) != a.dst.Len() {
			return chk.Err("cannot read %s: len=%d != %d", a.key, len(a.src), a.dst.Len())
		}
	}
	if err = o.MaterialProperties.checkData(d.Mps); err != nil {
		return chk.Err("cannot read material properties: %v", err)
	}
	if err = o.ExternalStateVariables.checkData(d.Esvs); err != nil {
		return chk.Err("cannot read external state variables: %v", err)
	}
	return
}

// applyData copies the values in d into the state; d must have been checked
func (o *StateManager) applyData(d *stateData) {
	for _, a := range o.arrays(d) {
		copy(a.dst.Data(), a.src)
	}
	o.MaterialProperties.setData(d.Mps)
	o.ExternalStateVariables.setData(d.Esvs)
}

// arrays pairs the arrays of the state with the ones in d
func (o *StateManager) arrays(d *stateData) []stateArray {
	return []stateArray{
		{"gradients", &o.g, d.G},
		{"thermodynamic forces", &o.f, d.F},
		{"internal state variables", &o.v, d.V},
		{"stored energies", &o.se, d.Se},
		{"dissipated energies", &o.de, d.De},
	}
}

type stateArray struct {
	key string
	dst *Array
	src []float64
}

// data returns the fields sorted by name
func (o *FieldMap) data() (res []FieldData) {
	for _, name := range o.Names() {
		f := o.fields[name]
		res = append(res, FieldData{Name: name, Uniform: f.uniform, Value: f.value, Values: f.values.Data()})
	}
	return
}

// checkData checks that fields can replace the fields of this map
func (o *FieldMap) checkData(fields []FieldData) (err error) {
	for _, f := range fields {
		if !f.Uniform && len(f.Values) != o.n {
			return chk.Err("field %q: invalid number of values: %d != %d", f.Name, len(f.Values), o.n)
		}
	}
	return
}

// setData replaces the fields by the ones in fields; fields must have been checked
func (o *FieldMap) setData(fields []FieldData) {
	keep := make(map[string]bool)
	for _, f := range fields {
		keep[f.Name] = true
		if f.Uniform {
			o.SetUniform(f.Name, f.Value)
			continue
		}
		_ = o.setValues(f.Name, f.Values) // sizes checked by checkData
	}
	for _, name := range o.Names() {
		if !keep[name] {
			o.Remove(name)
		}
	}
}

func out_mdm_path(dir, fnkey, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("%s_mdm_%010d.%s", fnkey, tidx, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
