// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// StorageMode defines who owns the values of a non-uniform field
type StorageMode int

const (
	LocalStorage    StorageMode = iota // values are copied into memory owned by the FieldMap
	ExternalStorage                    // the FieldMap keeps a view on the caller's memory
)

// field holds either one value for all points (uniform) or one value per point
type field struct {
	uniform bool    // uniform field
	value   float64 // uniform value
	values  Array   // [n] non-uniform values
}

// FieldMap associates names with uniform or non-uniform (one value per point) scalar fields.
// It is used for material properties and external state variables
type FieldMap struct {
	n      int               // number of points
	fields map[string]*field // name => field
}

// NewFieldMap returns a new FieldMap for n points
func NewFieldMap(n int) *FieldMap {
	return &FieldMap{n: n, fields: make(map[string]*field)}
}

// N returns the number of points
func (o *FieldMap) N() int { return o.n }

// Len returns the number of defined fields
func (o *FieldMap) Len() int { return len(o.fields) }

// SetUniform binds name to one value for all points, replacing any previous binding
func (o *FieldMap) SetUniform(name string, v float64) {
	o.fields[name] = &field{uniform: true, value: v}
}

// SetNonUniform binds name to one value per point, replacing any previous binding.
// With LocalStorage the values are copied; with ExternalStorage the slice is used directly
func (o *FieldMap) SetNonUniform(name string, values []float64, mode StorageMode) (err error) {
	var f field
	switch mode {
	case LocalStorage:
		if len(values) != o.n {
			return chk.Err("SetNonUniform: field %q: invalid number of values: %d != %d", name, len(values), o.n)
		}
		f.values.Allocate(o.n)
		copy(f.values.Data(), values)
	case ExternalStorage:
		err = f.values.UseExternal(values, o.n)
		if err != nil {
			return chk.Err("SetNonUniform: field %q: %v", name, err)
		}
	default:
		return chk.Err("SetNonUniform: field %q: invalid storage mode (%d)", name, int(mode))
	}
	o.fields[name] = &f
	return
}

// IsDefined tells whether name is bound
func (o *FieldMap) IsDefined(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// IsUniform tells whether name is bound to a uniform value; false if name is unknown
func (o *FieldMap) IsUniform(name string) bool {
	if f, ok := o.fields[name]; ok {
		return f.uniform
	}
	return false
}

// GetUniform returns the uniform value bound to name
func (o *FieldMap) GetUniform(name string) (v float64, err error) {
	f, ok := o.fields[name]
	if !ok {
		return 0, chk.Err("GetUniform: field %q is not defined", name)
	}
	if !f.uniform {
		return 0, chk.Err("GetUniform: field %q is not uniform", name)
	}
	return f.value, nil
}

// GetNonUniform returns the values bound to name. The slice aliases the stored values
func (o *FieldMap) GetNonUniform(name string) (values []float64, err error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, chk.Err("GetNonUniform: field %q is not defined", name)
	}
	if f.uniform {
		return nil, chk.Err("GetNonUniform: field %q is uniform", name)
	}
	return f.values.Data(), nil
}

// IsExternal tells whether name is bound to external memory
func (o *FieldMap) IsExternal(name string) bool {
	if f, ok := o.fields[name]; ok {
		return f.values.IsExternal()
	}
	return false
}

// Value returns the value of name at point i
func (o *FieldMap) Value(name string, i int) (v float64, err error) {
	f, ok := o.fields[name]
	if !ok {
		return 0, chk.Err("field %q is not defined", name)
	}
	if f.uniform {
		return f.value, nil
	}
	if i < 0 || i >= o.n {
		return 0, chk.Err("field %q: invalid point index %d; n=%d", name, i, o.n)
	}
	return f.values.Data()[i], nil
}

// Remove unbinds name; nothing happens if name is unknown
func (o *FieldMap) Remove(name string) {
	delete(o.fields, name)
}

// Names returns the sorted names of all fields
func (o *FieldMap) Names() (names []string) {
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// CopyFrom makes this map hold the same fields as other; fields not in other are removed.
// Non-uniform values are copied into the existing non-uniform storage of this map,
// if any, so that external views stay valid; otherwise a local copy is made
func (o *FieldMap) CopyFrom(other *FieldMap) (err error) {
	if o.n != other.n {
		return chk.Err("CopyFrom: number of points differ: %d != %d", o.n, other.n)
	}
	for name := range o.fields {
		if _, ok := other.fields[name]; !ok {
			delete(o.fields, name)
		}
	}
	for name, f := range other.fields {
		if f.uniform {
			o.SetUniform(name, f.value)
			continue
		}
		err = o.setValues(name, f.values.Data())
		if err != nil {
			return
		}
	}
	return
}

// setValues copies values into the non-uniform storage of name, or binds a local copy
func (o *FieldMap) setValues(name string, values []float64) (err error) {
	if f, ok := o.fields[name]; ok && !f.uniform && f.values.Len() == len(values) {
		copy(f.values.Data(), values)
		return
	}
	return o.SetNonUniform(name, values, LocalStorage)
}
