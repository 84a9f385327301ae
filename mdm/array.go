// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Array holds a flat array of values that is either owned by the array (local storage)
// or a view on memory supplied by the caller (external storage).
// External memory is never reallocated nor released; only the view is dropped
type Array struct {
	values   []float64 // owned storage; nil if external or unbound
	data     []float64 // active storage; aliases values or the external memory
	external bool      // data is a view on external memory
}

// Data returns the active storage (nil if unbound)
func (o *Array) Data() []float64 { return o.data }

// Len returns the number of values
func (o *Array) Len() int { return len(o.data) }

// IsBound tells whether storage has been allocated or adopted
func (o *Array) IsBound() bool { return o.data != nil }

// IsExternal tells whether the array is a view on external memory
func (o *Array) IsExternal() bool { return o.external }

// Allocate allocates size zeroed values, unless storage is already bound
func (o *Array) Allocate(size int) {
	if o.data != nil {
		return
	}
	o.values = make([]float64, size)
	o.data = o.values
	o.external = false
}

// Release drops the storage (owned values are left to the garbage collector; external memory is untouched)
func (o *Array) Release() {
	o.values = nil
	o.data = nil
	o.external = false
}

// UseExternal adopts v as storage after checking that len(v) == size.
// On failure, the current binding is left unchanged
func (o *Array) UseExternal(v []float64, size int) (err error) {
	if v == nil {
		return chk.Err("the external memory is not allocated (nil slice)")
	}
	if len(v) != size {
		return chk.Err("the external memory has not been allocated properly: len=%d != %d", len(v), size)
	}
	o.Release()
	o.data = v
	o.external = true
	return
}

// Fill sets all values to s
func (o *Array) Fill(s float64) {
	la.VecFill(o.data, s)
}

// Slice returns the values of point i, with 'stride' values per point; no bounds check is made
func (o *Array) Slice(i, stride int) []float64 {
	return o.data[i*stride : (i+1)*stride]
}
