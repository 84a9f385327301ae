// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

// Locator defines interface for locating points
type Locator interface {
	Locate() Points
}

// At implements locator of integration points by their indices
type At []int

// Locate finds points
func (o At) Locate() (res Points) {
	for _, id := range o {
		if id < 0 || id >= M.N() {
			continue
		}
		res = append(res, &Point{Id: id, Vals: make(map[string][]float64)})
	}
	return
}

// AllPoints returns all point indices
func AllPoints() At {
	res := make([]int, M.N())
	for i := range res {
		res[i] = i
	}
	return res
}
