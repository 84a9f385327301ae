// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// Point holds the results of one integration point
type Point struct {
	Id   int                  // index of integration point
	Vals map[string][]float64 // [nTimeInds] values; e.g. "Stress_0" => σ0 at each selected time
}

// Points is a set of points
type Points []*Point

// Define defines aliases
//  alias -- an alias to a group of points, an individual point, or to a set of points.
//           Example: "A", "left-column" or "a b c". If the number of points found is different
//           than the number of aliases, a group is created.
//  Note:
//    To use spaces in aliases, prefix the alias with an exclamation mark; e.g "!right column"
func Define(alias string, loc Locator) (err error) {

	// check
	if len(alias) < 1 {
		return chk.Err("alias must have at least one character. %q is invalid", alias)
	}

	// locate points
	pts := loc.Locate()
	if len(pts) < 1 {
		return chk.Err("cannot define entities with alias=%q and locator=%v", alias, loc)
	}

	// set results map
	if alias[0] == '!' {
		Results[alias[1:]] = pts
		return
	}
	lbls := strings.Fields(alias)
	if len(lbls) == len(pts) {
		for i, l := range lbls {
			Results[l] = []*Point{pts[i]}
		}
		return
	}
	Results[alias] = pts
	return
}

// LoadResults loads all results after points are defined
//  times -- specified selected output times
//           use nil to indicate that all times are required
func LoadResults(times []float64) (err error) {

	// selected output times and indices
	if times == nil {
		times = Sum.OutTimes
	}
	TimeInds, Times = utl.GetITout(Sum.OutTimes, times, TolT)

	// for each selected output time
	for _, tidx := range TimeInds {

		// input states into data manager
		err = M.Read(Sim.DirOut, Sim.Key, Sim.EncType, tidx)
		if err != nil {
			return chk.Err("cannot load results with tidx=%d:\n%v", tidx, err)
		}
		if M.SpeedOfSound() != nil && utl.StrIndexSmall(Keys, "SpeedOfSound") < 0 {
			Keys = append(Keys, "SpeedOfSound")
		}

		// for each point
		for _, pts := range Results {
			for _, p := range pts {
				for key, val := range point_values(p.Id) {
					utl.StrDblsMapAppend(&p.Vals, key, val)
				}
			}
		}
	}
	return
}

// GetRes gets results as a time or space series corresponding to a given alias
// for a single point or set of points.
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
//          If alias defines a single point, the whole time series is returned and idxI is ignored.
func GetRes(key, alias string, idxI int) (res []float64, err error) {
	if idxI < 0 {
		idxI = len(TimeInds) - 1
	}
	if pts, ok := Results[alias]; ok {
		if len(pts) == 1 {
			if v, found := pts[0].Vals[key]; found {
				return v, nil
			}
		} else {
			for _, p := range pts {
				if v, found := p.Vals[key]; found && idxI < len(v) {
					res = append(res, v[idxI])
				}
			}
			if len(res) > 0 {
				return
			}
		}
	}
	return nil, chk.Err("cannot get %q at %q", key, alias)
}

// GetIds return the point ids corresponding to alias
func GetIds(alias string) (ids []int) {
	if pts, ok := Results[alias]; ok {
		for _, p := range pts {
			ids = append(ids, p.Id)
		}
	}
	return
}

// Stat returns the minimum, maximum and mean values of key over the points of alias
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
func Stat(key, alias string, idxI int) (vmin, vmax, mean float64, err error) {
	if idxI < 0 {
		idxI = len(TimeInds) - 1
	}
	pts, ok := Results[alias]
	if !ok {
		err = chk.Err("cannot find alias %q", alias)
		return
	}
	var vals []float64
	for _, p := range pts {
		if v, found := p.Vals[key]; found && idxI < len(v) {
			vals = append(vals, v[idxI])
		}
	}
	if len(vals) == 0 {
		err = chk.Err("cannot get %q at %q", key, alias)
		return
	}
	return floats.Min(vals), floats.Max(vals), floats.Sum(vals) / float64(len(vals)), nil
}
