// BrownianExits - parallel simulation of Brownian paths escaping a rectangle
// Copyright (C) 2026  Sam Vermeulen
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package brownian

import "gonum.org/v1/gonum/stat"

// Summary describes the outcome of a run.
type Summary struct {
	Paths       int // distinct paths in the output
	Exits       int // recorded exits
	ByBoundary  map[Boundary]int
	MeanSteps   float64 // mean number of steps to exit
	StdDevSteps float64
}

// Summarize computes per-boundary exit counts and steps-to-exit statistics
// over a (typically already filtered) segment sequence.
func Summarize(segs []Segment) Summary {
	byBoundary := make(map[Boundary]int)
	paths := make(map[int64]struct{})
	var steps []float64

	for i := range segs {
		s := &segs[i]
		paths[s.PathID] = struct{}{}
		if s.HasExited {
			byBoundary[s.ExitBoundary]++
			steps = append(steps, float64(s.Step))
		}
	}

	sum := Summary{
		Paths:      len(paths),
		Exits:      len(steps),
		ByBoundary: byBoundary,
	}
	if len(steps) > 0 {
		sum.MeanSteps = stat.Mean(steps, nil)
	}
	if len(steps) > 1 {
		sum.StdDevSteps = stat.StdDev(steps, nil)
	}
	return sum
}
