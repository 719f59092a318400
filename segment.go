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

import "sync"

// Segment is one recorded step of one path. Immutable once appended.
//
// For a fixed PathID the segments ordered by Step form a connected
// polyline: each segment's start equals the previous segment's end. The
// final segment of an exited path has HasExited set and is the only one
// carrying intersection and boundary data; on all other segments those
// fields are zero and ExitBoundary is BoundaryNone.
type Segment struct {
	PathID int64
	Step   int // 1-based within the path

	StartX, StartY float64
	EndX, EndY     float64 // for an exited segment this lies outside the domain

	HasExited     bool
	IntersectionX float64
	IntersectionY float64
	ExitBoundary  Boundary
	BoundaryValue float64
}

// segmentSink accumulates segments from all workers. A single lock, held
// only for the duration of an append; insertion order reflects arrival
// order across workers and is not meaningful beyond the per-path Step
// ordering.
type segmentSink struct {
	mu   sync.Mutex
	segs []Segment
}

func (s *segmentSink) append(seg Segment) {
	s.mu.Lock()
	s.segs = append(s.segs, seg)
	s.mu.Unlock()
}

// take hands the accumulated segments to the caller. Only called after
// all workers have joined.
func (s *segmentSink) take() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	segs := s.segs
	s.segs = nil
	return segs
}

// FilterExited keeps only the segments of paths that reached an exit,
// preserving relative order. Paths still in flight when the global budget
// ran out never exited and are discarded entirely: the output represents
// completed exit trajectories only.
func FilterExited(segs []Segment) []Segment {
	exited := make(map[int64]struct{})
	for i := range segs {
		if segs[i].HasExited {
			exited[segs[i].PathID] = struct{}{}
		}
	}

	out := make([]Segment, 0, len(segs))
	for i := range segs {
		if _, ok := exited[segs[i].PathID]; ok {
			out = append(out, segs[i])
		}
	}
	return out
}
