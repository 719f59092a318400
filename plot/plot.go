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

// Package plot renders simulated exit trajectories: the per-path
// polylines, the domain boundary, and start/exit markers. A raster
// backend produces grayscale PNGs, a vector backend produces single-page
// PDFs.
package plot

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	brownian "github.com/sam-vermeulen/BrownianExits"
)

// Params controls plot appearance. World coordinates are scaled so the
// domain fits the image; all widths and sizes below are in device pixels
// (points for the PDF backend).
type Params struct {
	// SizePx is the image width. The height follows from the domain's
	// aspect ratio.
	SizePx int

	// Margin is the blank border around the domain rectangle.
	Margin int

	// LineWidth is the trajectory stroke width.
	LineWidth float64

	// BoundaryWidth is the domain rectangle stroke width.
	BoundaryWidth float64

	// Cap is the trajectory line cap style.
	Cap graphics.LineCapStyle

	// Markers enables start and exit-point markers.
	Markers bool

	// MarkerSize is the marker diameter.
	MarkerSize float64
}

func DefaultParams() Params {
	return Params{
		SizePx:        800,
		Margin:        20,
		LineWidth:     1.25,
		BoundaryWidth: 2,
		Cap:           graphics.LineCapRound,
		Markers:       true,
		MarkerSize:    5,
	}
}

// Trajectory is one path reconstructed from its segments: the polyline of
// visited positions, ending at the boundary crossing if the path exited.
type Trajectory struct {
	ID     int64
	Points []vec.Vec2
	Exit   vec.Vec2 // boundary crossing, valid if Exited
	Exited bool
}

// Trajectories groups segments by path and orders each path's segments by
// step. Paths appear in order of their first segment. The segment's raw
// outside endpoint is replaced by the exact boundary crossing, so the
// drawn polyline stays inside the domain.
func Trajectories(segs []brownian.Segment) []Trajectory {
	byID := make(map[int64][]brownian.Segment)
	var order []int64
	for _, s := range segs {
		if _, ok := byID[s.PathID]; !ok {
			order = append(order, s.PathID)
		}
		byID[s.PathID] = append(byID[s.PathID], s)
	}

	trajs := make([]Trajectory, 0, len(order))
	for _, id := range order {
		ss := byID[id]
		slices.SortFunc(ss, func(a, b brownian.Segment) int {
			return a.Step - b.Step
		})

		tr := Trajectory{ID: id}
		tr.Points = append(tr.Points, vec.Vec2{X: ss[0].StartX, Y: ss[0].StartY})
		for _, s := range ss {
			if s.HasExited {
				tr.Exit = vec.Vec2{X: s.IntersectionX, Y: s.IntersectionY}
				tr.Exited = true
				tr.Points = append(tr.Points, tr.Exit)
			} else {
				tr.Points = append(tr.Points, vec.Vec2{X: s.EndX, Y: s.EndY})
			}
		}
		trajs = append(trajs, tr)
	}
	return trajs
}

// InferDomain recovers the domain rectangle from the boundary values of
// exited segments. It reports ok only if all four boundaries were hit.
func InferDomain(segs []brownian.Segment) (brownian.Domain, bool) {
	var vals [5]float64
	var seen [5]bool
	for _, s := range segs {
		if s.HasExited && s.ExitBoundary != brownian.BoundaryNone {
			vals[s.ExitBoundary] = s.BoundaryValue
			seen[s.ExitBoundary] = true
		}
	}
	if !seen[brownian.BoundaryLeft] || !seen[brownian.BoundaryRight] ||
		!seen[brownian.BoundaryBottom] || !seen[brownian.BoundaryTop] {
		return brownian.Domain{}, false
	}
	return brownian.NewDomain(
		vals[brownian.BoundaryLeft],
		vals[brownian.BoundaryRight],
		vals[brownian.BoundaryBottom],
		vals[brownian.BoundaryTop],
	), true
}

// layout maps the domain to device pixels with the configured margin.
type layout struct {
	width, height int
	scale         float64
	ctm           matrix.Matrix
}

func newLayout(d brownian.Domain, p Params) layout {
	dw := d.URx - d.LLx
	dh := d.URy - d.LLy
	inner := float64(p.SizePx - 2*p.Margin)
	s := inner / dw

	l := layout{
		width:  p.SizePx,
		height: int(math.Ceil(dh*s)) + 2*p.Margin,
		scale:  s,
	}
	// Device y grows downward.
	l.ctm = matrix.Matrix{
		s, 0,
		0, -s,
		float64(p.Margin) - s*d.LLx,
		float64(p.Margin) + s*d.URy,
	}
	return l
}

// Gray ink levels. The background is white; coverage blends toward the
// ink value.
const (
	inkPath     = 0x55
	inkBoundary = 0x00
	inkMarker   = 0x00
)

// Render draws the trajectories and domain boundary into a new grayscale
// image.
func Render(segs []brownian.Segment, d brownian.Domain, p Params) *image.Gray {
	l := newLayout(d, p)
	img := image.NewGray(image.Rect(0, 0, l.width, l.height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	clip := rect.Rect{URx: float64(l.width), URy: float64(l.height)}
	r := newRasterizer(clip)
	r.CTM = l.ctm

	trajs := Trajectories(segs)

	for _, tr := range trajs {
		r.begin()
		r.strokePolyline(tr.Points, p.LineWidth/l.scale, p.Cap)
		r.fill(blendInto(img, inkPath))
	}

	// Domain boundary on top of the trajectories.
	r.begin()
	r.strokePolyline([]vec.Vec2{
		{X: d.LLx, Y: d.LLy},
		{X: d.URx, Y: d.LLy},
		{X: d.URx, Y: d.URy},
		{X: d.LLx, Y: d.URy},
		{X: d.LLx, Y: d.LLy},
		{X: d.URx, Y: d.LLy}, // wrap past the corner so the closing joint is covered
	}, p.BoundaryWidth/l.scale, graphics.LineCapButt)
	r.fill(blendInto(img, inkBoundary))

	if p.Markers {
		r.begin()
		for _, tr := range trajs {
			r.addDot(tr.Points[0], p.MarkerSize/2/l.scale)
			if tr.Exited {
				r.addDot(tr.Exit, p.MarkerSize/2/l.scale)
			}
		}
		r.fill(blendInto(img, inkMarker))
	}

	return img
}

// blendInto returns an emit callback compositing coverage over img with
// the given ink level.
func blendInto(img *image.Gray, ink uint8) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride:]
		for i, c := range coverage {
			x := xMin + i
			old := float32(row[x])
			row[x] = uint8(old + (float32(ink)-old)*c)
		}
	}
}
