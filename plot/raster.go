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

package plot

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercepts
}

// rasterizer turns stroked polylines and filled polygons into per-pixel
// coverage values. One instance is reused for all shapes in a plot;
// internal buffers grow as needed and never shrink. Not safe for
// concurrent use.
type rasterizer struct {
	// CTM transforms from world space to device space.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	edges     []edge
	cover     []float32 // per-pixel cover delta within the current bbox
	area      []float32 // per-pixel horizontal weighting
	rowXMin   []int
	rowXMax   []int
	crossings []float64 // scratch: y values where an edge crosses pixel columns

	bboxFirst                          bool
	devXMin, devXMax, devYMin, devYMax float64
}

func newRasterizer(clip rect.Rect) *rasterizer {
	return &rasterizer{
		CTM:  matrix.Identity,
		Clip: clip,
	}
}

// Numerical tolerances.
const (
	// horizontalEdgeTol is the minimum vertical extent for an edge to
	// contribute coverage; flatter edges are dropped.
	horizontalEdgeTol = 1e-10

	// zeroLengthTol is the minimum length of a polyline segment; shorter
	// segments are skipped when stroking.
	zeroLengthTol = 1e-10
)

// begin discards any collected edges, starting a new shape batch.
func (r *rasterizer) begin() {
	r.edges = r.edges[:0]
	r.bboxFirst = true
}

// addEdge adds an edge between two world-space points, transforming to
// device space and tracking the device bounding box.
func (r *rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeTol && dy < horizontalEdgeTol {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.bboxFirst {
		r.devXMin = min(dx0, dx1)
		r.devXMax = max(dx0, dx1)
		r.devYMin = min(dy0, dy1)
		r.devYMax = max(dy0, dy1)
		r.bboxFirst = false
	} else {
		r.devXMin = min(r.devXMin, min(dx0, dx1))
		r.devXMax = max(r.devXMax, max(dx0, dx1))
		r.devYMin = min(r.devYMin, min(dy0, dy1))
		r.devYMax = max(r.devYMax, max(dy0, dy1))
	}
}

// addPolygon adds a closed polygon in world coordinates.
func (r *rasterizer) addPolygon(pts ...vec.Vec2) {
	n := len(pts)
	if n < 3 {
		return
	}
	for i := range n {
		r.addEdge(pts[i], pts[(i+1)%n])
	}
}

// addDot adds a small octagon approximating a disc of the given radius.
// Used for round caps, joins, and markers; exact circles are not worth
// the trouble at plot line widths.
func (r *rasterizer) addDot(c vec.Vec2, radius float64) {
	// Octagon circumscribing the disc so its area error stays symmetric.
	const k = 1.0824 // 1/cos(π/8)
	rad := radius * k
	var pts [8]vec.Vec2
	for i := range 8 {
		phi := (float64(i) + 0.5) * math.Pi / 4
		pts[i] = vec.Vec2{X: c.X + rad*math.Cos(phi), Y: c.Y + rad*math.Sin(phi)}
	}
	r.addPolygon(pts[:]...)
}

// strokePolyline adds the outline of a stroked polyline as a compound
// polygon set: one quad per segment plus a dot at every interior vertex.
// Overlaps composite correctly under the nonzero winding rule.
func (r *rasterizer) strokePolyline(pts []vec.Vec2, width float64, capStyle graphics.LineCapStyle) {
	if len(pts) < 2 {
		return
	}
	d := width / 2

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		t := b.Sub(a)
		length := t.Length()
		if length < zeroLengthTol {
			continue
		}
		t = t.Mul(1 / length)
		n := vec.Vec2{X: -t.Y, Y: t.X}

		if capStyle == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i+2 == len(pts) {
				b = b.Add(t.Mul(d))
			}
		}
		r.addPolygon(
			a.Add(n.Mul(d)),
			b.Add(n.Mul(d)),
			b.Sub(n.Mul(d)),
			a.Sub(n.Mul(d)),
		)
	}

	for i := 1; i+1 < len(pts); i++ {
		r.addDot(pts[i], d)
	}
	if capStyle == graphics.LineCapRound {
		r.addDot(pts[0], d)
		r.addDot(pts[len(pts)-1], d)
	}
}

// fill rasterizes the collected edges with the nonzero winding rule and
// delivers coverage row by row. The coverage slice passed to emit is only
// valid for the duration of the callback.
func (r *rasterizer) fill(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	clipXMin := int(r.Clip.LLx)
	clipXMax := int(r.Clip.URx)
	clipYMin := int(r.Clip.LLy)
	clipYMax := int(r.Clip.URy)

	xMin := max(int(math.Floor(r.devXMin)), clipXMin)
	xMax := min(int(math.Floor(r.devXMax))+1, clipXMax)
	yMin := max(int(math.Floor(r.devYMin)), clipYMin)
	yMax := min(int(math.Floor(r.devYMax))+1, clipYMax)
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		var edgeYMin, edgeYMax int
		if e.y0 < e.y1 {
			edgeYMin = int(math.Floor(e.y0))
			edgeYMax = int(math.Floor(e.y1)) + 1
		} else {
			edgeYMin = int(math.Floor(e.y1))
			edgeYMax = int(math.Floor(e.y0)) + 1
		}
		edgeYMin = max(edgeYMin, yMin)
		edgeYMax = min(edgeYMax, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)

			// Track the x range touched on this row.
			yTop := max(float64(y), min(e.y0, e.y1))
			yBot := min(float64(y+1), max(e.y0, e.y1))
			yMid := (yTop + yBot) / 2
			x := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
			x = min(max(x, xMin), xMax-1)
			idx := x - xMin
			if idx < r.rowXMin[row] {
				r.rowXMin[row] = idx
			}
			if idx > r.rowXMax[row] {
				r.rowXMax[row] = idx
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateNonZero(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds one edge's contribution within scanline y to the
// cover and area buffers, which are indexed by (x - bboxXMin). Edges
// spanning several pixel columns are split at column boundaries.
//
// For each pixel: cover is the signed vertical extent of the crossing
// (+1 downward, -1 upward per unit), area weights it by how far left
// within the pixel the crossing sits. integrateNonZero then sums cover
// left to right and adds area to recover the signed occupied fraction.
func (r *rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := xAtTop, xAtBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		// Entirely left of the bbox: full contribution carried from column 0.
		v := sign * float32(yBot-yTop)
		cover[0] += v
		area[0] += v
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateSpan(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// Split at the y values where the edge crosses pixel columns.
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		yMid := (y0 + y1) / 2
		pix := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
		r.accumulateSpan(e, y0, y1, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSpan handles the part of an edge between yTop and yBot that
// stays within a single pixel column.
func (r *rasterizer) accumulateSpan(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	v := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += v
		area[0] += v
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += v
	area[idx] += v * float32(1-xFrac)
}

// integrateNonZero converts accumulated cover/area into final coverage
// under the nonzero winding rule, in place in cover.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		if raw < 0 {
			raw = -raw
		}
		if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

// trimZeros returns the non-zero portion of coverage and its offset, or
// nil if the row is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}
