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

import (
	"fmt"
	"math"
)

// Boundary identifies one edge of the domain rectangle.
type Boundary uint8

const (
	BoundaryNone Boundary = iota
	BoundaryLeft
	BoundaryRight
	BoundaryBottom
	BoundaryTop
)

func (b Boundary) String() string {
	switch b {
	case BoundaryLeft:
		return "left"
	case BoundaryRight:
		return "right"
	case BoundaryBottom:
		return "bottom"
	case BoundaryTop:
		return "top"
	}
	return ""
}

// ParseBoundary is the inverse of Boundary.String.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "left":
		return BoundaryLeft, nil
	case "right":
		return BoundaryRight, nil
	case "bottom":
		return BoundaryBottom, nil
	case "top":
		return BoundaryTop, nil
	}
	return BoundaryNone, fmt.Errorf("unknown boundary %q", s)
}

// Numerical tolerances for exit geometry.
const (
	// boundaryTol is the distance within which a coordinate is considered
	// to lie on a boundary line. Load-bearing for corner classification;
	// changing it changes which edge a near-corner exit is attributed to.
	boundaryTol = 1e-10
)

// ExitPoint returns the parameter t in [0, 1] at which the step from
// (x1, y1) to (x2, y2) first crosses the domain boundary, treating the
// step as the line P(t) = (x1, y1) + t·(dx, dy).
//
// Per-axis candidates with a zero step component are undefined and
// excluded, as are candidates whose crossing point falls outside the
// domain on the other axis. If no candidate survives (an axis-aligned
// step grazing a corner, or float rounding) the endpoint itself is
// taken as the exit point and t = 1 is returned.
func ExitPoint(x1, y1, x2, y2 float64, d Domain) float64 {
	dx := x2 - x1
	dy := y2 - y1

	best := math.Inf(1)
	consider := func(t, px, py float64) {
		if t < 0 || t > 1 || !d.Contains(px, py) {
			return
		}
		if t < best {
			best = t
		}
	}

	if dx != 0 {
		t := (d.LLx - x1) / dx
		consider(t, d.LLx, y1+t*dy)
		t = (d.URx - x1) / dx
		consider(t, d.URx, y1+t*dy)
	}
	if dy != 0 {
		t := (d.LLy - y1) / dy
		consider(t, x1+t*dx, d.LLy)
		t = (d.URy - y1) / dy
		consider(t, x1+t*dx, d.URy)
	}

	if math.IsInf(best, 1) {
		return 1
	}
	return best
}

// ClassifyBoundary returns the boundary the point (x, y) lies on, together
// with that boundary's coordinate value. Boundaries are tested in the fixed
// order left, right, bottom, top and the first one within tol wins, so a
// corner point is attributed to the vertical edge.
//
// A GeometryError means the caller and ExitPoint disagree about what
// "outside" means; it is fatal for the run.
func ClassifyBoundary(x, y float64, d Domain, tol float64) (Boundary, float64, error) {
	switch {
	case math.Abs(x-d.LLx) <= tol:
		return BoundaryLeft, d.LLx, nil
	case math.Abs(x-d.URx) <= tol:
		return BoundaryRight, d.URx, nil
	case math.Abs(y-d.LLy) <= tol:
		return BoundaryBottom, d.LLy, nil
	case math.Abs(y-d.URy) <= tol:
		return BoundaryTop, d.URy, nil
	}
	return BoundaryNone, 0, &GeometryError{X: x, Y: y}
}

// GeometryError reports an exit point that could not be matched to any
// boundary within tolerance.
type GeometryError struct {
	X, Y float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("exit point (%g, %g) matches no domain boundary within tolerance", e.X, e.Y)
}
