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
	"math/rand"

	"seehuhn.de/go/geom/rect"
)

// Domain is the rectangular region paths are simulated within.
// It is immutable for the duration of a run.
type Domain struct {
	rect.Rect
}

// NewDomain returns the domain [xMin,xMax] × [yMin,yMax].
// Bounds are not validated here; Config.validate rejects empty domains
// before any worker starts.
func NewDomain(xMin, xMax, yMin, yMax float64) Domain {
	return Domain{rect.Rect{LLx: xMin, LLy: yMin, URx: xMax, URy: yMax}}
}

// Contains reports whether (x, y) lies within the domain.
// Points exactly on the boundary count as inside.
func (d Domain) Contains(x, y float64) bool {
	return x >= d.LLx && x <= d.URx && y >= d.LLy && y <= d.URy
}

// randomPoint returns a uniformly distributed point in the interior.
func (d Domain) randomPoint(rng *rand.Rand) (x, y float64) {
	x = d.LLx + rng.Float64()*(d.URx-d.LLx)
	y = d.LLy + rng.Float64()*(d.URy-d.LLy)
	return x, y
}
