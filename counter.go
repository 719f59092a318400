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

import "sync/atomic"

// exitBudget caps the total number of exits recorded across all workers.
// The counter is monotone; it may run past the cap when several workers
// take a slot concurrently, but take reports success for exactly the
// first max pre-increment values.
type exitBudget struct {
	n   atomic.Int64
	max int64
}

func newExitBudget(max int) *exitBudget {
	return &exitBudget{max: int64(max)}
}

// exhausted is the workers' loop peek. It is a plain load, deliberately
// not coupled to take: workers may pass the peek simultaneously and race
// to take the remaining budget.
func (b *exitBudget) exhausted() bool {
	return b.n.Load() >= b.max
}

// take consumes one unit of budget and reports whether the exit may be
// recorded. The fetch-and-add hands every caller a distinct pre-increment
// value, so at most max calls ever succeed.
func (b *exitBudget) take() bool {
	return b.n.Add(1)-1 < b.max
}

// idAllocator produces globally unique path identifiers.
type idAllocator struct {
	next atomic.Int64
}

func (a *idAllocator) alloc() int64 {
	return a.next.Add(1) - 1
}
