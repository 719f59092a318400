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
	"context"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// pathState is one active path slot. Exclusively owned by a single worker;
// never shared.
type pathState struct {
	id    int64
	x, y  float64
	steps int
}

// worker steps a fixed arena of path slots until the shared exit budget is
// exhausted. The random source is private to the worker; the only shared
// state it touches is the budget, the ID allocator, and the sink.
type worker struct {
	domain Domain
	budget *exitBudget
	ids    *idAllocator
	sink   *segmentSink

	rng   *rand.Rand
	step  distuv.Normal
	slots []pathState
}

// newWorker seeds a private random source derived from the run seed and
// the worker index, and fills the slot arena with fresh paths at uniform
// random positions.
func newWorker(index int, cfg Config, seed int64, budget *exitBudget, ids *idAllocator, sink *segmentSink) *worker {
	rng := rand.New(rand.NewSource(seed + int64(index)*0x9E3779B9))
	w := &worker{
		domain: cfg.Domain,
		budget: budget,
		ids:    ids,
		sink:   sink,
		rng:    rng,
		step:   distuv.Normal{Mu: 0, Sigma: cfg.StepSize, Src: rng},
		slots:  make([]pathState, cfg.PathsPerWorker),
	}
	for i := range w.slots {
		w.resetSlot(&w.slots[i])
	}
	return w
}

func (w *worker) resetSlot(s *pathState) {
	x, y := w.domain.randomPoint(w.rng)
	*s = pathState{id: w.ids.alloc(), x: x, y: y}
}

// run executes the stepping loop until the budget peek says the cap has
// been reached. Slots are overwritten in place when their path exits, so
// the arena never grows or shrinks. The context is only consulted between
// passes; it trips when another worker hit a fatal geometry error.
func (w *worker) run(ctx context.Context) error {
	for !w.budget.exhausted() {
		if err := ctx.Err(); err != nil {
			return err
		}

		i := 0
		for i < len(w.slots) {
			s := &w.slots[i]
			dx := w.step.Rand()
			dy := w.step.Rand()
			nx := s.x + dx
			ny := s.y + dy

			if w.domain.Contains(nx, ny) {
				s.steps++
				w.sink.append(Segment{
					PathID: s.id,
					Step:   s.steps,
					StartX: s.x, StartY: s.y,
					EndX: nx, EndY: ny,
				})
				s.x, s.y = nx, ny
				i++
				continue
			}

			// The candidate left the domain; locate the exact crossing.
			t := ExitPoint(s.x, s.y, nx, ny, w.domain)
			ix := s.x + t*dx
			iy := s.y + t*dy
			side, val, err := ClassifyBoundary(ix, iy, w.domain, boundaryTol)
			if err != nil {
				return err
			}

			if !w.budget.take() {
				// Budget exhausted: the step is discarded and the slot
				// keeps its old, unexited state.
				i++
				continue
			}

			w.sink.append(Segment{
				PathID: s.id,
				Step:   s.steps + 1,
				StartX: s.x, StartY: s.y,
				EndX: nx, EndY: ny,
				HasExited:     true,
				IntersectionX: ix,
				IntersectionY: iy,
				ExitBoundary:  side,
				BoundaryValue: val,
			})

			// Refresh the slot in place and step it again without
			// advancing the index.
			w.resetSlot(s)
		}
	}
	return nil
}
