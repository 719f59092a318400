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

// Package brownian simulates concurrent two-dimensional random walks
// confined to a rectangle and records the exact point where each walk
// first leaves it.
package brownian

import (
	"context"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Option configures a simulation run.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
}

// WithLogger attaches a logger to the run. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Simulate runs random walks in cfg.Domain until cfg.MaxExits exits have
// been recorded, then returns every step of every path that exited, in
// arrival order. Steps of a path are connected: ordered by Segment.Step
// they form a polyline from the path's start to its exit.
//
// A fatal error (invalid configuration, or an exit point that cannot be
// classified) aborts the whole run and discards all partial results; there
// are no retries.
func Simulate(ctx context.Context, cfg Config, opts ...Option) ([]Segment, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	st := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&st)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	st.logger.Info("starting simulation",
		zap.Int("workers", workers),
		zap.Int("paths_per_worker", cfg.PathsPerWorker),
		zap.Int("max_exits", cfg.MaxExits),
		zap.Float64("step_size", cfg.StepSize),
		zap.Int64("seed", seed),
	)

	budget := newExitBudget(cfg.MaxExits)
	ids := &idAllocator{}
	sink := &segmentSink{}

	// Workers run to completion with no suspension points; the pool exists
	// to join them and to cancel the others when one fails.
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)
	for i := range workers {
		w := newWorker(i, cfg, seed, budget, ids, sink)
		p.Go(w.run)
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	segs := FilterExited(sink.take())
	st.logger.Info("simulation complete",
		zap.Int("segments", len(segs)),
		zap.Int64("paths_started", ids.next.Load()),
	)
	return segs, nil
}
