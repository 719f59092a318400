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

import "fmt"

// Config holds the parameters of a single simulation run.
type Config struct {
	// Domain is the rectangle paths are confined to.
	Domain Domain

	// MaxExits is the global exit budget shared by all workers: the run
	// stops once this many exits have been recorded in total.
	MaxExits int

	// PathsPerWorker is the size of each worker's arena of active paths.
	PathsPerWorker int

	// StepSize is the standard deviation of each Gaussian step component.
	StepSize float64

	// Seed makes the run reproducible. Zero means seed from the system
	// clock; the effective seed is logged either way.
	Seed int64

	// Workers overrides the number of workers. Zero means one per
	// available hardware thread.
	Workers int
}

// ConfigurationError reports a configuration value that would make the
// run meaningless. Detected before any worker starts; there is no
// partial run.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (c Config) validate() error {
	d := c.Domain
	if !(d.LLx < d.URx) {
		return &ConfigurationError{
			Field:  "domain",
			Reason: fmt.Sprintf("x_min (%g) must be less than x_max (%g)", d.LLx, d.URx),
		}
	}
	if !(d.LLy < d.URy) {
		return &ConfigurationError{
			Field:  "domain",
			Reason: fmt.Sprintf("y_min (%g) must be less than y_max (%g)", d.LLy, d.URy),
		}
	}
	if c.StepSize <= 0 {
		return &ConfigurationError{
			Field:  "step_size",
			Reason: fmt.Sprintf("must be positive, got %g", c.StepSize),
		}
	}
	if c.PathsPerWorker <= 0 {
		return &ConfigurationError{
			Field:  "paths_per_worker",
			Reason: fmt.Sprintf("must be positive, got %d", c.PathsPerWorker),
		}
	}
	if c.MaxExits < 0 {
		return &ConfigurationError{
			Field:  "max_exits",
			Reason: fmt.Sprintf("must not be negative, got %d", c.MaxExits),
		}
	}
	return nil
}
