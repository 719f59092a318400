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

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	brownian "github.com/sam-vermeulen/BrownianExits"
	"github.com/sam-vermeulen/BrownianExits/segio"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and write the segments as CSV",
		RunE:  runSimulation,
	}

	flags := cmd.Flags()
	flags.Float64("x-min", 0, "domain lower x bound")
	flags.Float64("x-max", 1, "domain upper x bound")
	flags.Float64("y-min", 0, "domain lower y bound")
	flags.Float64("y-max", 1, "domain upper y bound")
	flags.Int("max-exits", 1000, "global exit budget across all workers")
	flags.Int("paths-per-worker", 64, "active paths per worker")
	flags.Float64("step-size", 0.01, "standard deviation of each step component")
	flags.Int64("seed", 0, "random seed (0 seeds from the system clock)")
	flags.Int("workers", 0, "worker count (0 means one per hardware thread)")
	flags.String("output", "segments.csv", "output CSV file, - for stdout")
	flags.Bool("verbose", false, "human-readable debug logging")

	return cmd
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	logger, err := newLogger(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := brownian.Config{
		Domain: brownian.NewDomain(
			viper.GetFloat64("x-min"), viper.GetFloat64("x-max"),
			viper.GetFloat64("y-min"), viper.GetFloat64("y-max"),
		),
		MaxExits:       viper.GetInt("max-exits"),
		PathsPerWorker: viper.GetInt("paths-per-worker"),
		StepSize:       viper.GetFloat64("step-size"),
		Seed:           viper.GetInt64("seed"),
		Workers:        viper.GetInt("workers"),
	}

	segs, err := brownian.Simulate(cmd.Context(), cfg, brownian.WithLogger(logger))
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return err
	}

	sum := brownian.Summarize(segs)
	byBoundary := make(map[string]int, len(sum.ByBoundary))
	for b, n := range sum.ByBoundary {
		byBoundary[b.String()] = n
	}
	logger.Info("run summary",
		zap.Int("paths", sum.Paths),
		zap.Int("exits", sum.Exits),
		zap.Any("exits_by_boundary", byBoundary),
		zap.Float64("mean_steps_to_exit", sum.MeanSteps),
		zap.Float64("stddev_steps_to_exit", sum.StdDevSteps),
	)

	out := viper.GetString("output")
	if err := writeCSV(out, segs); err != nil {
		return err
	}
	logger.Info("wrote segments", zap.String("output", out), zap.Int("segments", len(segs)))
	return nil
}

func writeCSV(out string, segs []brownian.Segment) (err error) {
	var w io.Writer = os.Stdout
	if out != "-" {
		f, ferr := os.Create(out)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return segio.Write(w, segs)
}
