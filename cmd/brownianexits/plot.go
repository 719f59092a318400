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
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	brownian "github.com/sam-vermeulen/BrownianExits"
	"github.com/sam-vermeulen/BrownianExits/plot"
	"github.com/sam-vermeulen/BrownianExits/segio"
)

func newPlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a segments CSV as a PNG and/or PDF plot",
		RunE:  runPlot,
	}

	flags := cmd.Flags()
	flags.String("input", "segments.csv", "segments CSV to read")
	flags.String("png", "", "PNG output file (empty disables)")
	flags.String("pdf", "", "PDF output file (empty disables)")
	flags.Int("size", 0, "image width in pixels")
	flags.Float64("line-width", 0, "trajectory stroke width in pixels")
	flags.Float64("marker-size", 0, "start/exit marker diameter in pixels")
	flags.Bool("markers", true, "draw start and exit markers")
	flags.Float64("plot-x-min", math.NaN(), "domain lower x bound (default: inferred from the data)")
	flags.Float64("plot-x-max", math.NaN(), "domain upper x bound (default: inferred from the data)")
	flags.Float64("plot-y-min", math.NaN(), "domain lower y bound (default: inferred from the data)")
	flags.Float64("plot-y-max", math.NaN(), "domain upper y bound (default: inferred from the data)")

	return cmd
}

func runPlot(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	pngOut := viper.GetString("png")
	pdfOut := viper.GetString("pdf")
	if pngOut == "" && pdfOut == "" {
		return errors.New("nothing to do: pass --png and/or --pdf")
	}

	segs, err := readCSV(viper.GetString("input"))
	if err != nil {
		return err
	}

	domain, err := plotDomain(segs)
	if err != nil {
		return err
	}

	params := plot.DefaultParams()
	if v := viper.GetInt("size"); v > 0 {
		params.SizePx = v
	}
	if v := viper.GetFloat64("line-width"); v > 0 {
		params.LineWidth = v
	}
	if v := viper.GetFloat64("marker-size"); v > 0 {
		params.MarkerSize = v
	}
	params.Markers = viper.GetBool("markers")

	if pngOut != "" {
		img := plot.Render(segs, domain, params)
		if err := plot.WritePNG(pngOut, img); err != nil {
			return fmt.Errorf("writing %s: %w", pngOut, err)
		}
	}
	if pdfOut != "" {
		if err := plot.ExportPDF(pdfOut, segs, domain, params); err != nil {
			return fmt.Errorf("writing %s: %w", pdfOut, err)
		}
	}
	return nil
}

// plotDomain uses the explicit bounds when all four are given, and falls
// back to recovering them from the recorded boundary values.
func plotDomain(segs []brownian.Segment) (brownian.Domain, error) {
	bounds := []float64{
		viper.GetFloat64("plot-x-min"),
		viper.GetFloat64("plot-x-max"),
		viper.GetFloat64("plot-y-min"),
		viper.GetFloat64("plot-y-max"),
	}
	explicit := true
	for _, v := range bounds {
		if math.IsNaN(v) {
			explicit = false
			break
		}
	}
	if explicit {
		return brownian.NewDomain(bounds[0], bounds[1], bounds[2], bounds[3]), nil
	}

	domain, ok := plot.InferDomain(segs)
	if !ok {
		return brownian.Domain{}, errors.New("cannot infer the domain from the data; pass --plot-x-min/--plot-x-max/--plot-y-min/--plot-y-max")
	}
	return domain, nil
}

func readCSV(path string) (segs []brownian.Segment, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return segio.Read(f)
}
