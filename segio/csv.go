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

// Package segio reads and writes segment records as row-oriented CSV.
//
// The column set is fixed; absent values (intersection and boundary data
// of non-exited segments) are empty fields. Floats use the shortest
// representation that round-trips.
package segio

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	brownian "github.com/sam-vermeulen/BrownianExits"
)

var header = []string{
	"path_id", "step",
	"start_x", "start_y", "end_x", "end_y",
	"has_exited",
	"intersection_x", "intersection_y",
	"exit_boundary", "boundary_value",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write writes segs to w, preceded by the header row.
func Write(w io.Writer, segs []brownian.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]string, len(header))
	for i := range segs {
		s := &segs[i]
		rec[0] = strconv.FormatInt(s.PathID, 10)
		rec[1] = strconv.Itoa(s.Step)
		rec[2] = formatFloat(s.StartX)
		rec[3] = formatFloat(s.StartY)
		rec[4] = formatFloat(s.EndX)
		rec[5] = formatFloat(s.EndY)
		rec[6] = strconv.FormatBool(s.HasExited)
		if s.HasExited {
			rec[7] = formatFloat(s.IntersectionX)
			rec[8] = formatFloat(s.IntersectionY)
			rec[9] = s.ExitBoundary.String()
			rec[10] = formatFloat(s.BoundaryValue)
		} else {
			rec[7], rec[8], rec[9], rec[10] = "", "", "", ""
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing segment %d of path %d: %w", s.Step, s.PathID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses a segment sequence previously written by Write.
func Read(r io.Reader) ([]brownian.Segment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(first, header) {
		return nil, fmt.Errorf("unexpected header %v", first)
	}

	var segs []brownian.Segment
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return segs, nil
		}
		if err != nil {
			return nil, err
		}
		seg, err := parseRecord(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		segs = append(segs, seg)
	}
}

func parseRecord(rec []string) (brownian.Segment, error) {
	var seg brownian.Segment
	var err error

	if seg.PathID, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
		return seg, fmt.Errorf("path_id: %w", err)
	}
	if seg.Step, err = strconv.Atoi(rec[1]); err != nil {
		return seg, fmt.Errorf("step: %w", err)
	}
	floats := []struct {
		name string
		dst  *float64
		raw  string
	}{
		{"start_x", &seg.StartX, rec[2]},
		{"start_y", &seg.StartY, rec[3]},
		{"end_x", &seg.EndX, rec[4]},
		{"end_y", &seg.EndY, rec[5]},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return seg, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if seg.HasExited, err = strconv.ParseBool(rec[6]); err != nil {
		return seg, fmt.Errorf("has_exited: %w", err)
	}
	if !seg.HasExited {
		return seg, nil
	}

	if seg.IntersectionX, err = strconv.ParseFloat(rec[7], 64); err != nil {
		return seg, fmt.Errorf("intersection_x: %w", err)
	}
	if seg.IntersectionY, err = strconv.ParseFloat(rec[8], 64); err != nil {
		return seg, fmt.Errorf("intersection_y: %w", err)
	}
	if seg.ExitBoundary, err = brownian.ParseBoundary(rec[9]); err != nil {
		return seg, fmt.Errorf("exit_boundary: %w", err)
	}
	if seg.BoundaryValue, err = strconv.ParseFloat(rec[10], 64); err != nil {
		return seg, fmt.Errorf("boundary_value: %w", err)
	}
	return seg, nil
}
