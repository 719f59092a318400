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

package segio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brownian "github.com/sam-vermeulen/BrownianExits"
)

func sampleSegments() []brownian.Segment {
	return []brownian.Segment{
		{
			PathID: 0, Step: 1,
			StartX: 0.5, StartY: 0.5,
			EndX: 0.5117, EndY: 0.4921,
		},
		{
			PathID: 0, Step: 2,
			StartX: 0.5117, StartY: 0.4921,
			EndX: 1.02, EndY: 0.47,
			HasExited:     true,
			IntersectionX: 1, IntersectionY: 0.4753,
			ExitBoundary:  brownian.BoundaryRight,
			BoundaryValue: 1,
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	segs := sampleSegments()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, segs))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, segs, got)
}

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSegments()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"path_id,step,start_x,start_y,end_x,end_y,has_exited,intersection_x,intersection_y,exit_boundary,boundary_value",
		lines[0])

	// Absent values of a non-exited segment are empty fields.
	assert.Equal(t, "0,1,0.5,0.5,0.5117,0.4921,false,,,,", lines[1])
	assert.Equal(t, "0,2,0.5117,0.4921,1.02,0.47,true,1,0.4753,right,1", lines[2])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadRejectsBadHeader(t *testing.T) {
	_, err := Read(strings.NewReader("id,step\n1,2\n"))
	require.Error(t, err)
}

func TestReadRejectsBadField(t *testing.T) {
	in := strings.Join([]string{
		"path_id,step,start_x,start_y,end_x,end_y,has_exited,intersection_x,intersection_y,exit_boundary,boundary_value",
		"0,1,0.5,0.5,0.6,0.6,maybe,,,,",
		"",
	}, "\n")

	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has_exited")
}

func TestReadRejectsBadBoundary(t *testing.T) {
	in := strings.Join([]string{
		"path_id,step,start_x,start_y,end_x,end_y,has_exited,intersection_x,intersection_y,exit_boundary,boundary_value",
		"0,1,0.5,0.5,1.1,0.5,true,1,0.5,middle,1",
		"",
	}, "\n")

	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit_boundary")
}

func TestRoundTripSimulation(t *testing.T) {
	segs, err := brownian.Simulate(t.Context(), brownian.Config{
		Domain:         brownian.NewDomain(-1, 1, -1, 1),
		MaxExits:       10,
		PathsPerWorker: 4,
		StepSize:       0.1,
		Seed:           7,
		Workers:        1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, segs)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, segs))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, segs, got)
}
