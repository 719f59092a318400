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

package plot

import (
	"testing"

	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	brownian "github.com/sam-vermeulen/BrownianExits"
)

func TestTrajectories(t *testing.T) {
	segs := []brownian.Segment{
		{PathID: 7, Step: 1, StartX: 0.5, StartY: 0.5, EndX: 0.6, EndY: 0.4},
		{PathID: 3, Step: 2, StartX: 0.3, StartY: 0.3, EndX: 1.1, EndY: 0.35,
			HasExited: true, IntersectionX: 1.0, IntersectionY: 0.32,
			ExitBoundary: brownian.BoundaryRight, BoundaryValue: 1.0},
		{PathID: 7, Step: 2, StartX: 0.6, StartY: 0.4, EndX: 0.7, EndY: 0.5},
		{PathID: 3, Step: 1, StartX: 0.2, StartY: 0.2, EndX: 0.3, EndY: 0.3},
	}

	trajs := Trajectories(segs)
	require.Len(t, trajs, 2)

	// Paths appear in first-segment order, not ID order.
	require.Equal(t, int64(7), trajs[0].ID)
	require.Equal(t, int64(3), trajs[1].ID)

	require.False(t, trajs[0].Exited)
	require.Equal(t, []vec.Vec2{
		{X: 0.5, Y: 0.5},
		{X: 0.6, Y: 0.4},
		{X: 0.7, Y: 0.5},
	}, trajs[0].Points)

	// Out-of-order steps are sorted, and the raw outside endpoint is
	// replaced by the boundary crossing.
	require.True(t, trajs[1].Exited)
	require.Equal(t, vec.Vec2{X: 1.0, Y: 0.32}, trajs[1].Exit)
	require.Equal(t, []vec.Vec2{
		{X: 0.2, Y: 0.2},
		{X: 0.3, Y: 0.3},
		{X: 1.0, Y: 0.32},
	}, trajs[1].Points)
}

func TestInferDomain(t *testing.T) {
	exit := func(b brownian.Boundary, v float64) brownian.Segment {
		return brownian.Segment{
			HasExited:     true,
			ExitBoundary:  b,
			BoundaryValue: v,
		}
	}

	segs := []brownian.Segment{
		{PathID: 0, Step: 1}, // non-exit segments carry no boundary info
		exit(brownian.BoundaryLeft, -1),
		exit(brownian.BoundaryRight, 1),
		exit(brownian.BoundaryBottom, -2),
		exit(brownian.BoundaryTop, 2),
	}

	d, ok := InferDomain(segs)
	require.True(t, ok)
	require.Equal(t, brownian.NewDomain(-1, 1, -2, 2), d)
}

func TestInferDomainIncomplete(t *testing.T) {
	segs := []brownian.Segment{
		{HasExited: true, ExitBoundary: brownian.BoundaryLeft, BoundaryValue: 0},
		{HasExited: true, ExitBoundary: brownian.BoundaryRight, BoundaryValue: 1},
		{HasExited: true, ExitBoundary: brownian.BoundaryTop, BoundaryValue: 1},
	}

	_, ok := InferDomain(segs)
	require.False(t, ok)
}

func TestRender(t *testing.T) {
	d := brownian.NewDomain(0, 1, 0, 1)
	p := DefaultParams()
	p.SizePx = 100
	p.Margin = 10

	segs := []brownian.Segment{
		{PathID: 0, Step: 1, StartX: 0.5, StartY: 0.5, EndX: 0.6, EndY: 0.6},
		{PathID: 0, Step: 2, StartX: 0.6, StartY: 0.6, EndX: 1.2, EndY: 0.7,
			HasExited: true, IntersectionX: 1.0, IntersectionY: 0.66,
			ExitBoundary: brownian.BoundaryRight, BoundaryValue: 1.0},
	}

	img := Render(segs, d, p)

	// Square domain: 80px inner area plus margins on both axes.
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())

	// Margins stay white.
	require.Equal(t, uint8(0xFF), img.GrayAt(0, 0).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(99, 99).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(50, 2).Y)

	// The boundary rectangle leaves ink at the domain corners.
	require.Less(t, img.GrayAt(10, 10).Y, uint8(0xFF))
	require.Less(t, img.GrayAt(90, 90).Y, uint8(0xFF))

	// The trajectory leaves ink somewhere strictly inside the domain.
	inked := 0
	for y := 12; y < 88; y++ {
		for x := 12; x < 88; x++ {
			if img.GrayAt(x, y).Y < 0xFF {
				inked++
			}
		}
	}
	require.Positive(t, inked)
}

func TestRenderEmpty(t *testing.T) {
	d := brownian.NewDomain(-1, 1, -1, 1)
	p := DefaultParams()
	p.SizePx = 64
	p.Margin = 8

	img := Render(nil, d, p)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())
	require.Less(t, img.GrayAt(8, 8).Y, uint8(0xFF))
}
