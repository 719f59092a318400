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
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	brownian "github.com/sam-vermeulen/BrownianExits"
)

// ExportPDF writes the trajectories as a vector graphic to a single-page
// PDF. Params is interpreted with points in place of pixels; unlike the
// raster backend no clipping is applied, the page is simply sized to the
// domain plus margin.
func ExportPDF(path string, segs []brownian.Segment, d brownian.Domain, p Params) error {
	dw := d.URx - d.LLx
	dh := d.URy - d.LLy
	inner := float64(p.SizePx - 2*p.Margin)
	s := inner / dw
	m := float64(p.Margin)

	pageW := float64(p.SizePx)
	pageH := math.Ceil(dh*s) + 2*m

	// PDF device space has y growing upward, like world space; only scale
	// and translate.
	tx := func(x float64) float64 { return m + s*(x-d.LLx) }
	ty := func(y float64) float64 { return m + s*(y-d.LLy) }

	paper := &pdf.Rectangle{URx: pageW, URy: pageH}
	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Trajectories in mid-gray.
	page.SetLineWidth(p.LineWidth)
	page.SetLineCap(p.Cap)
	page.SetLineJoin(graphics.LineJoinRound)
	page.SetStrokeColor(color.DeviceGray(float64(inkPath) / 255))

	trajs := Trajectories(segs)
	for _, tr := range trajs {
		page.MoveTo(tx(tr.Points[0].X), ty(tr.Points[0].Y))
		for _, pt := range tr.Points[1:] {
			page.LineTo(tx(pt.X), ty(pt.Y))
		}
		page.Stroke()
	}

	// Domain boundary in black.
	page.SetLineWidth(p.BoundaryWidth)
	page.SetStrokeColor(color.DeviceGray(0))
	page.Rectangle(tx(d.LLx), ty(d.LLy), s*dw, s*dh)
	page.Stroke()

	if p.Markers {
		page.SetFillColor(color.DeviceGray(0))
		half := p.MarkerSize / 2
		for _, tr := range trajs {
			start := tr.Points[0]
			page.Rectangle(tx(start.X)-half, ty(start.Y)-half, p.MarkerSize, p.MarkerSize)
			page.Fill()
			if tr.Exited {
				page.Rectangle(tx(tr.Exit.X)-half, ty(tr.Exit.Y)-half, p.MarkerSize, p.MarkerSize)
				page.Fill()
			}
		}
	}

	return page.Close()
}
