// seehuhn.de/go/visdiff - visual regression testing for 2D rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package engine

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/visdiff/corpus"
)

// WritePDF writes a corpus page as a single-page PDF file. The page is
// drawn white on a black background, so that a grayscale render of the
// PDF directly gives coverage values (0=no coverage, 255=full).
//
// Page size is in points, at 1 point = 1 pixel when rendered at 72 DPI.
func WritePDF(page corpus.Page, fname string) error {
	paper := &pdf.Rectangle{
		URx: float64(page.Width),
		URy: float64(page.Height),
	}

	doc, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	doc.SetFillColor(color.DeviceGray(0))
	doc.Rectangle(0, 0, float64(page.Width), float64(page.Height))
	doc.Fill()

	// PDF origin is bottom-left; pages assume top-left. Flip the Y axis.
	doc.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(page.Height)})

	if page.CTM != (matrix.Matrix{}) && page.CTM != matrix.Identity {
		doc.Transform(page.CTM)
	}

	doc.SetFillColor(color.DeviceGray(1))
	doc.SetStrokeColor(color.DeviceGray(1))

	// Stroke parameters must be set before path construction.
	if paint, ok := page.Paint.(corpus.Stroke); ok {
		doc.SetLineWidth(paint.Width)
		doc.SetLineCap(paint.Cap)
		doc.SetLineJoin(paint.Join)
		doc.SetMiterLimit(paint.MiterLimit)
		if len(paint.Dash) > 0 {
			doc.SetLineDash(paint.Dash, paint.DashPhase)
		}
	}

	// PDF has no quadratic curve operator, so convert to cubic.
	for cmd, pts := range page.Path.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			doc.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			doc.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			doc.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			doc.ClosePath()
		}
	}

	switch paint := page.Paint.(type) {
	case corpus.Fill:
		if paint.Rule == corpus.EvenOdd {
			doc.FillEvenOdd()
		} else {
			doc.Fill()
		}
	case corpus.Stroke:
		doc.Stroke()
	default:
		return fmt.Errorf("page %q: unknown paint type %T", page.Name, page.Paint)
	}

	return doc.Close()
}
