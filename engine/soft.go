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
	"context"
	"fmt"
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/raster"
)

// softVersion changes whenever the built-in rasterizer's output can
// change, so that stored references record which generation of the
// renderer produced them.
const softVersion = "1.2.0"

// Soft is the built-in scanline rasterizer. It renders white shapes on
// a black background, matching the output of the external engines.
type Soft struct{}

// Name implements the [Engine] interface.
func (Soft) Name() string { return "soft" }

// Version implements the [Engine] interface.
func (Soft) Version() string { return softVersion }

// Render implements the [Engine] interface.
func (Soft) Render(ctx context.Context, page corpus.Page) (*image.Gray, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("page %q: invalid size %dx%d",
			page.Name, page.Width, page.Height)
	}

	clip := rect.Rect{URx: float64(page.Width), URy: float64(page.Height)}
	r := raster.NewRasterizer(clip)
	if page.CTM != (matrix.Matrix{}) {
		r.CTM = page.CTM
	}

	img := image.NewGray(image.Rect(0, 0, page.Width, page.Height))
	emit := func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride:]
		for i, c := range coverage {
			v := int(c * 256)
			if v > 255 {
				v = 255
			} else if v < 0 {
				v = 0
			}
			if old := int(row[xMin+i]); v < old {
				v = old
			}
			row[xMin+i] = uint8(v)
		}
	}

	switch paint := page.Paint.(type) {
	case corpus.Fill:
		switch paint.Rule {
		case corpus.NonZero:
			r.FillNonZero(page.Path, emit)
		case corpus.EvenOdd:
			r.FillEvenOdd(page.Path, emit)
		default:
			return nil, fmt.Errorf("page %q: invalid fill rule %d",
				page.Name, paint.Rule)
		}
	case corpus.Stroke:
		r.Width = paint.Width
		r.Cap = paint.Cap
		r.Join = paint.Join
		r.MiterLimit = paint.MiterLimit
		r.Dash = paint.Dash
		r.DashPhase = paint.DashPhase
		r.Stroke(page.Path, emit)
	default:
		return nil, fmt.Errorf("page %q: unknown paint type %T",
			page.Name, page.Paint)
	}

	return img, nil
}
