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

package corpus

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

var transformPages = []Page{
	{
		Name:   "scale_2x",
		Path:   rectangle(0, 0, 20, 20),
		Width:  128,
		Height: 128,
		Paint:  Fill{Rule: NonZero},
		CTM:    matrix.Scale(2, 2).Translate(24, 24),
	},
	{
		Name:   "scale_half",
		Path:   rectangle(0, 0, 80, 80),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
		CTM:    matrix.Scale(0.5, 0.5).Translate(12, 12),
	},
	{
		Name:   "rotate_45",
		Path:   rectangle(-10, -10, 10, 10),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
		CTM:    matrix.RotateDeg(45).Translate(32, 32),
	},
	{
		// rotation of an axis-aligned rectangle by a small angle is the
		// classic anti-aliasing stress case
		Name:   "rotate_5",
		Path:   rectangle(-20, -10, 20, 10),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
		CTM:    matrix.RotateDeg(5).Translate(32, 32),
	},
	{
		// anisotropic scaling: stroke width must scale with the CTM
		Name:   "scale_aniso_stroke",
		Path:   line(-20, 0, 20, 0),
		Width:  96,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
		CTM: matrix.Scale(2, 1).Translate(48, 32),
	},
	{
		Name:   "rotate_stroke",
		Path:   rectangle(-14, -14, 14, 14),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
		CTM: matrix.RotateDeg(30).Translate(32, 32),
	},
}
