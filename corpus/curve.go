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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

var curvePages = []Page{
	{
		Name: "cubic_fill",
		Path: (&path.Data{}).
			MoveTo(pt(8, 56)).
			CubeTo(pt(8, 8), pt(56, 8), pt(56, 56)).
			Close(),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name: "cubic_stroke",
		Path: (&path.Data{}).
			MoveTo(pt(8, 48)).
			CubeTo(pt(24, 8), pt(40, 88), pt(56, 16)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name: "quad_fill",
		Path: (&path.Data{}).
			MoveTo(pt(8, 56)).
			QuadTo(pt(32, -8), pt(56, 56)).
			Close(),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name: "s_curve",
		Path: (&path.Data{}).
			MoveTo(pt(8, 32)).
			CubeTo(pt(32, 0), pt(32, 64), pt(56, 32)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      3,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinRound,
			MiterLimit: 10,
		},
	},
	{
		// nearly flat curve: flattening must not produce visible kinks
		Name: "flat_cubic",
		Path: (&path.Data{}).
			MoveTo(pt(4, 31)).
			CubeTo(pt(24, 33), pt(40, 31), pt(60, 33)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      2,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
}
