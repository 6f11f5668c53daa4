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

var subpathPages = []Page{
	{
		// outer and inner rectangle wound in opposite directions:
		// nonzero rule leaves a hole
		Name: "frame",
		Path: (&path.Data{}).
			MoveTo(pt(8, 8)).
			LineTo(pt(56, 8)).
			LineTo(pt(56, 56)).
			LineTo(pt(8, 56)).
			Close().
			MoveTo(pt(20, 20)).
			LineTo(pt(20, 44)).
			LineTo(pt(44, 44)).
			LineTo(pt(44, 20)).
			Close(),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		// same winding for both rectangles: even-odd still leaves a hole
		Name: "frame_evenodd",
		Path: (&path.Data{}).
			MoveTo(pt(8, 8)).
			LineTo(pt(56, 8)).
			LineTo(pt(56, 56)).
			LineTo(pt(8, 56)).
			Close().
			MoveTo(pt(20, 20)).
			LineTo(pt(44, 20)).
			LineTo(pt(44, 44)).
			LineTo(pt(20, 44)).
			Close(),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: EvenOdd},
	},
	{
		Name: "two_lines",
		Path: (&path.Data{}).
			MoveTo(pt(8, 20)).
			LineTo(pt(56, 20)).
			MoveTo(pt(8, 44)).
			LineTo(pt(56, 44)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      5,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		// lone MoveTo with round caps paints a dot; with butt caps, nothing
		Name: "dot",
		Path: (&path.Data{}).
			MoveTo(pt(16, 32)).
			Close().
			MoveTo(pt(32, 32)).
			LineTo(pt(56, 32)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      8,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name: "open_and_closed",
		Path: (&path.Data{}).
			MoveTo(pt(10, 10)).
			LineTo(pt(30, 10)).
			LineTo(pt(30, 30)).
			Close().
			MoveTo(pt(38, 38)).
			LineTo(pt(56, 38)).
			LineTo(pt(56, 56)),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
}
