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

var strokePages = []Page{
	{
		Name:   "line_butt",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      8,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "line_round",
		Path:   line(10, 32, 54, 32),
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
		Name:   "line_square",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      8,
			Cap:        graphics.LineCapSquare,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "diagonal",
		Path:   line(8, 56, 56, 8),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      5,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "corner_miter",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "corner_round",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinRound,
			MiterLimit: 10,
		},
	},
	{
		Name:   "corner_bevel",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinBevel,
			MiterLimit: 10,
		},
	},
	{
		// sharp spike exceeds the miter limit and must fall back to bevel
		Name:   "miter_limit",
		Path:   corner(10, 50, 32, 12, 36, 50),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 2,
		},
	},
	{
		Name:   "closed_rect",
		Path:   rectangle(14, 14, 50, 50),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "hairline",
		Path:   line(4, 10, 60, 54),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      1,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
}

// line builds a single line segment.
func line(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2))
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}
