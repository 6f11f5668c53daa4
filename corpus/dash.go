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

import "seehuhn.de/go/pdf/graphics"

var dashPages = []Page{
	{
		Name:   "basic",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{8, 4},
		},
	},
	{
		Name:   "phase",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{8, 4},
			DashPhase:  6,
		},
	},
	{
		// odd-length pattern repeats doubled: 5 on, 3 off, 5 off, 3 on, ...
		Name:   "odd_pattern",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{5, 3, 5},
		},
	},
	{
		Name:   "round_dots",
		Path:   line(8, 32, 56, 32),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      6,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{0, 10},
		},
	},
	{
		// dash pattern wraps around the closing corner of the rectangle
		Name:   "closed_rect",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Paint: Stroke{
			Width:      4,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{10, 5},
		},
	},
}
