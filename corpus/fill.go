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
	"math"

	"seehuhn.de/go/geom/path"
)

var fillPages = []Page{
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 54, 54),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name:   "triangle",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name:   "triangle_evenodd",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: EvenOdd},
	},
	{
		// self-intersecting: the two rules disagree about the core
		Name:   "star",
		Path:   star(32, 32, 26),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name:   "star_evenodd",
		Path:   star(32, 32, 26),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: EvenOdd},
	},
	{
		Name:   "offgrid",
		Path:   rectangle(10.5, 10.25, 53.5, 53.75),
		Width:  64,
		Height: 64,
		Paint:  Fill{Rule: NonZero},
	},
	{
		Name:   "sliver",
		Path:   triangle(2, 2, 62, 30, 2, 3.5),
		Width:  64,
		Height: 32,
		Paint:  Fill{Rule: NonZero},
	},
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// star builds a five-pointed star (self-intersecting).
func star(cx, cy, r float64) *path.Data {
	pts := make([][2]float64, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = [2]float64{
			cx + r*math.Cos(angle),
			cy + r*math.Sin(angle),
		}
	}

	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	order := []int{0, 2, 4, 1, 3}
	p := (&path.Data{}).MoveTo(pt(pts[order[0]][0], pts[order[0]][1]))
	for _, i := range order[1:] {
		p = p.LineTo(pt(pts[i][0], pts[i][1]))
	}
	return p.Close()
}
