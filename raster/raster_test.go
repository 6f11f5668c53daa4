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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1}
	r := NewRasterizer(clip)

	coverage := make([]float32, 10)
	emit := func(y, xMin int, cov []float32) {
		if y == 0 {
			for i, c := range cov {
				coverage[xMin+i] = c
			}
		}
	}

	r.FillNonZero(trianglePath, emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0 // 0.05, 0.15, ..., 0.95
		actual := coverage[x]
		if math.Abs(float64(actual-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, actual)
		}
	}
}

// TestPixelAlignedRectangle checks that a rectangle on integer
// coordinates gives full coverage inside and nothing outside, with
// both approaches.
func TestPixelAlignedRectangle(t *testing.T) {
	rectPath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 3}).
		LineTo(vec.Vec2{X: 14, Y: 3}).
		LineTo(vec.Vec2{X: 14, Y: 11}).
		LineTo(vec.Vec2{X: 2, Y: 11}).
		Close()

	thresholds := []struct {
		name      string
		threshold int
	}{
		{"A", 1 << 30},
		{"B", 0},
	}
	for _, tc := range thresholds {
		t.Run(tc.name, func(t *testing.T) {
			const w, h = 16, 16
			r := NewRasterizer(rect.Rect{URx: w, URy: h})
			r.smallPathThreshold = tc.threshold

			buf := make([]float32, w*h)
			r.FillNonZero(rectPath, func(y, xMin int, cov []float32) {
				for i, c := range cov {
					buf[y*w+xMin+i] = c
				}
			})

			const epsilon = 1e-6
			for y := range h {
				for x := range w {
					var expected float32
					if x >= 2 && x < 14 && y >= 3 && y < 11 {
						expected = 1
					}
					got := buf[y*w+x]
					if math.Abs(float64(got-expected)) > epsilon {
						t.Errorf("pixel (%d,%d): expected %g, got %g", x, y, expected, got)
					}
				}
			}
		})
	}
}

// TestEvenOddHole checks that two nested rectangles with the same
// winding direction leave a hole under the even-odd rule but not under
// the nonzero rule.
func TestEvenOddHole(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 14, Y: 2}).
		LineTo(vec.Vec2{X: 14, Y: 14}).
		LineTo(vec.Vec2{X: 2, Y: 14}).
		Close().
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 11, Y: 5}).
		LineTo(vec.Vec2{X: 11, Y: 11}).
		LineTo(vec.Vec2{X: 5, Y: 11}).
		Close()

	render := func(fill func(*path.Data, func(int, int, []float32))) []float32 {
		const w, h = 16, 16
		buf := make([]float32, w*h)
		fill(p, func(y, xMin int, cov []float32) {
			for i, c := range cov {
				buf[y*w+xMin+i] = c
			}
		})
		return buf
	}

	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	nonzero := render(r.FillNonZero)
	evenodd := render(r.FillEvenOdd)

	center := 8*16 + 8
	if nonzero[center] != 1 {
		t.Errorf("nonzero: center coverage %g, expected 1", nonzero[center])
	}
	if evenodd[center] != 0 {
		t.Errorf("evenodd: center coverage %g, expected 0", evenodd[center])
	}

	// the ring between the rectangles is filled either way
	ring := 3*16 + 8
	if nonzero[ring] != 1 || evenodd[ring] != 1 {
		t.Errorf("ring coverage: nonzero %g, evenodd %g, expected 1",
			nonzero[ring], evenodd[ring])
	}
}

// TestRasterizerReset checks that a reused rasterizer produces the
// same output as a fresh one.
func TestRasterizerReset(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 9, Y: 2}).
		LineTo(vec.Vec2{X: 5, Y: 9}).
		Close()

	render := func(r *Rasterizer) []float32 {
		const w, h = 12, 12
		buf := make([]float32, w*h)
		r.FillNonZero(p, func(y, xMin int, cov []float32) {
			for i, c := range cov {
				buf[y*w+xMin+i] = c
			}
		})
		return buf
	}

	clip := rect.Rect{URx: 12, URy: 12}
	fresh := render(NewRasterizer(clip))

	reused := NewRasterizer(rect.Rect{URx: 40, URy: 40})
	render(reused) // populate internal buffers
	reused.Reset(clip)
	second := render(reused)

	for i := range fresh {
		if fresh[i] != second[i] {
			t.Fatalf("pixel %d: fresh %g, reused %g", i, fresh[i], second[i])
		}
	}
}
