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

package visdiff

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// DiffImage creates a 3-panel visualisation: actual output (left),
// signed difference (middle), reference (right). In the difference
// panel green marks under-coverage (reference brighter than actual),
// red marks over-coverage, black marks agreement.
//
// If the two images differ in size, the actual image is resampled to
// the reference's dimensions first. This only happens for ad-hoc
// diffing of foreign images; regression comparisons reject size
// mismatches before reaching here.
func DiffImage(ref, got *image.Gray) *image.RGBA {
	return DiffImageColors(ref, got,
		color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255})
}

// DiffImageColors is DiffImage with a custom palette: over marks
// over-coverage, under marks under-coverage. Each color is scaled by
// the difference magnitude.
func DiffImageColors(ref, got *image.Gray, over, under color.RGBA) *image.RGBA {
	rb := ref.Bounds()
	w, h := rb.Dx(), rb.Dy()

	gb := got.Bounds()
	if gb.Dx() != w || gb.Dy() != h {
		scaled := image.NewGray(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), got, gb, draw.Src, nil)
		got = scaled
		gb = got.Bounds()
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			e := ref.GrayAt(rb.Min.X+x, rb.Min.Y+y).Y
			a := got.GrayAt(gb.Min.X+x, gb.Min.Y+y).Y

			// Left panel: actual output (grayscale)
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			// Middle panel: diff (under/over colors scaled by magnitude)
			diff := int(e) - int(a)
			diffColor := color.RGBA{A: 255}
			if diff > 0 {
				diffColor = scaleColor(under, diff)
			} else if diff < 0 {
				diffColor = scaleColor(over, -diff)
			}
			img.Set(x+w, y, diffColor)

			// Right panel: reference (grayscale)
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}
	return img
}

func scaleColor(c color.RGBA, magnitude int) color.RGBA {
	return color.RGBA{
		R: uint8(int(c.R) * magnitude / 255),
		G: uint8(int(c.G) * magnitude / 255),
		B: uint8(int(c.B) * magnitude / 255),
		A: 255,
	}
}

// WriteDiffImage writes the 3-panel diff visualisation for a failing
// case to dir/name.png, creating dir if necessary.
func WriteDiffImage(dir, name string, ref, got *image.Gray) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return WritePNG(filepath.Join(dir, name+".png"), DiffImage(ref, got))
}

// LoadGray reads a PNG file and converts it to 8-bit grayscale.
func LoadGray(fname string) (gray *image.Gray, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ToGray converts an image to 8-bit grayscale with origin (0,0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray.SetGray(x, y, c)
		}
	}
	return gray
}

// WritePNG writes an image to the named file as PNG.
func WritePNG(fname string, img image.Image) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
