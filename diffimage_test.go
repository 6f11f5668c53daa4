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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/visdiff/internal/cssval"
)

func TestDiffImagePanels(t *testing.T) {
	ref := grayImage(4, 4, 200)
	got := grayImage(4, 4, 200)
	got.Pix[1*4+1] = 0   // under-coverage at (1,1)
	got.Pix[2*4+2] = 255 // over-coverage at (2,2)

	img := DiffImage(ref, got)

	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 4 {
		t.Fatalf("expected 12x4 panel image, got %dx%d", b.Dx(), b.Dy())
	}

	// left panel shows the actual image
	if c := img.RGBAAt(1, 1); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("left panel (1,1): expected black, got %v", c)
	}

	// middle panel: under-coverage is green, over-coverage red
	if c := img.RGBAAt(4+1, 1); c.G != 200 || c.R != 0 {
		t.Errorf("diff panel (1,1): expected green 200, got %v", c)
	}
	if c := img.RGBAAt(4+2, 2); c.R != 55 || c.G != 0 {
		t.Errorf("diff panel (2,2): expected red 55, got %v", c)
	}
	if c := img.RGBAAt(4, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("diff panel (0,0): expected black, got %v", c)
	}

	// right panel shows the reference
	if c := img.RGBAAt(8+1, 1); c.R != 200 {
		t.Errorf("right panel (1,1): expected gray 200, got %v", c)
	}
}

func TestDiffImageDefaultPalette(t *testing.T) {
	ref := grayImage(4, 4, 200)
	got := grayImage(4, 4, 200)
	got.Pix[1*4+1] = 0
	got.Pix[2*4+2] = 255

	// the default palette must be what the color names "red" and
	// "lime" resolve to, so that the CLI defaults mean the same thing
	over, err := cssval.Color("red")
	if err != nil {
		t.Fatal(err)
	}
	under, err := cssval.Color("lime")
	if err != nil {
		t.Fatal(err)
	}

	want := DiffImageColors(ref, got, over, under)
	img := DiffImage(ref, got)
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Error("DiffImage does not match the red/lime palette")
	}
}

func TestDiffImageResamples(t *testing.T) {
	ref := grayImage(8, 8, 100)
	got := grayImage(4, 4, 100)

	img := DiffImage(ref, got)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 8 {
		t.Fatalf("expected 24x8 panel image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestWriteDiffImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diff")
	ref := grayImage(4, 4, 255)
	got := grayImage(4, 4, 0)

	if err := WriteDiffImage(dir, "fill_rectangle", ref, got); err != nil {
		t.Fatal(err)
	}

	fname := filepath.Join(dir, "fill_rectangle.png")
	if _, err := os.Stat(fname); err != nil {
		t.Fatalf("diff image not written: %v", err)
	}

	loaded, err := LoadGray(fname)
	if err != nil {
		t.Fatal(err)
	}
	if b := loaded.Bounds(); b.Dx() != 12 || b.Dy() != 4 {
		t.Errorf("expected 12x4 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPNGRoundTrip(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "img.png")

	img := grayImage(6, 3, 0)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	if err := WritePNG(fname, img); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadGray(fname)
	if err != nil {
		t.Fatal(err)
	}
	if b := loaded.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("expected 6x3 image, got %dx%d", b.Dx(), b.Dy())
	}
	for i := range img.Pix {
		if loaded.Pix[i] != img.Pix[i] {
			t.Fatalf("pixel %d: expected %d, got %d", i, img.Pix[i], loaded.Pix[i])
		}
	}
}
