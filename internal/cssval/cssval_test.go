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

package cssval

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12pt", 12},
		{"1cm", 28.346456692913385},
		{"10mm", 28.346456692913385},
		{"1in", 72},
		{"1inch", 72},
		{"2pc", 24},
		{"96px", 72},
		{"12", 12},
		{"1,5cm", 1.5 * 72 / 2.54},
		{" 12pt ", 12},
		{"12PT", 12},
		{"none", 0},
		{"auto", 0},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := Size(c.in)
		require.NoError(t, err, "Size(%q)", c.in)
		assert.InDelta(t, c.want, got, 1e-9, "Size(%q)", c.in)
	}

	// percentages need a base size and only RelativeSize takes one
	for _, in := range []string{"", "abc", "12xx", "cm", "50%"} {
		_, err := Size(in)
		assert.Error(t, err, "Size(%q)", in)
	}
}

func TestRelativeSize(t *testing.T) {
	cases := []struct {
		in   string
		base float64
		want float64
	}{
		{"2em", 10, 20},
		{"3ex", 10, 15},
		{"150%", 10, 15},
		{"normal", 12, 12},
		{"inherit", 12, 12},
		{"12pt", 10, 12}, // absolute units still work
	}
	for _, c := range cases {
		got, err := RelativeSize(c.in, c.base)
		require.NoError(t, err, "RelativeSize(%q)", c.in)
		assert.InDelta(t, c.want, got, 1e-9, "RelativeSize(%q)", c.in)
	}
}

func TestBool(t *testing.T) {
	for _, in := range []string{"y", "yes", "1", "true", "TRUE", "Yes"} {
		assert.True(t, Bool(in), "Bool(%q)", in)
	}
	for _, in := range []string{"", "no", "0", "false", "maybe"} {
		assert.False(t, Bool(in), "Bool(%q)", in)
	}
}

func TestColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{0xff, 0, 0, 0xff}},
		{"#F00", color.RGBA{0xff, 0, 0, 0xff}},
		{"#123456", color.RGBA{0x12, 0x34, 0x56, 0xff}},
		{"rgb(153, 51, 153)", color.RGBA{153, 51, 153, 0xff}},
		{"red", color.RGBA{0xff, 0, 0, 0xff}},
		{"Green", color.RGBA{0, 0x80, 0, 0xff}},
		{"transparent", color.RGBA{}},
		{"none", color.RGBA{}},
	}
	for _, c := range cases {
		got, err := Color(c.in)
		require.NoError(t, err, "Color(%q)", c.in)
		assert.Equal(t, c.want, got, "Color(%q)", c.in)
	}

	for _, in := range []string{"", "#12", "#12345", "rgb(1,2)", "rgb(300,0,0)", "blurple"} {
		_, err := Color(in)
		assert.Error(t, err, "Color(%q)", in)
	}
}
