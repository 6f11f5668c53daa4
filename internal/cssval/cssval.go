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

// Package cssval parses CSS-style value strings: lengths with units,
// colors, and booleans. Lengths are converted to points (1/72 inch),
// the unit used throughout the corpus and the PDF export.
package cssval

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Conversion factors to points.
const (
	inch = 72.0
	pica = 12.0
	cm   = inch / 2.54
	mm   = cm / 10.0
	px   = inch / 96.0 // CSS reference pixel at 96 DPI
)

// Size converts a CSS length string to points. Supported units are
// pt, pc, in, cm, mm and px; a bare number is taken as points.
// "none", "0" and "auto" give zero. A decimal comma is accepted in
// place of a decimal point.
func Size(value string) (float64, error) {
	v := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), ",", ".")
	if v == "" {
		return 0, fmt.Errorf("empty size")
	}
	switch v {
	case "none", "auto", "0":
		return 0, nil
	}

	for _, u := range []struct {
		suffix string
		factor float64
	}{
		{"pt", 1},
		{"pc", pica},
		{"inch", inch},
		{"in", inch},
		{"cm", cm},
		{"mm", mm},
		{"px", px},
	} {
		if strings.HasSuffix(v, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(v, u.suffix))
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid size %q", value)
			}
			return f * u.factor, nil
		}
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	return f, nil
}

// RelativeSize converts a CSS length string to points, resolving
// relative units against base: em (1em = base), ex (1ex = base/2) and
// percentages. All absolute units of [Size] are accepted as well.
func RelativeSize(value string, base float64) (float64, error) {
	v := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), ",", ".")
	switch {
	case strings.HasSuffix(v, "em"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "em")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", value)
		}
		return f * base, nil
	case strings.HasSuffix(v, "ex"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "ex")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", value)
		}
		return f * base / 2, nil
	case strings.HasSuffix(v, "%"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", value)
		}
		return base * f / 100, nil
	case v == "normal" || v == "inherit":
		return base, nil
	}
	return Size(value)
}

// Bool interprets a string as a boolean the permissive way:
// "y", "yes", "1" and "true" (any case) are true, everything else
// is false.
func Bool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "1", "true":
		return true
	}
	return false
}

var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"fuchsia": {0xff, 0x00, 0xff, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"aqua":    {0x00, 0xff, 0xff, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
}

// Color parses a CSS color: "#rgb", "#rrggbb", "rgb(r, g, b)" with
// 0-255 components, or a basic color name. "transparent" and "none"
// give a fully transparent color.
func Color(value string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "transparent" || v == "none" {
		return color.RGBA{}, nil
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", value)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", value)
		}
		return color.RGBA{
			R: uint8(n >> 16),
			G: uint8(n >> 8),
			B: uint8(n),
			A: 0xff,
		}, nil
	}

	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", value)
		}
		var ch [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return color.RGBA{}, fmt.Errorf("invalid color %q", value)
			}
			ch[i] = uint8(n)
		}
		return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
	}

	return color.RGBA{}, fmt.Errorf("unknown color %q", value)
}
