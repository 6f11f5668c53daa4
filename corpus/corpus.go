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

// Package corpus defines the catalogue of renderable pages used for
// visual regression testing. Each page describes a vector drawing small
// enough to inspect by eye; its rendered form is stored as a reference
// PNG and compared pixel-wise against fresh renders.
package corpus

import (
	"maps"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Page describes a single renderable test page.
type Page struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   *path.Data    // the geometry to render
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	Paint  Paint         // fill or stroke
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
}

// Paint is the painting operation to apply to the page geometry.
type Paint interface {
	isPaint()
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// Fill specifies a fill operation.
type Fill struct {
	Rule FillRule
}

func (Fill) isPaint() {}

// Stroke specifies a stroke operation.
type Stroke struct {
	Width      float64                // line width (>0)
	Cap        graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join       graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel
	MiterLimit float64                // miter limit
	Dash       []float64              // dash pattern (nil for solid)
	DashPhase  float64                // dash phase offset
}

func (Stroke) isPaint() {}

// All contains all pages, grouped by category.
// The category name is used as a prefix in reference image filenames.
var All = map[string][]Page{
	"fill":      fillPages,
	"stroke":    strokePages,
	"dash":      dashPages,
	"curve":     curvePages,
	"transform": transformPages,
	"subpath":   subpathPages,
}

// Names returns the full names of all pages ("category_name"),
// sorted lexicographically. These are the reference file basenames.
func Names() []string {
	var names []string
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, p := range All[category] {
			names = append(names, category+"_"+p.Name)
		}
	}
	slices.Sort(names)
	return names
}

// Pages returns all pages keyed by their full name.
func Pages() map[string]Page {
	out := make(map[string]Page)
	for category, pages := range All {
		for _, p := range pages {
			out[category+"_"+p.Name] = p
		}
	}
	return out
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
