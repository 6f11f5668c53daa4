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

// Package engine provides the rendering engines used to produce
// reference and candidate images. The harness treats engines as black
// boxes behind the Engine interface; their internals are out of scope
// for the comparison logic.
package engine

import (
	"context"
	"fmt"
	"image"

	"seehuhn.de/go/visdiff/corpus"
)

// Engine renders corpus pages to grayscale coverage images.
// Pixel value 0 means no coverage, 255 means full coverage.
type Engine interface {
	// Name identifies the engine in manifests and run history.
	Name() string

	// Version is the engine version recorded alongside reference
	// images, so that stale references can be detected.
	Version() string

	// Render draws the page at 1 pixel per unit. The returned image
	// has the page's Width and Height and origin (0,0).
	Render(ctx context.Context, page corpus.Page) (*image.Gray, error)
}

// New returns the engine with the given name. An empty name selects
// the built-in engine.
func New(name string) (Engine, error) {
	switch name {
	case "", "soft":
		return Soft{}, nil
	case "ghostscript":
		return NewGhostscript(""), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
