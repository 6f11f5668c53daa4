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

package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
)

// Ghostscript renders pages by writing them as PDF files and
// rasterizing those with the external gs binary.
type Ghostscript struct {
	exe string

	versionOnce sync.Once
	version     string
}

// NewGhostscript returns a Ghostscript engine using the given
// executable. An empty string selects "gs" from the search path.
func NewGhostscript(exe string) *Ghostscript {
	if exe == "" {
		exe = "gs"
	}
	return &Ghostscript{exe: exe}
}

// Name implements the [Engine] interface.
func (g *Ghostscript) Name() string { return "ghostscript" }

// Version implements the [Engine] interface. It probes the gs binary
// once; if the binary is missing the version is "unavailable".
func (g *Ghostscript) Version() string {
	g.versionOnce.Do(func() {
		out, err := exec.Command(g.exe, "--version").Output()
		if err != nil {
			g.version = "unavailable"
			return
		}
		g.version = strings.TrimSpace(string(out))
	})
	return g.version
}

// Available reports whether the gs binary can be found.
func (g *Ghostscript) Available() bool {
	_, err := exec.LookPath(g.exe)
	return err == nil
}

// Render implements the [Engine] interface.
//
// The page is written as a PDF to a temporary directory and rendered
// with -sDEVICE=pnggray at 72 DPI (1 point = 1 pixel), with
// -dGraphicsAlphaBits=4 for 4x supersampled anti-aliasing.
func (g *Ghostscript) Render(ctx context.Context, page corpus.Page) (*image.Gray, error) {
	dir, err := os.MkdirTemp("", "visdiff-gs-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, page.Name+".pdf")
	pngPath := filepath.Join(dir, page.Name+".png")

	if err := WritePDF(page, pdfPath); err != nil {
		return nil, fmt.Errorf("page %q: writing PDF: %w", page.Name, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.exe, "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("page %q: gs: %w: %s", page.Name, err, msg)
		}
		return nil, fmt.Errorf("page %q: gs: %w", page.Name, err)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("page %q: decoding gs output: %w", page.Name, err)
	}
	return visdiff.ToGray(img), nil
}
