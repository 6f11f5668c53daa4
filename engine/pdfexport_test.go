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
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/visdiff/corpus"
)

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	for name, page := range corpus.Pages() {
		fname := filepath.Join(dir, name+".pdf")
		if err := WritePDF(page, fname); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		data, err := os.ReadFile(fname)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%s: not a PDF file", name)
		}
	}
}

func TestGhostscriptVersionProbe(t *testing.T) {
	gs := NewGhostscript("definitely-not-a-real-binary")
	if gs.Available() {
		t.Skip("improbable binary name exists on this system")
	}
	if v := gs.Version(); v != "unavailable" {
		t.Errorf("expected version \"unavailable\", got %q", v)
	}
}
