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

package refstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/engine"
)

// tamperReference overwrites the stored reference for name with the
// render of another corpus page, making the store diverge from the
// engine's current output.
func tamperReference(t *testing.T, store *Store, name, otherPage string) {
	t.Helper()
	img, err := engine.Soft{}.Render(context.Background(), corpus.Pages()[otherPage])
	if err != nil {
		t.Fatal(err)
	}
	if err := visdiff.WritePNG(filepath.Join(store.Dir, name+".png"), img); err != nil {
		t.Fatal(err)
	}
}

func TestRegenerateGuardedFreshStore(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "reference"))
	pages := testPages()

	// a store that does not exist yet regenerates without any check
	err := store.RegenerateGuarded(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), false)
	if err != nil {
		t.Fatal(err)
	}
	names, err := store.Names()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != len(pages) {
		t.Errorf("expected %d references, got %d", len(pages), len(names))
	}
}

func TestRegenerateGuardedAbortsOnDivergence(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "reference"))
	pages := testPages()

	if err := store.Regenerate(ctx, engine.Soft{}, pages); err != nil {
		t.Fatal(err)
	}

	// matching output regenerates without complaint
	err := store.RegenerateGuarded(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), false)
	if err != nil {
		t.Fatal(err)
	}

	tamperReference(t, store, "fill_rectangle", "fill_star")
	before, err := os.ReadFile(filepath.Join(store.Dir, "fill_rectangle.png"))
	if err != nil {
		t.Fatal(err)
	}

	err = store.RegenerateGuarded(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), false)
	var diverged *DivergenceError
	if !errors.As(err, &diverged) {
		t.Fatalf("expected a DivergenceError, got %v", err)
	}
	if len(diverged.Names) != 1 || diverged.Names[0] != "fill_rectangle" {
		t.Errorf("expected fill_rectangle to diverge, got %v", diverged.Names)
	}

	// the store must be left untouched
	after, err := os.ReadFile(filepath.Join(store.Dir, "fill_rectangle.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("aborted regeneration modified the store")
	}
}

func TestRegenerateGuardedForce(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "reference"))
	pages := testPages()

	if err := store.Regenerate(ctx, engine.Soft{}, pages); err != nil {
		t.Fatal(err)
	}
	tamperReference(t, store, "fill_rectangle", "fill_star")

	err := store.RegenerateGuarded(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), true)
	if err != nil {
		t.Fatal(err)
	}

	results, err := store.CompareAll(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if !r.Pass() {
			t.Errorf("%s: still failing after forced regeneration", r.Name)
		}
	}
}

func TestRegenerateGuardedWithoutManifest(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "reference"))
	pages := testPages()

	if err := store.Regenerate(ctx, engine.Soft{}, pages); err != nil {
		t.Fatal(err)
	}
	tamperReference(t, store, "fill_rectangle", "fill_star")

	// deleting the manifest must not disable the check: the images are
	// still there and still diverge
	if err := os.Remove(filepath.Join(store.Dir, ManifestName)); err != nil {
		t.Fatal(err)
	}

	err := store.RegenerateGuarded(ctx, engine.Soft{}, pages, visdiff.DefaultCriteria(), false)
	var diverged *DivergenceError
	if !errors.As(err, &diverged) {
		t.Fatalf("expected a DivergenceError, got %v", err)
	}
}

// renamedEngine renders like the embedded engine but reports a
// different name.
type renamedEngine struct {
	engine.Engine
}

func (renamedEngine) Name() string { return "ghostscript" }

func TestCheckEngine(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "reference"))
	pages := testPages()

	if err := store.Regenerate(ctx, engine.Soft{}, pages); err != nil {
		t.Fatal(err)
	}

	if err := store.CheckEngine(engine.Soft{}, false); err != nil {
		t.Errorf("matching engine rejected: %v", err)
	}

	other := renamedEngine{engine.Soft{}}
	if err := store.CheckEngine(other, false); err == nil {
		t.Error("engine name mismatch not detected")
	}
	if err := store.CheckEngine(other, true); err != nil {
		t.Errorf("allowed mismatch rejected: %v", err)
	}

	// a store without a manifest cannot be checked and passes
	if err := os.Remove(filepath.Join(store.Dir, ManifestName)); err != nil {
		t.Fatal(err)
	}
	if err := store.CheckEngine(other, false); err != nil {
		t.Errorf("store without manifest rejected: %v", err)
	}
}
