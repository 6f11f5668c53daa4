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

// Package refstore manages the directory of stored reference images.
//
// References are only ever replaced wholesale: Regenerate renders every
// corpus page into a staging directory next to the store and swaps the
// directories only after all pages rendered successfully. A manifest
// records which engine produced the images, so that comparisons against
// references from a different engine generation can be detected.
package refstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/engine"
)

// ManifestName is the manifest file stored alongside the images.
const ManifestName = "manifest.yaml"

// Manifest describes the provenance of a set of reference images.
type Manifest struct {
	Engine        string            `yaml:"engine"`
	EngineVersion string            `yaml:"engine_version"`
	Created       time.Time         `yaml:"created"`
	GoVersion     string            `yaml:"go_version"`
	OS            string            `yaml:"os"`
	Arch          string            `yaml:"arch"`
	Images        map[string]string `yaml:"images"` // name -> sha256 of the PNG
}

// Store is a directory of reference PNG images plus a manifest.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir. The directory need not exist yet;
// Regenerate creates it.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Regenerate renders every page with the given engine and atomically
// replaces the store's contents. On any rendering error the existing
// references are left untouched.
//
// Partial updates are deliberately not supported: a reference set mixing
// output from different renderer generations cannot be reasoned about.
func (s *Store) Regenerate(ctx context.Context, eng engine.Engine, pages map[string]corpus.Page) error {
	parent := filepath.Dir(s.Dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}

	// Stage into a sibling directory so the final rename stays on the
	// same filesystem.
	tmp, err := os.MkdirTemp(parent, filepath.Base(s.Dir)+".new-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	manifest := Manifest{
		Engine:        eng.Name(),
		EngineVersion: eng.Version(),
		Created:       time.Now().UTC(),
		GoVersion:     runtime.Version(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		Images:        make(map[string]string, len(pages)),
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := eng.Render(ctx, pages[name])
		if err != nil {
			return fmt.Errorf("rendering %q: %w", name, err)
		}

		fname := filepath.Join(tmp, name+".png")
		if err := visdiff.WritePNG(fname, img); err != nil {
			return fmt.Errorf("writing %q: %w", name, err)
		}

		sum, err := fileSHA256(fname)
		if err != nil {
			return err
		}
		manifest.Images[name] = sum
		slog.Debug("rendered reference", "name", name, "engine", eng.Name())
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(tmp, ManifestName), data, 0o644); err != nil {
		return err
	}

	// Swap: move the old store aside, move the staging dir into place,
	// then delete the old store.
	old := s.Dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	if _, err := os.Stat(s.Dir); err == nil {
		if err := os.Rename(s.Dir, old); err != nil {
			return err
		}
	}
	if err := os.Rename(tmp, s.Dir); err != nil {
		// Try to restore the previous references.
		if _, statErr := os.Stat(old); statErr == nil {
			os.Rename(old, s.Dir)
		}
		return err
	}
	os.RemoveAll(old)

	slog.Info("regenerated references",
		"dir", s.Dir,
		"count", len(names),
		"engine", eng.Name(),
		"engine_version", eng.Version())
	return nil
}

// Load reads the reference image with the given name.
func (s *Store) Load(name string) (*image.Gray, error) {
	return visdiff.LoadGray(filepath.Join(s.Dir, name+".png"))
}

// Names returns the names of all stored reference images, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".png"))
	}
	sort.Strings(names)
	return names, nil
}

// Manifest reads the store's manifest file.
func (s *Store) Manifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, ManifestName))
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestName, err)
	}
	return m, nil
}

// Verify checks the stored images against the manifest. It reports
// images whose checksum does not match, images listed in the manifest
// but missing from disk, and images on disk not listed in the manifest.
func (s *Store) Verify() ([]string, error) {
	m, err := s.Manifest()
	if err != nil {
		return nil, err
	}
	names, err := s.Names()
	if err != nil {
		return nil, err
	}

	var problems []string
	onDisk := make(map[string]bool, len(names))
	for _, name := range names {
		onDisk[name] = true
		want, ok := m.Images[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: not listed in manifest", name))
			continue
		}
		got, err := fileSHA256(filepath.Join(s.Dir, name+".png"))
		if err != nil {
			return nil, err
		}
		if got != want {
			problems = append(problems, fmt.Sprintf("%s: checksum mismatch", name))
		}
	}
	for name := range m.Images {
		if !onDisk[name] {
			problems = append(problems, fmt.Sprintf("%s: listed in manifest but missing", name))
		}
	}
	sort.Strings(problems)
	return problems, nil
}

func fileSHA256(fname string) (string, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
