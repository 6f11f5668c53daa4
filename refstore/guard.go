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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/engine"
)

// DivergenceError reports pages whose current render no longer matches
// the stored references.
type DivergenceError struct {
	Names []string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%d pages diverge from the current references: %s",
		len(e.Names), strings.Join(e.Names, ", "))
}

// RegenerateGuarded replaces the reference set like [Store.Regenerate],
// but first compares the current output against the existing references.
// If any page exceeds the criteria it returns a [*DivergenceError] and
// leaves the store untouched: replacing diverging references silently
// would hide regressions. force skips the check.
//
// The check applies whenever the store holds any images, manifest or
// not; only a genuinely empty store regenerates unconditionally.
func (s *Store) RegenerateGuarded(ctx context.Context, eng engine.Engine, pages map[string]corpus.Page, criteria visdiff.Criteria, force bool) error {
	if !force {
		names, err := s.Names()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if len(names) > 0 {
			results, err := s.CompareAll(ctx, eng, pages, criteria, "")
			if err != nil {
				return err
			}
			var diverged []string
			for _, r := range results {
				if !r.Pass() {
					diverged = append(diverged, r.Name)
				}
			}
			if len(diverged) > 0 {
				return &DivergenceError{Names: diverged}
			}
		}
	}
	return s.Regenerate(ctx, eng, pages)
}

// CheckEngine verifies that the stored references were produced by the
// given engine. Comparing against references from a different engine
// measures the difference between engines, not regressions, so a name
// mismatch is an error unless allowMismatch is set. A differing engine
// version only logs a warning. A store without a manifest passes.
func (s *Store) CheckEngine(eng engine.Engine, allowMismatch bool) error {
	m, err := s.Manifest()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if m.Engine != eng.Name() {
		if !allowMismatch {
			return fmt.Errorf("references were generated by engine %s, not %s",
				m.Engine, eng.Name())
		}
		slog.Warn("engine differs from the references",
			"references", m.Engine, "current", eng.Name())
		return nil
	}
	if m.EngineVersion != eng.Version() {
		slog.Warn("engine version differs from the references",
			"references", m.EngineVersion, "current", eng.Version())
	}
	return nil
}
