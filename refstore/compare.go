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
	"sort"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/engine"
)

// Result is the outcome of comparing one page's fresh render against
// its stored reference.
type Result struct {
	Name     string
	Metrics  visdiff.Metrics
	Failures []string // violated criteria; nil means pass
	Err      error    // rendering or I/O error, if any
}

// Pass reports whether the comparison succeeded.
func (r Result) Pass() bool {
	return r.Err == nil && len(r.Failures) == 0
}

// CompareAll renders every page with the given engine and compares the
// result against the stored reference. When diffDir is non-empty, a
// 3-panel visualisation is written there for each failing page.
//
// Pages without a stored reference, and stored references without a
// page, are reported as failures: the reference set is regenerated
// wholesale, so any mismatch means the store is stale.
func (s *Store) CompareAll(ctx context.Context, eng engine.Engine, pages map[string]corpus.Page, criteria visdiff.Criteria, diffDir string) ([]Result, error) {
	stored, err := s.Names()
	if err != nil {
		return nil, fmt.Errorf("reading reference store %s: %w", s.Dir, err)
	}
	storedSet := make(map[string]bool, len(stored))
	for _, name := range stored {
		storedSet[name] = true
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []Result
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.compareOne(ctx, eng, name, pages[name], criteria, diffDir))
		delete(storedSet, name)
	}

	// References with no corresponding page.
	for name := range storedSet {
		results = append(results, Result{
			Name: name,
			Err:  fmt.Errorf("stored reference has no corpus page"),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (s *Store) compareOne(ctx context.Context, eng engine.Engine, name string, page corpus.Page, criteria visdiff.Criteria, diffDir string) Result {
	res := Result{Name: name}

	ref, err := s.Load(name)
	if err != nil {
		if os.IsNotExist(err) {
			res.Err = fmt.Errorf("no stored reference (regenerate the reference set)")
		} else {
			res.Err = err
		}
		return res
	}

	got, err := eng.Render(ctx, page)
	if err != nil {
		res.Err = err
		return res
	}

	m, err := visdiff.Compare(ref, got)
	if err != nil {
		res.Err = err
		if diffDir != "" {
			if werr := visdiff.WriteDiffImage(diffDir, name, ref, got); werr != nil {
				slog.Warn("cannot write diff image", "name", name, "error", werr)
			}
		}
		return res
	}
	res.Metrics = m
	res.Failures = m.Check(criteria)

	if len(res.Failures) > 0 {
		slog.Debug("comparison failed", "name", name, "p80", m.P80, "p95", m.P95, "p99", m.P99, "max", m.Max)
		if diffDir != "" {
			if werr := visdiff.WriteDiffImage(diffDir, name, ref, got); werr != nil {
				slog.Warn("cannot write diff image", "name", name, "error", werr)
			}
		}
	}
	return res
}

// Summarize counts passing and failing results.
func Summarize(results []Result) (pass, fail int) {
	for _, r := range results {
		if r.Pass() {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}
