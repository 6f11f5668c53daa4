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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"seehuhn.de/go/visdiff/engine"
	"seehuhn.de/go/visdiff/internal/config"
	"seehuhn.de/go/visdiff/internal/history"
	"seehuhn.de/go/visdiff/refstore"
)

func recordRun(ctx context.Context, cfg *config.Config, eng engine.Engine, results []refstore.Result) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Record(ctx, eng.Name(), eng.Version(), results)
	if err != nil {
		return err
	}
	slog.Debug("recorded run", "id", runID)
	return nil
}

func runHistory(ctx context.Context, cfg *config.Config) error {
	if cfg.HistoryDB == "" {
		return fmt.Errorf("no history_db configured in %s", CLI.Config)
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if CLI.History.Flaky {
		counts, err := store.FlakyPages(ctx, CLI.History.Limit)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Printf("no failures in the last %d runs\n", CLI.History.Limit)
			return nil
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if counts[names[i]] != counts[names[j]] {
				return counts[names[i]] > counts[names[j]]
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Printf("%4d  %s\n", counts[name], name)
		}
		return nil
	}

	runs, err := store.Recent(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		status := "ok"
		if r.Fail > 0 {
			status = "FAIL " + strings.Join(r.Failures, ",")
		}
		fmt.Printf("%s  %s %s/%s  %d passed, %d failed  %s\n",
			r.Started.Format("2006-01-02 15:04:05"),
			r.ID[:8], r.Engine, r.EngineVersion, r.Pass, r.Fail, status)
	}
	return nil
}
