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
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/internal/config"
	"seehuhn.de/go/visdiff/refstore"
)

// runWatch re-runs the comparison whenever the reference directory
// changes. Events are debounced: regeneration replaces the whole
// directory and fires many events in quick succession.
func runWatch(ctx context.Context, cfg *config.Config) error {
	eng, err := selectEngine(CLI.Watch.Engine, cfg)
	if err != nil {
		return err
	}
	store := refstore.New(cfg.ReferenceDir)
	pages := corpus.Pages()

	compare := func() {
		results, err := store.CompareAll(ctx, eng, pages, cfg.Criteria, cfg.DiffDir)
		if err != nil {
			slog.Error("comparison failed", "error", err)
			return
		}
		pass, fail := refstore.Summarize(results)
		for _, r := range results {
			if !r.Pass() {
				slog.Warn("failing page", "name", r.Name)
			}
		}
		slog.Info("comparison done", "pass", pass, "fail", fail)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent, so the atomic directory swap during
	// regeneration is seen even though the watched inode changes.
	if err := os.MkdirAll(cfg.ReferenceDir, 0o755); err != nil {
		return err
	}
	for _, dir := range []string{cfg.ReferenceDir, "."} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	compare()

	var timer *time.Timer
	trigger := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("change detected", "file", event.Name, "op", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(CLI.Watch.Debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		case <-trigger:
			// Re-add the directory in case it was replaced.
			watcher.Remove(cfg.ReferenceDir)
			if err := watcher.Add(cfg.ReferenceDir); err != nil {
				slog.Warn("cannot re-watch reference dir", "error", err)
			}
			compare()
		}
	}
}
