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

// Package history records comparison runs in a SQLite database, so
// that flaky pages and slow drifts can be spotted across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"seehuhn.de/go/visdiff/refstore"
)

// Store is a run-history database. Use ":memory:" as the path for an
// in-memory database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Run summarises one recorded comparison run.
type Run struct {
	ID            string
	Started       time.Time
	Engine        string
	EngineVersion string
	Pass          int
	Fail          int
	Failures      []string // names of failing pages
}

// Open opens (and if necessary initializes) the history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		engine TEXT NOT NULL,
		engine_version TEXT NOT NULL,
		pass INTEGER NOT NULL,
		fail INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		name TEXT NOT NULL,
		pass INTEGER NOT NULL,
		p80 INTEGER NOT NULL,
		p95 INTEGER NOT NULL,
		p99 INTEGER NOT NULL,
		max INTEGER NOT NULL,
		detail TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_name ON results(name);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a comparison run and returns its ID.
func (s *Store) Record(ctx context.Context, engine, engineVersion string, results []refstore.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	pass, fail := refstore.Summarize(results)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, started, engine, engine_version, pass, fail) VALUES (?, ?, ?, ?, ?, ?)",
		runID, time.Now().Unix(), engine, engineVersion, pass, fail)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range results {
		detail := strings.Join(r.Failures, "; ")
		if r.Err != nil {
			detail = r.Err.Error()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO results (run_id, name, pass, p80, p95, p99, max, detail) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			runID, r.Name, boolInt(r.Pass()),
			r.Metrics.P80, r.Metrics.P95, r.Metrics.P99, r.Metrics.Max, detail)
		if err != nil {
			return "", fmt.Errorf("insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started, engine, engine_version, pass, fail FROM runs ORDER BY started DESC, id LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started int64
		if err := rows.Scan(&r.ID, &started, &r.Engine, &r.EngineVersion, &r.Pass, &r.Fail); err != nil {
			return nil, err
		}
		r.Started = time.Unix(started, 0).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].Fail == 0 {
			continue
		}
		names, err := s.failureNames(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Failures = names
	}
	return runs, nil
}

// FlakyPages returns, per page, how often it failed in the most recent
// runs. Pages that never failed are omitted.
func (s *Store) FlakyPages(ctx context.Context, lastRuns int) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*) FROM results
		WHERE pass = 0 AND run_id IN (
			SELECT id FROM runs ORDER BY started DESC, id LIMIT ?
		)
		GROUP BY name`, lastRuns)
	if err != nil {
		return nil, fmt.Errorf("query flaky pages: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

func (s *Store) failureNames(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM results WHERE run_id = ? AND pass = 0 ORDER BY name", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
