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

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/refstore"
)

func testResults() []refstore.Result {
	return []refstore.Result{
		{
			Name:    "fill_rectangle",
			Metrics: visdiff.Metrics{Total: 4096, Identical: 4096},
		},
		{
			Name:     "stroke_corner_miter",
			Metrics:  visdiff.Metrics{Total: 4096, Identical: 3000, P95: 80, P99: 120, Max: 200},
			Failures: []string{"95th percentile diff is 80 (want <=63)"},
		},
		{
			Name: "dash_basic",
			Err:  errors.New("no stored reference"),
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	runID, err := store.Record(ctx, "soft", "1.2.0", testResults())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, runID, r.ID)
	assert.Equal(t, "soft", r.Engine)
	assert.Equal(t, "1.2.0", r.EngineVersion)
	assert.Equal(t, 1, r.Pass)
	assert.Equal(t, 2, r.Fail)
	assert.Equal(t, []string{"dash_basic", "stroke_corner_miter"}, r.Failures)
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	for range 5 {
		_, err := store.Record(ctx, "soft", "1.2.0", testResults())
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestFlakyPages(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	for range 3 {
		_, err := store.Record(ctx, "soft", "1.2.0", testResults())
		require.NoError(t, err)
	}

	counts, err := store.FlakyPages(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"stroke_corner_miter": 3,
		"dash_basic":          3,
	}, counts)
}

func TestOpenOnDisk(t *testing.T) {
	ctx := context.Background()
	fname := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(fname)
	require.NoError(t, err)
	_, err = store.Record(ctx, "ghostscript", "10.4.0", testResults())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopen and read back
	store, err = Open(fname)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ghostscript", runs[0].Engine)
}
