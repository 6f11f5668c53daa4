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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "testdata/reference", cfg.ReferenceDir)
	assert.Equal(t, "soft", cfg.Engine)
	assert.Len(t, cfg.Matrix.Environments, 4)
}

func TestLoadFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "visdiff.yaml")
	content := `
reference_dir: refs
diff_dir: out/diff
engine: ghostscript
criteria:
  p80: 0
  p95: 32
  p99: 64
`
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))

	cfg, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, "refs", cfg.ReferenceDir)
	assert.Equal(t, "out/diff", cfg.DiffDir)
	assert.Equal(t, "ghostscript", cfg.Engine)
	assert.Equal(t, 32, cfg.Criteria.P95)
	// unspecified sections keep their defaults
	assert.Len(t, cfg.Matrix.Environments, 4)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("VISDIFF_TEST_DIR", "/tmp/refs")

	fname := filepath.Join(t.TempDir(), "visdiff.yaml")
	require.NoError(t, os.WriteFile(fname,
		[]byte("reference_dir: ${VISDIFF_TEST_DIR}\n"), 0o644))

	cfg, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/refs", cfg.ReferenceDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateCriteria(t *testing.T) {
	cfg := Default()
	cfg.Criteria.P95 = 300
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Criteria.P80 = 100
	cfg.Criteria.P95 = 50
	assert.Error(t, cfg.Validate(), "criteria must be non-decreasing")

	cfg = Default()
	cfg.ReferenceDir = ""
	assert.Error(t, cfg.Validate())
}

func TestInit(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "visdiff.yaml")
	require.NoError(t, Init(fname, false))

	cfg, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Error(t, Init(fname, false), "refuses to overwrite")
	assert.NoError(t, Init(fname, true))
}

func TestMatrixValidate(t *testing.T) {
	m := DefaultMatrix()
	require.NoError(t, m.Validate())

	dup := DefaultMatrix()
	dup.Environments = append(dup.Environments, dup.Environments[0])
	assert.Error(t, dup.Validate())

	bad := DefaultMatrix()
	bad.Environments[0].Go = "not-a-version"
	assert.Error(t, bad.Validate())

	empty := DefaultMatrix()
	empty.Environments[0].EngineMin = "11.0"
	empty.Environments[0].EngineMax = "10.0"
	assert.Error(t, empty.Validate())
}

func TestDefaultMatrixCoversModule(t *testing.T) {
	// every default environment must be able to build this module
	data, err := os.ReadFile("../../go.mod")
	require.NoError(t, err)
	mf, err := modfile.Parse("go.mod", data, nil)
	require.NoError(t, err)
	require.NotNil(t, mf.Go)

	need := canon(mf.Go.Version)
	for _, env := range DefaultMatrix().Environments {
		assert.GreaterOrEqual(t, semver.Compare(canon(env.Go), need), 0,
			"environment %s uses Go %s, module needs %s", env.Name, env.Go, mf.Go.Version)
	}
}

func TestEnvironmentAccepts(t *testing.T) {
	env := Environment{EngineMin: "10.0", EngineMax: "11.0"}
	assert.True(t, env.Accepts("10.0"))
	assert.True(t, env.Accepts("10.05.1"))
	assert.False(t, env.Accepts("9.56"))
	assert.False(t, env.Accepts("11.0"))
	assert.False(t, env.Accepts("garbage"))

	open := Environment{}
	assert.True(t, open.Accepts("anything"))
}
