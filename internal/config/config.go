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

// Package config loads the visdiff.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/visdiff"
)

// DefaultFile is the configuration file name looked up in the current
// directory when no --config flag is given.
const DefaultFile = "visdiff.yaml"

// Config is the project configuration.
type Config struct {
	// ReferenceDir is the directory holding the stored reference images.
	ReferenceDir string `yaml:"reference_dir"`

	// DiffDir is where 3-panel diff images for failing comparisons are
	// written.
	DiffDir string `yaml:"diff_dir"`

	// Engine selects the rendering engine ("soft" or "ghostscript").
	Engine string `yaml:"engine,omitempty"`

	// HistoryDB is the SQLite file recording comparison runs. Empty
	// disables run history.
	HistoryDB string `yaml:"history_db,omitempty"`

	// Criteria are the comparison acceptance thresholds.
	Criteria visdiff.Criteria `yaml:"criteria"`

	// Matrix describes the supported build environments.
	Matrix Matrix `yaml:"matrix,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ReferenceDir: "testdata/reference",
		DiffDir:      "testdata/diff",
		Engine:       "soft",
		Criteria:     visdiff.DefaultCriteria(),
		Matrix:       DefaultMatrix(),
	}
}

// Load reads the configuration from the given file. Environment
// variables referenced as $NAME or ${NAME} in the file are expanded;
// a .env file in the current directory is loaded first if present.
//
// Missing fields fall back to the defaults. If fname is the default
// file name and the file does not exist, the defaults are returned.
func Load(fname string) (*Config, error) {
	// Ignore a missing .env file; only the variables matter.
	godotenv.Load()

	data, err := os.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) && fname == DefaultFile {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.ReferenceDir == "" {
		return fmt.Errorf("reference_dir must not be empty")
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"p80", c.Criteria.P80},
		{"p95", c.Criteria.P95},
		{"p99", c.Criteria.P99},
	} {
		if f.value < 0 || f.value > 255 {
			return fmt.Errorf("criteria.%s: %d out of range [0, 255]", f.name, f.value)
		}
	}
	if c.Criteria.P80 > c.Criteria.P95 || c.Criteria.P95 > c.Criteria.P99 {
		return fmt.Errorf("criteria must be non-decreasing: p80 <= p95 <= p99")
	}
	return c.Matrix.Validate()
}

// Init writes an example configuration file.
func Init(fname string, force bool) error {
	if _, err := os.Stat(fname); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", fname)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0o644)
}
