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
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Matrix describes the set of environments the test suite is expected
// to pass in. CI runs the suite once per environment; the Extras are
// installed in every environment.
type Matrix struct {
	Environments []Environment `yaml:"environments"`

	// Extras are auxiliary tools needed in every environment, as
	// "name" or "name version-constraint" entries.
	Extras []string `yaml:"extras,omitempty"`
}

// Environment is one cell of the build matrix.
type Environment struct {
	// Name identifies the environment, e.g. "go1.22".
	Name string `yaml:"name"`

	// Go is the Go release series this environment runs on ("1.24").
	// The running toolchain matches on major.minor.
	Go string `yaml:"go"`

	// Engine names the rendering engine exercised in this environment.
	Engine string `yaml:"engine"`

	// EngineMin and EngineMax bound the accepted engine version:
	// EngineMin <= version < EngineMax. Either may be empty.
	EngineMin string `yaml:"engine_min,omitempty"`
	EngineMax string `yaml:"engine_max,omitempty"`
}

// DefaultMatrix returns the supported environment matrix: the four most
// recent Go releases, with Ghostscript pinned to the 10.x series.
func DefaultMatrix() Matrix {
	gsEnv := func(name, goVersion string) Environment {
		return Environment{
			Name:      name,
			Go:        goVersion,
			Engine:    "ghostscript",
			EngineMin: "10.0",
			EngineMax: "11.0",
		}
	}
	return Matrix{
		Environments: []Environment{
			gsEnv("go1.24", "1.24"),
			gsEnv("go1.25", "1.25"),
			gsEnv("go1.26", "1.26"),
			gsEnv("go1.27", "1.27"),
		},
		Extras: []string{
			"ghostscript >=10.0 <11.0",
			"git",
		},
	}
}

// Validate checks the matrix for consistency: unique environment
// names, parseable versions, and non-empty version ranges.
func (m Matrix) Validate() error {
	seen := make(map[string]bool)
	for _, env := range m.Environments {
		if env.Name == "" {
			return fmt.Errorf("matrix: environment without name")
		}
		if seen[env.Name] {
			return fmt.Errorf("matrix: duplicate environment %q", env.Name)
		}
		seen[env.Name] = true

		if !semver.IsValid(canon(env.Go)) {
			return fmt.Errorf("matrix: environment %q: invalid Go version %q", env.Name, env.Go)
		}
		for _, v := range []string{env.EngineMin, env.EngineMax} {
			if v != "" && !semver.IsValid(canon(v)) {
				return fmt.Errorf("matrix: environment %q: invalid engine version %q", env.Name, v)
			}
		}
		if env.EngineMin != "" && env.EngineMax != "" &&
			semver.Compare(canon(env.EngineMin), canon(env.EngineMax)) >= 0 {
			return fmt.Errorf("matrix: environment %q: empty engine version range [%s, %s)",
				env.Name, env.EngineMin, env.EngineMax)
		}
	}
	return nil
}

// Accepts reports whether the given engine version satisfies the
// environment's version range. An unparseable version is rejected when
// a range is configured.
func (env Environment) Accepts(version string) bool {
	v := canon(version)
	if env.EngineMin == "" && env.EngineMax == "" {
		return true
	}
	if !semver.IsValid(v) {
		return false
	}
	if env.EngineMin != "" && semver.Compare(v, canon(env.EngineMin)) < 0 {
		return false
	}
	if env.EngineMax != "" && semver.Compare(v, canon(env.EngineMax)) >= 0 {
		return false
	}
	return true
}

// Current returns the matrix environment matching the running Go
// toolchain, or nil if none matches.
func (m Matrix) Current() *Environment {
	// runtime.Version() is "go1.22.3" for releases.
	have := strings.TrimPrefix(runtime.Version(), "go")
	for i, env := range m.Environments {
		if semver.MajorMinor(canon(have)) == semver.MajorMinor(canon(env.Go)) {
			return &m.Environments[i]
		}
	}
	return nil
}

// canon converts "10.0" or "1.22.3" to the "vX.Y.Z" form the semver
// package expects. Leading zeros are stripped: Ghostscript reports
// versions like "10.04.0".
func canon(v string) string {
	if v == "" {
		return ""
	}
	v = strings.TrimPrefix(v, "v")
	parts := strings.Split(v, ".")
	for i, p := range parts {
		trimmed := strings.TrimLeft(p, "0")
		if trimmed == "" && p != "" {
			trimmed = "0"
		}
		parts[i] = trimmed
	}
	return "v" + strings.Join(parts, ".")
}
