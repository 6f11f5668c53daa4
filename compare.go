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

// Package visdiff compares rendered images against stored reference
// images and reports pixel-level differences.
//
// The comparison is tolerant of marginal anti-aliasing and
// font-rendering noise: instead of requiring exact equality, it checks
// percentiles of the absolute per-pixel difference against configurable
// criteria. The defaults accept images where most pixels are identical
// and the remaining differences are small, while still rejecting
// structural changes.
package visdiff

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// Criteria are the acceptance thresholds for a comparison. Each field
// is the maximum allowed value of the corresponding percentile of the
// absolute per-pixel difference (0–255).
type Criteria struct {
	P80 int `yaml:"p80"` // 80th percentile
	P95 int `yaml:"p95"` // 95th percentile
	P99 int `yaml:"p99"` // 99th percentile
}

// DefaultCriteria returns the standard acceptance thresholds:
// at least 80% of pixels identical, 95% of differences below 64,
// and 99% below 128.
func DefaultCriteria() Criteria {
	return Criteria{P80: 0, P95: 63, P99: 127}
}

// Metrics summarises the absolute per-pixel differences between a
// reference image and a fresh render.
type Metrics struct {
	Total     int     // number of pixels compared
	Identical int     // pixels with zero difference
	P80       int     // 80th percentile of absolute differences
	P95       int     // 95th percentile
	P99       int     // 99th percentile
	Max       int     // largest absolute difference
	Mean      float64 // mean absolute difference
}

// Compare computes difference metrics between a reference image and a
// freshly rendered one. The images must have identical dimensions;
// a size mismatch indicates a geometry change in the renderer and is
// reported as an error rather than being papered over by resampling.
func Compare(ref, got *image.Gray) (Metrics, error) {
	rb, gb := ref.Bounds(), got.Bounds()
	if rb.Dx() != gb.Dx() || rb.Dy() != gb.Dy() {
		return Metrics{}, fmt.Errorf("image size mismatch: reference %dx%d, got %dx%d",
			rb.Dx(), rb.Dy(), gb.Dx(), gb.Dy())
	}

	w, h := rb.Dx(), rb.Dy()
	total := w * h
	if total == 0 {
		return Metrics{}, fmt.Errorf("empty image")
	}

	// Collect all absolute differences
	diffs := make([]int, total)
	var sum, identical int
	for y := range h {
		for x := range w {
			e := int(ref.GrayAt(rb.Min.X+x, rb.Min.Y+y).Y)
			a := int(got.GrayAt(gb.Min.X+x, gb.Min.Y+y).Y)
			d := e - a
			if d < 0 {
				d = -d
			}
			if d == 0 {
				identical++
			}
			diffs[y*w+x] = d
			sum += d
		}
	}

	// Sort differences to compute percentiles
	sort.Ints(diffs)

	m := Metrics{
		Total:     total,
		Identical: identical,
		P80:       diffs[percentileIndex(total, 0.80)],
		P95:       diffs[percentileIndex(total, 0.95)],
		P99:       diffs[percentileIndex(total, 0.99)],
		Max:       diffs[total-1],
		Mean:      float64(sum) / float64(total),
	}
	return m, nil
}

func percentileIndex(total int, q float64) int {
	return int(math.Round(q * float64(total-1)))
}

// Check returns a description of each violated criterion, or nil if
// the metrics are within tolerance.
func (m Metrics) Check(c Criteria) []string {
	var failures []string
	if m.P80 > c.P80 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want <=%d)", m.P80, c.P80))
	}
	if m.P95 > c.P95 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <=%d)", m.P95, c.P95))
	}
	if m.P99 > c.P99 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <=%d)", m.P99, c.P99))
	}
	return failures
}

// Pass reports whether the metrics satisfy the criteria.
func (m Metrics) Pass(c Criteria) bool {
	return m.P80 <= c.P80 && m.P95 <= c.P95 && m.P99 <= c.P99
}
