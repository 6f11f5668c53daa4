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

package visdiff

import (
	"image"
	"strings"
	"testing"
)

func grayImage(w, h int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func TestCompareIdentical(t *testing.T) {
	ref := grayImage(10, 10, 128)
	got := grayImage(10, 10, 128)

	m, err := Compare(ref, got)
	if err != nil {
		t.Fatal(err)
	}
	if m.Total != 100 || m.Identical != 100 {
		t.Errorf("expected 100/100 identical, got %d/%d", m.Identical, m.Total)
	}
	if m.Max != 0 || m.Mean != 0 {
		t.Errorf("expected zero differences, got max=%d mean=%g", m.Max, m.Mean)
	}
	if !m.Pass(DefaultCriteria()) {
		t.Error("identical images should pass the default criteria")
	}
}

func TestCompareSizeMismatch(t *testing.T) {
	_, err := Compare(grayImage(10, 10, 0), grayImage(10, 11, 0))
	if err == nil {
		t.Fatal("expected error for size mismatch")
	}
	if !strings.Contains(err.Error(), "size mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestComparePercentiles(t *testing.T) {
	// 100 pixels: 90 identical, 10 with difference 100.
	ref := grayImage(10, 10, 0)
	got := grayImage(10, 10, 0)
	for x := range 10 {
		got.Pix[x] = 100
	}

	m, err := Compare(ref, got)
	if err != nil {
		t.Fatal(err)
	}
	if m.Identical != 90 {
		t.Errorf("expected 90 identical pixels, got %d", m.Identical)
	}
	if m.P80 != 0 {
		t.Errorf("expected p80=0, got %d", m.P80)
	}
	if m.P95 != 100 || m.P99 != 100 || m.Max != 100 {
		t.Errorf("expected p95=p99=max=100, got p95=%d p99=%d max=%d",
			m.P95, m.P99, m.Max)
	}
	if m.Mean != 10 {
		t.Errorf("expected mean=10, got %g", m.Mean)
	}

	if m.Pass(DefaultCriteria()) {
		t.Error("10%% of pixels off by 100 must fail the default criteria")
	}
	failures := m.Check(DefaultCriteria())
	if len(failures) != 1 || !strings.Contains(failures[0], "95th") {
		t.Errorf("expected a 95th percentile violation, got %v", failures)
	}

	if !m.Pass(Criteria{P80: 0, P95: 100, P99: 100}) {
		t.Error("expected pass with relaxed criteria")
	}
}

func TestCompareSmallNoise(t *testing.T) {
	// anti-aliasing style noise: 5% of pixels off by 30
	ref := grayImage(20, 20, 200)
	got := grayImage(20, 20, 200)
	for i := 0; i < 20; i++ {
		got.Pix[i*17] = 230
	}

	m, err := Compare(ref, got)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Pass(DefaultCriteria()) {
		t.Errorf("small noise should pass the default criteria: %+v", m)
	}
}

func TestCompareEmptyImage(t *testing.T) {
	_, err := Compare(grayImage(0, 0, 0), grayImage(0, 0, 0))
	if err == nil {
		t.Fatal("expected error for empty images")
	}
}

func TestCriteriaBoundaries(t *testing.T) {
	m := Metrics{P80: 0, P95: 63, P99: 127}
	if !m.Pass(DefaultCriteria()) {
		t.Error("metrics exactly at the thresholds must pass")
	}
	m.P99 = 128
	if m.Pass(DefaultCriteria()) {
		t.Error("metrics above a threshold must fail")
	}
}
