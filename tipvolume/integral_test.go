// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tipvolume

import (
	"math"
	"testing"

	"github.com/cpmech/gofrac/tipasymptote"
)

func TestFillFractionSimpleTriangle(t *testing.T) {
	hx, hy := 1.0, 1.0
	alpha := math.Pi / 4
	l := 0.5 * math.Sqrt2 * 0.5 // front through the midpoints of the two edges

	f, err := FillFraction(alpha, l, hx, hy)
	if err != nil {
		t.Fatalf("FillFraction failed: %v", err)
	}
	want := 0.5 * 0.5 * 0.5 // triangle with legs 0.5 in a unit cell
	if math.Abs(f-want) > 1e-9 {
		t.Fatalf("FillFraction = %v, want %v", f, want)
	}
}

func TestFillFractionWholeCell(t *testing.T) {
	f, err := FillFraction(math.Pi/4, 10, 1, 1)
	if err != nil {
		t.Fatalf("FillFraction failed: %v", err)
	}
	if f != 1 {
		t.Fatalf("FillFraction = %v, want 1 for a line far outside the cell", f)
	}
}

func TestAverageWidthKMode(t *testing.T) {
	p := tipasymptote.Params{Kprime: 1e6, Eprime: 1e10, Dt: 1, DistLastTS: 0}
	avg, err := AverageWidth(tipasymptote.K, math.Pi/4, 0.05, 0.1, 0.1, p)
	if err != nil {
		t.Fatalf("AverageWidth failed: %v", err)
	}
	if avg <= 0 {
		t.Fatalf("expected positive average width, got %v", avg)
	}
}

func TestStressIntensityFactorOneRibbon(t *testing.T) {
	w := []float64{0, 1e-3}
	sd := []float64{0, -0.01}
	coor := [][2]float64{{0, 0}, {0.1, 0}}
	ribbon := map[int]bool{1: true}
	k := StressIntensityFactor(0, []int{1}, ribbon, w, sd, coor, 1e10)
	want := w[1] * 1e10 / math.Sqrt(0.01)
	if math.Abs(k-want) > 1e-6*want {
		t.Fatalf("StressIntensityFactor = %v, want %v", k, want)
	}
}
