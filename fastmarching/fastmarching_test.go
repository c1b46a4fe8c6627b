// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastmarching

import (
	"math"
	"testing"

	"github.com/cpmech/gofrac/grid"
)

func TestBandIncludesSeed(t *testing.T) {
	g := grid.New(1, 1, 9, 9, false)
	seed := []int{g.CenterCell}
	band := Band(g, seed, 2)
	found := false
	for _, c := range band {
		if c == g.CenterCell {
			found = true
		}
	}
	if !found {
		t.Fatalf("band does not include the seed cell")
	}
	if len(band) <= 1 {
		t.Fatalf("band did not expand beyond the seed: got %d cells", len(band))
	}
}

func TestReinitializeRecoversRadialDistance(t *testing.T) {
	g := grid.New(1, 1, 21, 21, false)
	prev := make([]float64, g.NumCells)
	for i, c := range g.CenterCoor {
		prev[i] = math.Hypot(c[0], c[1]) - 0.3
	}

	var ribbon []int
	for i := range prev {
		if prev[i] < 0 {
			ribbon = append(ribbon, i)
		}
	}
	seed := make(map[int]float64, len(ribbon))
	for _, c := range ribbon {
		seed[c] = prev[c]
	}

	band := Band(g, ribbon, 3)
	out, err := Reinitialize(g, band, seed, prev)
	if err != nil {
		t.Fatalf("Reinitialize failed: %v", err)
	}
	for c, v := range seed {
		if got := out[c]; math.Abs(got-v) > 1e-9 {
			t.Fatalf("seed cell %d mutated: got %v, want %v", c, got, v)
		}
	}
	for _, c := range band {
		if out[c] < 0 && prev[c] >= 0 {
			t.Fatalf("cell %d crossed sign during reinitialization", c)
		}
	}
}
