// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"math"
	"testing"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/grid"
)

func TestSolveVolumeControlBalancesVolume(t *testing.T) {
	g := grid.New(1, 1, 5, 5, false)
	ela := elasticity.Build(g, 1e10)

	channel := []int{g.CenterCell}
	sigma0 := make([]float64, g.NumCells)
	wPrev := make([]float64, g.NumCells)

	in := VolumeControlInput{
		Channel:  channel,
		Sigma0:   sigma0,
		WPrev:    wPrev,
		QdtOverA: 1e-6,
		Weight:   func(int) float64 { return 1 },
	}

	res, err := SolveVolumeControl(ela, in)
	if err != nil {
		t.Fatalf("SolveVolumeControl failed: %v", err)
	}
	if math.Abs(res.DeltaW[channel[0]]-in.QdtOverA) > 1e-15 {
		t.Fatalf("single-cell volume balance: DeltaW = %v, want %v", res.DeltaW[channel[0]], in.QdtOverA)
	}
}
