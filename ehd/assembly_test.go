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

func TestAssembleSingleChannelCellNoFlow(t *testing.T) {
	g := grid.New(1, 1, 5, 5, false)
	ela := elasticity.Build(g, 1e10)

	channel := []int{g.CenterCell}
	n := g.NumCells

	in := Input{
		Channel: channel,
		Sigma0:  make([]float64, n),
		WPrev:   make([]float64, n),
		Leakoff: make([]float64, n),
		L:       [][]float64{{0}},
		Dt:      1,
		Cf:      0,
		WHalf:   []float64{1e-3},
		Source:  map[int]float64{g.CenterCell: 1e-6},
		Weight:  func(int) float64 { return 1 },
	}

	res, err := Assemble(ela, in)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	want := 1e-6 / (1 + in.Cf*in.WHalf[0])
	if math.Abs(res.DeltaW[g.CenterCell]-want) > 1e-15 {
		t.Fatalf("DeltaW = %v, want %v", res.DeltaW[g.CenterCell], want)
	}
}
