// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symmetry

import (
	"testing"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/grid"
)

func TestNewReducerCenterIsOwnRepresentative(t *testing.T) {
	g := grid.New(1, 1, 5, 5, true)
	r := NewReducer(g)
	c := r.Canonical(g.CenterCell)
	if r.Weight(g.CenterCell) != 1 {
		t.Fatalf("center weight = %v, want 1", r.Weight(g.CenterCell))
	}
	if r.Representatives()[c] != g.CenterCell {
		t.Fatalf("center cell is not its own prototype")
	}
}

func TestExpandRoundTripsReduceField(t *testing.T) {
	g := grid.New(1, 1, 5, 5, true)
	r := NewReducer(g)

	full := make([]float64, g.NumCells)
	for cell, f := range g.Fold {
		full[cell] = float64(f.Canonical) // constant across every mirror set by construction
	}

	reps := r.ReduceField(full)
	expanded := r.Expand(reps)
	for i := range full {
		if expanded[i] != full[i] {
			t.Fatalf("cell %d: expanded %v, want %v", i, expanded[i], full[i])
		}
	}
}

func TestSumFieldAccumulatesMultiplicity(t *testing.T) {
	g := grid.New(1, 1, 5, 5, true)
	r := NewReducer(g)

	full := make([]float64, g.NumCells)
	for i := range full {
		full[i] = 1
	}
	sums := r.SumField(full)
	c := r.Canonical(g.CenterCell)
	if sums[c] != 1 {
		t.Fatalf("center representative sum = %v, want 1", sums[c])
	}
}

func TestFoldMatrixSquareOfRepresentatives(t *testing.T) {
	g := grid.New(1, 1, 5, 5, true)
	ela := elasticity.Build(g, 1e10)
	r := NewReducer(g)
	Cs := r.FoldMatrix(ela)
	n := r.NumReps()
	if len(Cs) != n {
		t.Fatalf("FoldMatrix rows = %d, want %d", len(Cs), n)
	}
	for _, row := range Cs {
		if len(row) != n {
			t.Fatalf("FoldMatrix row length = %d, want %d", len(row), n)
		}
	}
}
