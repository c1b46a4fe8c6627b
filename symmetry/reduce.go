// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symmetry folds the quarter-plane symmetric grid's elasticity
// matrix and per-cell field data onto the canonical representative set
// built by grid.New(..., symmetric=true), implementing the C_s reduction of
// §4.2 and the mirrored expansion used to recover full-grid fields after a
// representative-only solve.
package symmetry

import (
	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/grid"
)

// Reducer maps between a symmetric Grid's full cell indexing and its
// canonical quadrant-representative indexing.
type Reducer struct {
	g         *grid.Grid
	prototype []int // canonical id -> one full-grid cell index carrying that id
	mirrors   [][]int // canonical id -> all full-grid cells folding onto it
}

// NewReducer builds a Reducer over g, which must have been constructed with
// symmetric=true.
func NewReducer(g *grid.Grid) *Reducer {
	n := g.NumRepresentatives()
	r := &Reducer{g: g, prototype: make([]int, n), mirrors: make([][]int, n)}
	seen := make([]bool, n)
	for cell, f := range g.Fold {
		r.mirrors[f.Canonical] = append(r.mirrors[f.Canonical], cell)
		if !seen[f.Canonical] {
			r.prototype[f.Canonical] = cell
			seen[f.Canonical] = true
		}
	}
	return r
}

// NumReps returns the number of canonical representatives.
func (r *Reducer) NumReps() int { return len(r.prototype) }

// Canonical returns the representative id of a full-grid cell.
func (r *Reducer) Canonical(cell int) int { return r.g.Fold[cell].Canonical }

// Weight returns the multiplicity {1,2,4} of a full-grid cell's fold.
func (r *Reducer) Weight(cell int) float64 { return r.g.Fold[cell].Weight }

// Representatives returns the full-grid cell index chosen as the prototype
// of each canonical id, in canonical order.
func (r *Reducer) Representatives() []int {
	out := make([]int, len(r.prototype))
	copy(out, r.prototype)
	return out
}

// FoldMatrix reduces a full NxN elasticity influence matrix to the
// representative-indexed C_s of §4.2: each entry is the sum of influences
// from the row's prototype cell to every mirror image of the column's
// representative.
func (r *Reducer) FoldMatrix(full *elasticity.Matrix) [][]float64 {
	n := r.NumReps()
	Cs := make([][]float64, n)
	for a := 0; a < n; a++ {
		Cs[a] = make([]float64, n)
		pi := r.prototype[a]
		for b := 0; b < n; b++ {
			var sum float64
			for _, m := range r.mirrors[b] {
				sum += full.C[pi][m]
			}
			Cs[a][b] = sum
		}
	}
	return Cs
}

// ReduceField samples a full-grid field at each representative's prototype
// cell, used for quantities that are already constant across a mirror set
// (e.g. in-situ stress sampled from a symmetric closure, or a representative
// cell's own width).
func (r *Reducer) ReduceField(full []float64) []float64 {
	out := make([]float64, r.NumReps())
	for a, i := range r.prototype {
		out[a] = full[i]
	}
	return out
}

// SumField aggregates a full-grid per-cell quantity (e.g. leak-off volume)
// over every mirror image folding onto each representative, used for
// additive quantities rather than pointwise-constant ones.
func (r *Reducer) SumField(full []float64) []float64 {
	out := make([]float64, r.NumReps())
	for cell, f := range r.g.Fold {
		out[f.Canonical] += full[cell]
	}
	return out
}

// Expand broadcasts a representative-indexed field back to the full grid:
// every cell receives the value of its canonical representative.
func (r *Reducer) Expand(reps []float64) []float64 {
	out := make([]float64, r.g.NumCells)
	for cell, f := range r.g.Fold {
		out[cell] = reps[f.Canonical]
	}
	return out
}

// FoldIndices maps a full-grid index set (e.g. EltChannel) to the set of
// canonical representative ids it touches, deduplicated.
func FoldIndices(r *Reducer, idx []int) []int {
	seen := make(map[int]bool, len(idx))
	var out []int
	for _, i := range idx {
		c := r.Canonical(i)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
