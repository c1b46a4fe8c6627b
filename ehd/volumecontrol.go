// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/status"
)

// VolumeControlInput bundles the per-iteration data needed to assemble the
// bordered volume-control system of §4.8.5. Sigma0 and WPrev are indexed
// over the whole grid; the tip-cell contribution C_ct*w_tip is folded into
// Sigma0 by the caller before assembly, since it is constant within an
// iteration.
type VolumeControlInput struct {
	Channel  []int                   // EltChannel, the Delta-w unknowns
	Sigma0   []float64               // in-situ stress plus the fixed tip-width coupling, over the whole grid
	WPrev    []float64               // w^n over the whole grid
	TipSum   float64                 // sum(w_tip) for this iteration
	TipSumN  float64                 // sum(w^n_tip)
	QdtOverA float64                 // Q*dt/A
	Leakoff  float64                 // sum of leak-off volume over the crack
	Weight   func(cell int) float64  // multiplicity weight, 1 unless symmetric
}

// VolumeControlResult is the solved increment and the single pressure value.
type VolumeControlResult struct {
	DeltaW map[int]float64
	P      float64
}

// SolveVolumeControl assembles and solves the bordered system of §4.8.5:
// the top block couples Delta-w to the scalar pressure through the
// tip-corrected elasticity matrix, and the bottom row enforces the global
// volume balance.
func SolveVolumeControl(ela *elasticity.Matrix, in VolumeControlInput) (*VolumeControlResult, error) {
	n := len(in.Channel)
	N := n + 1

	Ccc := ela.Sub(in.Channel, in.Channel)

	A := mat.NewDense(N, N, nil)
	b := mat.NewVecDense(N, nil)

	for a, i := range in.Channel {
		for c := range in.Channel {
			A.Set(a, c, Ccc[a][c])
		}
		A.Set(a, n, -1)

		rhs := -in.Sigma0[i]
		for c, j := range in.Channel {
			rhs -= Ccc[a][c] * in.WPrev[j]
		}
		b.SetVec(a, rhs)
	}

	for a := range in.Channel {
		A.Set(n, a, in.Weight(in.Channel[a]))
	}
	A.Set(n, n, 0)
	b.SetVec(n, in.QdtOverA-(in.TipSum-in.TipSumN)-in.Leakoff)

	var x mat.VecDense
	if err := x.SolveVec(A, b); err != nil {
		return nil, status.New(status.EHDInvalid, "singular volume-control system: "+err.Error())
	}

	res := &VolumeControlResult{DeltaW: make(map[int]float64, n)}
	for a, i := range in.Channel {
		res.DeltaW[i] = x.AtVec(a)
	}
	res.P = x.AtVec(n)
	return res, nil
}
