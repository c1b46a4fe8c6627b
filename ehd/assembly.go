// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/status"
)

// Input bundles the per-iteration data for the viscous (full EHD) branch of
// §4.8.4. All slices are indexed over the whole grid; Channel, ActiveWC and
// Tip are disjoint index sets within EltCrack.
type Input struct {
	Channel  []int // cells where Delta-w is solved for freely
	ActiveWC []int // cells where w is clamped to Wc
	Tip      []int // cells where w is imposed from the tip-volume integral

	Sigma0  []float64 // in-situ stress, whole grid
	WPrev   []float64 // w^n, whole grid
	Wc      []float64 // clamp target for ActiveWC cells, whole grid
	WTip    []float64 // imposed tip width for Tip cells, whole grid
	Leakoff []float64 // leak-off volume per cell, whole grid
	Gravity []float64 // body-force RHS contribution per cell, whole grid; nil when gravity is off (§4.8.3)

	L      [][]float64 // flow operator restricted to Channel (from AssembleLaplacian)
	Dt     float64
	Cf     float64            // fluid compressibility
	WHalf  []float64          // w_{n+1/2} per Channel cell, for the compressibility diagonal
	Source map[int]float64    // Q*dt/A at injection cells, keyed by grid cell id
	Weight func(cell int) float64
}

// Result is the solved width increment and channel pressure.
type Result struct {
	DeltaW map[int]float64
	P      map[int]float64
}

// Assemble builds and solves the Variant B ("deltaP") compressed system of
// §4.8.4: the channel pressure is substituted analytically via
// p_channel = C_cc*Delta_w_channel + (known RHS), leaving one unknown per
// channel cell. The flow operator enters as dt*L on the substituted
// pressure equation, and a compressibility diagonal c_f*w_{n+1/2} is added.
func Assemble(ela *elasticity.Matrix, in Input) (*Result, error) {
	n := len(in.Channel)

	Ccc := ela.Sub(in.Channel, in.Channel)
	Cct := ela.Sub(in.Channel, in.Tip)
	Cca := ela.Sub(in.Channel, in.ActiveWC)

	A := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	for a, i := range in.Channel {
		rhs := -in.Sigma0[i]
		for c, j := range in.Channel {
			rhs -= Ccc[a][c] * in.WPrev[j]
		}
		for c, j := range in.Tip {
			rhs -= Cct[a][c] * (in.WTip[j] - in.WPrev[j])
		}
		for c, j := range in.ActiveWC {
			rhs -= Cca[a][c] * (in.Wc[j] - in.WPrev[j])
		}
		rhs -= in.Leakoff[i]
		if i < len(in.Gravity) {
			rhs += in.Gravity[i]
		}
		if q, ok := in.Source[i]; ok {
			rhs += q
		}
		b.SetVec(a, rhs)

		for c := range in.Channel {
			v := -in.Dt * in.L[a][c]
			A.Set(a, c, v)
		}
		A.Set(a, a, A.At(a, a)+1)
		if a < len(in.WHalf) {
			A.Set(a, a, A.At(a, a)+in.Cf*in.WHalf[a])
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(A, b); err != nil {
		return nil, status.New(status.EHDInvalid, "singular EHD system: "+err.Error())
	}

	res := &Result{DeltaW: make(map[int]float64, n), P: make(map[int]float64, n)}
	for a, i := range in.Channel {
		dw := x.AtVec(a)
		res.DeltaW[i] = dw
	}
	for a, i := range in.Channel {
		p := in.Sigma0[i]
		for c, j := range in.Channel {
			p += Ccc[a][c] * (in.WPrev[j] + res.DeltaW[j])
		}
		for c, j := range in.Tip {
			p += Cct[a][c] * in.WTip[j]
		}
		for c, j := range in.ActiveWC {
			p += Cca[a][c] * in.Wc[j]
		}
		res.P[i] = p
	}
	return res, nil
}
