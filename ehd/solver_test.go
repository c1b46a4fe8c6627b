// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"math"
	"testing"
)

// linearTarget is a trivial assemble closure whose fixed point is w=target
// for every cell and whose pressure mirrors the width, used to exercise the
// convergence bookkeeping without a real elasticity/flow coupling.
func linearTarget(idx []int, target map[int]float64) AssembleFunc {
	return func(wk map[int]float64) (map[int]float64, map[int]float64, error) {
		x := make(map[int]float64, len(idx))
		p := make(map[int]float64, len(idx))
		for _, i := range idx {
			x[i] = target[i]
			p[i] = 2 * target[i]
		}
		return x, p, nil
	}
}

func TestSolveConvergesToFixedPoint(t *testing.T) {
	idx := []int{0, 1}
	target := map[int]float64{0: 1e-3, 1: 2e-3}
	w0 := map[int]float64{0: 0.9e-3, 1: 1.9e-3}

	out, err := Solve(idx, w0, linearTarget(idx, target), Config{MaxIter: 20, TolEHD: 1e-8, Omega: 1})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for _, i := range idx {
		if math.Abs(out.W[i]-target[i]) > 1e-9 {
			t.Fatalf("W[%d] = %v, want %v", i, out.W[i], target[i])
		}
	}
}

func TestSolveFailsAfterMaxIter(t *testing.T) {
	idx := []int{0}
	// oscillating non-convergent map: x(w) = -w - 1 never settles under Picard.
	assemble := func(wk map[int]float64) (map[int]float64, map[int]float64, error) {
		return map[int]float64{0: -wk[0] - 1}, map[int]float64{0: 1}, nil
	}
	_, err := Solve(idx, map[int]float64{0: 1}, assemble, Config{MaxIter: 5, TolEHD: 1e-12, Omega: 1})
	if err == nil {
		t.Fatalf("expected EHDNotConverged, got nil")
	}
}
