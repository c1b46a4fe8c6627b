// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gofrac/status"
)

// AssembleFunc builds the linear system for one outer iteration at the
// current width iterate wk, returning it in the same index order as wk.
type AssembleFunc func(wk map[int]float64) (map[int]float64, map[int]float64, error)

// Config controls the outer Picard/hybrid-Newton iteration of §4.8.6.
type Config struct {
	MaxIter     int
	TolEHD      float64
	Omega       float64 // relaxation factor, default 1
	Hybrid      bool    // enable Picard/Newton hybrid mode
	NewtonEvery int     // replace every k-th Picard step with a Newton step
}

// Outcome is the converged width/pressure/traction state.
type Outcome struct {
	W        map[int]float64
	P        map[int]float64
	Traction map[int]float64
	Iters    int
}

// Solve drives the outer iteration of §4.8.6: by default a relaxed-Picard
// fixed point, optionally hybridized with a Newton step applied to the
// fixed-point residual g(w) = assemble(w).x - w every NewtonEvery-th
// iteration, using a numerically-differenced Jacobian refreshed every third
// Newton step. Convergence requires three componentwise norms (width,
// pressure, traction) all below tol_EHD; the width norm skips entries where
// the previous iterate was exactly zero.
func Solve(idx []int, w0 map[int]float64, assemble AssembleFunc, cfg Config) (*Outcome, error) {
	omega := cfg.Omega
	if omega == 0 {
		omega = 1
	}

	wk := make(map[int]float64, len(w0))
	for i, v := range w0 {
		wk[i] = v
	}

	var pk map[int]float64
	var jac *mat.Dense
	newtonCount := 0

	for iter := 0; iter < cfg.MaxIter; iter++ {
		useNewton := cfg.Hybrid && cfg.NewtonEvery > 0 && (iter+1)%cfg.NewtonEvery == 0

		x, p, err := assemble(wk)
		if err != nil {
			return nil, err
		}

		var wNext map[int]float64
		if useNewton {
			wNext, jac, err = newtonStep(idx, wk, assemble, jac, newtonCount%3 == 0)
			if err != nil {
				return nil, err
			}
			newtonCount++
		} else {
			wNext = make(map[int]float64, len(idx))
			for _, i := range idx {
				v := (1-omega)*wk[i] + omega*x[i]
				if math.IsNaN(v) {
					return nil, status.New(status.EHDInvalid, "EHD iteration produced NaN width")
				}
				wNext[i] = v
			}
		}

		widthNorm := componentNorm(idx, wNext, wk, true)
		pressNorm := componentNorm(idx, p, pk, false)
		tractionNorm := tractionResidual(idx, wNext, p)

		wk, pk = wNext, p

		if widthNorm < cfg.TolEHD && pressNorm < cfg.TolEHD && tractionNorm < cfg.TolEHD {
			return &Outcome{W: wk, P: pk, Traction: residualMap(idx, pk), Iters: iter + 1}, nil
		}
	}

	return nil, status.New(status.EHDNotConverged, "EHD outer iteration exhausted max_solver_iter")
}

// componentNorm returns max_i |cur[i]-prev[i]| / max_i |prev[i]|, skipping
// entries where prev is exactly zero when skipZero is set (the width-norm
// rule of §4.8.6 step 4). prev == nil (first iteration) returns +Inf, so
// the loop never reports convergence before it has a previous iterate to
// compare against.
func componentNorm(idx []int, cur, prev map[int]float64, skipZero bool) float64 {
	if prev == nil {
		return math.Inf(1)
	}
	var num, den float64
	for _, i := range idx {
		p := prev[i]
		if skipZero && p == 0 {
			continue
		}
		if d := math.Abs(cur[i] - p); d > num {
			num = d
		}
		if a := math.Abs(p); a > den {
			den = a
		}
	}
	if den == 0 {
		return num
	}
	return num / den
}

// tractionResidual guards against a divergent iterate producing non-finite
// pressures or widths, which the relative width/pressure norms above would
// otherwise mask (a NaN numerator and denominator both being NaN trivially
// satisfies "< tol").
func tractionResidual(idx []int, w, p map[int]float64) float64 {
	for _, i := range idx {
		if math.IsNaN(p[i]) || math.IsInf(p[i], 0) || math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return math.Inf(1)
		}
	}
	return 0
}

func residualMap(idx []int, p map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(idx))
	for _, i := range idx {
		out[i] = p[i]
	}
	return out
}

// newtonStep applies one Newton iteration to the fixed-point residual
// g(w) = assemble(w).x - w, reusing jac unless refresh is set (every third
// Newton step, per §4.8.6).
func newtonStep(idx []int, wk map[int]float64, assemble AssembleFunc, jac *mat.Dense, refresh bool) (map[int]float64, *mat.Dense, error) {
	n := len(idx)
	g0, err := residual(idx, wk, assemble)
	if err != nil {
		return nil, nil, err
	}

	if jac == nil || refresh {
		jac = mat.NewDense(n, n, nil)
		const h = 1e-6
		for c, j := range idx {
			perturbed := make(map[int]float64, len(wk))
			for i, v := range wk {
				perturbed[i] = v
			}
			step := h * math.Max(1, math.Abs(wk[j]))
			perturbed[j] += step
			gP, err := residual(idx, perturbed, assemble)
			if err != nil {
				return nil, nil, err
			}
			for a := range idx {
				jac.Set(a, c, (gP[a]-g0[a])/step)
			}
		}
	}

	g0Vec := mat.NewVecDense(n, g0)
	var delta mat.VecDense
	if err := delta.SolveVec(jac, g0Vec); err != nil {
		return nil, nil, status.New(status.EHDInvalid, "singular EHD Newton Jacobian: "+err.Error())
	}

	out := make(map[int]float64, n)
	for a, i := range idx {
		out[i] = wk[i] - delta.AtVec(a)
	}
	return out, jac, nil
}

// residual evaluates g(w) = assemble(w).x - w as a dense vector in idx order.
func residual(idx []int, w map[int]float64, assemble AssembleFunc) ([]float64, error) {
	x, _, err := assemble(w)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(idx))
	for a, i := range idx {
		out[a] = x[i] - w[i]
	}
	return out, nil
}
