// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rootfind wraps gosl/num's bracketed scalar root solver behind the
// bracket-search idiom the tip-asymptote inversion (§4.3) and the turbulent
// edge-velocity closure (§4.8.2) both need: given a residual and a starting
// bracket that may not yet contain a sign change, shift its lower bound
// toward the upper one before handing off to Brent. This wraps gosl/num calls behind a small driver API
// instead of calling num directly from algorithm code.
package rootfind

import (
	"github.com/cpmech/gosl/num"
)

// Func is a scalar residual function of the free variable.
type Func func(x float64) float64

// ErrBracketNotFound is returned when AdaptBracket exhausts its shift budget
// without finding a sign change.
type ErrBracketNotFound struct {
	Attempts int
}

func (e *ErrBracketNotFound) Error() string {
	return "rootfind: could not bracket a root within the shift budget"
}

// AdaptBracket narrows [a,b] by moving the lower bound toward b, to the
// weighted point (a + 2*mid)/3 with mid starting at b, until res(a)*res(b) <= 0, or gives up after maxShifts attempts
// (§4.3: "give up after 30 shifts -> failure"). The shift rule `a = (a +
// 2*mid)/3` matches PyFrac's TipInversion.FindBracket_dist.
func AdaptBracket(res Func, a, b float64, maxShifts int) (lo, hi float64, err error) {
	ra, rb := res(a), res(b)
	if ra*rb <= 0 {
		return a, b, nil
	}
	mid := b
	for cnt := 0; cnt < maxShifts; cnt++ {
		mid = (a + 2*mid) / 3
		ra = res(mid)
		a = mid
		if ra*rb <= 0 {
			return a, b, nil
		}
	}
	return 0, 0, &ErrBracketNotFound{Attempts: maxShifts}
}

// Brent finds a root of res in [a,b] using gosl/num's Brent solver, to the
// given tolerance.
func Brent(res Func, a, b, tol float64) (float64, error) {
	solver := num.NewBrent(func(x float64) float64 { return res(x) }, nil)
	solver.Tol = tol
	return solver.Root(a, b)
}
