// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tipasymptote implements the tip-asymptote residual family (K, M,
// Mt, MK, U) and the root-find that inverts fracture width in ribbon cells
// into a signed distance from the front (§4.3), plus the tip-volume
// integrals' shared asymptote evaluators. The residuals are exposed as plain
// functions (Residual); the root solves go through package rootfind, which
// wraps gosl/num.
package tipasymptote

import (
	"math"

	"github.com/cpmech/gofrac/rootfind"
)

// WidthAt evaluates the asymptote's predicted width at a fixed unsigned
// distance s, the inverse direction of InvertOne. For the closed-form modes
// this is a direct evaluation; for the universal mode the residual has no
// closed form in w, so it is recovered by a bracketed root solve (used by
// package tipvolume's average-width integral).
func WidthAt(mode Mode, s float64, p Params) (float64, error) {
	if mode != U {
		return width(mode, s, p), nil
	}
	v := (s - p.DistLastTS) / p.Dt
	if v <= 0 {
		return 0, nil
	}
	res := func(w float64) float64 { return universalResidual(w, s, p) }

	kGuess := p.Kprime / p.Eprime * math.Sqrt(s)
	mGuess := math.Cbrt(18*math.Sqrt(3)*v*p.MuPrime/p.Eprime) * math.Pow(s, 2.0/3.0)
	hi := 10 * math.Max(kGuess, mGuess)
	if hi <= 0 {
		hi = 1e-6
	}
	lo, hi, err := rootfind.AdaptBracket(res, 1e-14, hi, 30)
	if err != nil {
		return 0, err
	}
	return rootfind.Brent(res, lo, hi, 1e-12)
}

// Mode selects the tip-asymptote family.
type Mode int

const (
	K  Mode = iota // toughness-dominated
	M               // viscosity-dominated, no leak-off
	Mt              // viscosity-dominated, with leak-off
	MK              // toughness-viscosity transition
	U               // universal (Dontsov-Pierce)
)

// Params bundles the local material data a residual needs to evaluate.
type Params struct {
	Kprime    float64 // scaled toughness at this cell
	Eprime    float64 // plane-strain modulus
	MuPrime   float64 // scaled viscosity
	Cprime    float64 // scaled leak-off coefficient
	DistLastTS float64 // unsigned distance to the front at the previous time step (>=0)
	Dt        float64 // time step
}

// width evaluates the asymptote's predicted width at a (trial) unsigned
// distance s from the front, for the closed-form modes K, M, Mt, MK.
func width(mode Mode, s float64, p Params) float64 {
	v := (s - p.DistLastTS) / p.Dt
	switch mode {
	case K:
		return p.Kprime / p.Eprime * math.Sqrt(s)
	case M:
		if v <= 0 {
			return 0
		}
		return math.Cbrt(18*math.Sqrt(3)*v*p.MuPrime/p.Eprime) * math.Pow(s, 2.0/3.0)
	case Mt:
		if v <= 0 {
			return 0
		}
		return 4 / math.Pow(15*math.Tan(math.Pi/8), 0.25) *
			math.Pow(p.Cprime*p.MuPrime/p.Eprime, 0.25) * math.Pow(v, 0.125) * math.Pow(s, 5.0/8.0)
	case MK:
		if v <= 0 {
			v = 0
		}
		inner := 1 + 18*math.Sqrt(3)*p.Eprime*p.Eprime*v*math.Sqrt(s)*p.MuPrime/math.Pow(p.Kprime, 3)
		return math.Cbrt(inner) * p.Kprime / p.Eprime * math.Sqrt(s)
	}
	return math.NaN()
}

// residual computes w_ribbon - width(mode, s, p) for the closed-form modes.
func residual(mode Mode, wRibbon, s float64, p Params) float64 {
	return wRibbon - width(mode, s, p)
}

// g0 is the universal asymptote's auxiliary function (§4.3).
func g0(Kh, Cb, C1 float64) float64 {
	return 1.0 / (3 * C1) * (1 - Kh*Kh*Kh - 3*Cb*(1-Kh*Kh)/2 + 3*Cb*Cb*(1-Kh) - 3*Cb*Cb*Cb*math.Log((Cb+1)/(Cb+Kh)))
}

// universalResidual computes the Dontsov-Pierce universal tip-asymptote
// residual (§4.3, "U" mode).
func universalResidual(wRibbon, s float64, p Params) float64 {
	v := (s - p.DistLastTS) / p.Dt
	if v <= 0 || wRibbon <= 0 {
		return math.NaN()
	}
	Kh := p.Kprime * math.Sqrt(s) / (p.Eprime * wRibbon)
	Ch := 2 * p.Cprime * math.Sqrt(s) / (math.Sqrt(v) * wRibbon)
	sh := p.MuPrime * v * s * s / (p.Eprime * wRibbon * wRibbon * wRibbon)
	return sh - g0(Kh, 0.9911799823*Ch, 6*math.Sqrt(3))
}

// Residual evaluates the asymptote residual for the given mode, to be
// driven to zero by the bracketed root solve.
func Residual(mode Mode, wRibbon, s float64, p Params) float64 {
	if mode == U {
		return universalResidual(wRibbon, s, p)
	}
	return residual(mode, wRibbon, s, p)
}

// Stagnant reports whether a ribbon cell fails the propagation condition
// K'*sqrt(-s_prev)/(E'*w) > 1 (§4.3), in which case it is left at s_prev.
func Stagnant(p Params, wRibbon float64) bool {
	if p.DistLastTS <= 0 {
		return false
	}
	return p.Kprime*math.Sqrt(p.DistLastTS)/(p.Eprime*wRibbon) > 1
}

// InvertOne inverts the asymptote for a single ribbon cell, returning the
// unsigned distance s (always >= 0) from the front. Propagation-condition
// failures are reported by returning p.DistLastTS and ok=false so the caller
// can mark the cell stagnant without treating it as an inversion failure.
func InvertOne(mode Mode, wRibbon float64, p Params) (s float64, ok bool, err error) {
	if Stagnant(p, wRibbon) {
		return p.DistLastTS, false, nil
	}

	res := func(x float64) float64 { return Residual(mode, wRibbon, x, p) }

	a := -p.DistLastTS * (1 + 1e5*2.220446049250313e-16)
	b := 10 * math.Pow(wRibbon/(p.Kprime/p.Eprime), 2)
	if b <= a {
		b = a + 1
	}

	lo, hi, berr := rootfind.AdaptBracket(res, a, b, 30)
	if berr != nil {
		return 0, false, berr
	}

	root, rerr := rootfind.Brent(res, lo, hi, 1e-10)
	if rerr != nil {
		return 0, false, rerr
	}
	return root, true, nil
}
