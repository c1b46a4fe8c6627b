// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ehd assembles and solves the coupled width/pressure system of
// §4.8, for both the volume-control branch (§4.8.5) and the full
// elasto-hydrodynamic branch (§4.8.4, Variant B: the pressure-substituted
// "deltaP" form resolved as the Open Question in §9). The flow operator is
// accumulated into a gosl/la.Triplet, mirroring the Kb *la.Triplet
// accumulation pattern of ele/porous's element routines, alongside a dense
// [][]float64 copy; only the dense copy is returned, and the solves use a
// dense gonum LU: the original's mumps and
// umfpack backends are CGO-linked external solvers with no pure-Go
// equivalent in this pack, and the system sizes here (one unknown per active
// cell) stay well within range of a dense LU factorization.
package ehd

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/material"
	"github.com/cpmech/gofrac/rootfind"
)

// EdgeConductivity evaluates the laminar conductivity w_edge^3/mu' of the
// edge between cells i and j, zeroed when either cell is outside the crack
// (§4.8.1).
func EdgeConductivity(wi, wj, muPrime float64, jInCrack bool) float64 {
	if !jInCrack {
		return 0
	}
	wEdge := 0.5 * (wi + wj)
	return wEdge * wEdge * wEdge / muPrime
}

// TurbulentVelocity solves v - w*dp/(v*rho*f(Re,rough)) = 0 for the edge
// velocity v given the pressure-gradient magnitude dp, bracketing by
// (eps*vPrev, 10*vPrev) and adaptively shifting when the bracket does not
// contain a sign change (§4.8.2). Returns 0 for a stagnant or sub-micron
// edge.
func TurbulentVelocity(w, dp, rho, muPrime, rough, vPrev float64) (float64, error) {
	const subMicron = 1e-6
	if w < subMicron || math.Abs(dp) < 1e-30 {
		return 0, nil
	}
	if vPrev <= 0 {
		vPrev = w * w * dp / muPrime // laminar estimate as the initial guess
	}

	res := func(v float64) float64 {
		re := rho * math.Abs(v) * w / muPrime
		f := material.FrictionFactor(re, rough)
		return v - w*dp/(v*rho*f)
	}

	eps := 1e-3
	a, b := eps*vPrev, 10*vPrev
	if b < a {
		a, b = b, a
	}
	lo, hi, err := rootfind.AdaptBracket(res, a, b, 30)
	if err != nil {
		return 0, err
	}
	return rootfind.Brent(res, lo, hi, 1e-12)
}

// TurbulentConductivity replaces the laminar w^3/mu' term by w^2/(rho*f*v)
// once the edge velocity v has been solved for (§4.8.2).
func TurbulentConductivity(w, rho, f, v float64) float64 {
	if v == 0 {
		return 0
	}
	return w * w / (rho * f * math.Abs(v))
}

// GravityAccel is the gravitational acceleration used by GravityTerm when a
// configuration enables the body-force term (§4.8.3).
const GravityAccel = 9.8

// GravityTerm evaluates the body-force contribution to cell i's mass
// balance, G_i = rho*g*(w_top^3 - w_bottom^3)/(hy*mu') (§4.8.3).
func GravityTerm(wTop, wBottom, rho, g, hy, muPrime float64) float64 {
	return rho * g * (wTop*wTop*wTop - wBottom*wBottom*wBottom) / (hy * muPrime)
}

// edgeConductivity evaluates the conductivity of one flow-operator edge,
// dispatching to the laminar closure or, when the fluid is turbulent, to the
// Yang-Joseph closure of §4.8.2: the edge velocity is solved from the
// pressure drop estimated across the edge from the previous Picard
// iteration's pressure field (pPrev), lagging the Reynolds number by one
// outer iteration the way the laminar-vs-turbulent switch in a Picard loop
// ordinarily must. Falls back to the laminar term when the edge is not yet
// in the crack, the pressure history is not yet informative (first
// iteration, pPrev all zero), or the turbulent velocity solve fails to
// bracket a root.
func edgeConductivity(fluid material.Fluid, wi, wj float64, jInCrack bool, pi, pj, h float64) float64 {
	if !jInCrack {
		return 0
	}
	wEdge := 0.5 * (wi + wj)
	muPrime := fluid.MuPrime()
	laminar := EdgeConductivity(wi, wj, muPrime, jInCrack)
	if !fluid.Turbulent {
		return laminar
	}

	dp := (pj - pi) / h
	v, err := TurbulentVelocity(wEdge, dp, fluid.Rho, muPrime, fluid.GrainSize, 0)
	if err != nil || v == 0 {
		return laminar
	}
	re := fluid.Rho * math.Abs(v) * wEdge / muPrime
	f := material.FrictionFactor(re, fluid.GrainSize)
	cond := TurbulentConductivity(wEdge, fluid.Rho, f, v)
	if cond == 0 || math.IsNaN(cond) {
		return laminar
	}
	return cond
}

// AssembleLaplacian builds the sparse five-point flow operator L (§4.8.1)
// over idx (the active cell set), using w to evaluate edge conductivities
// and inCrack to zero edges crossing the front, and returns it as a dense
// matrix indexed in the order of idx. pPrev is the whole-grid pressure
// field from the previous Picard iteration (zero on the first call), used
// only to estimate the per-edge pressure gradient when fluid.Turbulent is
// set; it has no effect on the laminar closure.
func AssembleLaplacian(g *grid.Grid, idx []int, w []float64, fluid material.Fluid, inCrack []int, pPrev []float64) [][]float64 {
	pos := make(map[int]int, len(idx))
	for a, i := range idx {
		pos[i] = a
	}

	trip := new(la.Triplet)
	trip.Init(len(idx), len(idx), 5*len(idx))
	dense := la.MatAlloc(len(idx), len(idx))

	for a, i := range idx {
		n := g.Neighbors[i]
		var diag float64
		for _, dir := range []int{grid.Left, grid.Right} {
			j := n[dir]
			cond := edgeConductivity(fluid, w[i], w[j], inCrack[j] == 1 && j != i, pPrev[i], pPrev[j], g.Hx)
			diag -= cond / (g.Hx * g.Hx)
			if b, ok := pos[j]; ok && j != i {
				v := cond / (g.Hx * g.Hx)
				trip.Put(a, b, v)
				dense[a][b] += v
			}
		}
		for _, dir := range []int{grid.Bottom, grid.Up} {
			j := n[dir]
			cond := edgeConductivity(fluid, w[i], w[j], inCrack[j] == 1 && j != i, pPrev[i], pPrev[j], g.Hy)
			diag -= cond / (g.Hy * g.Hy)
			if b, ok := pos[j]; ok && j != i {
				v := cond / (g.Hy * g.Hy)
				trip.Put(a, b, v)
				dense[a][b] += v
			}
		}
		trip.Put(a, a, diag)
		dense[a][a] += diag
	}

	return dense
}
