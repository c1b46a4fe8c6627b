// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elasticity builds the dense influence matrix C mapping fracture
// width to net pressure over an infinite plane-strain medium (§4.2), and
// implements the reversible tip-diagonal correction applied before each EHD
// assembly.
package elasticity

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofrac/grid"
)

// Matrix is the dense elasticity influence matrix p = C*w + sigma0 over the
// full grid. Rows/columns are indexed by cell id.
type Matrix struct {
	C  [][]float64
	Ep float64 // plane-strain modulus
}

// Build assembles C for the full (non-symmetric) grid using the closed-form
// rectangular-patch plane-strain kernel (§4.2).
func Build(g *grid.Grid, Ep float64) *Matrix {
	n := g.NumCells
	C := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		xi, yi := g.CenterCoor[i][0], g.CenterCoor[i][1]
		for j := 0; j < n; j++ {
			xj, yj := g.CenterCoor[j][0], g.CenterCoor[j][1]
			C[i][j] = influence(xi-xj, yi-yj, g.Hx, g.Hy, Ep)
		}
	}
	return &Matrix{C: C, Ep: Ep}
}

// influence evaluates the net-pressure response at a field point offset
// (dx,dy) from a unit-width rectangular patch of size hx*hy, using the
// closed-form plane-strain solution for a uniformly pressurized rectangular
// crack element (the standard displacement-discontinuity kernel; no singular
// integration is performed at assembly time, matching §4.2).
func influence(dx, dy, hx, hy, Ep float64) float64 {
	a, b := hx/2, hy/2
	// closed-form displacement-discontinuity kernel (Crouch & Starfield
	// rectangular patch), evaluated as the four corner differences of a
	// potential function phi.
	phi := func(x, y float64) float64 {
		r := math.Hypot(x, y)
		if r < 1e-12 {
			return 0
		}
		var t1 float64
		if math.Abs(x) > 1e-12 {
			t1 = y * math.Log(r)
		}
		t2 := x * math.Atan2(y, x)
		return t1 + t2 - r
	}
	k := Ep / (4 * math.Pi)
	val := phi(dx+a, dy+b) - phi(dx+a, dy-b) - phi(dx-a, dy+b) + phi(dx-a, dy-b)
	return k * val / (a * b)
}

// ApplyTipCorrection rescales the diagonal of C for each tip cell according
// to its fill fraction (§4.2): C[e][e] *= 1 + a_e*pi/4, with a_e =
// (1-r_e)/r_e, r_e = max(F_e - 0.25, 0.1). The returned Guard restores the
// original diagonal entries on Release, guaranteeing the mutation is
// reverted on every path including a failed assembly (§5, §7).
type Guard struct {
	m        *Matrix
	indices  []int
	original []float64
}

// ApplyTipCorrection mutates m's diagonal in place and returns a Guard; call
// Release (ideally via defer) to restore it.
func (m *Matrix) ApplyTipCorrection(fillFrac map[int]float64) *Guard {
	g := &Guard{m: m}
	for e, F := range fillFrac {
		r := F - 0.25
		if r < 0.1 {
			r = 0.1
		}
		a := (1 - r) / r
		g.indices = append(g.indices, e)
		g.original = append(g.original, m.C[e][e])
		m.C[e][e] *= 1 + a*math.Pi/4
	}
	return g
}

// Release restores the diagonal entries mutated by ApplyTipCorrection. It is
// idempotent and safe to call multiple times.
func (g *Guard) Release() {
	if g == nil || g.m == nil {
		return
	}
	for i, e := range g.indices {
		g.m.C[e][e] = g.original[i]
	}
	g.m = nil
}

// Mul evaluates p = C*w + sigma0 restricted to the index set idx (usually
// EltCrack), used by the assembly stages of the EHD solver.
func (m *Matrix) Mul(idx []int, w, sigma0 []float64) []float64 {
	p := make([]float64, len(idx))
	for a, i := range idx {
		sum := sigma0[i]
		row := m.C[i]
		for _, j := range idx {
			sum += row[j] * w[j]
		}
		p[a] = sum
	}
	return p
}

// Sub extracts the dense block C[rows,cols] as a standalone matrix, mirroring
// the `C[np.ix_(rows, cols)]` slicing idiom used throughout the original
// EHD assembly.
func (m *Matrix) Sub(rows, cols []int) [][]float64 {
	out := la.MatAlloc(len(rows), len(cols))
	for a, i := range rows {
		for b, j := range cols {
			out[a][b] = m.C[i][j]
		}
	}
	return out
}

// Scale multiplies every entry of C by s. Remeshing by a factor of 2 is
// equivalent to Scale(0.5) (§4.9 step 2: "C /= 2"); stepper's remesh builds
// a new Matrix on the coarsened grid with Build instead of calling Scale.
func (m *Matrix) Scale(s float64) {
	for i := range m.C {
		for j := range m.C[i] {
			m.C[i][j] *= s
		}
	}
}
