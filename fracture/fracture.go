// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fracture holds the evolving fracture state: width, net pressure,
// signed distance, and the channel/ribbon/tip partition of §3. A Fracture is
// created at t0 and is mutated only by producing a new Fracture on a
// successful step; the previous one is retained unmodified on failure.
package fracture

import "github.com/cpmech/gofrac/grid"

// Fracture is the evolving per-step state. It holds a reference to the Grid
// it was built on; the Grid itself never references a Fracture back, so
// remeshing simply attaches a new Grid to a new Fracture rather than
// requiring any fix-up on the Grid side (§9 design note on the state/grid
// reference).
type Fracture struct {
	Grid *grid.Grid

	W           []float64 // width per cell
	P           []float64 // net pressure per cell
	SignedDist  []float64 // level-set function; negative inside, positive outside
	DistLastTS  []float64 // signed distance at the previous time step, used by the tip asymptotics

	EltChannel []int // interior cells away from the front
	EltRibbon  []int // interior cells adjacent to the front
	EltTip     []int // cells the front crosses
	EltCrack   []int // EltChannel ∪ EltTip

	FillFrac   map[int]float64 // [tip cell] -> fractional area occupied by the crack
	Alpha      map[int]float64 // [tip cell] -> front angle in [0, pi/2]
	L          map[int]float64 // [tip cell] -> perpendicular distance from zero vertex to the front
	ZeroVertex map[int]int     // [tip cell] -> {0:BL,1:BR,2:TR,3:TL}
	Velocity   map[int]float64 // [tip cell] -> front-normal velocity
	Regime     map[int]float64 // [ribbon cell] -> saved regime indicator, populated only when saveRegime is set

	Time   float64
	Volume float64
}

// New allocates a zeroed Fracture over g, ready to be populated by an
// initial-condition constructor (external to this engine per §1 Non-goals).
func New(g *grid.Grid) *Fracture {
	return &Fracture{
		Grid:       g,
		W:          make([]float64, g.NumCells),
		P:          make([]float64, g.NumCells),
		SignedDist: make([]float64, g.NumCells),
		DistLastTS: make([]float64, g.NumCells),
		FillFrac:   make(map[int]float64),
		Alpha:      make(map[int]float64),
		L:          make(map[int]float64),
		ZeroVertex: make(map[int]int),
		Velocity:   make(map[int]float64),
		Regime:     make(map[int]float64),
	}
}

// Clone returns a deep copy, used by the time stepper to keep a checkpoint
// ring buffer (§4.9 step 3) without aliasing slices shared with the
// in-progress trial state.
func (f *Fracture) Clone() *Fracture {
	g2 := &Fracture{
		Grid:       f.Grid,
		W:          append([]float64(nil), f.W...),
		P:          append([]float64(nil), f.P...),
		SignedDist: append([]float64(nil), f.SignedDist...),
		DistLastTS: append([]float64(nil), f.DistLastTS...),
		EltChannel: append([]int(nil), f.EltChannel...),
		EltRibbon:  append([]int(nil), f.EltRibbon...),
		EltTip:     append([]int(nil), f.EltTip...),
		EltCrack:   append([]int(nil), f.EltCrack...),
		FillFrac:   cloneF(f.FillFrac),
		Alpha:      cloneF(f.Alpha),
		L:          cloneF(f.L),
		ZeroVertex: cloneI(f.ZeroVertex),
		Velocity:   cloneF(f.Velocity),
		Regime:     cloneF(f.Regime),
		Time:       f.Time,
		Volume:     f.Volume,
	}
	return g2
}

func cloneF(m map[int]float64) map[int]float64 {
	o := make(map[int]float64, len(m))
	for k, v := range m {
		o[k] = v
	}
	return o
}

func cloneI(m map[int]int) map[int]int {
	o := make(map[int]int, len(m))
	for k, v := range m {
		o[k] = v
	}
	return o
}

// InCrack returns a 0/1 indicator array over all cells, 1 for cells in
// EltCrack. Used by the flow operator to zero conductivities across the
// front (§4.8.1).
func (f *Fracture) InCrack() []int {
	ind := make([]int, f.Grid.NumCells)
	for _, e := range f.EltCrack {
		ind[e] = 1
	}
	return ind
}
