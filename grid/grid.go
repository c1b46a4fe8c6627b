// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the uniform Cartesian background mesh the
// propagation engine advances a fracture footprint over: cell/vertex
// topology, neighbor lookup, point location, and the optional quarter-plane
// symmetry reduction of §4.1.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// vertex ordering within a cell, matching the {BL, BR, TR, TL} convention
const (
	BL = 0
	BR = 1
	TR = 2
	TL = 3
)

// neighbor ordering within a cell, matching the {left, right, bottom, up} convention
const (
	Left = 0
	Right = 1
	Bottom = 2
	Up = 3
)

// None marks the absence of a located cell.
const None = -1

// Grid is the immutable uniform rectangular mesh. A Grid never mutates after
// New or Remesh return; a Fracture's state arrays are indexed views over a
// Grid's cells and are never stored inside it (see package fracture).
type Grid struct {
	Lx, Ly float64 // half-extents: domain is [-Lx,Lx] x [-Ly,Ly]
	Nx, Ny int     // number of cells in x and y (always odd)
	Hx, Hy float64 // cell spacing
	Area   float64 // cell area Hx*Hy

	NumCells    int         // Nx*Ny
	CenterCoor  [][2]float64 // [cell][x,y] cell-center coordinates
	VertexCoor  [][2]float64 // [vertex][x,y] coordinates of the grid vertices
	Connectivity [][4]int    // [cell][BL,BR,TR,TL] -> vertex index
	Neighbors    [][4]int    // [cell][Left,Right,Bottom,Up] -> cell index (self at the boundary)
	DistCenter   []float64   // distance of each cell center from the origin
	CenterCell   int         // index of the single cell hosting the origin

	// Symmetric folding, populated only when symmetric mode is requested.
	Symmetric bool
	Fold      []Fold // [cell] -> canonical representative + multiplicity weight; nil unless Symmetric
}

// Fold is the symmetric-folding record for one cell: its canonical
// quadrant representative and the multiplicity weight {1,2,4} used when
// summing contributions folded onto that representative.
type Fold struct {
	Canonical int
	Weight    float64
}

// New builds a uniform Cartesian mesh centered at the origin with half
// extents Lx, Ly. Even cell counts are incremented by one so the origin
// always falls at a cell center, matching the injection-model invariant.
func New(Lx, Ly float64, nx, ny int, symmetric bool) *Grid {
	if nx%2 == 0 {
		nx++
	}
	if ny%2 == 0 {
		ny++
	}

	g := &Grid{Lx: Lx, Ly: Ly, Nx: nx, Ny: ny}
	g.Hx = 2 * Lx / float64(nx-1)
	g.Hy = 2 * Ly / float64(ny-1)
	g.Area = g.Hx * g.Hy
	g.NumCells = nx * ny

	nvx, nvy := nx+1, ny+1
	g.VertexCoor = make([][2]float64, nvx*nvy)
	for j := 0; j < nvy; j++ {
		y := -Ly - g.Hy/2 + float64(j)*g.Hy
		for i := 0; i < nvx; i++ {
			x := -Lx - g.Hx/2 + float64(i)*g.Hx
			g.VertexCoor[i+j*nvx] = [2]float64{x, y}
		}
	}

	g.Connectivity = make([][4]int, g.NumCells)
	g.CenterCoor = make([][2]float64, g.NumCells)
	g.DistCenter = make([]float64, g.NumCells)
	k := 0
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v0 := i + j*nvx
			v1 := (i + 1) + j*nvx
			v2 := (i + 1) + (j+1)*nvx
			v3 := i + (j+1)*nvx
			g.Connectivity[k] = [4]int{v0, v1, v2, v3}
			var cx, cy float64
			for _, v := range g.Connectivity[k] {
				cx += g.VertexCoor[v][0]
				cy += g.VertexCoor[v][1]
			}
			cx /= 4
			cy /= 4
			g.CenterCoor[k] = [2]float64{cx, cy}
			g.DistCenter[k] = math.Hypot(cx, cy)
			k++
		}
	}

	g.Neighbors = make([][4]int, g.NumCells)
	for i := 0; i < g.NumCells; i++ {
		g.Neighbors[i] = g.neighborsOf(i)
	}

	g.CenterCell = None
	for i, c := range g.CenterCoor {
		if math.Abs(c[0]) < g.Hx/2 && math.Abs(c[1]) < g.Hy/2 {
			if g.CenterCell != None {
				chk.Panic("grid: more than one candidate center cell found; mesh is not centered at the origin")
			}
			g.CenterCell = i
		}
	}
	if g.CenterCell == None {
		chk.Panic("grid: no center cell found; mesh has no injection host")
	}

	if symmetric {
		g.Symmetric = true
		g.Fold = buildFold(g)
	}

	return g
}

// neighborsOf returns the {left,right,bottom,up} neighbor indices of cell
// elem, with boundary cells returning themselves as their own neighbor. This
// self-loop sentinel is exploited by the flow operator to enforce no-flux
// boundaries without special-casing cells at the grid edge.
func (g *Grid) neighborsOf(elem int) [4]int {
	j := elem / g.Nx
	i := elem % g.Nx

	left, right, bottom, up := elem, elem, elem, elem
	if i > 0 {
		left = j*g.Nx + i - 1
	}
	if i < g.Nx-1 {
		right = j*g.Nx + i + 1
	}
	if j > 0 {
		bottom = (j-1)*g.Nx + i
	}
	if j < g.Ny-1 {
		up = (j+1)*g.Nx + i
	}
	return [4]int{left, right, bottom, up}
}

// Locate returns the cell index containing (x,y), or None if outside the
// grid. Implemented in O(1) via floor division since the mesh is uniform.
func (g *Grid) Locate(x, y float64) int {
	i := int(math.Round((x + g.Lx) / g.Hx))
	j := int(math.Round((y + g.Ly) / g.Hy))
	if i < 0 || i >= g.Nx || j < 0 || j >= g.Ny {
		return None
	}
	elem := j*g.Nx + i
	if math.Abs(g.CenterCoor[elem][0]-x) > g.Hx/2+1e-10 || math.Abs(g.CenterCoor[elem][1]-y) > g.Hy/2+1e-10 {
		return None
	}
	return elem
}

// OnBoundary reports whether cell i has at least one self-loop neighbor,
// i.e. touches the edge of the grid.
func (g *Grid) OnBoundary(i int) bool {
	n := g.Neighbors[i]
	return n[Left] == i || n[Right] == i || n[Bottom] == i || n[Up] == i
}

// Remesh returns a new Grid covering [-factor*Lx,factor*Lx] x
// [-factor*Ly,factor*Ly] with the same cell counts, used when the front
// reaches the grid edge (status.ReachedEnd, §4.9 step 2).
func (g *Grid) Remesh(factor float64) *Grid {
	return New(g.Lx*factor, g.Ly*factor, g.Nx, g.Ny, g.Symmetric)
}
