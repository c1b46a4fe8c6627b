// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package front reconstructs the fracture footprint from a reinitialized
// signed-distance field (§4.5) and projects ribbon cells onto the resulting
// piecewise-linear front polygon for the toughness iteration (§4.7.1).
package front

import (
	"math"

	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/status"
)

// xNeighbor and yNeighbor give, for each vertex corner, the corner reached by
// walking along the cell's x-edge and y-edge away from it.
var xNeighbor = [4]int{grid.BR, grid.BL, grid.TL, grid.TR}
var yNeighbor = [4]int{grid.TL, grid.TR, grid.BR, grid.BL}

// xSign and ySign give the direction (in global coordinates) of that walk
// for each corner, used to place the perpendicular-intersection point.
var xSign = [4]float64{1, -1, -1, 1}
var ySign = [4]float64{1, 1, -1, -1}

// Reconstruction is the partitioned footprint produced by Reconstruct.
type Reconstruction struct {
	EltChannel []int
	EltRibbon  []int
	EltTip     []int

	Alpha      map[int]float64
	L          map[int]float64
	ZeroVertex map[int]int
}

// Reconstruct classifies every cell from its (vertex-interpolated) signed
// distance and computes the tip geometry (ZeroVertex, Alpha, L) of §4.5.
// Vertex values are not stored directly: each corner value is the average
// of the signed distance over the (up to four) cells incident to that
// corner, reusing the grid's boundary self-loop convention so edge cells
// are not special-cased.
func Reconstruct(g *grid.Grid, signedDist []float64) (*Reconstruction, error) {
	r := &Reconstruction{
		Alpha:      make(map[int]float64),
		L:          make(map[int]float64),
		ZeroVertex: make(map[int]int),
	}

	for c := 0; c < g.NumCells; c++ {
		vals := vertexValues(g, signedDist, c)

		neg, pos := 0, 0
		zv, worst := 0, math.Inf(1)
		for k, v := range vals {
			if v < 0 {
				neg++
			} else {
				pos++
			}
			if v < worst {
				worst, zv = v, k
			}
		}

		switch {
		case neg == 4:
			r.EltChannel = append(r.EltChannel, c)
			continue
		case pos == 4:
			continue // exterior, not part of the crack
		}

		if g.OnBoundary(c) {
			return nil, status.New(status.ReachedEnd, "front reached the edge of the grid")
		}

		xi, yi := xNeighbor[zv], yNeighbor[zv]
		dx := (vals[xi] - vals[zv]) * xSign[zv]
		dy := (vals[yi] - vals[zv]) * ySign[zv]
		gx, gy := dx/g.Hx, dy/g.Hy
		norm := math.Hypot(gx, gy)
		if norm < 1e-14 {
			return nil, status.New(status.FrontUntracked, "degenerate level-set gradient at tip cell")
		}
		l := -vals[zv] / norm
		alpha := math.Atan2(math.Abs(gy), math.Abs(gx))
		if math.IsNaN(l) || math.IsNaN(alpha) || l < 0 || alpha < 0 || alpha > math.Pi/2+1e-9 {
			return nil, status.New(status.FrontUntracked, "invalid tip angle or perpendicular distance")
		}

		r.EltTip = append(r.EltTip, c)
		r.ZeroVertex[c] = zv
		r.Alpha[c] = alpha
		r.L[c] = l
	}

	tipSet := make(map[int]bool, len(r.EltTip))
	for _, c := range r.EltTip {
		tipSet[c] = true
	}
	for _, c := range r.EltChannel {
		for _, nb := range g.Neighbors[c] {
			if nb != c && tipSet[nb] {
				r.EltRibbon = append(r.EltRibbon, c)
				break
			}
		}
	}

	return r, nil
}

// EltCrack returns EltChannel ∪ EltTip.
func (r *Reconstruction) EltCrack() []int {
	out := make([]int, 0, len(r.EltChannel)+len(r.EltTip))
	out = append(out, r.EltChannel...)
	out = append(out, r.EltTip...)
	return out
}

func vertexValues(g *grid.Grid, signedDist []float64, c int) [4]float64 {
	n := g.Neighbors[c]
	left, right, bottom, up := n[grid.Left], n[grid.Right], n[grid.Bottom], n[grid.Up]

	avg := func(cells ...int) float64 {
		var sum float64
		for _, e := range cells {
			sum += signedDist[e]
		}
		return sum / float64(len(cells))
	}

	return [4]float64{
		avg(c, left, bottom, g.Neighbors[left][grid.Bottom]),  // BL
		avg(c, right, bottom, g.Neighbors[right][grid.Bottom]), // BR
		avg(c, right, up, g.Neighbors[right][grid.Up]),         // TR
		avg(c, left, up, g.Neighbors[left][grid.Up]),           // TL
	}
}
