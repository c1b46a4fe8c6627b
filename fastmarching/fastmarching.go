// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastmarching

import (
	"container/heap"
	"math"

	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/status"
)

// Reinitialize solves the Eikonal equation over band, seeded by seed (signed
// distances at the ribbon cells, with the correct inside/outside sign already
// applied by the caller). Cells in band are partitioned into the inside and
// outside sub-regions by the sign of prevSignedDist, and each sub-region is
// marched independently so that the two signs never mix (§4.4). Cells outside
// band keep prevSignedDist unchanged.
func Reinitialize(g *grid.Grid, band []int, seed map[int]float64, prevSignedDist []float64) (map[int]float64, error) {
	inBand := make(map[int]bool, len(band))
	for _, c := range band {
		inBand[c] = true
	}

	sign := func(c int) int {
		if v, ok := seed[c]; ok {
			if v < 0 {
				return -1
			}
			return 1
		}
		if prevSignedDist[c] < 0 {
			return -1
		}
		return 1
	}

	var insideCells, outsideCells []int
	insideSeed := make(map[int]float64)
	outsideSeed := make(map[int]float64)
	for _, c := range band {
		if sign(c) < 0 {
			insideCells = append(insideCells, c)
		} else {
			outsideCells = append(outsideCells, c)
		}
	}
	for c, v := range seed {
		if v < 0 {
			insideSeed[c] = -v
		} else {
			outsideSeed[c] = v
		}
	}

	insideMag, err := march(g, insideCells, insideSeed)
	if err != nil {
		return nil, err
	}
	outsideMag, err := march(g, outsideCells, outsideSeed)
	if err != nil {
		return nil, err
	}

	out := make(map[int]float64, len(band))
	for c := range inBand {
		out[c] = prevSignedDist[c]
	}
	for c, m := range insideMag {
		out[c] = -m
	}
	for c, m := range outsideMag {
		out[c] = m
	}
	return out, nil
}

// march runs first-order upwind fast marching restricted to cells (all of
// the same sign sub-region), seeded by seed (non-negative magnitudes), and
// returns the converged magnitude at every cell in cells.
//
// The heap uses the "lazy decrease-key" strategy documented by lvlath's
// dijkstra package: stale duplicate entries are pushed instead of
// re-prioritized in place, and discarded on pop once the cell is already
// known.
func march(g *grid.Grid, cells []int, seed map[int]float64) (map[int]float64, error) {
	member := make(map[int]bool, len(cells))
	for _, c := range cells {
		member[c] = true
	}

	known := make(map[int]float64, len(cells))
	for c, v := range seed {
		known[c] = v
	}

	h := &trialHeap{}
	heap.Init(h)

	candidate := func(c int) (float64, bool) {
		n := g.Neighbors[c]
		ax, haveX := math.Inf(1), false
		if v, ok := known[n[grid.Left]]; ok && member[n[grid.Left]] {
			ax, haveX = v, true
		}
		if v, ok := known[n[grid.Right]]; ok && member[n[grid.Right]] {
			if !haveX || v < ax {
				ax, haveX = v, true
			}
		}
		ay, haveY := math.Inf(1), false
		if v, ok := known[n[grid.Bottom]]; ok && member[n[grid.Bottom]] {
			ay, haveY = v, true
		}
		if v, ok := known[n[grid.Up]]; ok && member[n[grid.Up]] {
			if !haveY || v < ay {
				ay, haveY = v, true
			}
		}
		if !haveX && !haveY {
			return 0, false
		}
		return solveQuad(ax, haveX, ay, haveY, g.Hx, g.Hy), true
	}

	for c := range known {
		for _, nb := range g.Neighbors[c] {
			if nb == c || known2Has(known, nb) || !member[nb] {
				continue
			}
			if v, ok := candidate(nb); ok {
				heap.Push(h, trialItem{cell: nb, val: v})
			}
		}
	}

	for h.Len() > 0 {
		it := heap.Pop(h).(trialItem)
		if _, ok := known[it.cell]; ok {
			continue // stale entry
		}
		known[it.cell] = it.val
		for _, nb := range g.Neighbors[it.cell] {
			if nb == it.cell || known2Has(known, nb) || !member[nb] {
				continue
			}
			if v, ok := candidate(nb); ok {
				heap.Push(h, trialItem{cell: nb, val: v})
			}
		}
	}

	for _, c := range cells {
		if _, ok := known[c]; !ok {
			return nil, status.New(status.InvalidLevelSet, "fast marching left cells unevaluated")
		}
	}
	return known, nil
}

func known2Has(known map[int]float64, c int) bool {
	_, ok := known[c]
	return ok
}

// solveQuad solves the first-order upwind Eikonal update
// (phi-ax)^2/hx^2 + (phi-ay)^2/hy^2 = 1 for phi given the known upwind
// neighbor values ax (x-direction) and ay (y-direction), falling back to the
// one-sided update when only one direction has a known neighbor, or when the
// quadratic root violates the upwind causality condition phi >= max(ax,ay).
func solveQuad(ax float64, haveX bool, ay float64, haveY bool, hx, hy float64) float64 {
	switch {
	case haveX && !haveY:
		return ax + hx
	case haveY && !haveX:
		return ay + hy
	}
	A := 1/(hx*hx) + 1/(hy*hy)
	B := -2 * (ax/(hx*hx) + ay/(hy*hy))
	C := ax*ax/(hx*hx) + ay*ay/(hy*hy) - 1
	disc := B*B - 4*A*C
	if disc < 0 {
		return math.Min(ax+hx, ay+hy)
	}
	phi := (-B + math.Sqrt(disc)) / (2 * A)
	if phi < math.Max(ax, ay) {
		return math.Min(ax+hx, ay+hy)
	}
	return phi
}

type trialItem struct {
	cell int
	val  float64
}

type trialHeap []trialItem

func (h trialHeap) Len() int            { return len(h) }
func (h trialHeap) Less(i, j int) bool  { return h[i].val < h[j].val }
func (h trialHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *trialHeap) Push(x interface{}) { *h = append(*h, x.(trialItem)) }
func (h *trialHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
