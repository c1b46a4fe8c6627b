// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastmarching reinitializes the signed-distance field by solving
// the Eikonal equation |grad(phi)| = 1 on a narrow band around the front
// (§4.4), seeded by the ribbon-cell distances produced by the tip-asymptote
// inversion.
package fastmarching

import (
	"github.com/katalvlaran/lvlath/gridgraph"

	"github.com/cpmech/gofrac/grid"
)

// Band returns every cell reachable from seed within hops 8-connected steps,
// used to build the front region reinitialization is restricted to (roughly
// 2 diagonals out from the zero level). Built on a gridgraph.GridGraph
// over the mesh's cell-value layout so the multi-source expansion reuses the
// library's grid adjacency rather than hand-rolled neighbor bookkeeping.
func Band(g *grid.Grid, seed []int, hops int) []int {
	values := make([][]int, g.Ny)
	for j := range values {
		values[j] = make([]int, g.Nx)
	}
	for _, c := range seed {
		j, i := c/g.Nx, c%g.Nx
		values[j][i] = 1
	}

	opts := gridgraph.DefaultGridOptions()
	opts.Conn = gridgraph.Conn8
	gg, err := gridgraph.NewGridGraph(values, opts)
	if err != nil {
		// g is always non-empty and rectangular by construction (grid.New).
		panic(err)
	}

	depth := make([]int, g.NumCells)
	for i := range depth {
		depth[i] = -1
	}
	queue := make([]int, 0, len(seed))
	for _, c := range seed {
		depth[c] = 0
		queue = append(queue, c)
	}

	offsets := gg.NeighborOffsets()
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if depth[u] >= hops {
			continue
		}
		y0, x0 := u/g.Nx, u%g.Nx
		for _, d := range offsets {
			x, y := x0+d[0], y0+d[1]
			if !gg.InBounds(x, y) {
				continue
			}
			v := y*g.Nx + x
			if depth[v] != -1 {
				continue
			}
			depth[v] = depth[u] + 1
			queue = append(queue, v)
		}
	}

	band := make([]int, 0, len(queue))
	for c, d := range depth {
		if d >= 0 {
			band = append(band, c)
		}
	}
	return band
}
