// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// buildFold constructs the quarter-plane symmetric folding map: each of the
// four mirror images of a quadrant-interior cell maps to the same canonical
// representative with weight 4; cells on the positive x-axis or y-axis
// (excluding the center) fold in pairs with weight 2; the single center cell
// is its own representative with weight 1.
func buildFold(g *Grid) []Fold {
	fold := make([]Fold, g.NumCells)

	var quadrant, boundX, boundY []int
	for i, c := range g.CenterCoor {
		x, y := c[0], c[1]
		switch {
		case x > g.Hx/2 && y > g.Hy/2:
			quadrant = append(quadrant, i)
		case absf(y) < 1e-12 && x > g.Hx/2:
			boundX = append(boundX, i)
		case absf(x) < 1e-12 && y > g.Hy/2:
			boundY = append(boundY, i)
		}
	}

	canon := 0
	for _, i := range quadrant {
		for _, m := range mirrorSet(g, i) {
			fold[m] = Fold{Canonical: canon, Weight: 4}
		}
		canon++
	}
	for _, i := range boundX {
		for _, m := range mirrorSet(g, i) {
			fold[m] = Fold{Canonical: canon, Weight: 2}
		}
		canon++
	}
	for _, i := range boundY {
		for _, m := range mirrorSet(g, i) {
			fold[m] = Fold{Canonical: canon, Weight: 2}
		}
		canon++
	}
	fold[g.CenterCell] = Fold{Canonical: canon, Weight: 1}

	return fold
}

// mirrorSet returns the cell and its three mirror images about the x and y
// axes, in the fixed order [++, -+(y-flip), +-(x-flip), --].
func mirrorSet(g *Grid, elem int) [4]int {
	ix := elem % g.Nx
	iy := elem / g.Nx
	sx := g.Nx - ix - 1
	sy := g.Ny - iy - 1
	return [4]int{
		iy*g.Nx + ix,
		sy*g.Nx + ix,
		iy*g.Nx + sx,
		sy*g.Nx + sx,
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// NumRepresentatives returns the number of canonical representatives in the
// folded quadrant (including the boundary rows and the center cell).
func (g *Grid) NumRepresentatives() int {
	if !g.Symmetric {
		return g.NumCells
	}
	max := 0
	for _, f := range g.Fold {
		if f.Canonical > max {
			max = f.Canonical
		}
	}
	return max + 1
}
