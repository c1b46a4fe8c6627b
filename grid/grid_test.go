// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "testing"

func TestNewCentersOrigin(t *testing.T) {
	g := New(1.0, 1.0, 10, 10, false)
	if g.Nx%2 == 0 || g.Ny%2 == 0 {
		t.Fatalf("expected odd cell counts, got %d x %d", g.Nx, g.Ny)
	}
	c := g.CenterCoor[g.CenterCell]
	if c[0] != 0 || c[1] != 0 {
		t.Fatalf("center cell not at origin: %v", c)
	}
}

func TestNeighborsSelfLoopAtBoundary(t *testing.T) {
	g := New(1.0, 1.0, 5, 5, false)
	for i := 0; i < g.NumCells; i++ {
		if g.OnBoundary(i) {
			n := g.Neighbors[i]
			selfLoops := 0
			for _, nb := range n {
				if nb == i {
					selfLoops++
				}
			}
			if selfLoops == 0 {
				t.Fatalf("boundary cell %d has no self-loop neighbor", i)
			}
		}
	}
}

func TestLocate(t *testing.T) {
	g := New(1.0, 1.0, 5, 5, false)
	cell := g.Locate(0, 0)
	if cell != g.CenterCell {
		t.Fatalf("Locate(0,0) = %d, want center cell %d", cell, g.CenterCell)
	}
	if g.Locate(100, 100) != None {
		t.Fatalf("expected None outside the grid")
	}
}

func TestSymmetricFoldWeights(t *testing.T) {
	g := New(1.0, 1.0, 7, 7, true)
	total := 0.0
	seen := make(map[int]bool)
	for _, f := range g.Fold {
		if !seen[f.Canonical] {
			seen[f.Canonical] = true
			total += f.Weight
		}
	}
	if total != float64(g.NumCells) {
		t.Fatalf("fold weights sum to %v, want %d", total, g.NumCells)
	}
	if g.Fold[g.CenterCell].Weight != 1 {
		t.Fatalf("center cell weight = %v, want 1", g.Fold[g.CenterCell].Weight)
	}
}

func TestRemeshScalesExtents(t *testing.T) {
	g := New(1.0, 1.0, 5, 5, false)
	g2 := g.Remesh(2.0)
	if g2.Lx != 2*g.Lx || g2.Ly != 2*g.Ly {
		t.Fatalf("remesh did not scale extents: got %v,%v", g2.Lx, g2.Ly)
	}
	if g2.Nx != g.Nx || g2.Ny != g.Ny {
		t.Fatalf("remesh changed cell counts")
	}
}
