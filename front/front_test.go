// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package front

import (
	"math"
	"testing"

	"github.com/cpmech/gofrac/grid"
)

func radialSignedDist(g *grid.Grid, radius float64) []float64 {
	sd := make([]float64, g.NumCells)
	for i, c := range g.CenterCoor {
		sd[i] = math.Hypot(c[0], c[1]) - radius
	}
	return sd
}

func TestReconstructPartitionsCells(t *testing.T) {
	g := grid.New(1, 1, 15, 15, false)
	sd := radialSignedDist(g, 0.35)

	r, err := Reconstruct(g, sd)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if len(r.EltTip) == 0 {
		t.Fatalf("expected at least one tip cell")
	}
	if len(r.EltRibbon) == 0 {
		t.Fatalf("expected at least one ribbon cell")
	}
	for _, c := range r.EltTip {
		a := r.Alpha[c]
		if a < 0 || a > math.Pi/2+1e-9 {
			t.Fatalf("tip cell %d has alpha out of range: %v", c, a)
		}
		if r.L[c] < 0 {
			t.Fatalf("tip cell %d has negative l: %v", c, r.L[c])
		}
	}
}

func TestProjectorCoversRibbon(t *testing.T) {
	g := grid.New(1, 1, 21, 21, false)
	sd := radialSignedDist(g, 0.4)

	r, err := Reconstruct(g, sd)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	proj, err := NewProjector(g, r)
	if err != nil {
		t.Fatalf("NewProjector failed: %v", err)
	}

	trial := make(map[int]float64, len(r.EltRibbon))
	for _, c := range r.EltRibbon {
		trial[c] = sd[c]
	}
	angles, err := proj.Project(trial)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	for _, c := range r.EltRibbon {
		a, ok := angles[c]
		if !ok {
			t.Fatalf("missing projection for ribbon cell %d", c)
		}
		if a < 0 || a > math.Pi/2+1e-9 {
			t.Fatalf("ribbon cell %d projected to out-of-range angle %v", c, a)
		}
	}
}
