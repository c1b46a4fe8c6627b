// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"testing"

	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/grid"
)

func buildTestFracture() *fracture.Fracture {
	g := grid.New(1, 1, 5, 5, false)
	f := fracture.New(g)
	f.Time = 12.5
	f.Volume = 0.003
	f.W[0] = 1e-4
	f.P[0] = 5e6
	f.SignedDist[0] = -0.1
	f.EltChannel = []int{0, 1}
	f.EltTip = []int{2}
	f.EltCrack = []int{0, 1, 2}
	f.FillFrac[2] = 0.75
	f.Alpha[2] = 0.3
	f.L[2] = 0.05
	f.ZeroVertex[2] = grid.BL
	return f
}

func TestFromFractureRestoreRoundTrip(t *testing.T) {
	f := buildTestFracture()
	s := FromFracture(f)
	g2 := s.Restore()

	if g2.Time != f.Time || g2.Volume != f.Volume {
		t.Fatalf("scalar fields not preserved: got time=%v volume=%v", g2.Time, g2.Volume)
	}
	if g2.Grid.Nx != f.Grid.Nx || g2.Grid.Ny != f.Grid.Ny {
		t.Fatalf("grid parameters not preserved: got %dx%d", g2.Grid.Nx, g2.Grid.Ny)
	}
	if g2.W[0] != f.W[0] || g2.P[0] != f.P[0] {
		t.Fatalf("per-cell arrays not preserved")
	}
	if g2.FillFrac[2] != 0.75 || g2.Alpha[2] != 0.3 || g2.L[2] != 0.05 {
		t.Fatalf("tip-cell maps not preserved: %+v %+v %+v", g2.FillFrac, g2.Alpha, g2.L)
	}
	if g2.ZeroVertex[2] != grid.BL {
		t.Fatalf("ZeroVertex not preserved: %v", g2.ZeroVertex[2])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := buildTestFracture()
	s := FromFracture(f)

	Save(dir, "snap01", s)
	loaded := Load(dir, "snap01")

	if loaded.Time != s.Time || loaded.Volume != s.Volume {
		t.Fatalf("Save/Load did not preserve scalars: got %+v", loaded)
	}
	if loaded.Nx != s.Nx || loaded.Ny != s.Ny {
		t.Fatalf("Save/Load did not preserve grid dims: got %dx%d", loaded.Nx, loaded.Ny)
	}
	if len(loaded.FillFrac) != len(s.FillFrac) || loaded.FillFrac[2] != s.FillFrac[2] {
		t.Fatalf("Save/Load did not preserve FillFrac map: got %+v", loaded.FillFrac)
	}
}
