// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ehd

import (
	"math"
	"testing"
)

func TestEdgeConductivityZeroOutsideCrack(t *testing.T) {
	if c := EdgeConductivity(1e-3, 1e-3, 1e-3, false); c != 0 {
		t.Fatalf("EdgeConductivity = %v, want 0 outside the crack", c)
	}
}

func TestEdgeConductivityLaminar(t *testing.T) {
	w, mu := 2e-3, 1e-3
	c := EdgeConductivity(w, w, mu, true)
	want := w * w * w / mu
	if math.Abs(c-want) > 1e-15 {
		t.Fatalf("EdgeConductivity = %v, want %v", c, want)
	}
}

func TestTurbulentVelocityStagnantEdge(t *testing.T) {
	v, err := TurbulentVelocity(1e-7, 1e3, 1000, 1e-3, 1e-6, 0)
	if err != nil {
		t.Fatalf("TurbulentVelocity failed: %v", err)
	}
	if v != 0 {
		t.Fatalf("TurbulentVelocity = %v, want 0 for sub-micron width", v)
	}
}

func TestGravityTermSymmetricIsZero(t *testing.T) {
	g := GravityTerm(1e-3, 1e-3, 1000, 9.8, 0.01, 1e-3)
	if g != 0 {
		t.Fatalf("GravityTerm = %v, want 0 for equal widths", g)
	}
}
