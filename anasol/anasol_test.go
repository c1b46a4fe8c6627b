// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anasol

import (
	"math"
	"testing"
)

func within(got, want, tol float64) bool {
	return math.Abs(got-want)/math.Abs(want) <= tol
}

func TestKRadiusMatchesScenario1(t *testing.T) {
	Eprime := 3.93e10
	Kprime := 5 * math.Sqrt(32/math.Pi) * 1e6
	Q := 0.001
	tt := 1e4
	R := KRadius(Eprime, Kprime, Q, tt)
	if !within(R, 25.9, 0.03) {
		t.Fatalf("KRadius = %v, want ~25.9 within 3%%", R)
	}
}

func TestKRadiusKTimeRoundTrip(t *testing.T) {
	Eprime, Kprime, Q := 3.93e10, 9.27e6, 0.001
	R := KRadius(Eprime, Kprime, Q, 1e4)
	tt := KTime(Eprime, Kprime, Q, R)
	if !within(tt, 1e4, 1e-9) {
		t.Fatalf("KTime(KRadius(t)) = %v, want 1e4", tt)
	}
}

func TestKPressureUniformPositive(t *testing.T) {
	p := KPressure(3.93e10, 9.27e6, 0.001, 1e4)
	if p <= 0 {
		t.Fatalf("KPressure = %v, want > 0", p)
	}
}

func TestMRadiusScalesAsT4over9(t *testing.T) {
	Eprime, muPrime, Q := 3.93e10, 0.001, 0.01
	r1 := MRadius(Eprime, muPrime, Q, 1e6)
	r2 := MRadius(Eprime, muPrime, Q, 1e6*16) // 2^4 in t -> 2^(16/9) in R
	ratio := r2 / r1
	want := math.Pow(16, 4.0/9.0)
	if !within(ratio, want, 1e-9) {
		t.Fatalf("M-regime scaling ratio = %v, want %v", ratio, want)
	}
}

func TestMRadiusMTimeRoundTrip(t *testing.T) {
	Eprime, muPrime, Q := 3.93e10, 0.001, 0.01
	R := MRadius(Eprime, muPrime, Q, 5e7)
	tt := MTime(Eprime, muPrime, Q, R)
	if !within(tt, 5e7, 1e-6) {
		t.Fatalf("MTime(MRadius(t)) = %v, want 5e7", tt)
	}
}

func TestMtRadiusMtTimeRoundTrip(t *testing.T) {
	Q, Cprime := 0.01, 1e-6
	R := MtRadius(Q, Cprime, 1e8)
	tt := MtTime(Q, Cprime, R)
	if !within(tt, 1e8, 1e-9) {
		t.Fatalf("MtTime(MtRadius(t)) = %v, want 1e8", tt)
	}
}

func TestEfficiencyZeroInjectionIsZero(t *testing.T) {
	if e := Efficiency(5, 0); e != 0 {
		t.Fatalf("Efficiency with zero injection = %v, want 0", e)
	}
}

func TestEllipticalAspectRatioMatchesScenario4(t *testing.T) {
	ratio := EllipticalAspectRatio(1e6, 1.32e6)
	if !within(ratio, 1.74, 0.05) {
		t.Fatalf("EllipticalAspectRatio = %v, want ~1.74 within 5%%", ratio)
	}
}
