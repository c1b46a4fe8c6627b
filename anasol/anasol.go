// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anasol implements the closed-form radial propagation solutions
// used to check the engine's tip-asymptote regimes against their known
// self-similar limits: the toughness-dominated (K), viscosity-dominated
// (M), and leakoff-dominated viscosity (Mt) vertex solutions, plus the
// elliptical anisotropic-toughness aspect ratio. These play the same role
// as a reference-solution package validating a numerical solver against a
// known closed form, built from radial hydraulic-fracture scaling laws
// rather than 1D column/beam solutions.
package anasol

import "math"

// KRadius returns the fracture radius of the toughness-dominated (K vertex)
// self-similar solution at time t, given no leakoff.
//
//	R(t) = (3 E' Q t / (sqrt(2) pi K'))^(2/5)
func KRadius(Eprime, Kprime, Q, t float64) float64 {
	return math.Pow(3*Eprime*Q*t/(math.Sqrt2*math.Pi*Kprime), 2.0/5.0)
}

// KPressure returns the (uniform) net pressure of the K-vertex solution at
// time t.
//
//	p(t) = pi/8 * (pi K'^6 / (12 E' Q t))^(1/5)
func KPressure(Eprime, Kprime, Q, t float64) float64 {
	return math.Pi / 8 * math.Pow(math.Pi*math.Pow(Kprime, 6)/(12*Eprime*Q*t), 1.0/5.0)
}

// KTime returns the time at which the K-vertex solution reaches radius R,
// the inverse of KRadius.
func KTime(Eprime, Kprime, Q, R float64) float64 {
	return math.Sqrt2 * Kprime * math.Pi * math.Pow(R, 2.5) / (3 * Eprime * Q)
}

// MRadius returns the fracture radius of the viscosity-dominated (M vertex)
// self-similar solution at time t, given no leakoff and no toughness.
//
//	R(t) = 0.6976 E'^(1/9) Q^(1/3) t^(4/9) / muPrime^(1/9)
func MRadius(Eprime, muPrime, Q, t float64) float64 {
	return 0.6976 * math.Pow(Eprime, 1.0/9.0) * math.Pow(Q, 1.0/3.0) * math.Pow(t, 4.0/9.0) / math.Pow(muPrime, 1.0/9.0)
}

// MTime returns the time at which the M-vertex solution reaches radius R,
// the inverse of MRadius.
func MTime(Eprime, muPrime, Q, R float64) float64 {
	return 2.24846 * math.Pow(R, 9.0/4.0) * math.Pow(muPrime, 1.0/4.0) / (math.Pow(Eprime, 1.0/4.0) * math.Pow(Q, 3.0/4.0))
}

// MtRadius returns the fracture radius of the leakoff-dominated viscosity
// (M tilde vertex) self-similar solution at time t.
//
//	R(t) = sqrt(2 Q / C') t^(1/4) / pi
func MtRadius(Q, Cprime, t float64) float64 {
	return math.Sqrt(2*Q/Cprime) * math.Pow(t, 0.25) / math.Pi
}

// MtTime returns the time at which the Mt-vertex solution reaches radius R,
// the inverse of MtRadius.
func MtTime(Q, Cprime, R float64) float64 {
	return Cprime * Cprime * math.Pow(R, 4) * math.Pow(math.Pi, 4) / (4 * Q * Q)
}

// Efficiency returns the hydraulic efficiency, the fraction of injected
// volume retained in the crack rather than lost to leakoff: used to check
// scenario 2's Mt-regime prediction against the injected volume Q*t.
func Efficiency(crackVolume, injectedVolume float64) float64 {
	if injectedVolume == 0 {
		return 0
	}
	return crackVolume / injectedVolume
}

// EllipticalAspectRatio returns the long/short semi-axis ratio predicted for
// the anisotropic-toughness ellipse test (scenario 4): (kMax/kMin)^2.
func EllipticalAspectRatio(kMin, kMax float64) float64 {
	return (kMax / kMin) * (kMax / kMin)
}
