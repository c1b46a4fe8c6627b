// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements the host-supplied closures the propagation
// engine samples during a step: toughness, confining stress, leak-off, and
// the fluid model (viscosity, density, compressibility, turbulence). These
// mirror a constitutive-model Init/GetPrms idiom, adapted from per-material
// elastoplastic constitutive laws to the scalar spatial closures a fracture
// simulator needs.
package material

import "math"

// scaledRoot2 is sqrt(32/pi), the factor the engine applies to convert a
// fracture toughness K_Ic into the scaled toughness K' used throughout the
// tip asymptotics (§GLOSSARY).
const scaledRoot2 = 3.1915382432114616 // math.Sqrt(32/math.Pi)

// Toughness supplies K_Ic either as a function of position (isotropic or
// spatially heterogeneous mode) or as a function of the local front angle
// (anisotropic mode). Exactly one of the two sampling conventions is used
// for a given Toughness value, indicated by Anisotropic.
type Toughness struct {
	Anisotropic bool
	byPosition  func(x, y float64) float64
	byAngle     func(alpha float64) float64
}

// NewIsotropicToughness returns a Toughness sampled at the tip/ribbon cell
// position, covering both the constant and spatially-varying (§4.7) cases.
func NewIsotropicToughness(kIc func(x, y float64) float64) Toughness {
	return Toughness{byPosition: kIc}
}

// NewConstantToughness is the common case of a single uniform K_Ic.
func NewConstantToughness(kIc float64) Toughness {
	return NewIsotropicToughness(func(x, y float64) float64 { return kIc })
}

// NewAnisotropicToughness returns a Toughness sampled by front angle alpha
// in [0, pi/2], for the anisotropic toughness-iteration mode of §4.7.
func NewAnisotropicToughness(kIc func(alpha float64) float64) Toughness {
	return Toughness{Anisotropic: true, byAngle: kIc}
}

// NewEllipticalToughness builds the classic anisotropy test closure
// (scenario 4): K_Ic(alpha) interpolating between kMin (propagation along
// the minor axis, alpha=0) and kMax (major axis, alpha=pi/2).
func NewEllipticalToughness(kMin, kMax float64) Toughness {
	return NewAnisotropicToughness(func(alpha float64) float64 {
		s := math.Sin(alpha)
		return math.Sqrt(kMin*kMin*(1-s*s) + kMax*kMax*s*s)
	})
}

// KIc samples the raw fracture toughness at a ribbon/tip cell, given its
// position and the local front angle.
func (t Toughness) KIc(x, y, alpha float64) float64 {
	if t.Anisotropic {
		return t.byAngle(alpha)
	}
	return t.byPosition(x, y)
}

// KPrime samples the scaled toughness K' = sqrt(32/pi) * K_Ic (§GLOSSARY).
func (t Toughness) KPrime(x, y, alpha float64) float64 {
	return scaledRoot2 * t.KIc(x, y, alpha)
}

// ConfiningStress supplies sigma0(x,y), sampled once per mesh at cell
// centers when a fracture is built on a new grid.
type ConfiningStress func(x, y float64) float64

// ConstantStress is the common uniform-stress closure.
func ConstantStress(sigma0 float64) ConfiningStress {
	return func(x, y float64) float64 { return sigma0 }
}

// StepInY builds the piecewise confining-stress closure of scenario 3: sigma0
// equals low below yLow, high above yHigh, and mid in between.
func StepInY(yLow, yHigh, low, mid, high float64) ConfiningStress {
	return func(x, y float64) float64 {
		switch {
		case y < yLow:
			return low
		case y > yHigh:
			return high
		default:
			return mid
		}
	}
}

// Leakoff supplies the Carter leak-off coefficient C(x,y); the engine uses
// the scaled coefficient C' = 2C.
type Leakoff func(x, y float64) float64

// NoLeakoff is the zero-leakoff closure.
func NoLeakoff(x, y float64) float64 { return 0 }

// ConstantLeakoff is a spatially-uniform leak-off coefficient.
func ConstantLeakoff(c float64) Leakoff {
	return func(x, y float64) float64 { return c }
}

// CPrime scales a raw Carter coefficient into the C' used by the tip
// asymptotics and flow operator.
func CPrime(l Leakoff, x, y float64) float64 {
	return 2 * l(x, y)
}

// Fluid holds the injected fluid's properties.
type Fluid struct {
	Mu        float64 // dynamic viscosity
	Rho       float64 // density
	Cf        float64 // compressibility
	Turbulent bool    // enable the turbulent flow operator (§4.8.2)
	GrainSize float64 // rock grain size, used for relative roughness in the turbulent closure
}

// MuPrime returns the scaled viscosity mu' = 12*mu used throughout the
// lubrication-flow operator.
func (f Fluid) MuPrime() float64 { return 12 * f.Mu }
