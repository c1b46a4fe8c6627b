// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofrac/material"
)

// ClosureData describes a scalar field given either as a bare constant or
// as the name of a function in Config.Functions, evaluated as F(x, []float64{y})
// following the TimeSpace convention (first argument time-like, second
// space-like) used for every position-dependent load.
type ClosureData struct {
	Value float64 `json:"value"`
	Func  string  `json:"func"`
}

func (c ClosureData) resolve(functions FuncsData) func(x, y float64) float64 {
	if c.Func == "" {
		v := c.Value
		return func(x, y float64) float64 { return v }
	}
	f, err := functions.Get(c.Func)
	if err != nil {
		chk.Panic("ClosureData: %v", err)
	}
	return func(x, y float64) float64 { return f.F(x, []float64{y}) }
}

// ToughnessData configures material.Toughness: either a constant, a named
// spatial function, a named angular function (anisotropic mode), or the
// elliptical two-parameter shortcut of §8 scenario 4.
type ToughnessData struct {
	Anisotropic bool    `json:"anisotropic"`
	Value       float64 `json:"value"`
	Func        string  `json:"func"`
	KMin        float64 `json:"kMin"`
	KMax        float64 `json:"kMax"`
}

// Build resolves the toughness closure from the configuration.
func (t ToughnessData) Build(functions FuncsData) material.Toughness {
	switch {
	case t.KMin != 0 || t.KMax != 0:
		return material.NewEllipticalToughness(t.KMin, t.KMax)
	case t.Anisotropic:
		f, err := functions.Get(t.Func)
		if err != nil {
			chk.Panic("ToughnessData: %v", err)
		}
		return material.NewAnisotropicToughness(func(alpha float64) float64 { return f.F(alpha, nil) })
	case t.Func != "":
		f, err := functions.Get(t.Func)
		if err != nil {
			chk.Panic("ToughnessData: %v", err)
		}
		return material.NewIsotropicToughness(func(x, y float64) float64 { return f.F(x, []float64{y}) })
	default:
		return material.NewConstantToughness(t.Value)
	}
}

// MaterialData bundles the host-supplied closures of §6.
type MaterialData struct {
	Toughness       ToughnessData `json:"toughness"`
	ConfiningStress ClosureData   `json:"confiningStress"`
	Leakoff         ClosureData   `json:"leakoff"`
}

// ConfiningStressFunc resolves the in-situ stress closure.
func (m MaterialData) ConfiningStressFunc(functions FuncsData) material.ConfiningStress {
	return material.ConfiningStress(m.ConfiningStress.resolve(functions))
}

// LeakoffFunc resolves the leak-off closure, defaulting to zero.
func (m MaterialData) LeakoffFunc(functions FuncsData) material.Leakoff {
	return material.Leakoff(m.Leakoff.resolve(functions))
}

// FluidData configures material.Fluid.
type FluidData struct {
	Mu        float64 `json:"mu"`
	Rho       float64 `json:"rho"`
	Cf        float64 `json:"cf"`
	Turbulent bool    `json:"turbulent"`
	GrainSize float64 `json:"grainSize"`
}

// Build returns the material.Fluid described by this data.
func (f FluidData) Build() material.Fluid {
	return material.Fluid{Mu: f.Mu, Rho: f.Rho, Cf: f.Cf, Turbulent: f.Turbulent, GrainSize: f.GrainSize}
}
