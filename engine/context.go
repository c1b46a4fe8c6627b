// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine wires the leaf packages (tipasymptote, fastmarching,
// front, tipvolume, ehd, elasticity, symmetry) into the single coupled
// step of §2's data-flow diagram: same-footprint pre-solve, the front loop
// (tip inversion -> fast marching -> reconstruction -> tip volumes ->
// assemble/solve) iterated to fill-fraction convergence, with the
// toughness fixed-point loop of §4.7 nested inside every tip inversion via
// tipasymptote.ToughnessConfig's injected closures. A Context's Advance
// method is the stepper.AdvanceFunc a Stepper is built with.
package engine

import (
	"github.com/cpmech/gofrac/front"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gofrac/material"
	"github.com/cpmech/gofrac/symmetry"
	"github.com/cpmech/gofrac/tipasymptote"
)

// Context bundles every host-supplied closure and solver knob a step needs,
// resolved once from a Config rather than re-parsed on every Advance call.
type Context struct {
	Toughness material.Toughness
	Sigma     material.ConfiningStress
	Leak      material.Leakoff
	Fluid     material.Fluid
	Injection inp.InjectionData

	Mode           inp.SolverMode
	FrontAdvancing inp.FrontAdvancing
	TipMode        tipasymptote.Mode

	MaxFrontItr     int
	TolFractFront   float64
	MaxToughnessItr int
	TolToughness    float64
	MaxSolverItrs   int
	TolEHD          float64
	Hybrid          bool

	SaveRegime bool
	Gravity    bool    // adds the body-force RHS term of §4.8.3 to the EHD branch
	MinWidth   float64 // active-width-constraint clamp target Wc (§4.8.4)

	Reducer *symmetry.Reducer // nil unless the grid was built symmetric

	elasticModulus float64 // E', latched from the elasticity.Matrix of the current Advance call
}

// NewContext resolves a Config into the closures and knobs Advance needs.
func NewContext(cfg *inp.Config, g *grid.Grid) *Context {
	ctx := &Context{
		Toughness:       cfg.Material.Toughness.Build(cfg.Functions),
		Sigma:           cfg.Material.ConfiningStressFunc(cfg.Functions),
		Leak:            cfg.Material.LeakoffFunc(cfg.Functions),
		Fluid:           cfg.Fluid.Build(),
		Injection:       cfg.Injection,
		Mode:            cfg.SolverMode,
		FrontAdvancing:  cfg.FrontAdvancing,
		TipMode:         parseTipMode(cfg.TipAsymptote),
		MaxFrontItr:     cfg.MaxFrontItr,
		TolFractFront:   cfg.TolFractFront,
		MaxToughnessItr: cfg.MaxToughnessItr,
		TolToughness:    cfg.TolToughness,
		MaxSolverItrs:   cfg.MaxSolverItrs,
		TolEHD:          cfg.TolEHD,
		Hybrid:          cfg.ElastohydrSolver == inp.ImplicitNewton,
		SaveRegime:      cfg.SaveRegime,
		Gravity:         cfg.Gravity,
		MinWidth:        cfg.MinWidth,
	}
	if g.Symmetric {
		ctx.Reducer = symmetry.NewReducer(g)
	}
	return ctx
}

// parseTipMode maps the configuration's tipAsymptote string onto a Mode,
// defaulting to the universal asymptote when the name is not recognized.
func parseTipMode(name string) tipasymptote.Mode {
	switch name {
	case "K":
		return tipasymptote.K
	case "M":
		return tipasymptote.M
	case "Mt":
		return tipasymptote.Mt
	case "MK":
		return tipasymptote.MK
	default:
		return tipasymptote.U
	}
}

// weight returns the volume-balance multiplicity of a cell: 1 for a
// non-symmetric grid, or the fold multiplicity {1,2,4} of §4.1 otherwise.
func (ctx *Context) weight(cell int) float64 {
	if ctx.Reducer == nil {
		return 1
	}
	return ctx.Reducer.Weight(cell)
}

// projectorFrom builds a front.Projector over state's existing tip-cell
// geometry, used to project ribbon cells at every toughness-loop iteration
// of a step (the loop always projects onto the *previous*
// converged front, never onto the footprint it is in the middle of
// recomputing). Returns nil when the incoming state does not carry enough
// tip cells yet (e.g. the very first step after an externally-seeded
// initial condition with under 3 tip cells).
func projectorFrom(g *grid.Grid, eltTip []int, alpha, l map[int]float64, zeroVertex map[int]int) *front.Projector {
	if len(eltTip) < 3 {
		return nil
	}
	r := &front.Reconstruction{EltTip: eltTip, Alpha: alpha, L: l, ZeroVertex: zeroVertex}
	proj, err := front.NewProjector(g, r)
	if err != nil {
		return nil
	}
	return proj
}
