// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gofrac drives the propagation engine from a JSON configuration
// file to a final time, saving the fracture state at every successful step.
package main

import (
	"flag"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/engine"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/front"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gofrac/persist"
	"github.com/cpmech/gofrac/simlog"
	"github.com/cpmech/gofrac/stepper"
	"github.com/cpmech/gofrac/tipasymptote"
	"github.com/cpmech/gofrac/tipvolume"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	flag.Parse()
	if len(flag.Args()) == 0 {
		chk.Panic("Please, provide a configuration filename. Ex.: case.json")
	}
	fnamepath := flag.Arg(0)
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".json"
	}

	cfg := inp.ReadConfig(fnamepath)
	log := simlog.New(true)
	log.Stage("loaded configuration %q", cfg.Key)

	g := grid.New(cfg.Mesh.Lx, cfg.Mesh.Ly, cfg.Mesh.Nx, cfg.Mesh.Ny, cfg.Mesh.Symmetric)
	ela := elasticity.Build(g, cfg.Eprime)
	ctx := engine.NewContext(cfg, g)

	var state *fracture.Fracture
	if cfg.Restart != "" {
		state = persist.Load(cfg.DirOut, cfg.Restart).Restore()
		log.Stage("restarted from %q at t=%v", cfg.Restart, state.Time)
	} else {
		state = seedRadial(g, cfg.InitRadius, cfg.Eprime, ctx)
		log.Stage("seeded radial front at r=%v", cfg.InitRadius)
	}

	scfg := stepper.Config{
		TimeStepLimit:   cfg.TimeStepLimit,
		Prefactor:       cfg.Prefactor(),
		ReAttemptFactor: cfg.ReAttemptFactor,
		MaxReattempts:   cfg.MaxReattempts,
		RemeshFactor:    cfg.MeshExtensionFactor,
		Verbose:         true,
	}
	s := stepper.New(ctx.Advance, nil, g, ela, scfg)

	attempt := 0
	for state.Time < cfg.FinalTime {
		next, err := s.Step(state, stepper.MaxVelocity(state))
		if err != nil {
			log.Failure(err)
			chk.Panic("simulation failed at t=%v: %v", state.Time, err)
		}
		attempt++
		log.Step(next.Time, next.Time-state.Time, attempt)
		state = next
		persist.Save(cfg.DirOut, io.Sf("%s-%06d", cfg.Key, attempt), persist.FromFracture(state))
	}
	log.Success()
}

// seedRadial builds a toughness-dominated initial condition: a circular
// front of radius r0 centered at the origin, with channel widths from the
// closed-form K asymptote and tip cells filled from the K asymptote as well,
// whatever tip-asymptote mode is configured. This is host-level convenience for the CLI entry
// point, not part of the engine itself (initial-condition construction is
// left to the host per §1 Non-goals).
func seedRadial(g *grid.Grid, r0, eprime float64, ctx *engine.Context) *fracture.Fracture {
	sd := make([]float64, g.NumCells)
	for i, c := range g.CenterCoor {
		sd[i] = math.Hypot(c[0], c[1]) - r0
	}
	recon, err := front.Reconstruct(g, sd)
	if err != nil {
		chk.Panic("seedRadial: %v", err)
	}

	f := fracture.New(g)
	f.SignedDist = sd
	f.DistLastTS = append([]float64(nil), sd...)
	f.EltChannel = recon.EltChannel
	f.EltRibbon = recon.EltRibbon
	f.EltTip = recon.EltTip
	f.EltCrack = recon.EltCrack()
	f.Alpha = recon.Alpha
	f.L = recon.L
	f.ZeroVertex = recon.ZeroVertex

	p := tipasymptote.Params{Kprime: ctx.Toughness.KPrime(0, 0, 0), Eprime: eprime}
	for _, c := range f.EltChannel {
		s := -sd[c]
		f.W[c] = p.Kprime / p.Eprime * math.Sqrt(s)
	}
	for _, c := range f.EltTip {
		alpha, l := recon.Alpha[c], recon.L[c]
		ff, ferr := tipvolume.FillFraction(alpha, l, g.Hx, g.Hy)
		if ferr != nil {
			chk.Panic("seedRadial: %v", ferr)
		}
		f.FillFrac[c] = ff
		w, werr := tipvolume.AverageWidth(tipasymptote.K, alpha, l, g.Hx, g.Hy, p)
		if werr != nil {
			chk.Panic("seedRadial: %v", werr)
		}
		f.W[c] = w
	}
	return f
}
