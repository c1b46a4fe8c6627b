package engine

import (
	"math"
	"testing"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/front"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gofrac/material"
	"github.com/cpmech/gofrac/tipasymptote"
	"github.com/cpmech/gofrac/tipvolume"
)

// seedCircularFracture builds a toughness-dominated (K-mode) initial state
// by reconstructing the footprint of a circle of radius r0 and filling
// widths from the closed-form K asymptote, the way a host would seed an
// initial condition before handing control to the propagation engine.
func seedCircularFracture(t *testing.T, g *grid.Grid, r0 float64, kprime, eprime float64) *fracture.Fracture {
	t.Helper()
	sd := make([]float64, g.NumCells)
	for i, c := range g.CenterCoor {
		sd[i] = math.Hypot(c[0], c[1]) - r0
	}
	recon, err := front.Reconstruct(g, sd)
	if err != nil {
		t.Fatalf("seed Reconstruct failed: %v", err)
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

	p := tipasymptote.Params{Kprime: kprime, Eprime: eprime}
	for _, c := range f.EltChannel {
		s := -sd[c]
		f.W[c] = kprime / eprime * math.Sqrt(s)
	}
	for _, c := range f.EltTip {
		alpha, l := recon.Alpha[c], recon.L[c]
		ff, ferr := tipvolume.FillFraction(alpha, l, g.Hx, g.Hy)
		if ferr != nil {
			t.Fatalf("seed FillFraction failed: %v", ferr)
		}
		f.FillFrac[c] = ff
		w, werr := tipvolume.AverageWidth(tipasymptote.K, alpha, l, g.Hx, g.Hy, p)
		if werr != nil {
			t.Fatalf("seed AverageWidth failed: %v", werr)
		}
		f.W[c] = w
	}
	return f
}

func TestAdvanceVolumeControlStructural(t *testing.T) {
	g := grid.New(1, 1, 15, 15, false)
	eprime := 1e10
	kIc := 1e6
	kprime := math.Sqrt(32/math.Pi) * kIc

	state := seedCircularFracture(t, g, 4*g.Hx, kprime, eprime)
	ela := elasticity.Build(g, eprime)

	ctx := &Context{
		Toughness:       material.NewConstantToughness(kIc),
		Sigma:           material.ConstantStress(0),
		Leak:            material.NoLeakoff,
		Fluid:           material.Fluid{Mu: 1e-3, Rho: 1000, Cf: 0},
		Injection:       inp.InjectionData{Times: []float64{0}, Rates: []float64{1e-3}, X0: 0, Y0: 0},
		Mode:            inp.VolumeControl,
		FrontAdvancing:  inp.Implicit,
		TipMode:         tipasymptote.K,
		MaxFrontItr:     15,
		TolFractFront:   1e-2,
		MaxToughnessItr: 10,
		TolToughness:    1e-2,
		MaxSolverItrs:   50,
		TolEHD:          1e-6,
	}

	next, err := ctx.Advance(state, g, ela, 0.01)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if next.Time != state.Time+0.01 {
		t.Fatalf("Time = %v, want %v", next.Time, state.Time+0.01)
	}
	if len(next.EltCrack) == 0 {
		t.Fatalf("expected a non-empty crack footprint after advancing")
	}
	for _, c := range next.EltChannel {
		if math.IsNaN(next.W[c]) || next.W[c] < 0 {
			t.Fatalf("channel cell %d has invalid width %v", c, next.W[c])
		}
	}
}

func TestAdvanceRejectsEmptyRibbon(t *testing.T) {
	g := grid.New(1, 1, 9, 9, false)
	ela := elasticity.Build(g, 1e10)
	state := fracture.New(g)

	ctx := &Context{Toughness: material.NewConstantToughness(1e6), Sigma: material.ConstantStress(0),
		Leak: material.NoLeakoff, Fluid: material.Fluid{Mu: 1e-3}, Mode: inp.VolumeControl,
		FrontAdvancing: inp.Implicit, TipMode: tipasymptote.K, MaxFrontItr: 5, TolFractFront: 1e-2}

	if _, err := ctx.Advance(state, g, ela, 0.01); err == nil {
		t.Fatalf("expected an error when the incoming state has no ribbon cells")
	}
}
