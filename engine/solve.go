package engine

import (
	"math"
	"sort"

	"github.com/cpmech/gofrac/ehd"
	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gofrac/material"
	"github.com/cpmech/gofrac/status"
	"github.com/cpmech/gofrac/tipasymptote"
)

// solveSystem dispatches to the volume-control or EHD assembly branch named
// by the configuration's solverMode (§4.8.4, §4.8.5); the dry-crack
// mechanical-loading branch reuses the EHD assembly with the flow and
// compressibility terms zeroed out, since §4.8.4's system degenerates
// exactly to a plain elasticity solve for a prescribed tip-width increment
// once dt=0 and c_f=0.
func (ctx *Context) solveSystem(g *grid.Grid, ela *elasticity.Matrix, state *fracture.Fracture, channel, tip []int, wTip map[int]float64, sourceCell int, q, dt float64, mechLoading bool) (*stepResult, error) {
	if ctx.Mode == inp.VolumeControl {
		return ctx.solveVolumeControl(g, ela, state, channel, tip, wTip, q, dt)
	}
	return ctx.solveEHD(g, ela, state, channel, tip, wTip, sourceCell, q, dt, mechLoading)
}

// solveVolumeControl assembles and solves the bordered system of §4.8.5,
// folding the tip-width coupling into Sigma0 as the package documents.
func (ctx *Context) solveVolumeControl(g *grid.Grid, ela *elasticity.Matrix, state *fracture.Fracture, channel, tip []int, wTip map[int]float64, q, dt float64) (*stepResult, error) {
	sigma0 := ctx.sigmaArray(g)

	Cct := ela.Sub(channel, tip)
	for a, i := range channel {
		for b, j := range tip {
			sigma0[i] += Cct[a][b] * wTip[j]
		}
	}

	var tipSum, tipSumN float64
	for _, v := range wTip {
		tipSum += v
	}
	for _, c := range state.EltTip {
		tipSumN += state.W[c]
	}

	leak := ctx.leakoffVolume(g, channel, tip, dt)

	in := ehd.VolumeControlInput{
		Channel:  channel,
		Sigma0:   sigma0,
		WPrev:    state.W,
		TipSum:   tipSum,
		TipSumN:  tipSumN,
		QdtOverA: q * dt / g.Area,
		Leakoff:  leak,
		Weight:   ctx.weight,
	}
	res, err := ehd.SolveVolumeControl(ela, in)
	if err != nil {
		return nil, err
	}
	return &stepResult{deltaW: res.DeltaW, pScalar: res.P, uniform: true}, nil
}

// solveEHD drives the outer Picard/hybrid-Newton iteration of §4.8.6 over
// the "deltaP" assembly of §4.8.4, with dt and c_f zeroed for the dry-crack
// mechanical-loading branch so the flow operator and storage term drop out.
// The loop still takes at least two passes in that branch, since the first
// pass has no previous pressure iterate to compare against.
//
// Channel cells whose solved width would fall below ctx.MinWidth are
// reclassified into the active-width-constraint set (§4.8.4): their width is
// clamped to ctx.MinWidth and the system is re-solved over the remaining
// free channel cells, repeating until no cell violates the constraint or the
// attempt budget is exhausted.
func (ctx *Context) solveEHD(g *grid.Grid, ela *elasticity.Matrix, state *fracture.Fracture, channel, tip []int, wTip map[int]float64, sourceCell int, q, dt float64, mechLoading bool) (*stepResult, error) {
	sigma0 := ctx.sigmaArray(g)
	leak := ctx.leakoffArray(g, dt)
	wTipFull := append([]float64(nil), state.W...)
	for _, c := range tip {
		wTipFull[c] = wTip[c]
	}
	inCrack := state.InCrack()
	for _, c := range append(append([]int{}, channel...), tip...) {
		inCrack[c] = 1
	}

	dtUsed, cfUsed := dt, ctx.Fluid.Cf
	if mechLoading {
		dtUsed, cfUsed = 0, 0
	}

	source := map[int]float64{}
	if sourceCell != grid.None {
		source[sourceCell] = q * dt / g.Area
	}

	var gravity []float64
	if ctx.Gravity {
		gravity = make([]float64, g.NumCells)
	}

	freeChannel := append([]int(nil), channel...)
	activeWC := make(map[int]bool)

	const maxConstraintAttempts = 5
	for attempt := 0; attempt < maxConstraintAttempts; attempt++ {
		activeIdx := make([]int, 0, len(activeWC))
		for c := range activeWC {
			activeIdx = append(activeIdx, c)
		}
		sort.Ints(activeIdx)

		wc := make([]float64, g.NumCells)
		for _, c := range activeIdx {
			wc[c] = ctx.MinWidth
		}

		prevP := make([]float64, g.NumCells)

		assemble := func(wk map[int]float64) (map[int]float64, map[int]float64, error) {
			wTotal := append([]float64(nil), state.W...)
			for i, d := range wk {
				wTotal[i] = state.W[i] + d
			}
			for _, c := range tip {
				wTotal[c] = wTip[c]
			}
			for _, c := range activeIdx {
				wTotal[c] = ctx.MinWidth
			}

			L := ehd.AssembleLaplacian(g, freeChannel, wTotal, ctx.Fluid, inCrack, prevP)
			whalf := make([]float64, len(freeChannel))
			for a, i := range freeChannel {
				whalf[a] = 0.5 * (state.W[i] + wTotal[i])
			}
			if ctx.Gravity {
				muPrime := ctx.Fluid.MuPrime()
				for _, i := range freeChannel {
					n := g.Neighbors[i]
					gravity[i] = ehd.GravityTerm(wTotal[n[grid.Up]], wTotal[n[grid.Bottom]], ctx.Fluid.Rho, ehd.GravityAccel, g.Hy, muPrime)
				}
			}

			in := ehd.Input{
				Channel:  freeChannel,
				ActiveWC: activeIdx,
				Tip:      tip,
				Sigma0:   sigma0,
				WPrev:    state.W,
				Wc:       wc,
				WTip:     wTipFull,
				Leakoff:  leak,
				Gravity:  gravity,
				L:        L,
				Dt:       dtUsed,
				Cf:       cfUsed,
				WHalf:    whalf,
				Source:   source,
				Weight:   ctx.weight,
			}
			res, err := ehd.Assemble(ela, in)
			if err != nil {
				return nil, nil, err
			}
			for i, p := range res.P {
				prevP[i] = p
			}
			return res.DeltaW, res.P, nil
		}

		w0 := make(map[int]float64, len(freeChannel))
		cfg := ehd.Config{MaxIter: ctx.MaxSolverItrs, TolEHD: ctx.TolEHD, Omega: 1, Hybrid: ctx.Hybrid, NewtonEvery: 3}
		outcome, err := ehd.Solve(freeChannel, w0, assemble, cfg)
		if err != nil {
			return nil, err
		}

		var violating []int
		for _, c := range freeChannel {
			if state.W[c]+outcome.W[c] < ctx.MinWidth {
				violating = append(violating, c)
			}
		}
		if len(violating) == 0 {
			deltaW := make(map[int]float64, len(outcome.W)+len(activeWC))
			for c, d := range outcome.W {
				deltaW[c] = d
			}
			for c := range activeWC {
				deltaW[c] = ctx.MinWidth - state.W[c]
			}
			return &stepResult{deltaW: deltaW, p: outcome.P}, nil
		}

		moved := false
		stillViolating := make(map[int]bool, len(violating))
		for _, c := range violating {
			stillViolating[c] = true
			if !activeWC[c] {
				activeWC[c] = true
				moved = true
			}
		}
		if !moved {
			return nil, status.New(status.EHDInvalid, "EHD solution has negative width that the active-width constraint could not resolve")
		}
		next := freeChannel[:0]
		for _, c := range freeChannel {
			if !stillViolating[c] {
				next = append(next, c)
			}
		}
		freeChannel = next
	}

	return nil, status.New(status.EHDInvalid, "EHD active-width constraint did not stabilize within the attempt budget")
}

func (ctx *Context) sigmaArray(g *grid.Grid) []float64 {
	out := make([]float64, g.NumCells)
	for i := range out {
		x, y := g.CenterCoor[i][0], g.CenterCoor[i][1]
		out[i] = ctx.Sigma(x, y)
	}
	return out
}

func (ctx *Context) leakoffArray(g *grid.Grid, dt float64) []float64 {
	out := make([]float64, g.NumCells)
	for i := range out {
		x, y := g.CenterCoor[i][0], g.CenterCoor[i][1]
		out[i] = material.CPrime(ctx.Leak, x, y) * dt * g.Area
	}
	return out
}

func (ctx *Context) leakoffVolume(g *grid.Grid, channel, tip []int, dt float64) float64 {
	var sum float64
	for _, c := range channel {
		x, y := g.CenterCoor[c][0], g.CenterCoor[c][1]
		sum += material.CPrime(ctx.Leak, x, y) * dt * g.Area * ctx.weight(c)
	}
	for _, c := range tip {
		x, y := g.CenterCoor[c][0], g.CenterCoor[c][1]
		sum += material.CPrime(ctx.Leak, x, y) * dt * g.Area * ctx.weight(c)
	}
	return sum
}

// buildPressure assembles the whole-grid pressure array from a solve
// result: the uniform volume-control pressure broadcast over EltCrack, or
// the EHD branch's per-channel-cell pressures with the tip cells' pressure
// forward-evaluated through the elasticity operator. Advance calls it after
// the tip correction has been released, so the uncorrected operator is used.
func (ctx *Context) buildPressure(g *grid.Grid, ela *elasticity.Matrix, state *fracture.Fracture, recon interface {
	EltCrack() []int
}, result *stepResult) []float64 {
	out := make([]float64, g.NumCells)
	crack := recon.EltCrack()
	if result.uniform {
		for _, c := range crack {
			out[c] = result.pScalar
		}
		return out
	}
	channelSet := make(map[int]bool, len(result.p))
	for c, p := range result.p {
		out[c] = p
		channelSet[c] = true
	}
	var tipOnly []int
	for _, c := range crack {
		if !channelSet[c] {
			tipOnly = append(tipOnly, c)
		}
	}
	if len(tipOnly) == 0 {
		return out
	}
	sigma0 := ctx.sigmaArray(g)
	vals := ela.Mul(tipOnly, state.W, sigma0)
	for i, c := range tipOnly {
		out[c] = vals[i]
	}
	return out
}

// computeRegime estimates, per ribbon cell, the saveRegime indicator
// 1-|aM-aU|/|aM-aK| of §6: aU is the local power-law exponent of the
// universal asymptote's width-vs-distance curve at the cell's current
// unsigned distance, recovered from two nearby evaluations of WidthAt.
func (ctx *Context) computeRegime(ribbon []int, signedDist []float64, paramsAt func(int) tipasymptote.Params) map[int]float64 {
	const aK, aM = 0.5, 2.0 / 3.0
	out := make(map[int]float64, len(ribbon))
	for _, c := range ribbon {
		s := math.Abs(signedDist[c])
		if s <= 0 {
			continue
		}
		p := paramsAt(c)
		w1, err1 := tipasymptote.WidthAt(tipasymptote.U, s, p)
		w2, err2 := tipasymptote.WidthAt(tipasymptote.U, s*1.001, p)
		if err1 != nil || err2 != nil || w1 <= 0 || w2 <= 0 {
			continue
		}
		aU := math.Log(w2/w1) / math.Log(1.001)
		out[c] = 1 - math.Abs(aM-aU)/math.Abs(aM-aK)
	}
	return out
}
