package engine

import (
	"math"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/fastmarching"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/front"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gofrac/material"
	"github.com/cpmech/gofrac/status"
	"github.com/cpmech/gofrac/tipasymptote"
	"github.com/cpmech/gofrac/tipvolume"
)

// stepResult is the outcome of one assemble+solve call within the front
// loop, in the common shape both solver branches (§4.8.4, §4.8.5) produce.
type stepResult struct {
	deltaW  map[int]float64
	p       map[int]float64 // per-channel-cell pressure; unset (nil) when uniform
	pScalar float64         // the single volume-control pressure; used when uniform
	uniform bool
}

// Advance performs one full coupled step per §2's data-flow diagram and
// implements stepper.AdvanceFunc.
func (ctx *Context) Advance(state *fracture.Fracture, g *grid.Grid, ela *elasticity.Matrix, dt float64) (*fracture.Fracture, error) {
	if len(state.EltRibbon) == 0 {
		return nil, status.New(status.RibbonNotFound, "no ribbon cells to drive the front loop")
	}
	ctx.setElasticModulus(ela)

	t := state.Time
	q := ctx.Injection.RateAt(t)
	sourceCell := g.Locate(ctx.Injection.X0, ctx.Injection.Y0)

	prevProj := projectorFrom(g, state.EltTip, state.Alpha, state.L, state.ZeroVertex)
	oneShot := ctx.FrontAdvancing == inp.Explicit

	maxItr := ctx.MaxFrontItr
	if ctx.FrontAdvancing != inp.Implicit {
		maxItr = 1
	}

	channel := append([]int(nil), state.EltChannel...)
	tipCells := append([]int(nil), state.EltTip...)
	wTip := make(map[int]float64, len(tipCells))
	for _, c := range tipCells {
		wTip[c] = state.W[c]
	}

	// Same-footprint pre-solve: a trial width under the unchanged front,
	// used as the tip inversion's first input.
	pre, err := ctx.solveSystem(g, ela, state, channel, tipCells, wTip, sourceCell, q, dt, false)
	if err != nil {
		return nil, err
	}
	wStar := append([]float64(nil), state.W...)
	for _, c := range channel {
		wStar[c] = state.W[c] + pre.deltaW[c]
	}

	var (
		recon    *front.Reconstruction
		sd       []float64
		fillFrac map[int]float64
		result   *stepResult
	)
	prevFill := make(map[int]float64, len(state.FillFrac))
	for k, v := range state.FillFrac {
		prevFill[k] = v
	}

	converged := false
	for iter := 0; iter < maxItr; iter++ {
		ribbon := append([]int(nil), state.EltRibbon...)
		paramsAt := ctx.paramsAt(g, state, dt)

		if oneShot {
			// Explicit front advancing (§2 supplemented feature 2): no tip
			// inversion, no fast-marching reinitialization. The front is
			// carried forward by extrapolating last step's tip velocity
			// directly onto the signed-distance field.
			sd = extrapolateSignedDist(state, dt)
		} else {
			var inv *tipasymptote.Inversion
			if prevProj != nil {
				cfg := tipasymptote.ToughnessConfig{
					ProjectAngle: prevProj.Project,
					Reinitialize: func(seedRibbon map[int]float64) (map[int]float64, error) {
						band := fastmarching.Band(g, ribbon, 3)
						full, ferr := fastmarching.Reinitialize(g, band, seedRibbon, state.SignedDist)
						if ferr != nil {
							return nil, ferr
						}
						out := make(map[int]float64, len(ribbon))
						for _, c := range ribbon {
							out[c] = full[c]
						}
						return out, nil
					},
					KPrimeAt: func(cell int, alpha float64) float64 {
						x, y := g.CenterCoor[cell][0], g.CenterCoor[cell][1]
						return ctx.Toughness.KPrime(x, y, alpha)
					},
					TolK:    ctx.TolToughness,
					MaxIter: maxInt(ctx.MaxToughnessItr, 1),
				}
				res, terr := tipasymptote.Iterate(ctx.TipMode, ribbon, wStar, func(cell int, kprime float64) tipasymptote.Params {
					p := paramsAt(cell)
					p.Kprime = kprime
					return p
				}, cfg)
				if terr != nil {
					return nil, terr
				}
				inv = res.Inversion
			} else {
				var ierr error
				inv, ierr = tipasymptote.Invert(ctx.TipMode, ribbon, wStar, paramsAt)
				if ierr != nil {
					return nil, ierr
				}
			}

			seed := make(map[int]float64, len(ribbon))
			for _, c := range ribbon {
				sign := -1.0
				if state.SignedDist[c] > 0 {
					sign = 1
				}
				seed[c] = sign * inv.SignedDist[c]
			}

			band := fastmarching.Band(g, ribbon, 3)
			sdFull, rerr := fastmarching.Reinitialize(g, band, seed, state.SignedDist)
			if rerr != nil {
				return nil, rerr
			}
			sd = append([]float64(nil), state.SignedDist...)
			for c, v := range sdFull {
				sd[c] = v
			}
		}

		var cerr error
		recon, cerr = front.Reconstruct(g, sd)
		if cerr != nil {
			return nil, cerr
		}

		ribbonSet := make(map[int]bool, len(recon.EltRibbon))
		for _, c := range recon.EltRibbon {
			ribbonSet[c] = true
		}

		fillFrac = make(map[int]float64, len(recon.EltTip))
		wTip = make(map[int]float64, len(recon.EltTip))
		for _, c := range recon.EltTip {
			alpha, l := recon.Alpha[c], recon.L[c]
			ff, ferr := tipvolume.FillFraction(alpha, l, g.Hx, g.Hy)
			if ferr != nil {
				return nil, ferr
			}
			fillFrac[c] = ff
			p := paramsAt(c)

			// A tip cell whose unsigned distance barely moved this step is
			// stagnant (§4.6): fall back to the stress-intensity-factor
			// estimate from its enclosing ribbon cells rather than trusting
			// the chosen asymptote's extrapolation from a near-zero velocity.
			sPrev := math.Abs(state.SignedDist[c])
			sNew := math.Abs(sd[c])
			if sPrev > 0 && math.Abs(1-sNew/sPrev) < 1e-5 {
				n := g.Neighbors[c]
				enclosing := []int{n[grid.Left], n[grid.Right], n[grid.Bottom], n[grid.Up]}
				if kp := tipvolume.StressIntensityFactor(c, enclosing, ribbonSet, state.W, state.SignedDist, g.CenterCoor, ctx.elasticModulus); kp > 0 {
					p.Kprime = kp
				}
			}

			avg, werr := tipvolume.AverageWidth(ctx.TipMode, alpha, l, g.Hx, g.Hy, p)
			if werr != nil {
				return nil, werr
			}
			wTip[c] = avg
		}

		guard := ela.ApplyTipCorrection(fillFrac)
		var serr error
		result, serr = ctx.solveSystem(g, ela, state, recon.EltChannel, recon.EltTip, wTip, sourceCell, q, dt, ctx.Mode == inp.DryCrackMechLoad)
		guard.Release()
		if serr != nil {
			return nil, serr
		}

		wNext := append([]float64(nil), state.W...)
		for _, c := range recon.EltChannel {
			wNext[c] = state.W[c] + result.deltaW[c]
		}
		for _, c := range recon.EltTip {
			wNext[c] = wTip[c]
		}
		wStar = wNext
		channel = recon.EltChannel
		tipCells = recon.EltTip

		diff := maxFillFracDiff(fillFrac, prevFill)
		prevFill = fillFrac
		if diff < ctx.TolFractFront {
			converged = true
			break
		}
	}
	if !converged {
		return nil, status.New(status.FrontUntracked, "front loop did not converge within max_front_itr")
	}

	next := state.Clone()
	next.Grid = g
	next.W = wStar
	next.P = ctx.buildPressure(g, ela, state, recon, result)
	next.SignedDist = sd
	next.DistLastTS = append([]float64(nil), state.SignedDist...)
	next.EltChannel = recon.EltChannel
	next.EltTip = recon.EltTip
	next.EltRibbon = recon.EltRibbon
	next.EltCrack = recon.EltCrack()
	next.FillFrac = fillFrac
	next.Alpha = recon.Alpha
	next.L = recon.L
	next.ZeroVertex = recon.ZeroVertex
	next.Velocity = computeVelocity(recon.EltTip, sd, state.SignedDist, dt)
	next.Time = state.Time + dt
	next.Volume = sumVolume(g, next.W, next.EltCrack, ctx)
	if ctx.SaveRegime {
		paramsAt := ctx.paramsAt(g, state, dt)
		next.Regime = ctx.computeRegime(recon.EltRibbon, sd, paramsAt)
	} else {
		next.Regime = map[int]float64{}
	}
	return next, nil
}

// paramsAt builds the per-cell tip-asymptote Params closure shared by tip
// inversion, average-width integration, and the regime diagnostic.
func (ctx *Context) paramsAt(g *grid.Grid, state *fracture.Fracture, dt float64) func(cell int) tipasymptote.Params {
	eprime := ctx.elasticModulus
	return func(cell int) tipasymptote.Params {
		x, y := g.CenterCoor[cell][0], g.CenterCoor[cell][1]
		return tipasymptote.Params{
			Kprime:     ctx.Toughness.KPrime(x, y, 0),
			Eprime:     eprime,
			MuPrime:    ctx.Fluid.MuPrime(),
			Cprime:     material.CPrime(ctx.Leak, x, y),
			DistLastTS: math.Abs(state.SignedDist[cell]),
			Dt:         dt,
		}
	}
}

// elasticModulus is set at the top of each Advance from the elasticity
// matrix in scope, since Params needs E' but paramsAt takes no Matrix
// argument.
func (ctx *Context) setElasticModulus(ela *elasticity.Matrix) { ctx.elasticModulus = ela.Ep }

func maxFillFracDiff(cur, prev map[int]float64) float64 {
	var maxDiff float64
	for c, v := range cur {
		if p, ok := prev[c]; ok {
			if d := math.Abs(v - p); d > maxDiff {
				maxDiff = d
			}
		} else if v > maxDiff {
			maxDiff = v
		}
	}
	return maxDiff
}

// extrapolateSignedDist advances the signed-distance field for the explicit
// front-advancing variant: every cell with a recorded tip velocity from the
// previous step moves by velocity*dt, and every other cell is left alone.
func extrapolateSignedDist(state *fracture.Fracture, dt float64) []float64 {
	sd := append([]float64(nil), state.SignedDist...)
	for c, v := range state.Velocity {
		sd[c] = state.SignedDist[c] + v*dt
	}
	return sd
}

func computeVelocity(tipCells []int, sd, prevSD []float64, dt float64) map[int]float64 {
	out := make(map[int]float64, len(tipCells))
	if dt == 0 {
		return out
	}
	for _, c := range tipCells {
		out[c] = (sd[c] - prevSD[c]) / dt
	}
	return out
}

func sumVolume(g *grid.Grid, w []float64, eltCrack []int, ctx *Context) float64 {
	var vol float64
	for _, c := range eltCrack {
		vol += w[c] * g.Area * ctx.weight(c)
	}
	return vol
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
