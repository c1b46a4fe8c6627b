// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stepper implements the outermost time-step control loop of §4.9:
// trial step sizing against a CFL-like prefactor schedule, the
// reattempt/remesh policy on a failed advance, and the five-deep rollback
// ring buffer that survives a fully exhausted reattempt budget.
package stepper

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/status"
)

// MaxVelocity reduces a fracture's per-tip-cell front velocity to the single
// scalar the CFL-like trial-step sizing of §4.9 step 1 needs, taking the
// absolute value since the front always advances outward regardless of the
// sign convention of an individual cell's signed-distance rate.
func MaxVelocity(state *fracture.Fracture) float64 {
	if len(state.Velocity) == 0 {
		return 0
	}
	vs := make([]float64, 0, len(state.Velocity))
	for _, v := range state.Velocity {
		vs = append(vs, math.Abs(v))
	}
	return floats.Max(vs)
}

// historyDepth is the ring buffer size of §4.9 step 3: "the last five
// successful states".
const historyDepth = 5

// AdvanceFunc performs one full coupled step (front loop, toughness loop,
// EHD solve) at the given trial time step, returning the new state on
// success or a *status.Err on any of the failure codes of §6.
type AdvanceFunc func(state *fracture.Fracture, g *grid.Grid, ela *elasticity.Matrix, dt float64) (*fracture.Fracture, error)

// RemapFunc remaps a fracture's state arrays onto a new (remeshed) grid by
// cell-center averaging, per §4.9 step 2.
type RemapFunc func(state *fracture.Fracture, oldGrid, newGrid *grid.Grid) *fracture.Fracture

// Config bundles the policy knobs recognized under the `tmStpPrefactor`,
// `timeStepLimit`, `maxReattempts` and `reAttemptFactor` configuration keys
// of §6.
type Config struct {
	TimeStepLimit   float64
	Prefactor       fun.Func // scalar or piecewise schedule over state.time
	ReAttemptFactor float64
	MaxReattempts   int
	RemeshFactor    float64 // extent multiplier on ReachedEnd, default 2
	SaveTimes       []float64
	Verbose         bool
}

type snapshot struct {
	state *fracture.Fracture
	g     *grid.Grid
	ela   *elasticity.Matrix
}

// Stepper owns the mesh/elasticity pair that the fracture currently lives
// on, which it replaces wholesale on a remesh.
type Stepper struct {
	advance AdvanceFunc
	remap   RemapFunc
	cfg     Config

	g   *grid.Grid
	ela *elasticity.Matrix

	history        []snapshot // oldest first, capped at historyDepth
	prefactorScale float64    // global derating factor, reduced by 0.8 on exhausted reattempts
}

// New builds a Stepper over the initial mesh/elasticity pair.
func New(advance AdvanceFunc, remap RemapFunc, g *grid.Grid, ela *elasticity.Matrix, cfg Config) *Stepper {
	if cfg.RemeshFactor == 0 {
		cfg.RemeshFactor = 2
	}
	return &Stepper{advance: advance, remap: remap, cfg: cfg, g: g, ela: ela, prefactorScale: 1}
}

// Grid returns the mesh the stepper currently operates on (it changes
// identity across a remesh).
func (s *Stepper) Grid() *grid.Grid { return s.g }

// Elasticity returns the elasticity matrix currently paired with Grid.
func (s *Stepper) Elasticity() *elasticity.Matrix { return s.ela }

// Step advances state by one trial time step following §4.9: it sizes the
// trial step from maxSpeed, retries with a shrinking step on an ordinary
// failure, remeshes and retries on status.ReachedEnd, and on a fully
// exhausted reattempt budget rolls back to the oldest buffered good state,
// derating the global prefactor. A terminal failure (derated prefactor below
// 0.1, or an empty history to roll back to) is returned as a plain error,
// distinct from the recoverable *status.Err outcomes of a single attempt.
func (s *Stepper) Step(state *fracture.Fracture, maxSpeed float64) (*fracture.Fracture, error) {
	for {
		next, err := s.attemptWithReattempts(state, maxSpeed)
		if err == nil {
			s.pushHistory(next)
			return next, nil
		}
		if !isExhausted(err) {
			return nil, err
		}

		if len(s.history) == 0 {
			return nil, errTerminal("reattempts exhausted with no prior good state to roll back to")
		}
		rollback := s.history[0]
		s.history = nil
		s.g, s.ela = rollback.g, rollback.ela
		state = rollback.state

		s.prefactorScale *= 0.8
		if s.prefactorScale < 0.1 {
			return nil, errTerminal("global prefactor derated below 0.1")
		}
		if s.cfg.Verbose {
			io.Pf("stepper: rolled back to t=%v, prefactor scale now %v\n", state.Time, s.prefactorScale)
		}
	}
}

// attemptWithReattempts runs the attempt = 0..MaxReattempts loop of §4.9
// step 2 for a single trial-size sequence, without touching the rollback
// history.
func (s *Stepper) attemptWithReattempts(state *fracture.Fracture, maxSpeed float64) (*fracture.Fracture, error) {
	base := s.trialBase(state, maxSpeed)

	for attempt := 0; attempt <= s.cfg.MaxReattempts; attempt++ {
		trial := base * math.Pow(s.cfg.ReAttemptFactor, float64(attempt))
		next, err := s.advance(state, s.g, s.ela, trial)
		if err == nil {
			return next, nil
		}

		code := status.CodeOf(err)
		if code == status.ReachedEnd {
			oldGrid := s.g
			s.remesh()
			if s.remap != nil {
				state = s.remap(state, oldGrid, s.g)
			}
			if s.cfg.Verbose {
				io.Pf("stepper: remeshed to Lx=%v Ly=%v after ReachedEnd\n", s.g.Lx, s.g.Ly)
			}
			continue
		}
		if s.cfg.Verbose {
			io.Pf("stepper: attempt %d failed (%v), shrinking trial step\n", attempt, err)
		}
	}
	return nil, exhaustedErr{}
}

// trialBase computes the CFL-like trial step of §4.9 step 1, capped by
// TimeStepLimit and shortened so it does not step over a save/plot target.
func (s *Stepper) trialBase(state *fracture.Fracture, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return s.cfg.TimeStepLimit
	}
	prefactor := 1.0
	if s.cfg.Prefactor != nil {
		prefactor = s.cfg.Prefactor.F(state.Time, nil)
	}
	prefactor *= s.prefactorScale

	dt := prefactor * math.Min(s.g.Hx, s.g.Hy) / maxSpeed
	if s.cfg.TimeStepLimit > 0 && dt > s.cfg.TimeStepLimit {
		dt = s.cfg.TimeStepLimit
	}
	for _, tgt := range s.cfg.SaveTimes {
		if tgt > state.Time && tgt < state.Time+dt {
			dt = tgt - state.Time
		}
	}
	return dt
}

// remesh doubles (by RemeshFactor) the grid extents and rebuilds the
// elasticity matrix scaled per §4.9 step 2 ("C /= 2" generalizes to
// C /= RemeshFactor for the influence kernel's 1/area scaling).
func (s *Stepper) remesh() {
	newGrid := s.g.Remesh(s.cfg.RemeshFactor)
	newEla := elasticity.Build(newGrid, s.ela.Ep)
	s.g, s.ela = newGrid, newEla
}

func (s *Stepper) pushHistory(state *fracture.Fracture) {
	snap := snapshot{state: state, g: s.g, ela: s.ela}
	s.history = append(s.history, snap)
	if len(s.history) > historyDepth {
		s.history = s.history[1:]
	}
}

type exhaustedErr struct{}

func (exhaustedErr) Error() string { return "time step reattempts exhausted" }

func isExhausted(err error) bool {
	_, ok := err.(exhaustedErr)
	return ok
}

type errTerminal string

func (e errTerminal) Error() string { return "terminal time-step failure: " + string(e) }
