// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stepper

import (
	"testing"

	"github.com/cpmech/gofrac/elasticity"
	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/status"
)

func newTestStepper(advance AdvanceFunc) (*Stepper, *fracture.Fracture) {
	g := grid.New(1, 1, 5, 5, false)
	ela := elasticity.Build(g, 1e10)
	cfg := Config{TimeStepLimit: 1, ReAttemptFactor: 0.5, MaxReattempts: 3, RemeshFactor: 2}
	s := New(advance, nil, g, ela, cfg)
	return s, fracture.New(g)
}

func TestStepSucceedsImmediately(t *testing.T) {
	advance := func(state *fracture.Fracture, g *grid.Grid, ela *elasticity.Matrix, dt float64) (*fracture.Fracture, error) {
		next := state.Clone()
		next.Time += dt
		return next, nil
	}
	s, state := newTestStepper(advance)
	next, err := s.Step(state, 1)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if next.Time <= state.Time {
		t.Fatalf("expected time to advance, got %v -> %v", state.Time, next.Time)
	}
}

func TestStepRemeshesOnReachedEnd(t *testing.T) {
	calls := 0
	advance := func(state *fracture.Fracture, g *grid.Grid, ela *elasticity.Matrix, dt float64) (*fracture.Fracture, error) {
		calls++
		if calls == 1 {
			return nil, status.New(status.ReachedEnd, "front hit the edge")
		}
		next := state.Clone()
		next.Grid = g
		next.Time += dt
		return next, nil
	}
	s, state := newTestStepper(advance)
	origLx := s.Grid().Lx
	next, err := s.Step(state, 1)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Grid().Lx != origLx*2 {
		t.Fatalf("grid was not remeshed: Lx = %v, want %v", s.Grid().Lx, origLx*2)
	}
	if next.Time <= state.Time {
		t.Fatalf("expected time to advance after remesh+retry")
	}
}

func TestStepTerminalFailureWithEmptyHistory(t *testing.T) {
	advance := func(state *fracture.Fracture, g *grid.Grid, ela *elasticity.Matrix, dt float64) (*fracture.Fracture, error) {
		return nil, status.New(status.EHDNotConverged, "never converges")
	}
	s, state := newTestStepper(advance)
	_, err := s.Step(state, 1)
	if err == nil {
		t.Fatalf("expected a terminal error when the reattempt budget is exhausted with no history")
	}
}

func TestMaxVelocityEmptyIsZero(t *testing.T) {
	g := grid.New(1, 1, 5, 5, false)
	state := fracture.New(g)
	if v := MaxVelocity(state); v != 0 {
		t.Fatalf("MaxVelocity on empty map = %v, want 0", v)
	}
}

func TestMaxVelocityTakesAbsoluteMax(t *testing.T) {
	g := grid.New(1, 1, 5, 5, false)
	state := fracture.New(g)
	state.Velocity[3] = -0.7
	state.Velocity[5] = 0.4
	if v := MaxVelocity(state); v != 0.7 {
		t.Fatalf("MaxVelocity = %v, want 0.7", v)
	}
}
