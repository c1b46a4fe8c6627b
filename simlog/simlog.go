// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simlog is the thin progress-message wrapper the propagation
// engine uses instead of sprinkling gosl/io calls across every package,
// following a Verbose-gated io.Pf convention.
package simlog

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofrac/status"
)

// Logger gates every message behind a single Verbose flag.
type Logger struct {
	Verbose bool
}

// New returns a Logger; verbose controls whether any message is printed.
func New(verbose bool) *Logger { return &Logger{Verbose: verbose} }

// Stage announces the start of a named phase (e.g. "front loop",
// "toughness loop", "EHD solve").
func (l *Logger) Stage(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.Pf("> "+format+"\n", args...)
}

// Step reports a completed time step.
func (l *Logger) Step(t, dt float64, attempt int) {
	if !l.Verbose {
		return
	}
	io.Pf(">> t=%12.6e  dt=%12.6e  attempt=%d\n", t, dt, attempt)
}

// Success announces a converged run with a green banner.
func (l *Logger) Success() {
	if !l.Verbose {
		return
	}
	io.PfGreen("> success\n")
}

// Failure reports a structured failure code and its message.
func (l *Logger) Failure(err error) {
	if !l.Verbose {
		return
	}
	code := status.CodeOf(err)
	io.PfRed("> failed: [%s] %v\n", code, err)
}

// Warn reports a recoverable condition that does not abort the run (e.g. a
// reattempt or a toughness under-relaxation step).
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.PfYel("!! "+format+"\n", args...)
}
