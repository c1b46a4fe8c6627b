// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package status defines the structured failure codes returned by the
// propagation engine's nested solve loops, and the taxonomy used to decide
// whether a failure is recoverable by remeshing, recoverable by reducing the
// time step, or terminal.
package status

// Code is a structured outcome of a single call to advance a fracture by one
// trial time step. It is returned through ordinary error values, never via
// panic: exceeding an iteration cap is an expected, handled outcome.
type Code int

// recognized outcomes of attempting to advance a fracture by one time step
const (
	NotAttempted         Code = 0  // step has not been attempted yet
	Success              Code = 1  // step advanced the fracture successfully
	InvalidLevelSet      Code = 2  // fast-marching produced an invalid signed-distance field
	FrontUntracked       Code = 3  // reconstructed front geometry has invalid α or l
	InvalidTipVolume     Code = 4  // tip volume integral out of range
	EHDInvalid           Code = 5  // EHD solution has NaN or negative width
	EHDNotConverged      Code = 6  // EHD outer iteration exhausted max_solver_iter
	TipInversionFailed   Code = 7  // tip asymptote inversion could not bracket a root
	RibbonNotFound       Code = 8  // tip-cell enclosure has no ribbon neighbor
	FillFracOutOfRange   Code = 9  // fill fraction outside [0, 1+tol]
	ToughnessNotConverge Code = 10 // toughness fixed-point iteration did not converge
	ProjectionNotFound   Code = 11 // front projection failed to locate a segment
	ReachedEnd           Code = 12 // front reached the edge of the grid; triggers remesh
)

// String renders a human-readable label, used in log lines and error messages.
func (c Code) String() string {
	switch c {
	case NotAttempted:
		return "not attempted"
	case Success:
		return "success"
	case InvalidLevelSet:
		return "invalid level set"
	case FrontUntracked:
		return "front not tracked"
	case InvalidTipVolume:
		return "invalid tip volume"
	case EHDInvalid:
		return "EHD solution invalid"
	case EHDNotConverged:
		return "EHD did not converge"
	case TipInversionFailed:
		return "tip inversion failed"
	case RibbonNotFound:
		return "ribbon not found in tip enclosure"
	case FillFracOutOfRange:
		return "fill fraction out of range"
	case ToughnessNotConverge:
		return "toughness iteration did not converge"
	case ProjectionNotFound:
		return "projection not found"
	case ReachedEnd:
		return "reached end of grid"
	}
	return "unknown status"
}

// Geometric returns true for failures of the level-set / front geometry
// (codes 2, 3, 9, 11, 12). ReachedEnd (12) is recoverable by remeshing; the
// rest trigger a time-step reduction.
func (c Code) Geometric() bool {
	switch c {
	case InvalidLevelSet, FrontUntracked, FillFracOutOfRange, ProjectionNotFound, ReachedEnd:
		return true
	}
	return false
}

// Numerical returns true for failures of an iterative numerical solve
// (codes 4, 5, 6, 7, 8, 10). All are handled by reducing the time step.
func (c Code) Numerical() bool {
	switch c {
	case InvalidTipVolume, EHDInvalid, EHDNotConverged, TipInversionFailed, RibbonNotFound, ToughnessNotConverge:
		return true
	}
	return false
}

// Recoverable reports whether the stepper should retry (possibly after a
// remesh) rather than treat the outcome as terminal. Every code other than
// Success and NotAttempted is recoverable at the level of a single attempt;
// terminal failure is a property of the outer reattempt policy, not of a
// single status code (see stepper.Stepper).
func (c Code) Recoverable() bool {
	return c != Success && c != NotAttempted
}

// Err wraps a status code as an error, so it can flow through ordinary Go
// error-handling while still being recoverable via errors.As/errors.Is-style
// inspection through its Code field (see CodeOf).
type Err struct {
	Code Code
	Msg  string
}

func (e *Err) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Msg
}

// New builds a status error with an explanatory message.
func New(c Code, msg string) error {
	return &Err{Code: c, Msg: msg}
}

// CodeOf extracts the status code from an error produced by this package,
// returning EHDInvalid-adjacent NotAttempted(=0)'s sibling "unknown" sentinel
// Code(-1) if err is not one of ours.
func CodeOf(err error) Code {
	if e, ok := err.(*Err); ok {
		return e.Code
	}
	return Code(-1)
}
