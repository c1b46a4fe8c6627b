// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simlog

import (
	"testing"

	"github.com/cpmech/gofrac/status"
)

func TestQuietLoggerNeverPanics(t *testing.T) {
	l := New(false)
	l.Stage("front loop")
	l.Step(1, 0.1, 0)
	l.Success()
	l.Failure(status.New(status.EHDNotConverged, "test"))
	l.Warn("reattempt %d", 1)
}

func TestVerboseLoggerNeverPanics(t *testing.T) {
	l := New(true)
	l.Stage("front loop")
	l.Step(1, 0.1, 0)
	l.Success()
	l.Failure(status.New(status.EHDNotConverged, "test"))
	l.Warn("reattempt %d", 1)
}
