// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"testing"
)

func TestSetDefaultFillsSolverKnobs(t *testing.T) {
	var c Config
	c.SetDefault()
	if c.MaxSolverItrs != 100 {
		t.Fatalf("MaxSolverItrs = %d, want 100", c.MaxSolverItrs)
	}
	if c.SolverMode != VolumeControl {
		t.Fatalf("SolverMode = %q, want %q", c.SolverMode, VolumeControl)
	}
	if c.FrontAdvancing != Implicit {
		t.Fatalf("FrontAdvancing = %q, want %q", c.FrontAdvancing, Implicit)
	}
	if c.ProjMethod != ILSA {
		t.Fatalf("ProjMethod = %q, want %q", c.ProjMethod, ILSA)
	}
}

func TestConfigUnmarshalOverridesDefaults(t *testing.T) {
	var c Config
	c.SetDefault()
	raw := []byte(`{
		"mesh": {"lx": 1.0, "ly": 1.0, "nx": 41, "ny": 41},
		"finalTime": 100,
		"solverMode": "viscousInjection",
		"fluid": {"mu": 0.001, "rho": 1000}
	}`)
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Mesh.Nx != 41 || c.Mesh.Ny != 41 {
		t.Fatalf("Mesh = %+v", c.Mesh)
	}
	if c.SolverMode != ViscousInjection {
		t.Fatalf("SolverMode = %q, want viscousInjection", c.SolverMode)
	}
	if c.Fluid.Mu != 0.001 {
		t.Fatalf("Fluid.Mu = %v, want 0.001", c.Fluid.Mu)
	}
	// untouched defaults survive the partial overlay
	if c.MaxSolverItrs != 100 {
		t.Fatalf("MaxSolverItrs clobbered: %d", c.MaxSolverItrs)
	}
}

func TestPrefactorNilWhenUnset(t *testing.T) {
	var c Config
	c.SetDefault()
	if f := c.Prefactor(); f != nil {
		t.Fatalf("Prefactor() = %v, want nil", f)
	}
}

func TestPrefactorResolvesZeroShortcut(t *testing.T) {
	var c Config
	c.SetDefault()
	c.TmStpPrefactor = "zero"
	f := c.Prefactor()
	if f == nil {
		t.Fatal("Prefactor() = nil, want the zero function")
	}
	if got := f.F(0, nil); got != 0 {
		t.Fatalf("f.F(0,nil) = %v, want 0", got)
	}
}

func TestPrefactorPanicsOnUnknownName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Prefactor() did not panic on an unresolved function name")
		}
	}()
	var c Config
	c.SetDefault()
	c.TmStpPrefactor = "doesNotExist"
	c.Prefactor()
}
