// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "testing"

func TestClosureDataConstantResolve(t *testing.T) {
	c := ClosureData{Value: 3.5}
	f := c.resolve(nil)
	if got := f(1, 2); got != 3.5 {
		t.Fatalf("resolve constant = %v, want 3.5", got)
	}
}

func TestClosureDataFuncResolve(t *testing.T) {
	functions := FuncsData{
		{Name: "sigma0", Type: "cte", Prms: nil},
	}
	c := ClosureData{Func: "zero"}
	f := c.resolve(functions)
	if got := f(1, 2); got != 0 {
		t.Fatalf("resolve zero func = %v, want 0", got)
	}
}

func TestToughnessDataConstantBuild(t *testing.T) {
	td := ToughnessData{Value: 1.2e6}
	tg := td.Build(nil)
	if got := tg.KIc(0, 0, 0); got != 1.2e6 {
		t.Fatalf("Build constant KIc = %v, want 1.2e6", got)
	}
}

func TestToughnessDataEllipticalBuild(t *testing.T) {
	td := ToughnessData{KMin: 1e6, KMax: 2e6}
	tg := td.Build(nil)
	if got := tg.KIc(0, 0, 0); got != 1e6 {
		t.Fatalf("Build elliptical KIc(alpha=0) = %v, want KMin=1e6", got)
	}
}

func TestMaterialDataConfiningStressConstant(t *testing.T) {
	m := MaterialData{ConfiningStress: ClosureData{Value: 5e6}}
	cs := m.ConfiningStressFunc(nil)
	if got := cs(0, 0); got != 5e6 {
		t.Fatalf("ConfiningStressFunc = %v, want 5e6", got)
	}
}

func TestMaterialDataLeakoffDefaultsZero(t *testing.T) {
	m := MaterialData{}
	lo := m.LeakoffFunc(nil)
	if got := lo(0, 0); got != 0 {
		t.Fatalf("LeakoffFunc default = %v, want 0", got)
	}
}

func TestFluidDataBuild(t *testing.T) {
	fd := FluidData{Mu: 0.001, Rho: 1000, Cf: 1e-4, Turbulent: true, GrainSize: 1e-5}
	f := fd.Build()
	if f.Mu != 0.001 || f.Rho != 1000 || !f.Turbulent {
		t.Fatalf("Build = %+v", f)
	}
}
