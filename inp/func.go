// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// FuncData holds one named function definition, used for the time-step
// prefactor schedule and for any material closure given as a function of
// position or time rather than a bare constant.
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: zero, tmStpPrefactor, kIc_x
	Type string     `json:"type"` // type of function. ex: cte, rmp, pts
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds every function definition in a configuration file.
type FuncsData []*FuncData

// Get returns the function named name, or the zero function for "zero"/"none"/"".
func (o FuncsData) Get(name string) (fcn fun.TimeSpace, err error) {
	if name == "zero" || name == "none" || name == "" {
		fcn = &fun.Zero
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = fun.New(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot build function named %q: %v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// PlotPrefactor plots the named time-step prefactor schedule over [ti,tf],
// a quick sanity check of a piecewise tmStpPrefactor before a long run.
func (o FuncsData) PlotPrefactor(name string, ti, tf float64, np int, dirout, fnkey string) {
	f, err := o.Get(name)
	if err != nil {
		chk.Panic("%v", err)
	}
	plt.Reset(false, nil)
	dt := (tf - ti) / float64(np-1)
	xs := make([]float64, np)
	ys := make([]float64, np)
	for i := 0; i < np; i++ {
		t := ti + float64(i)*dt
		xs[i] = t
		ys[i] = f.F(t, nil)
	}
	plt.Plot(xs, ys, nil)
	plt.Save(dirout, io.Sf("prefactor-%s-%s", fnkey, name))
}

// String prints one function definition as a JSON fragment, for writing a
// configuration back out.
func (o FuncData) String() string {
	return io.Sf("    {\n      \"name\":%q, \"type\":%q, \"prms\" : [\n%v\n      ]\n    }", o.Name, o.Type, o.Prms)
}

// String prints every function definition.
func (o FuncsData) String() string {
	if len(o) == 0 {
		return "  \"functions\" : []"
	}
	l := "  \"functions\" : [\n"
	for i, f := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", f)
	}
	l += "\n  ]"
	return l
}
