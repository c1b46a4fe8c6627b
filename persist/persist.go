// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package persist implements the minimal state dump the core mandates: a
// serialized form is an array dump plus the grid parameters, and no other
// external I/O is required. Loading and writing follow a
// bytes.Buffer-then-gosl/io.WriteFile idiom rather than a VTK/collection
// writer, which this engine has no use for.
package persist

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofrac/fracture"
	"github.com/cpmech/gofrac/grid"
)

// Snapshot is the on-disk representation of a fracture state: the grid
// parameters it was computed on, plus every per-cell array and per-tip-cell
// map of §3.
type Snapshot struct {
	Time   float64 `json:"time"`
	Volume float64 `json:"volume"`

	Lx        float64 `json:"lx"`
	Ly        float64 `json:"ly"`
	Nx        int     `json:"nx"`
	Ny        int     `json:"ny"`
	Symmetric bool    `json:"symmetric"`

	W          []float64 `json:"w"`
	P          []float64 `json:"p"`
	SignedDist []float64 `json:"signedDist"`
	DistLastTS []float64 `json:"distLastTs"`

	EltChannel []int `json:"eltChannel"`
	EltRibbon  []int `json:"eltRibbon"`
	EltTip     []int `json:"eltTip"`
	EltCrack   []int `json:"eltCrack"`

	FillFrac   map[int]float64 `json:"fillFrac"`
	Alpha      map[int]float64 `json:"alpha"`
	L          map[int]float64 `json:"l"`
	ZeroVertex map[int]int     `json:"zeroVertex"`
	Velocity   map[int]float64 `json:"velocity"`
	Regime     map[int]float64 `json:"regime,omitempty"`
}

func copyFloatMap(m map[int]float64) map[int]float64 {
	if m == nil {
		return nil
	}
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[int]int) map[int]int {
	if m == nil {
		return nil
	}
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// FromFracture builds a Snapshot from a live fracture state.
func FromFracture(f *fracture.Fracture) *Snapshot {
	return &Snapshot{
		Time:       f.Time,
		Volume:     f.Volume,
		Lx:         f.Grid.Lx,
		Ly:         f.Grid.Ly,
		Nx:         f.Grid.Nx,
		Ny:         f.Grid.Ny,
		Symmetric:  f.Grid.Symmetric,
		W:          append([]float64(nil), f.W...),
		P:          append([]float64(nil), f.P...),
		SignedDist: append([]float64(nil), f.SignedDist...),
		DistLastTS: append([]float64(nil), f.DistLastTS...),
		EltChannel: append([]int(nil), f.EltChannel...),
		EltRibbon:  append([]int(nil), f.EltRibbon...),
		EltTip:     append([]int(nil), f.EltTip...),
		EltCrack:   append([]int(nil), f.EltCrack...),
		FillFrac:   copyFloatMap(f.FillFrac),
		Alpha:      copyFloatMap(f.Alpha),
		L:          copyFloatMap(f.L),
		ZeroVertex: copyIntMap(f.ZeroVertex),
		Velocity:   copyFloatMap(f.Velocity),
		Regime:     copyFloatMap(f.Regime),
	}
}

// Restore rebuilds a fracture state from a Snapshot, reconstructing the grid
// from its stored parameters before populating the per-cell arrays and maps.
func (s *Snapshot) Restore() *fracture.Fracture {
	g := grid.New(s.Lx, s.Ly, s.Nx, s.Ny, s.Symmetric)
	f := fracture.New(g)
	f.Time = s.Time
	f.Volume = s.Volume
	f.W = append([]float64(nil), s.W...)
	f.P = append([]float64(nil), s.P...)
	f.SignedDist = append([]float64(nil), s.SignedDist...)
	f.DistLastTS = append([]float64(nil), s.DistLastTS...)
	f.EltChannel = append([]int(nil), s.EltChannel...)
	f.EltRibbon = append([]int(nil), s.EltRibbon...)
	f.EltTip = append([]int(nil), s.EltTip...)
	f.EltCrack = append([]int(nil), s.EltCrack...)
	f.FillFrac = copyFloatMap(s.FillFrac)
	f.Alpha = copyFloatMap(s.Alpha)
	f.L = copyFloatMap(s.L)
	f.ZeroVertex = copyIntMap(s.ZeroVertex)
	f.Velocity = copyFloatMap(s.Velocity)
	f.Regime = copyFloatMap(s.Regime)
	return f
}

// Save writes the snapshot as a single JSON document at dirout/fnkey.json.
func Save(dirout, fnkey string, s *Snapshot) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		chk.Panic("persist.Save: cannot marshal snapshot: %v", err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.WriteFileV(io.Sf("%s/%s.json", dirout, fnkey), &buf)
}

// Load reads back a snapshot previously written by Save.
func Load(dirout, fnkey string) *Snapshot {
	b, err := io.ReadFile(io.Sf("%s/%s.json", dirout, fnkey))
	if err != nil {
		chk.Panic("persist.Load: cannot read snapshot: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		chk.Panic("persist.Load: cannot unmarshal snapshot: %v", err)
	}
	return &s
}
