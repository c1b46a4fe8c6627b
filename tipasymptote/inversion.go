// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tipasymptote

import (
	"github.com/cpmech/gofrac/status"
)

// Inversion is the result of inverting the tip asymptote over all ribbon
// cells for one trial width.
type Inversion struct {
	SignedDist map[int]float64 // [ribbon cell] -> new unsigned distance to the front
	Stagnant   map[int]bool    // [ribbon cell] -> true if left at DistLastTS
}

// Invert runs InvertOne over every ribbon cell, returning a single
// status.TipInversionFailed error if any cell's bracket search fails.
func Invert(mode Mode, ribbon []int, w []float64, params func(cell int) Params) (*Inversion, error) {
	out := &Inversion{
		SignedDist: make(map[int]float64, len(ribbon)),
		Stagnant:   make(map[int]bool, len(ribbon)),
	}
	for _, e := range ribbon {
		p := params(e)
		s, ok, err := InvertOne(mode, w[e], p)
		if err != nil {
			return nil, status.New(status.TipInversionFailed, err.Error())
		}
		out.SignedDist[e] = s
		out.Stagnant[e] = !ok
	}
	return out, nil
}
