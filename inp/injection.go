// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "sort"

// InjectionData is the two-row (t_i, Q_i) step-function schedule of §6: the
// rate active at time t is the Q_i with the largest t_i <= t. X0, Y0 locate
// the source cell(s) via grid.Locate.
type InjectionData struct {
	Times  []float64 `json:"times"`
	Rates  []float64 `json:"rates"`
	X0, Y0 float64   `json:"x0"`
}

// RateAt returns the injection rate active at time t.
func (d InjectionData) RateAt(t float64) float64 {
	if len(d.Times) == 0 {
		return 0
	}
	i := sort.Search(len(d.Times), func(i int) bool { return d.Times[i] > t })
	if i == 0 {
		return 0
	}
	return d.Rates[i-1]
}
