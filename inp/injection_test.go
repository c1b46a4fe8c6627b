// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "testing"

func TestInjectionDataRateAtStepsForward(t *testing.T) {
	d := InjectionData{
		Times: []float64{0, 10, 20},
		Rates: []float64{0.001, 0.0005, 0},
	}
	cases := []struct {
		t    float64
		want float64
	}{
		{-1, 0},
		{0, 0.001},
		{5, 0.001},
		{10, 0.0005},
		{19.999, 0.0005},
		{20, 0},
		{100, 0},
	}
	for _, c := range cases {
		if got := d.RateAt(c.t); got != c.want {
			t.Errorf("RateAt(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestInjectionDataRateAtEmptySchedule(t *testing.T) {
	var d InjectionData
	if got := d.RateAt(5); got != 0 {
		t.Fatalf("RateAt on empty schedule = %v, want 0", got)
	}
}
