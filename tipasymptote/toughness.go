// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tipasymptote

import (
	"math"

	"github.com/cpmech/gofrac/status"
)

// ToughnessConfig bundles the callbacks the toughness fixed-point loop
// (§4.7) needs from the rest of the engine, kept as plain function values so
// this package never has to import front or fastmarching (avoiding an
// import cycle, since both of those packages are free to depend on
// tipasymptote's residuals for their own evaluators).
type ToughnessConfig struct {
	// ProjectAngle returns, for a trial signed-distance field over the
	// ribbon cells, the projection angle of each ribbon cell onto the
	// smoothed front polygon (§4.7.1).
	ProjectAngle func(signedDist map[int]float64) (map[int]float64, error)

	// Reinitialize runs fast-marching on the band around the front given a
	// trial signed distance on the ribbon, returning the reinitialized
	// field restricted to the ribbon cells (§4.4, called at toughness-loop
	// step 3).
	Reinitialize func(signedDist map[int]float64) (map[int]float64, error)

	// KPrimeAt evaluates K'(x,y) or K'(alpha) at a ribbon cell, given its
	// projection angle.
	KPrimeAt func(cell int, alpha float64) float64

	TolK        float64
	MaxIter     int
	Relax       float64 // under-relaxation factor for K' updates, default 0.7 weight on the new value
}

// ToughnessResult is the converged state of the fixed-point loop.
type ToughnessResult struct {
	Kprime     map[int]float64
	Inversion  *Inversion
	Iterations int
}

// Iterate runs the toughness fixed-point loop of §4.7: project ribbon
// angles onto the current front, evaluate K' there, invert the tip
// asymptote, reinitialize by fast marching, under-relax K', and repeat until
// ||1 - |K'_k/K'_{k-1}|| / sqrt(|ribbon|) < tolK or MaxIter is exhausted.
func Iterate(mode Mode, ribbon []int, w []float64, paramsAt func(cell int, kprime float64) Params, cfg ToughnessConfig) (*ToughnessResult, error) {
	if cfg.Relax == 0 {
		cfg.Relax = 0.7
	}

	kPrev := make(map[int]float64, len(ribbon))
	kCur := make(map[int]float64, len(ribbon))
	signedDist := make(map[int]float64, len(ribbon))
	for _, e := range ribbon {
		kCur[e] = cfg.KPrimeAt(e, 0)
		kPrev[e] = kCur[e]
	}

	var inv *Inversion
	for it := 1; it <= cfg.MaxIter; it++ {
		angles, err := cfg.ProjectAngle(signedDist)
		if err != nil {
			return nil, status.New(status.ProjectionNotFound, err.Error())
		}

		kNew := make(map[int]float64, len(ribbon))
		for _, e := range ribbon {
			kNew[e] = cfg.KPrimeAt(e, angles[e])
		}

		inv, err = Invert(mode, ribbon, w, func(cell int) Params {
			return paramsAt(cell, kNew[cell])
		})
		if err != nil {
			return nil, err
		}
		for _, e := range ribbon {
			signedDist[e] = inv.SignedDist[e]
		}

		reinit, err := cfg.Reinitialize(signedDist)
		if err != nil {
			return nil, status.New(status.InvalidLevelSet, err.Error())
		}
		for _, e := range ribbon {
			signedDist[e] = reinit[e]
		}

		relaxed := make(map[int]float64, len(ribbon))
		for _, e := range ribbon {
			relaxed[e] = 0.3*kCur[e] + cfg.Relax*kNew[e]
		}

		var sumsq float64
		for _, e := range ribbon {
			if kCur[e] != 0 {
				d := 1 - math.Abs(relaxed[e]/kCur[e])
				sumsq += d * d
			}
		}
		norm := math.Sqrt(sumsq) / math.Sqrt(float64(len(ribbon)))

		kPrev = kCur
		kCur = relaxed

		if norm < cfg.TolK {
			return &ToughnessResult{Kprime: kCur, Inversion: inv, Iterations: it}, nil
		}
	}

	return nil, status.New(status.ToughnessNotConverge, "exceeded max_toughness_iter")
}
