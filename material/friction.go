// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "math"

// laminarToTurbulentRe is the Reynolds number beyond which the flow
// transitions from the laminar (f = 16/Re) branch, matching the threshold
// used by the turbulent-flow closure of §4.8.2.
const laminarToTurbulentRe = 2100.0

// FrictionFactor evaluates the Yang-Joseph maximum-drag-reduction (MDR)
// friction-factor correlation used by the turbulent flow operator (§4.8.2).
// Re is the edge Reynolds number 4/3 * rho * w * v / mu; rough is the
// relative roughness w/grain-size (clamped to a minimum of 3 upstream, per
// the tip-cell-scale closure in the EHD turbulent assembly).
//
// Below the transition Reynolds number the flow is laminar and f = 16/Re.
// Above it, the smooth-pipe Yang-Joseph correlation is used; when rough > 0
// the rough-wall correction replaces it wherever that value is the larger.
func FrictionFactor(Re, rough float64) float64 {
	if Re <= 0 {
		return 0
	}
	if Re < laminarToTurbulentRe {
		return 16 / Re
	}
	fSmooth := yangJosephSmooth(Re)
	if rough <= 0 {
		return fSmooth
	}
	fRough := yangJosephRough(Re, rough)
	if fRough > fSmooth {
		return fRough
	}
	return fSmooth
}

// yangJosephSmooth is the explicit smooth-pipe correlation (Yang & Joseph,
// 2009) spanning the transitional and fully-turbulent regimes without
// requiring Colebrook iteration.
func yangJosephSmooth(Re float64) float64 {
	logRe := math.Log(Re)
	return 0.3164/math.Pow(Re, 0.25)*smoothBlend(Re) +
		(1-smoothBlend(Re))*math.Pow(1.8*logRe/math.Ln10-1.5, -2)
}

// smoothBlend interpolates between the Blasius correlation (valid up to
// about Re=1e5) and the Yang-Joseph high-Re asymptote, avoiding a
// discontinuity at the switch-over Reynolds number.
func smoothBlend(Re float64) float64 {
	const re0 = 1e5
	if Re <= re0 {
		return 1
	}
	w := re0 / Re
	if w < 0 {
		w = 0
	}
	return w
}

// yangJosephRough applies a Nikuradse-type fully-rough correction once the
// roughness Reynolds number indicates the wall roughness, not the viscous
// sublayer, controls the friction factor.
func yangJosephRough(Re, rough float64) float64 {
	return math.Pow(-2*math.Log10(1/(3.7*rough)+2.51/(Re*math.Sqrt(0.02))), -2)
}
