// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tipvolume computes the per-tip-cell fill fraction and average
// width of §4.6, by clipping the tip-cell rectangle with the front line
// placed at (alpha, l) from the zero vertex and integrating the chosen
// asymptote's width over the clipped wedge. It also evaluates the
// stress-intensity-factor fallback used for stagnant tip cells.
package tipvolume

import (
	"math"
	"sort"

	"github.com/cpmech/gofrac/status"
	"github.com/cpmech/gofrac/tipasymptote"
)

const quadPoints = 33 // odd, for Simpson's rule

// FillFraction returns the fraction of the hx*hy cell lying on the origin
// (crack) side of the line x*cos(alpha) + y*sin(alpha) = l, clamping values
// within [1, 1+1e-4] to 1 and rejecting anything outside [0, 1+1e-6] (§4.6).
func FillFraction(alpha, l, hx, hy float64) (float64, error) {
	poly := clipWedge(alpha, l, hx, hy)
	area := polygonArea(poly)
	f := area / (hx * hy)

	switch {
	case f > 1 && f <= 1+1e-4:
		f = 1
	case f < 0-1e-9 || f > 1+1e-6:
		return 0, status.New(status.FillFracOutOfRange, "fill fraction out of range")
	}
	if f < 0 {
		f = 0
	}
	return f, nil
}

// AverageWidth integrates the chosen asymptote's width over the wedge cut
// from the tip cell by (alpha, l), returning the cell's average width. s
// ranges from 0 at the front line up to l at the zero-vertex corner; the
// per-level chord length is found by intersecting the level line with the
// cell rectangle, and the s-weighted integral is evaluated by Simpson's rule.
func AverageWidth(mode tipasymptote.Mode, alpha, l, hx, hy float64, p tipasymptote.Params) (float64, error) {
	poly := clipWedge(alpha, l, hx, hy)
	area := polygonArea(poly)
	if area < 1e-15 {
		return 0, nil
	}

	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	du := l / float64(quadPoints-1)
	var sum float64
	for i := 0; i < quadPoints; i++ {
		u := float64(i) * du
		s := l - u
		w, err := tipasymptote.WidthAt(mode, s, p)
		if err != nil {
			return 0, status.New(status.InvalidTipVolume, err.Error())
		}
		c := chordLength(u, cosA, sinA, hx, hy)
		weight := 2.0
		switch {
		case i == 0 || i == quadPoints-1:
			weight = 1
		case i%2 == 1:
			weight = 4
		}
		sum += weight * w * c
	}
	integral := sum * du / 3
	avg := integral / area
	if math.IsNaN(avg) || avg < 0 {
		return 0, status.New(status.InvalidTipVolume, "tip volume integral produced an invalid width")
	}
	return avg, nil
}

// StressIntensityFactor evaluates K' for a stagnant tip cell from the
// widths and distances of its enclosing ribbon cells: one-ribbon uses the
// direct formula, two-ribbon a least-squares combination, and zero-ribbon
// falls back to the nearest ribbon cell by Euclidean distance.
func StressIntensityFactor(tipCell int, enclosing []int, ribbonSet map[int]bool, w, signedDist []float64, centerCoor [][2]float64, Eprime float64) float64 {
	var inRibbon []int
	for _, e := range enclosing {
		if ribbonSet[e] {
			inRibbon = append(inRibbon, e)
		}
	}

	switch len(inRibbon) {
	case 0:
		ribbons := make([]int, 0, len(ribbonSet))
		for e := range ribbonSet {
			ribbons = append(ribbons, e)
		}
		sort.Ints(ribbons)
		if len(ribbons) == 0 {
			return 0
		}
		tx, ty := centerCoor[tipCell][0], centerCoor[tipCell][1]
		best, bestDist := ribbons[0], math.Inf(1)
		for _, e := range ribbons {
			dx, dy := centerCoor[e][0]-tx, centerCoor[e][1]-ty
			d := dx*dx + dy*dy
			if d < bestDist {
				best, bestDist = e, d
			}
		}
		return w[best] * Eprime / math.Sqrt(-signedDist[best])
	case 1:
		e := inRibbon[0]
		return w[e] * Eprime / math.Sqrt(-signedDist[e])
	default:
		e0, e1 := inRibbon[0], inRibbon[1]
		num := w[e0]*math.Sqrt(-signedDist[e0]) + w[e1]*math.Sqrt(-signedDist[e1])
		den := -signedDist[e0] - signedDist[e1]
		return Eprime * num / den
	}
}

type point struct{ X, Y float64 }

// clipWedge returns the polygon formed by clipping the rectangle
// [0,hx]x[0,hy] to the half-plane x*cos(alpha)+y*sin(alpha) <= l.
func clipWedge(alpha, l, hx, hy float64) []point {
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	rect := []point{{0, 0}, {hx, 0}, {hx, hy}, {0, hy}}
	val := func(p point) float64 { return p.X*cosA + p.Y*sinA }
	inside := func(p point) bool { return val(p) <= l }

	var out []point
	n := len(rect)
	for i := 0; i < n; i++ {
		cur, next := rect[i], rect[(i+1)%n]
		curIn, nextIn := inside(cur), inside(next)
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := (l - val(cur)) / (val(next) - val(cur))
			out = append(out, point{cur.X + t*(next.X-cur.X), cur.Y + t*(next.Y-cur.Y)})
		}
	}
	return out
}

func polygonArea(poly []point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(sum) / 2
}

// chordLength returns the length of the segment where x*cosA+y*sinA=u
// intersects the rectangle [0,hx]x[0,hy].
func chordLength(u, cosA, sinA, hx, hy float64) float64 {
	var pts []point
	add := func(p point, ok bool) {
		if ok {
			pts = append(pts, p)
		}
	}
	if math.Abs(cosA) > 1e-14 {
		x := u / cosA
		add(point{x, 0}, x >= -1e-12 && x <= hx+1e-12)
		x2 := (u - sinA*hy) / cosA
		add(point{x2, hy}, x2 >= -1e-12 && x2 <= hx+1e-12)
	}
	if math.Abs(sinA) > 1e-14 {
		y := u / sinA
		add(point{0, y}, y >= -1e-12 && y <= hy+1e-12)
		y2 := (u - cosA*hx) / sinA
		add(point{hx, y2}, y2 >= -1e-12 && y2 <= hy+1e-12)
	}
	if len(pts) < 2 {
		return 0
	}
	dx, dy := pts[0].X-pts[1].X, pts[0].Y-pts[1].Y
	return math.Hypot(dx, dy)
}
