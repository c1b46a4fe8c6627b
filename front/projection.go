// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package front

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/gm"

	"github.com/cpmech/gofrac/grid"
	"github.com/cpmech/gofrac/status"
)

// point is a 2D coordinate on the smoothed front polygon.
type point struct{ X, Y float64 }

// segment is one edge of the smoothed front polygon, tagged with the
// precomputed normal angle used when a ribbon cell projects onto it.
type segment struct {
	A, B  point
	Angle float64 // angle in [0, pi/2] of the segment's normal from the x-axis
}

// Projector holds a frozen smoothed-front polygon (§4.7.1) built from one
// FrontReconstruction, and answers the ribbon-cell angle projections the
// toughness iteration needs without re-running the reconstruction at every
// inner iteration.
type Projector struct {
	g        *grid.Grid
	points   []point
	segments []segment
	bins     gm.Bins // spatial index over points, for nearest-vertex lookup in Project
}

// NewProjector builds the piecewise-linear smoothed front by placing one
// perpendicular-intersection point per tip cell, chaining them by nearest
// neighbor into a closed polygon, and precomputing each edge's normal angle.
func NewProjector(g *grid.Grid, r *Reconstruction) (*Projector, error) {
	if len(r.EltTip) < 3 {
		return nil, status.New(status.ProjectionNotFound, "fewer than 3 tip cells; cannot build a front polygon")
	}

	pts := make([]point, len(r.EltTip))
	for i, c := range r.EltTip {
		zv := r.ZeroVertex[c]
		corner := g.VertexCoor[g.Connectivity[c][zv]]
		l, alpha := r.L[c], r.Alpha[c]
		pts[i] = point{
			X: corner[0] + xSign[zv]*l*math.Cos(alpha),
			Y: corner[1] + ySign[zv]*l*math.Sin(alpha),
		}
	}

	ordered := nearestNeighborChain(pts)

	segs := make([]segment, len(ordered))
	for i := range ordered {
		a := ordered[i]
		b := ordered[(i+1)%len(ordered)]
		dx, dy := b.X-a.X, b.Y-a.Y
		segs[i] = segment{A: a, B: b, Angle: math.Atan2(math.Abs(dx), math.Abs(dy))}
	}

	bins, err := vertexBins(ordered)
	if err != nil {
		return nil, status.New(status.ProjectionNotFound, "could not index front vertices: "+err.Error())
	}

	return &Projector{g: g, points: ordered, segments: segs, bins: bins}, nil
}

// vertexBins indexes pts in a gm.Bins spatial grid so Project can look up the
// polygon vertex nearest a ribbon cell in roughly constant time instead of
// scanning every vertex, the same role gm.Bins plays for nearest-node/nearest
// integration-point queries elsewhere in the corpus.
func vertexBins(pts []point) (gm.Bins, error) {
	var bins gm.Bins
	xi := []float64{pts[0].X, pts[0].Y}
	xf := []float64{pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		xi[0], xf[0] = math.Min(xi[0], p.X), math.Max(xf[0], p.X)
		xi[1], xf[1] = math.Min(xi[1], p.Y), math.Max(xf[1], p.Y)
	}
	const pad = 1e-6
	xi[0], xi[1] = xi[0]-pad, xi[1]-pad
	xf[0], xf[1] = xf[0]+pad, xf[1]+pad

	ndiv := []int{len(pts), len(pts)}
	if err := bins.Init(xi, xf, ndiv); err != nil {
		return bins, err
	}
	for i, p := range pts {
		if err := bins.Append([]float64{p.X, p.Y}, i); err != nil {
			return bins, err
		}
	}
	return bins, nil
}

// nearestNeighborChain greedily orders pts into a closed loop by always
// stepping to the nearest unvisited point.
func nearestNeighborChain(pts []point) []point {
	n := len(pts)
	visited := make([]bool, n)
	order := make([]point, 0, n)
	cur := 0
	visited[0] = true
	order = append(order, pts[0])
	for len(order) < n {
		best, bestDist := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := dist2(pts[cur], pts[j])
			if d < bestDist {
				best, bestDist = j, d
			}
		}
		visited[best] = true
		order = append(order, pts[best])
		cur = best
	}
	return order
}

func dist2(a, b point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Project returns the projection angle of each cell named in signedDist onto
// the frozen polygon (§4.7.1). The signedDist values themselves are unused:
// the projection depends only on the cell's physical location and the
// polygon geometry captured at NewProjector time.
func (p *Projector) Project(signedDist map[int]float64) (map[int]float64, error) {
	cells := make([]int, 0, len(signedDist))
	for c := range signedDist {
		cells = append(cells, c)
	}
	sort.Ints(cells)

	out := make(map[int]float64, len(cells))
	for _, c := range cells {
		xy := p.g.CenterCoor[c]
		loc := point{X: xy[0], Y: xy[1]}

		// Fast path: the bins give the polygon vertex nearest loc directly;
		// only the (at most two) segments touching it need checking. Falls
		// through to the exhaustive scan below when the bins miss (loc
		// outside the indexed bounding box) or neither candidate segment's
		// perpendicular foot lands within the segment.
		bestSeg, bestSegDist := -1, math.Inf(1)
		nearVert := p.bins.Find([]float64{loc.X, loc.Y})
		if nearVert >= 0 {
			prevSeg := (nearVert - 1 + len(p.segments)) % len(p.segments)
			for _, i := range [2]int{prevSeg, nearVert} {
				if d, ok := segmentDistance(loc, p.segments[i]); ok && d < bestSegDist {
					bestSeg, bestSegDist = i, d
				}
			}
		}
		if bestSeg < 0 {
			for i, s := range p.segments {
				if d, ok := segmentDistance(loc, s); ok && d < bestSegDist {
					bestSeg, bestSegDist = i, d
				}
			}
		}
		if bestSeg >= 0 {
			out[c] = p.segments[bestSeg].Angle
			continue
		}

		bestVert := nearVert
		if bestVert < 0 {
			bestVertDist := math.Inf(1)
			for i, v := range p.points {
				d := dist2(loc, v)
				if d < bestVertDist {
					bestVert, bestVertDist = i, d
				}
			}
		}
		if bestVert < 0 {
			return nil, status.New(status.ProjectionNotFound, "no segment or vertex found for ribbon cell")
		}
		prev := (bestVert - 1 + len(p.segments)) % len(p.segments)
		out[c] = (p.segments[prev].Angle + p.segments[bestVert].Angle) / 2
	}
	return out, nil
}

// segmentDistance returns the perpendicular distance from q to segment s and
// true, only when the foot of the perpendicular lies within the segment.
func segmentDistance(q point, s segment) (float64, bool) {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	len2 := dx*dx + dy*dy
	if len2 < 1e-20 {
		return 0, false
	}
	t := ((q.X-s.A.X)*dx + (q.Y-s.A.Y)*dy) / len2
	if t < 0 || t > 1 {
		return 0, false
	}
	foot := point{X: s.A.X + t*dx, Y: s.A.Y + t*dy}
	return math.Sqrt(dist2(q, foot)), true
}
