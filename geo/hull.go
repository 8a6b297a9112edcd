/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geo

import (
	"sort"

	geom "github.com/twpayne/go-geom"
)

// ConvexHull builds the convex hull of the given points with Andrew's
// monotone chain: points are deduplicated, sorted lexicographically, and the
// lower and upper chains are built keeping strict left turns only, so
// collinear interior points never survive. The result is a closed clockwise
// ring. Fewer than two distinct points come back unchanged.
func ConvexHull(points []geom.Coord) []geom.Coord {
	pts := dedupe(points)
	if len(pts) <= 1 {
		return pts
	}

	var lower, upper []geom.Coord
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain ends where the other starts, so the last point of both is
	// dropped before joining.
	hull := make([]geom.Coord, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	hull = CloseRing(hull)
	if !Clockwise(hull) {
		hull = reversed(hull)
	}
	return hull
}

// cross computes the z-component of (a-o) x (b-o). Positive means the triple
// turns left.
func cross(o, a, b geom.Coord) float64 {
	return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
}

func dedupe(points []geom.Coord) []geom.Coord {
	pts := make([]geom.Coord, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() != pts[j].X() {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Y() < pts[j].Y()
	})
	out := pts[:0]
	for i, p := range pts {
		if i > 0 && p.X() == pts[i-1].X() && p.Y() == pts[i-1].Y() {
			continue
		}
		out = append(out, p)
	}
	return out
}
