/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geo

import (
	geom "github.com/twpayne/go-geom"
)

// Disjoint checks if two rings are disjoint: no edge of one properly crosses
// an edge of the other. A cheap bounding box test runs first; only on overlap
// is every edge pair tested. Contact limited to shared vertices or collinear
// overlap is not a proper crossing, so touching rings count as disjoint.
func Disjoint(a, b []geom.Coord) bool {
	if !ringBounds(a).Overlaps(geom.XY, ringBounds(b)) {
		return true
	}
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		p1, p2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			q1, q2 := b[j], b[(j+1)%nb]
			if segmentsCross(p1, p2, q1, q2) {
				return false
			}
		}
	}
	return true
}

func ringBounds(ring []geom.Coord) *geom.Bounds {
	flat := make([]float64, 0, 2*len(ring))
	for _, c := range ring {
		flat = append(flat, c.X(), c.Y())
	}
	return geom.NewLineStringFlat(geom.XY, flat).Bounds()
}

// ccw checks whether the triple (a, b, c) makes a strict counter-clockwise
// turn.
func ccw(a, b, c geom.Coord) bool {
	return (c.Y()-a.Y())*(b.X()-a.X()) > (b.Y()-a.Y())*(c.X()-a.X())
}

// segmentsCross checks for a proper crossing between segments p1p2 and q1q2
// using the orientation predicate: the endpoints of each segment must lie on
// opposite sides of the other.
func segmentsCross(p1, p2, q1, q2 geom.Coord) bool {
	return ccw(p1, q1, q2) != ccw(p2, q1, q2) && ccw(p1, p2, q1) != ccw(p1, p2, q2)
}
