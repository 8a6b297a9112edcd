/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geo

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/golang/glog"
	geom "github.com/twpayne/go-geom"
)

// Union merges the boundaries of the given exterior rings exactly, using the
// Martinez-Rueda clipping algorithm, and returns the result as a polygon ring
// list: the outer ring first, then any holes the union enclosed. When the
// inputs fall apart into disconnected areas the single-polygon contract can't
// be met exactly, so the convex hull of the union's vertices is returned
// instead. Output winding follows the right-hand rule.
func Union(rings [][]geom.Coord) ([][]geom.Coord, error) {
	polys := make([]polyclip.Polygon, 0, len(rings))
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		polys = append(polys, polyclip.Polygon{toContour(ring)})
	}
	if len(polys) == 0 {
		return nil, ErrInvalidGeometry
	}

	merged := cascade(polys)

	outers, holes := classifyContours(merged)
	if len(outers) != 1 {
		glog.Warningf("Union split into %d areas, falling back to convex hull", len(outers))
		var all []geom.Coord
		for _, ct := range merged {
			all = append(all, fromContour(ct)...)
		}
		return [][]geom.Coord{ConvexHull(all)}, nil
	}

	out := append([][]geom.Coord{outers[0]}, holes...)
	return EnsureWinding(out)
}

// cascade unions pairwise, divide and conquer, which keeps intermediate
// results small when many polygons are merged.
func cascade(polys []polyclip.Polygon) polyclip.Polygon {
	if len(polys) == 1 {
		return polys[0]
	}
	mid := len(polys) / 2
	left := cascade(polys[:mid])
	right := cascade(polys[mid:])
	return left.Construct(polyclip.UNION, right)
}

func toContour(ring []geom.Coord) polyclip.Contour {
	ring = CloseRing(ring)
	ct := make(polyclip.Contour, 0, len(ring))
	for _, c := range ring {
		ct = append(ct, polyclip.Point{X: c.X(), Y: c.Y()})
	}
	return ct
}

func fromContour(ct polyclip.Contour) []geom.Coord {
	ring := make([]geom.Coord, 0, len(ct)+1)
	for _, pt := range ct {
		ring = append(ring, geom.Coord{pt.X, pt.Y})
	}
	return CloseRing(ring)
}

// classifyContours splits the clipper output into outer rings and holes by
// containment parity: a contour enclosed by an odd number of the others is a
// hole. The probe is the first vertex, which is good enough because clipper
// output contours never properly cross each other.
func classifyContours(p polyclip.Polygon) (outers, holes [][]geom.Coord) {
	rings := make([][]geom.Coord, 0, len(p))
	for _, ct := range p {
		if len(ct) == 0 {
			continue
		}
		rings = append(rings, fromContour(ct))
	}
	for i, ring := range rings {
		depth := 0
		for j, other := range rings {
			if i != j && RingContains(other, ring[0]) {
				depth++
			}
		}
		if depth%2 == 1 {
			holes = append(holes, ring)
		} else {
			outers = append(outers, ring)
		}
	}
	return outers, holes
}

// RingContains checks whether the point lies inside the ring, by even-odd
// ray casting. Points exactly on the boundary are not guaranteed either way.
func RingContains(ring []geom.Coord, pt geom.Coord) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	x, y := pt.X(), pt.Y()
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].X(), ring[i].Y()
		xj, yj := ring[j].X(), ring[j].Y()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
