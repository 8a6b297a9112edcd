/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package geo implements the planar and spherical geometry primitives behind
// AOI normalization and merging: ring orientation, disjointness tests,
// convex hulls, boundary unions and earth-scale measures.
package geo

import (
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// ErrInvalidGeometry is returned when a polygon-only operation receives a
// ring list that is not polygon shaped.
var ErrInvalidGeometry = errors.New("Invalid polygon: expected a ring list of [x, y] points")

// Clockwise checks if a ring's vertices are in clockwise direction. The
// algorithm is described here https://en.wikipedia.org/wiki/Shoelace_formula.
// It is planar and doesn't work for rings that contain the poles or cross the
// antimeridian, which is fine at AOI scale.
func Clockwise(ring []geom.Coord) bool {
	var a float64
	n := len(ring)
	for i := 0; i < n; i++ {
		p1 := ring[(i+n-1)%n]
		p2 := ring[i]
		a += (p2.X() - p1.X()) * (p2.Y() + p1.Y())
	}
	return a > 0
}

// EnsureWinding returns rings with the exterior ring (the first) forced
// clockwise and every hole counter-clockwise, reversing vertex order where
// needed. The input is left untouched. Following the right-hand rule as
// PostGIS's ST_ForcePolygonCW does, not RFC 7946, which wants the opposite.
// Point arity is checked on the exterior ring only; an empty exterior ring is
// not an error and passes through unchanged, like the empty geometries
// normalization keeps.
func EnsureWinding(rings [][]geom.Coord) ([][]geom.Coord, error) {
	if len(rings) == 0 {
		return nil, errors.Wrap(ErrInvalidGeometry, "no rings")
	}
	for _, pt := range rings[0] {
		if len(pt) < 2 {
			return nil, errors.Wrapf(ErrInvalidGeometry, "got point %v", pt)
		}
	}
	out := make([][]geom.Coord, len(rings))
	for i, ring := range rings {
		switch cw := Clockwise(ring); {
		case i == 0 && !cw, i > 0 && cw:
			out[i] = reversed(ring)
		default:
			out[i] = append([]geom.Coord(nil), ring...)
		}
	}
	return out, nil
}

func reversed(ring []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(ring))
	for i, c := range ring {
		out[len(ring)-1-i] = c
	}
	return out
}

// CloseRing appends the first vertex to the end if the ring is not already
// closed, as GeoJSON requires.
func CloseRing(ring []geom.Coord) []geom.Coord {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first.X() == last.X() && first.Y() == last.Y() {
		return ring
	}
	return append(append([]geom.Coord(nil), ring...), first)
}
