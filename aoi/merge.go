/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package aoi

import (
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/geo"
	"github.com/hotosm/geojson-aoi-parser/geojson"
)

// Merge combines the polygonal features of a normalized collection into a
// single boundary. Mutually disjoint polygons merge into their common convex
// hull; anything overlapping merges into the Boolean union of the
// boundaries. Holes never contribute to an AOI boundary, only exterior rings
// are kept. The result is exactly one Polygon feature with empty properties.
func Merge(fc *geojson.FeatureCollection) (*geojson.FeatureCollection, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, errors.New("FeatureCollection must contain at least one feature")
	}
	var rings [][]geom.Coord
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		for _, p := range polygonsOf(f.Geometry) {
			if p.NumLinearRings() == 0 {
				continue
			}
			exterior := p.Coords()[0]
			if len(exterior) == 0 {
				continue
			}
			wound, err := geo.EnsureWinding([][]geom.Coord{exterior})
			if err != nil {
				return nil, errors.Wrap(err, "merging polygons")
			}
			rings = append(rings, geo.CloseRing(xyRing(wound[0])))
		}
	}
	if len(rings) == 0 {
		return nil, errors.New("FeatureCollection has no polygon features to merge")
	}
	merged, err := mergeRings(rings)
	if err != nil {
		return nil, err
	}
	return &geojson.FeatureCollection{Features: []*geojson.Feature{{
		Geometry:   geom.NewPolygon(geom.XY).MustSetCoords(merged),
		Properties: map[string]interface{}{},
	}}}, nil
}

func mergeRings(rings [][]geom.Coord) ([][]geom.Coord, error) {
	if allDisjoint(rings) {
		var pts []geom.Coord
		for _, r := range rings {
			pts = append(pts, r...)
		}
		return [][]geom.Coord{geo.ConvexHull(pts)}, nil
	}
	merged, err := geo.Union(rings)
	if err != nil {
		return nil, errors.Wrap(err, "merging polygons")
	}
	return merged, nil
}

// allDisjoint is the exhaustive pairwise test. Vacuously true for a single
// ring.
func allDisjoint(rings [][]geom.Coord) bool {
	for i := 0; i < len(rings); i++ {
		for j := i + 1; j < len(rings); j++ {
			if !geo.Disjoint(rings[i], rings[j]) {
				return false
			}
		}
	}
	return true
}

func polygonsOf(g geom.T) []*geom.Polygon {
	switch g := g.(type) {
	case *geom.Polygon:
		return []*geom.Polygon{g}
	case *geom.MultiPolygon:
		out := make([]*geom.Polygon, g.NumPolygons())
		for i := range out {
			out[i] = g.Polygon(i)
		}
		return out
	}
	return nil
}

// xyRing projects a ring onto the XY plane so downstream construction never
// sees a mixed layout.
func xyRing(ring []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(ring))
	for i, c := range ring {
		out[i] = geom.Coord{c.X(), c.Y()}
	}
	return out
}
