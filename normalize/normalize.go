/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package normalize rewrites decoded GeoJSON into canonical single-geometry
// form: z ordinates are stripped, GeometryCollections and Multi* geometries
// are exploded into one feature per member, features without usable geometry
// are dropped, and polygon ring winding is enforced.
package normalize

import (
	"github.com/golang/glog"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/geo"
	"github.com/hotosm/geojson-aoi-parser/geojson"
)

// FeatureCollection returns a normalized copy of fc. The input is left
// untouched. Every output feature holds a Point, LineString or Polygon on an
// XY layout; polygon exterior rings wind clockwise, holes counter-clockwise.
func FeatureCollection(fc *geojson.FeatureCollection) *geojson.FeatureCollection {
	out := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(fc.Features)),
		CRS:      fc.CRS,
	}
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			glog.V(2).Info("Dropping feature without geometry")
			continue
		}
		singles := explode(f.Geometry)
		if len(singles) == 0 {
			glog.V(2).Info("Dropping feature with no member geometries")
			continue
		}
		for _, g := range singles {
			out.Features = append(out.Features, &geojson.Feature{
				ID:         f.ID,
				Geometry:   windPolygon(dropZ(g)),
				Properties: copyProperties(f.Properties),
			})
		}
	}
	return out
}

// explode recursively unpacks GeometryCollections and Multi* geometries into
// their single-kind members. A single geometry comes back as a one-element
// slice.
func explode(g geom.T) []geom.T {
	switch g := g.(type) {
	case *geom.GeometryCollection:
		var out []geom.T
		for _, member := range g.Geoms() {
			out = append(out, explode(member)...)
		}
		return out
	case *geom.MultiPoint:
		out := make([]geom.T, g.NumPoints())
		for i := range out {
			out[i] = g.Point(i)
		}
		return out
	case *geom.MultiLineString:
		out := make([]geom.T, g.NumLineStrings())
		for i := range out {
			out[i] = g.LineString(i)
		}
		return out
	case *geom.MultiPolygon:
		out := make([]geom.T, g.NumPolygons())
		for i := range out {
			out[i] = g.Polygon(i)
		}
		return out
	}
	return []geom.T{g}
}

// dropZ rebuilds a geometry on the XY layout, keeping the first two
// ordinates of every position. XY input passes through unchanged.
func dropZ(g geom.T) geom.T {
	if g.Layout() == geom.XY {
		return g
	}
	switch g := g.(type) {
	case *geom.Point:
		return geom.NewPoint(geom.XY).MustSetCoords(xy(g.Coords()))
	case *geom.LineString:
		return geom.NewLineString(geom.XY).MustSetCoords(xy1(g.Coords()))
	case *geom.Polygon:
		return geom.NewPolygon(geom.XY).MustSetCoords(xy2(g.Coords()))
	}
	return g
}

// windPolygon enforces ring orientation on polygons and passes every other
// kind through. Empty polygons pass through as well.
func windPolygon(g geom.T) geom.T {
	p, ok := g.(*geom.Polygon)
	if !ok || p.NumLinearRings() == 0 {
		return g
	}
	rings, err := geo.EnsureWinding(p.Coords())
	if err != nil {
		glog.V(2).Infof("Keeping polygon with unwindable rings: %v", err)
		return g
	}
	return geom.NewPolygon(p.Layout()).MustSetCoords(rings)
}

// copyProperties gives each output feature its own properties map, so
// mutating one split member cannot leak into its siblings.
func copyProperties(props map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func xy(c geom.Coord) geom.Coord {
	if len(c) < 2 {
		return c
	}
	return geom.Coord{c[0], c[1]}
}

func xy1(cs []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(cs))
	for i, c := range cs {
		out[i] = xy(c)
	}
	return out
}

func xy2(css [][]geom.Coord) [][]geom.Coord {
	out := make([][]geom.Coord, len(css))
	for i, cs := range css {
		out[i] = xy1(cs)
	}
	return out
}
