/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package aoi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/geo"
	"github.com/hotosm/geojson-aoi-parser/geojson"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// requirePolygonFC checks the canonical output shape: a FeatureCollection of
// exactly n Polygon features.
func requirePolygonFC(t *testing.T, fc *geojson.FeatureCollection, n int) {
	t.Helper()
	require.NotNil(t, fc)
	require.Len(t, fc.Features, n)
	for _, f := range fc.Features {
		require.Equal(t, geojson.PolygonID, geojson.TypeOf(f.Geometry))
	}
}

func TestParsePolygon(t *testing.T) {
	fc, warnings, err := Parse(loadFixture(t, "polygon.geojson"), Options{})
	require.NoError(t, err)
	require.Empty(t, warnings)
	requirePolygonFC(t, fc, 1)
}

func TestParsePolygonWithHoles(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "polygon_holes.geojson"), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	p := fc.Features[0].Geometry.(*geom.Polygon)
	require.Equal(t, 3, p.NumLinearRings())
	require.True(t, geo.Clockwise(p.Coords()[0]))
	require.False(t, geo.Clockwise(p.Coords()[1]))
	require.False(t, geo.Clockwise(p.Coords()[2]))
}

func TestParseMergePolygonWithHoles(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "polygon_holes.geojson"), Options{Merge: true})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	require.Equal(t, 1, fc.Features[0].Geometry.(*geom.Polygon).NumLinearRings())
}

func TestParseMergeDropsEveryHole(t *testing.T) {
	src := []byte(`{
		"type": "Polygon",
		"coordinates": [
			[[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]],
			[[1, 1], [2, 1], [2, 2], [1, 2], [1, 1]],
			[[4, 4], [5, 4], [5, 5], [4, 5], [4, 4]],
			[[7, 7], [8, 7], [8, 8], [7, 8], [7, 7]]
		]
	}`)
	fc, _, err := Parse(src, Options{Merge: true})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	p := fc.Features[0].Geometry.(*geom.Polygon)
	require.Equal(t, 1, p.NumLinearRings())
	require.Equal(t, []geom.Coord{
		{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0},
	}, p.Coords()[0])
}

func TestParseStripZ(t *testing.T) {
	src := []byte(`{
		"type": "Polygon",
		"coordinates": [[[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0], [0, 0, 0]]]
	}`)
	fc, _, err := Parse(src, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)

	out, err := json.Marshal(fc)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [1, 1], [1, 0], [0, 0]]]},
			"properties": {}
		}]
	}`, string(out))
}

func TestParseFeature(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "feature.geojson"), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
}

func TestParseFeatureCollection(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "featcol.geojson"), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
}

func TestParseFeatureCollectionMultipleGeoms(t *testing.T) {
	f := loadFixture(t, "feature.geojson")
	src := fmt.Sprintf(`{"type": "FeatureCollection", "features": [%s, %s, %s]}`, f, f, f)
	fc, _, err := Parse(src, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 3)
}

func TestParseNestedGeometryCollection(t *testing.T) {
	gc := loadFixture(t, "geomcol.geojson")
	src := fmt.Sprintf(`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": %s, "properties": {}}]}`, gc)
	fc, _, err := Parse(src, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
}

func TestParseMultipleNestedGeometryCollections(t *testing.T) {
	gc := loadFixture(t, "geomcol.geojson")
	feat := fmt.Sprintf(`{"type": "Feature", "geometry": %s, "properties": {}}`, gc)
	src := fmt.Sprintf(`{"type": "FeatureCollection", "features": [%s, %s]}`, feat, feat)
	fc, _, err := Parse(src, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 2)
}

func TestParseGeometryCollectionMultipleGeoms(t *testing.T) {
	p := loadFixture(t, "polygon.geojson")
	src := fmt.Sprintf(`{"type": "GeometryCollection", "geometries": [%s, %s, %s]}`, p, p, p)
	fc, _, err := Parse(src, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 3)
}

func twoSquaresFC() string {
	return `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}, "properties": {}},
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[2, 2], [3, 2], [3, 3], [2, 3], [2, 2]]]}, "properties": {}}
		]
	}`
}

func TestParseMergeFeatureCollection(t *testing.T) {
	fc, _, err := Parse(twoSquaresFC(), Options{Merge: true})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	require.NotNil(t, fc.Features[0].Properties)
	require.Empty(t, fc.Features[0].Properties)
}

func TestParseNoMergeFeatureCollection(t *testing.T) {
	fc, _, err := Parse(twoSquaresFC(), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 2)
}

func TestParseMergeMultiPolygon(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "multipolygon.geojson"), Options{Merge: true})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	p := fc.Features[0].Geometry.(*geom.Polygon)
	require.Equal(t, 1, p.NumLinearRings())
	require.True(t, geo.Clockwise(p.Coords()[0]))
	// The three squares are pairwise disjoint, so the boundary is the convex
	// hull of all twelve corners.
	require.Equal(t, []geom.Coord{
		{0, 0}, {0, 1}, {4, 5}, {5, 5}, {5, 4}, {1, 0}, {0, 0},
	}, p.Coords()[0])
}

func TestParseMultiPolygonNoMerge(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "multipolygon.geojson"), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 3)
}

func TestParseMultiPolygonWithHoles(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "multipolygon_holes.geojson"), Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	// The single member keeps its full ring list, holes included.
	require.Equal(t, 3, fc.Features[0].Geometry.(*geom.Polygon).NumLinearRings())
}

func TestParseMergeMultiPolygonWithHoles(t *testing.T) {
	fc, _, err := Parse(loadFixture(t, "multipolygon_holes.geojson"), Options{Merge: true})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
	require.Equal(t, 1, fc.Features[0].Geometry.(*geom.Polygon).NumLinearRings())
}

func TestParseInvalidInput(t *testing.T) {
	_, _, err := Parse(123, Options{})
	require.EqualError(t, err, "GeoJSON input must be a valid map, string, or byte slice")

	_, _, err = Parse("{}", Options{})
	require.EqualError(t, err, "Provided GeoJSON is empty")

	_, _, err = Parse(map[string]interface{}{"type": "Point"}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "The GeoJSON type must be one of:")

	_, _, err = Parse(`{"type": "FeatureCollection", "features": []}`, Options{})
	require.EqualError(t, err, "Failed parsing geojson")
}

func TestParseInputForms(t *testing.T) {
	raw := loadFixture(t, "featcol.geojson")

	for _, input := range []interface{}{raw, json.RawMessage(raw), string(raw)} {
		fc, _, err := Parse(input, Options{})
		require.NoError(t, err)
		requirePolygonFC(t, fc, 1)
	}

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	fc, _, err := Parse(m, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)

	var decoded geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(raw, &decoded))
	fc, _, err = Parse(&decoded, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)
}

func TestParseFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoi.geojson")
	require.NoError(t, os.WriteFile(path, loadFixture(t, "featcol.geojson"), 0o644))

	fc, _, err := Parse(path, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)

	fc, _, err = ParseFile(path, Options{})
	require.NoError(t, err)
	requirePolygonFC(t, fc, 1)

	_, _, err = ParseFile(filepath.Join(t.TempDir(), "missing.geojson"), Options{})
	require.Error(t, err)
}

func fcWithCRS(name string) string {
	return fmt.Sprintf(`{
		"type": "FeatureCollection",
		"features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}, "properties": {}}],
		"crs": {"type": "name", "properties": {"name": %q}}
	}`, name)
}

func TestParseValidCRSNoWarnings(t *testing.T) {
	fc, warnings, err := Parse(fcWithCRS("urn:ogc:def:crs:OGC:1.3:CRS84"), Options{})
	require.NoError(t, err)
	require.Empty(t, warnings)
	requirePolygonFC(t, fc, 1)
	require.Equal(t, "urn:ogc:def:crs:OGC:1.3:CRS84", fc.CRS.Name())
}

func TestParseInvalidCRSWarning(t *testing.T) {
	_, warnings, err := Parse(fcWithCRS("invalid!!"), Options{})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, WarnBadCRS, warnings[0].Code)
	require.Contains(t, warnings[0].Message, "Unsupported coordinate system")
}

func TestParseOutOfRangeCoordWarning(t *testing.T) {
	src := `{
		"type": "FeatureCollection",
		"features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[600, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}, "properties": {}}],
		"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::4326"}}
	}`
	_, warnings, err := Parse(src, Options{})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, WarnCoordOutOfRange, warnings[0].Code)
	require.Equal(t, "The coordinates within the GeoJSON file are not valid. Is the file empty?", warnings[0].Message)
}

func TestParseNoCoordsWarning(t *testing.T) {
	src := `{"type": "Feature", "geometry": null, "properties": {}}`
	fc, warnings, err := Parse(src, Options{})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, WarnNoCoords, warnings[0].Code)
	require.Equal(t, "The coordinates within the GeoJSON file are not valid. Is the file empty?", warnings[0].Message)
	require.Empty(t, fc.Features)
}

func TestParseBadCRSAndOutOfRangeCoord(t *testing.T) {
	src := `{
		"type": "FeatureCollection",
		"features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[600, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}, "properties": {}}],
		"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::3857"}}
	}`
	_, warnings, err := Parse(src, Options{})
	require.NoError(t, err)
	// A bad crs member must not suppress the coordinate check.
	require.Len(t, warnings, 2)
	require.Equal(t, WarnBadCRS, warnings[0].Code)
	require.Equal(t, WarnCoordOutOfRange, warnings[1].Code)
	require.Contains(t, warnings[0].Message, "Unsupported coordinate system")
	require.Contains(t, warnings[1].Message, "coordinates within the GeoJSON file are not valid")
}

func TestParseMergeNothing(t *testing.T) {
	src := `{"type": "Feature", "geometry": null, "properties": {}}`
	_, _, err := Parse(src, Options{Merge: true})
	require.EqualError(t, err, "FeatureCollection must contain at least one feature")
}
