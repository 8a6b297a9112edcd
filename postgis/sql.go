/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package postgis

import (
	"fmt"

	"github.com/hotosm/geojson-aoi-parser/geojson"
)

// createTableSQL is the DDL for the session's scratch table. AOI boundaries
// are stored as lon/lat polygons.
func createTableSQL(table string) string {
	return fmt.Sprintf(`
		CREATE TEMP TABLE %q (
			id SERIAL PRIMARY KEY,
			geometry GEOMETRY(Polygon, 4326)
		)`, table)
}

func dropTableSQL(table string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)
}

// insertSQL is one parameterized INSERT for a geometry of the given kind,
// with the GeoJSON payload bound as $1. ST_Force2D strips z ordinates,
// ST_CollectionExtract lifts GeometryCollections into Multi* geometries and
// ST_ForcePolygonCW enforces exterior ring orientation.
func insertSQL(table string, kind geojson.TypeID) string {
	expr := "ST_Force2D(ST_SetSRID(ST_GeomFromGeoJSON($1), 4326))"
	switch kind {
	case geojson.GeometryCollectionID:
		expr = fmt.Sprintf("ST_CollectionExtract(%s)", expr)
	case geojson.PolygonID, geojson.MultiPolygonID:
		expr = fmt.Sprintf("ST_ForcePolygonCW(%s)", expr)
	}
	return fmt.Sprintf(`INSERT INTO %q (geometry) VALUES (%s)`, table, expr)
}

// mergeDisjointsSQL is the in-database merge pass: any stored polygon still
// carrying interior rings is replaced by its convex hull. The helper
// function is suffixed with the table name so concurrent sessions cannot
// clobber each other's definition.
func mergeDisjointsSQL(table string) string {
	fn := "merge_disjoints_" + table
	return fmt.Sprintf(`
		CREATE OR REPLACE FUNCTION %[1]q() RETURNS SETOF %[2]q AS
		$BODY$
		DECLARE
			i %[2]q%%rowtype;
		BEGIN
			FOR i IN
				SELECT * FROM %[2]q
			LOOP
				UPDATE %[2]q
				SET geometry = ST_ConvexHull(i.geometry)
				WHERE ST_NRings(i.geometry) - ST_NumGeometries(i.geometry) > 0;

				RETURN NEXT i;
			END LOOP;
			RETURN;
		END;
		$BODY$
		LANGUAGE plpgsql;
		SELECT * FROM %[1]q()`, fn, table)
}

// collectSQL rebuilds the table contents as a single FeatureCollection
// document. The column alias keeps the geometry out of each feature's
// properties.
func collectSQL(table string) string {
	return fmt.Sprintf(`
		SELECT json_build_object(
			'type', 'FeatureCollection',
			'features', COALESCE(json_agg(ST_AsGeoJSON(t.*)::json), '[]'::json)
		)
		FROM %q AS t(id, geom)`, table)
}
