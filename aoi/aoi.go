/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package aoi parses arbitrary GeoJSON input into a normalized
// FeatureCollection of areas of interest, optionally merging all polygons
// into a single boundary.
package aoi

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/hotosm/geojson-aoi-parser/geojson"
	"github.com/hotosm/geojson-aoi-parser/normalize"
)

// Options controls a parse.
type Options struct {
	// Merge combines all polygonal features into a single AOI boundary
	// after normalization.
	Merge bool
}

// allowedTypes are the top-level GeoJSON kinds accepted as AOI input. Bare
// non-polygonal geometries are rejected outright.
var allowedTypes = []geojson.TypeID{
	geojson.PolygonID,
	geojson.MultiPolygonID,
	geojson.FeatureID,
	geojson.FeatureCollectionID,
	geojson.GeometryCollectionID,
}

// Parse turns GeoJSON input into a normalized FeatureCollection.
//
// input may be a []byte or json.RawMessage of GeoJSON, a string holding
// either a file path or inline GeoJSON text, a map[string]interface{} of
// already-parsed GeoJSON, or a decoded *geojson.FeatureCollection. Anything
// else is rejected.
//
// Advisory warnings (unexpected CRS, out-of-range leading coordinate) are
// returned alongside the result and never fail the parse.
func Parse(input interface{}, opts Options) (*geojson.FeatureCollection, []Warning, error) {
	data, err := inputBytes(input)
	if err != nil {
		return nil, nil, err
	}
	doc, err := geojson.DecodeDocument(data)
	if err != nil {
		return nil, nil, err
	}
	if doc.TypeName == "" {
		return nil, nil, errors.New("Provided GeoJSON is empty")
	}
	if !typeAllowed(doc.Type) {
		return nil, nil, errors.Errorf("The GeoJSON type must be one of: %v", allowedTypeNames())
	}
	fc, err := doc.FeatureCollection()
	if err != nil {
		return nil, nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil, errors.New("Failed parsing geojson")
	}
	warnings := checkCRS(fc)
	fc = normalize.FeatureCollection(fc)
	if opts.Merge {
		if fc, err = Merge(fc); err != nil {
			return nil, warnings, err
		}
	}
	return fc, warnings, nil
}

// ParseFile parses the GeoJSON file at path.
func ParseFile(path string, opts Options) (*geojson.FeatureCollection, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(data, opts)
}

func inputBytes(input interface{}) ([]byte, error) {
	switch v := input.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		if isFile(v) {
			return os.ReadFile(v)
		}
		return []byte(v), nil
	case map[string]interface{}:
		return json.Marshal(v)
	case *geojson.FeatureCollection:
		return json.Marshal(v)
	}
	return nil, errors.New("GeoJSON input must be a valid map, string, or byte slice")
}

// isFile distinguishes a path argument from inline GeoJSON text.
func isFile(s string) bool {
	info, err := os.Stat(s)
	return err == nil && info.Mode().IsRegular()
}

func typeAllowed(t geojson.TypeID) bool {
	for _, a := range allowedTypes {
		if t == a {
			return true
		}
	}
	return false
}

func allowedTypeNames() []string {
	names := make([]string, len(allowedTypes))
	for i, t := range allowedTypes {
		names[i] = t.Name()
	}
	return names
}
