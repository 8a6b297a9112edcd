/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package geojson holds the document model shared across the module: typed
// geometries from go-geom, Features, FeatureCollections, and the loose wire
// envelopes needed to accept real-world GeoJSON input.
package geojson

import (
	"github.com/spf13/cast"
	geom "github.com/twpayne/go-geom"
)

// TypeID identifies a GeoJSON object kind, as carried in a document's "type"
// member. The zero value is UnknownID so an absent or unrecognized "type"
// never aliases a real kind.
type TypeID uint8

const (
	// UnknownID represents a missing or unrecognized kind.
	UnknownID TypeID = iota
	// PointID represents the Point geometry kind.
	PointID
	// LineStringID represents the LineString geometry kind.
	LineStringID
	// PolygonID represents the Polygon geometry kind.
	PolygonID
	// MultiPointID represents the MultiPoint geometry kind.
	MultiPointID
	// MultiLineStringID represents the MultiLineString geometry kind.
	MultiLineStringID
	// MultiPolygonID represents the MultiPolygon geometry kind.
	MultiPolygonID
	// GeometryCollectionID represents the GeometryCollection kind.
	GeometryCollectionID
	// FeatureID represents the Feature kind.
	FeatureID
	// FeatureCollectionID represents the FeatureCollection kind.
	FeatureCollectionID
)

var typeNameMap = map[string]TypeID{
	"Point":              PointID,
	"LineString":         LineStringID,
	"Polygon":            PolygonID,
	"MultiPoint":         MultiPointID,
	"MultiLineString":    MultiLineStringID,
	"MultiPolygon":       MultiPolygonID,
	"GeometryCollection": GeometryCollectionID,
	"Feature":            FeatureID,
	"FeatureCollection":  FeatureCollectionID,
}

// TypeIDForName maps a wire "type" string to its TypeID. Unrecognized names
// map to UnknownID.
func TypeIDForName(name string) TypeID {
	return typeNameMap[name]
}

// Name returns the wire name of the kind.
func (t TypeID) Name() string {
	switch t {
	case PointID:
		return "Point"
	case LineStringID:
		return "LineString"
	case PolygonID:
		return "Polygon"
	case MultiPointID:
		return "MultiPoint"
	case MultiLineStringID:
		return "MultiLineString"
	case MultiPolygonID:
		return "MultiPolygon"
	case GeometryCollectionID:
		return "GeometryCollection"
	case FeatureID:
		return "Feature"
	case FeatureCollectionID:
		return "FeatureCollection"
	}
	return ""
}

// IsGeometry returns true for the seven geometry kinds.
func (t TypeID) IsGeometry() bool {
	return t >= PointID && t <= GeometryCollectionID
}

// TypeOf classifies a decoded geometry value.
func TypeOf(g geom.T) TypeID {
	switch g.(type) {
	case *geom.Point:
		return PointID
	case *geom.LineString:
		return LineStringID
	case *geom.Polygon:
		return PolygonID
	case *geom.MultiPoint:
		return MultiPointID
	case *geom.MultiLineString:
		return MultiLineStringID
	case *geom.MultiPolygon:
		return MultiPolygonID
	case *geom.GeometryCollection:
		return GeometryCollectionID
	}
	return UnknownID
}

// CRS is the legacy coordinate reference system member. GeoJSON 2016 dropped
// it, but upstream producers still attach it, so it is carried through
// untouched and only ever inspected for its name.
type CRS struct {
	Type       string                 `json:"type,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Name returns crs.properties.name, or "" when absent.
func (c *CRS) Name() string {
	if c == nil || c.Properties == nil {
		return ""
	}
	return cast.ToString(c.Properties["name"])
}
