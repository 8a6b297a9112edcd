/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package aoi

import (
	"fmt"

	"github.com/golang/glog"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/geojson"
)

// WarningCode classifies advisory diagnostics raised during a parse.
type WarningCode uint8

const (
	// WarnUnknown is the zero value and never raised.
	WarnUnknown WarningCode = iota
	// WarnBadCRS marks a coordinate reference system other than WGS 84.
	WarnBadCRS
	// WarnCoordOutOfRange marks a leading coordinate outside [-180, 180]
	// longitude or [-90, 90] latitude.
	WarnCoordOutOfRange
	// WarnNoCoords marks input without any discoverable coordinate.
	WarnNoCoords
)

// A Warning is an advisory diagnostic. Warnings never fail a parse; they are
// returned to the caller and mirrored to the process log.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string { return w.Message }

const (
	crsAdvice   = "Unsupported coordinate system, it is recommended to use a GeoJSON file in WGS84(EPSG 4326) standard."
	coordAdvice = "The coordinates within the GeoJSON file are not valid. Is the file empty?"
)

// validCRSNames are the accepted values of crs.properties.name.
var validCRSNames = []string{
	"urn:ogc:def:crs:OGC:1.3:CRS84",
	"urn:ogc:def:crs:EPSG::4326",
	"WGS 84",
}

func warnf(ws []Warning, code WarningCode, format string, args ...interface{}) []Warning {
	msg := fmt.Sprintf(format, args...)
	glog.Warning(msg)
	return append(ws, Warning{Code: code, Message: msg})
}

// checkCRS runs the advisory checks: a crs member naming anything but WGS 84
// is flagged, and the leading coordinate is checked against lon/lat ranges to
// catch data in projected coordinate systems. Both checks run on every parse;
// a bad crs member does not short-circuit the coordinate check.
func checkCRS(fc *geojson.FeatureCollection) []Warning {
	var ws []Warning
	if fc.CRS != nil && !validCRS(fc.CRS.Name()) {
		ws = warnf(ws, WarnBadCRS, crsAdvice)
	}
	c, ok := firstCoordinate(fc)
	if !ok {
		return warnf(ws, WarnNoCoords, coordAdvice)
	}
	if c.X() < -180 || c.X() > 180 || c.Y() < -90 || c.Y() > 90 {
		ws = warnf(ws, WarnCoordOutOfRange, coordAdvice)
	}
	return ws
}

func validCRS(name string) bool {
	for _, v := range validCRSNames {
		if name == v {
			return true
		}
	}
	return false
}

// firstCoordinate finds the leading coordinate of the first feature that has
// one.
func firstCoordinate(fc *geojson.FeatureCollection) (geom.Coord, bool) {
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if c, ok := leadingCoord(f.Geometry); ok {
			return c, true
		}
	}
	return nil, false
}

func leadingCoord(g geom.T) (geom.Coord, bool) {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, member := range gc.Geoms() {
			if c, ok := leadingCoord(member); ok {
				return c, true
			}
		}
		return nil, false
	}
	if flat := g.FlatCoords(); len(flat) >= 2 {
		return geom.Coord{flat[0], flat[1]}, true
	}
	return nil, false
}
