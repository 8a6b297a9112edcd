/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geo

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// EarthRadiusMeters is the radius of the earth in meters (in a spherical
// earth model).
const EarthRadiusMeters = 1000 * 6371

// Length denotes a length on Earth.
type Length float64

// EarthDistance converts an angle to distance on earth in meters.
func EarthDistance(angle s1.Angle) Length {
	return Length(angle.Radians() * EarthRadiusMeters)
}

// Area denotes an area on Earth.
type Area float64

// EarthArea converts an area on the unit sphere to an area on earth in
// sq. meters.
func EarthArea(a float64) Area {
	return Area(a * EarthRadiusMeters * EarthRadiusMeters)
}

// String converts the length to human readable units.
func (l Length) String() string {
	switch {
	case l > 1000:
		return fmt.Sprintf("%.3f km", l/1000)
	case l < 1:
		return fmt.Sprintf("%.3f cm", l*100)
	default:
		return fmt.Sprintf("%.3f m", l)
	}
}

const (
	km2 = 1000 * 1000
	cm2 = 100 * 100
)

// String converts the area to human readable units.
func (a Area) String() string {
	switch {
	case a > km2:
		return fmt.Sprintf("%.3f km^2", a/km2)
	case a < 1:
		return fmt.Sprintf("%.3f cm^2", a*cm2)
	default:
		return fmt.Sprintf("%.3f m^2", a)
	}
}

// Loop converts a polygon's exterior ring to an s2.Loop. Holes are skipped:
// the Go s2 library has no multi-loop polygon support worth relying on, and
// AOI measures only need the outer boundary.
func Loop(p *geom.Polygon) (*s2.Loop, error) {
	if p.NumLinearRings() == 0 {
		return nil, errors.Wrap(ErrInvalidGeometry, "polygon has no rings")
	}
	ring := p.Coords()[0]
	if len(ring) < 4 {
		return nil, errors.New("Can't convert ring with less than 4 pts")
	}
	// s2 wants CCW loops smaller than a hemisphere. Orientation on the wire
	// is unconstrained, so flip when the planar check says clockwise, then
	// double-check via the cap bound since the planar check is approximate.
	l := loopFromRing(ring, Clockwise(ring))
	if l.CapBound().Radius().Degrees() > 90 {
		l = loopFromRing(ring, !Clockwise(ring))
	}
	return l, nil
}

// loopFromRing builds an s2.Loop from a closed ring. GeoJSON repeats the
// first coordinate to close a ring; s2 assumes closure and rejects repeats,
// so the last coordinate is skipped.
func loopFromRing(ring []geom.Coord, reverse bool) *s2.Loop {
	n := len(ring)
	pts := make([]s2.Point, n-1)
	for i := range pts {
		c := ring[i]
		if reverse {
			c = ring[n-1-i]
		}
		pts[i] = pointFromCoord(c)
	}
	return s2.LoopFromPoints(pts)
}

func pointFromCoord(c geom.Coord) s2.Point {
	// GeoJSON coordinates are [long, lat].
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
}

// AreaOf returns the spherical area enclosed by the polygon's exterior ring.
func AreaOf(p *geom.Polygon) (Area, error) {
	l, err := Loop(p)
	if err != nil {
		return 0, err
	}
	return EarthArea(l.Area()), nil
}

// Perimeter returns the length of the polygon's exterior ring.
func Perimeter(p *geom.Polygon) (Length, error) {
	if p.NumLinearRings() == 0 {
		return 0, errors.Wrap(ErrInvalidGeometry, "polygon has no rings")
	}
	ring := p.Coords()[0]
	var total Length
	for i := 1; i < len(ring); i++ {
		a, b := pointFromCoord(ring[i-1]), pointFromCoord(ring[i])
		total += EarthDistance(a.Distance(b))
	}
	return total, nil
}

// Contains checks whether the coordinate lies inside the polygon's exterior
// ring on the sphere.
func Contains(p *geom.Polygon, c geom.Coord) (bool, error) {
	l, err := Loop(p)
	if err != nil {
		return false, err
	}
	return l.ContainsPoint(pointFromCoord(c)), nil
}
