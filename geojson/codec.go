/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geojson

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoGeometry is returned when a geometry object carries neither
// coordinates nor member geometries.
var ErrNoGeometry = errors.New("geometry has no coordinate data")

var jsonNull = []byte("null")

// geometry is the loose wire form of a GeoJSON geometry. Coordinates stay raw
// until the kind is known; Geometries is only set for GeometryCollection.
type geometry struct {
	Type        string            `json:"type"`
	Coordinates json.RawMessage   `json:"coordinates,omitempty"`
	Geometries  []json.RawMessage `json:"geometries,omitempty"`
}

// DecodeGeometry decodes raw GeoJSON geometry bytes into a typed go-geom
// value. GeometryCollections are decoded member by member; everything else
// goes through the go-geom codec, so XYZ and XYZM positions survive with
// their extra ordinates intact and ragged coordinate arrays are rejected.
func DecodeGeometry(data []byte) (geom.T, error) {
	var env geometry
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decoding geometry envelope")
	}
	switch t := TypeIDForName(env.Type); t {
	case GeometryCollectionID:
		gc := geom.NewGeometryCollection()
		for _, raw := range env.Geometries {
			g, err := DecodeGeometry(raw)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(g); err != nil {
				return nil, err
			}
		}
		return gc, nil
	case PointID, LineStringID, PolygonID, MultiPointID, MultiLineStringID, MultiPolygonID:
		if len(env.Coordinates) == 0 || bytes.Equal(env.Coordinates, jsonNull) {
			return nil, errors.Wrap(ErrNoGeometry, env.Type)
		}
		var g geom.T
		if err := geomjson.Unmarshal(data, &g); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", env.Type)
		}
		return g, nil
	default:
		return nil, errors.Errorf("unsupported geometry type %q", env.Type)
	}
}

// EncodeGeometry encodes a typed geometry to wire bytes. The inverse of
// DecodeGeometry.
func EncodeGeometry(g geom.T) (json.RawMessage, error) {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		members := make([]json.RawMessage, 0, gc.NumGeoms())
		for _, member := range gc.Geoms() {
			raw, err := EncodeGeometry(member)
			if err != nil {
				return nil, err
			}
			members = append(members, raw)
		}
		return json.Marshal(struct {
			Type       string            `json:"type"`
			Geometries []json.RawMessage `json:"geometries"`
		}{
			Type:       GeometryCollectionID.Name(),
			Geometries: members,
		})
	}
	raw, err := geomjson.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(err, "encoding geometry")
	}
	return raw, nil
}
