/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package geojson

import (
	"bytes"
	"encoding/json"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// A Document is a top-level GeoJSON object of whatever kind, decoded just far
// enough to classify it. The type check is done on the raw document so input
// produced by any upstream library can be accepted.
type Document struct {
	// Type is the classified kind, UnknownID when the "type" member is
	// absent or carries an unrecognized name.
	Type TypeID
	// TypeName is the literal "type" member, "" when absent.
	TypeName string
	// CRS is the top-level crs member, if any.
	CRS *CRS

	raw        []byte
	features   []json.RawMessage
	geometry   json.RawMessage
	properties map[string]interface{}
	id         json.RawMessage
}

// DecodeDocument classifies raw GeoJSON document bytes. It fails only on
// malformed JSON; missing or unrecognized "type" members are reported through
// the Type and TypeName fields so callers can produce their own errors.
func DecodeDocument(data []byte) (*Document, error) {
	var jd struct {
		Type       string                 `json:"type"`
		Features   []json.RawMessage      `json:"features"`
		Geometry   json.RawMessage        `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
		ID         json.RawMessage        `json:"id"`
		CRS        *CRS                   `json:"crs"`
	}
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, errors.Wrap(err, "decoding GeoJSON document")
	}
	return &Document{
		Type:       TypeIDForName(jd.Type),
		TypeName:   jd.Type,
		CRS:        jd.CRS,
		raw:        append([]byte(nil), data...),
		features:   jd.Features,
		geometry:   jd.Geometry,
		properties: jd.Properties,
		id:         jd.ID,
	}, nil
}

// FeatureCollection lifts the document into the canonical FeatureCollection
// shape: a FeatureCollection is rebuilt from its features, a Feature is
// wrapped as a one-feature collection, and a bare geometry is wrapped in a
// fresh Feature with empty properties. A top-level crs member is carried over
// in every case.
func (d *Document) FeatureCollection() (*FeatureCollection, error) {
	fc := &FeatureCollection{CRS: d.CRS}
	switch {
	case d.Type == FeatureCollectionID:
		glog.V(2).Info("Already in FeatureCollection format, reparsing")
		fc.Features = make([]*Feature, 0, len(d.features))
		for _, raw := range d.features {
			var f Feature
			if err := json.Unmarshal(raw, &f); err != nil {
				return nil, errors.Wrap(err, "decoding feature")
			}
			fc.Features = append(fc.Features, &f)
		}
	case d.Type == FeatureID:
		glog.V(2).Info("Converting Feature to FeatureCollection")
		f := &Feature{ID: decodeID(d.id), Properties: d.properties}
		if len(d.geometry) > 0 && !bytes.Equal(d.geometry, jsonNull) {
			g, err := DecodeGeometry(d.geometry)
			if err != nil {
				glog.V(2).Infof("Feature geometry could not be decoded: %v", err)
			} else {
				f.Geometry = g
			}
		}
		fc.Features = []*Feature{f}
	case d.Type.IsGeometry():
		glog.V(2).Info("Converting Geometry to FeatureCollection")
		f := &Feature{Properties: map[string]interface{}{}}
		g, err := DecodeGeometry(d.raw)
		if err != nil {
			glog.V(2).Infof("Geometry could not be decoded: %v", err)
		} else {
			f.Geometry = g
		}
		fc.Features = []*Feature{f}
	default:
		return nil, errors.Errorf("cannot lift %q into a FeatureCollection", d.TypeName)
	}
	return fc, nil
}
