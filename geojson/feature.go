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
	"github.com/spf13/cast"
	geom "github.com/twpayne/go-geom"
)

// A Feature pairs a geometry with free-form properties. Geometry is nil when
// the wire form had none, or had one that could not be decoded; such features
// are dropped during normalization rather than failing their siblings.
type Feature struct {
	ID         string
	Geometry   geom.T
	Properties map[string]interface{}
}

type jsonFeature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// MarshalJSON implements json.Marshaler. Properties always marshal as an
// object, never null.
func (f *Feature) MarshalJSON() ([]byte, error) {
	raw := json.RawMessage(jsonNull)
	if f.Geometry != nil {
		var err error
		raw, err = EncodeGeometry(f.Geometry)
		if err != nil {
			return nil, err
		}
	}
	props := f.Properties
	if props == nil {
		props = map[string]interface{}{}
	}
	return json.Marshal(&jsonFeature{
		Type:       FeatureID.Name(),
		ID:         f.ID,
		Geometry:   raw,
		Properties: props,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Decoding is deliberately loose:
// a wrong "type" member or a broken geometry leaves Geometry nil instead of
// returning an error, so one bad entry cannot sink a whole collection.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var jf struct {
		Type       string                 `json:"type"`
		ID         json.RawMessage        `json:"id"`
		Geometry   json.RawMessage        `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}
	if err := json.Unmarshal(data, &jf); err != nil {
		return err
	}
	f.ID = decodeID(jf.ID)
	f.Properties = jf.Properties
	f.Geometry = nil
	if jf.Type != FeatureID.Name() {
		glog.V(2).Infof("Entry of type %q is not a Feature, keeping without geometry", jf.Type)
		return nil
	}
	if len(jf.Geometry) == 0 || bytes.Equal(jf.Geometry, jsonNull) {
		return nil
	}
	g, err := DecodeGeometry(jf.Geometry)
	if err != nil {
		glog.V(2).Infof("Feature geometry could not be decoded: %v", err)
		return nil
	}
	f.Geometry = g
	return nil
}

// decodeID accepts both string and numeric ids, per RFC 7946 §3.2.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return cast.ToString(v)
}

// A FeatureCollection is the canonical container every accepted input is
// lifted into before normalization.
type FeatureCollection struct {
	Features []*Feature
	CRS      *CRS
}

type jsonFeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
	CRS      *CRS       `json:"crs,omitempty"`
}

// MarshalJSON implements json.Marshaler. Features always marshal as an
// array, never null.
func (fc *FeatureCollection) MarshalJSON() ([]byte, error) {
	features := fc.Features
	if features == nil {
		features = []*Feature{}
	}
	return json.Marshal(&jsonFeatureCollection{
		Type:     FeatureCollectionID.Name(),
		Features: features,
		CRS:      fc.CRS,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	var jfc jsonFeatureCollection
	if err := json.Unmarshal(data, &jfc); err != nil {
		return err
	}
	if jfc.Type != FeatureCollectionID.Name() {
		return errors.Errorf("expected a FeatureCollection, got %q", jfc.Type)
	}
	fc.Features = jfc.Features
	fc.CRS = jfc.CRS
	return nil
}
