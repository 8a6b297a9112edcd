/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package postgis is the database-backed variant of the AOI pipeline.
// Geometries are staged into a temporary table and normalized by PostGIS
// itself instead of the in-process geo routines, which is useful when the
// result should match other PostGIS-derived layers bit for bit.
package postgis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/geojson"
)

// A Session is a single-connection handle to a PostGIS database. Each
// session stages geometries into its own scratch table, so sessions are
// independent, but a single Session is not safe for concurrent use.
type Session struct {
	conn  *pgx.Conn
	owned bool
	table string
}

// New opens a session. db is either a connection string, in which case the
// session owns the resulting connection and Close releases it, or an
// existing *pgx.Conn, which is borrowed and left open for its owner.
func New(ctx context.Context, db interface{}) (*Session, error) {
	s := &Session{table: newTableName()}
	switch v := db.(type) {
	case string:
		conn, err := pgx.Connect(ctx, v)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to PostGIS")
		}
		s.conn = conn
		s.owned = true
	case *pgx.Conn:
		s.conn = v
	default:
		return nil, errors.New("db must be a connection string or an existing pgx connection")
	}
	return s, nil
}

// ParseAOI stages the geometries, lets PostGIS normalize them, optionally
// runs the disjoint merge pass, and reads the result back as a
// FeatureCollection. The scratch table is dropped before returning.
func (s *Session) ParseAOI(ctx context.Context, geoms []geom.T, merge bool) (*geojson.FeatureCollection, error) {
	if len(geoms) == 0 {
		return nil, errors.New("FeatureCollection must contain at least one feature")
	}

	if _, err := s.conn.Exec(ctx, createTableSQL(s.table)); err != nil {
		return nil, errors.Wrap(err, "creating scratch table")
	}
	defer func() {
		if _, err := s.conn.Exec(context.Background(), dropTableSQL(s.table)); err != nil {
			glog.Warningf("Dropping scratch table %q: %v", s.table, err)
		}
	}()

	batch := &pgx.Batch{}
	for _, g := range geoms {
		payload, err := geojson.EncodeGeometry(g)
		if err != nil {
			return nil, err
		}
		batch.Queue(insertSQL(s.table, geojson.TypeOf(g)), string(payload))
	}
	if err := s.conn.SendBatch(ctx, batch).Close(); err != nil {
		return nil, errors.Wrap(err, "staging geometries")
	}

	if merge {
		if _, err := s.conn.Exec(ctx, mergeDisjointsSQL(s.table)); err != nil {
			return nil, errors.Wrap(err, "merging disjoint polygons")
		}
	}

	var raw []byte
	if err := s.conn.QueryRow(ctx, collectSQL(s.table)).Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "collecting features")
	}
	fc := &geojson.FeatureCollection{}
	if err := json.Unmarshal(raw, fc); err != nil {
		return nil, errors.Wrap(err, "decoding feature collection")
	}
	return fc, nil
}

// newTableName generates a per-session scratch table name. Random names
// keep concurrent sessions on a shared connection pool from colliding.
func newTableName() string {
	return fmt.Sprintf("aoi_%x", uuid.New())
}

// Close releases the underlying connection if the session owns it. Borrowed
// connections are left open for their owner.
func (s *Session) Close(ctx context.Context) error {
	if !s.owned || s.conn == nil {
		return nil
	}
	return s.conn.Close(ctx)
}
