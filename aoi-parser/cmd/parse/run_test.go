/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	opt.outDir = ""
	require.Equal(t,
		filepath.Join("some", "dir", "boundary.aoi.geojson"),
		outputPath(filepath.Join("some", "dir", "boundary.geojson")))

	opt.outDir = filepath.Join("out", "dir")
	defer func() { opt.outDir = "" }()
	require.Equal(t,
		filepath.Join("out", "dir", "boundary.aoi.geojson"),
		outputPath(filepath.Join("some", "dir", "boundary.geojson")))
}

func TestParseFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "square.geojson")
	err := os.WriteFile(in,
		[]byte(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`), 0644)
	require.NoError(t, err)

	opt.indent = 2
	defer func() { opt.indent = 0 }()

	out, err := parseFile(in)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "square.aoi.geojson"), out)

	buf, err := os.ReadFile(out)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,1],[1,1],[1,0],[0,0]]]},
			"properties": {}
		}]
	}`, string(buf))
	require.True(t, strings.Contains(string(buf), "\n  "), "expected indented output")
}

func TestParseFileMissingInput(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
}

func TestRunProcessesAllFiles(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.geojson", "b.geojson"} {
		p := filepath.Join(dir, name)
		err := os.WriteFile(p,
			[]byte(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`), 0644)
		require.NoError(t, err)
		files = append(files, p)
	}

	require.NoError(t, run(files))
	for _, name := range []string{"a.aoi.geojson", "b.aoi.geojson"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
	}
}

func TestRunContinuesPastBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.geojson")
	require.NoError(t, os.WriteFile(bad, []byte(`{"type": "Point"}`), 0644))
	good := filepath.Join(dir, "good.geojson")
	require.NoError(t, os.WriteFile(good,
		[]byte(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`), 0644))

	// The bad file surfaces as the run error but must not keep the good
	// file from being written.
	require.Error(t, run([]string{bad, good}))
	_, err := os.Stat(filepath.Join(dir, "good.aoi.geojson"))
	require.NoError(t, err)
}
