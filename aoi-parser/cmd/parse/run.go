/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package parse

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hotosm/geojson-aoi-parser/aoi"
	"github.com/hotosm/geojson-aoi-parser/x"
)

// Parse is the sub-command invoked when running "aoi-parser parse".
var Parse x.SubCommand

var opt struct {
	merge  bool
	outDir string
	indent int
}

func init() {
	Parse.Cmd = &cobra.Command{
		Use:   "parse [flags] file.geojson ...",
		Short: "Normalize GeoJSON files into AOI FeatureCollections",
		Long: `
Parse reads each input file, normalizes it into a FeatureCollection of
single two-dimensional geometries with clockwise exterior rings, and writes
the result next to the input as <name>.aoi.geojson, or into --out-dir.
With --merge the features are collapsed into one boundary polygon first.
Files are processed concurrently and independently; a file that fails to
parse does not stop the others.
`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(args); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "core"},
	}
	Parse.Cmd.SetHelpTemplate(x.NonRootTemplate)
	Parse.EnvPrefix = "AOI_PARSE"

	flag := Parse.Cmd.Flags()
	flag.BoolVarP(&opt.merge, "merge", "m", false,
		"Merge the parsed features into a single boundary polygon")
	flag.StringVarP(&opt.outDir, "out-dir", "o", "",
		"Directory to write outputs into. Defaults to each input's directory.")
	flag.IntVar(&opt.indent, "indent", 0,
		"Indent the output JSON with this many spaces")
}

func run(files []string) error {
	x.AssertTruef(opt.indent >= 0, "indent must be non-negative, got %d", opt.indent)
	if opt.outDir != "" {
		x.Checkf(os.MkdirAll(opt.outDir, 0755), "creating out-dir %s", opt.outDir)
	}

	// Plain group, no shared context: every file is attempted even after a
	// sibling fails.
	var eg errgroup.Group
	for _, in := range files {
		eg.Go(func() error {
			out, err := parseFile(in)
			if err != nil {
				glog.Errorf("Parsing %s: %v", in, err)
				return err
			}
			fmt.Printf("%s -> %s\n", in, out)
			return nil
		})
	}
	return eg.Wait()
}

func parseFile(in string) (string, error) {
	fc, warnings, err := aoi.ParseFile(in, aoi.Options{Merge: opt.merge})
	if err != nil {
		return "", err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", in, w)
	}

	var buf []byte
	if opt.indent > 0 {
		buf, err = json.MarshalIndent(fc, "", strings.Repeat(" ", opt.indent))
	} else {
		buf, err = json.Marshal(fc)
	}
	if err != nil {
		return "", err
	}

	out := outputPath(in)
	if err := os.WriteFile(out, append(buf, '\n'), 0644); err != nil {
		return "", err
	}
	return out, nil
}

func outputPath(in string) string {
	dir := filepath.Dir(in)
	if opt.outDir != "" {
		dir = opt.outDir
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, base+".aoi.geojson")
}
