/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package info

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	geom "github.com/twpayne/go-geom"

	"github.com/hotosm/geojson-aoi-parser/aoi"
	"github.com/hotosm/geojson-aoi-parser/geo"
	"github.com/hotosm/geojson-aoi-parser/geojson"
	"github.com/hotosm/geojson-aoi-parser/x"
)

// Info is the sub-command invoked when running "aoi-parser info".
var Info x.SubCommand

var opt struct {
	point string
}

func init() {
	Info.Cmd = &cobra.Command{
		Use:   "info [flags] file.geojson",
		Short: "Summarize the features of a GeoJSON file",
		Long: `
Info normalizes a GeoJSON file and prints one line per resulting feature:
geometry kind, vertex count, bounding box, and for polygons the spherical
area and perimeter. Advisory warnings go to stderr.
`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(args[0]); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Info.Cmd.SetHelpTemplate(x.NonRootTemplate)
	Info.EnvPrefix = "AOI_INFO"

	flag := Info.Cmd.Flags()
	flag.StringVarP(&opt.point, "point", "p", "",
		"A lon,lat position to test against each polygon feature")
}

func run(file string) error {
	fc, warnings, err := aoi.ParseFile(file, aoi.Options{})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", file, w)
	}

	var pt geom.Coord
	if opt.point != "" {
		if pt, err = parsePoint(opt.point); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d features\n", file, len(fc.Features))
	for i, f := range fc.Features {
		describe(i, f, pt)
	}
	return nil
}

func describe(i int, f *geojson.Feature, pt geom.Coord) {
	g := f.Geometry
	b := g.Bounds()
	fmt.Printf("feature %d: %s vertices=%d bbox=[%g %g %g %g]",
		i, geojson.TypeOf(g).Name(), vertexCount(g), b.Min(0), b.Min(1), b.Max(0), b.Max(1))

	if p, ok := g.(*geom.Polygon); ok {
		if area, err := geo.AreaOf(p); err == nil {
			fmt.Printf(" area=%s", area)
		}
		if perim, err := geo.Perimeter(p); err == nil {
			fmt.Printf(" perimeter=%s", perim)
		}
		if pt != nil {
			if inside, err := geo.Contains(p, pt); err == nil {
				fmt.Printf(" contains(%g %g)=%v", pt.X(), pt.Y(), inside)
			}
		}
	}
	fmt.Println()
}

func vertexCount(g geom.T) int {
	if g.Stride() == 0 {
		return 0
	}
	return len(g.FlatCoords()) / g.Stride()
}

func parsePoint(s string) (geom.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errors.Errorf("point must be lon,lat, got %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing longitude of %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing latitude of %q", s)
	}
	return geom.Coord{lon, lat}, nil
}
