/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hotosm/geojson-aoi-parser/aoi-parser/cmd/info"
	"github.com/hotosm/geojson-aoi-parser/aoi-parser/cmd/parse"
	"github.com/hotosm/geojson-aoi-parser/aoi-parser/cmd/version"
	"github.com/hotosm/geojson-aoi-parser/x"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "aoi-parser",
	Short: "aoi-parser: GeoJSON area-of-interest normalizer",
	Long: `
aoi-parser reads arbitrary GeoJSON and emits a normalized FeatureCollection:
one geometry per feature, two-dimensional coordinates, clockwise exterior
rings, and optionally a single merged boundary polygon.
`,
	Args: cobra.NoArgs,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called once, from main.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

func init() {
	RootCmd.SetHelpTemplate(x.RootTemplate)
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden by values set with environment variables and flags.")
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// A short-lived tool has no use for log files.
	x.Check(flag.Set("logtostderr", "true"))

	subcommands := []*x.SubCommand{&parse.Parse, &info.Info, &version.Version}
	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Checkf(sc.Conf.ReadInConfig(), "reading config %s", cfg)
		}
	})
}
