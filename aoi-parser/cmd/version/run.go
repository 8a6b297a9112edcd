/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package version

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotosm/geojson-aoi-parser/x"
)

// Version is the sub-command invoked when running "aoi-parser version".
var Version x.SubCommand

func init() {
	Version.Cmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the aoi-parser version details",
		Long:  "Version prints the aoi-parser version as reported by the build details.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(x.BuildDetails())
			os.Exit(0)
		},
		Annotations: map[string]string{"group": "default"},
	}
	Version.Cmd.SetHelpTemplate(x.NonRootTemplate)
}
