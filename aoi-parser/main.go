/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package main

import (
	"github.com/golang/glog"

	"github.com/hotosm/geojson-aoi-parser/aoi-parser/cmd"
)

func main() {
	defer glog.Flush()
	cmd.Execute()
}
