/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package x

import (
	"fmt"
	"runtime"
)

// These variables are set by the build through -ldflags.
var (
	aoiVersion     string
	gitBranch      string
	lastCommitSHA  string
	lastCommitTime string
)

// Version returns the version baked into the binary, or "dev" for
// unversioned builds.
func Version() string {
	if aoiVersion == "" {
		return "dev"
	}
	return aoiVersion
}

// BuildDetails returns a multi-line summary of the binary's provenance.
func BuildDetails() string {
	return fmt.Sprintf(`
aoi-parser version : %v
Commit SHA-1       : %v
Commit timestamp   : %v
Branch             : %v
Go version         : %v

For documentation, visit https://docs.hotosm.org.
To report issues, visit https://github.com/hotosm/geojson-aoi-parser/issues.
`,
		Version(), lastCommitSHA, lastCommitTime, gitBranch, runtime.Version())
}
