/*
 * SPDX-FileCopyrightText: © Humanitarian OpenStreetMap Team
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

// Package x holds the small pieces of shared infrastructure that belong to
// no one package: fatal error helpers, the cobra/viper pairing used by the
// command line tool, and build version details.
package x

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand pairs a cobra command with its own viper instance, so each
// sub-command reads flags, environment variables and the shared config file
// through a single view.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

var (
	// RootTemplate is the help template for the root command. Sub-commands
	// are bucketed by their "group" annotation.
	RootTemplate = `{{if .Long}}{{.Long | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.CommandPath}} [command]

Core:{{range .Commands}}{{if (and .IsAvailableCommand (eq (index .Annotations "group") "core"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Tools:{{range .Commands}}{{if (and .IsAvailableCommand (eq (index .Annotations "group") "tool"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Generic:{{range .Commands}}{{if (and .IsAvailableCommand (or (eq (index .Annotations "group") "default") (eq .Name "help") (eq .Name "completion")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`

	// NonRootTemplate is the help template for every sub-command.
	NonRootTemplate = `{{if .Long}}{{.Long | trimTrailingWhitespaces}}

{{end}}Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`
)
