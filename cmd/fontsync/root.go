// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/fontsync/cmd/fontsync/commands"
	"github.com/walteh/fontsync/cmd/fontsync/opts"
	"github.com/walteh/fontsync/pkg/config"
	"github.com/walteh/fontsync/pkg/log"
)

// rootFlags are bound to the persistent flags of the root command
type rootFlags struct {
	configFile  string
	debug       bool
	repo        string
	installRoot string
	host        string
	local       bool
	failFast    bool
}

// newRootCmd builds the fontsync command tree
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "fontsync",
		Short: "Keep a local font repository in sync with a remote font host",
		Long: `fontsync downloads font archives listed in a remote catalog, extracts them
into a local repository and links their otf/ and svg/ files into an install root.
The local catalog records what is installed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, flags, rootOpts)
			rootOpts.ConfigFile = flags.configFile
			rootOpts.Overrides = overrides(cmd, flags)
			return nil
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewSyncCmd(rootOpts),
		commands.NewStatusCmd(rootOpts),
		commands.NewCleanCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .fontsync.{yaml,yml,hcl,json} in the working directory)")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&flags.repo, "repo", "", "local font repository")
	pf.StringVar(&flags.installRoot, "install-root", "", "directory holding the otf/ and svg/ link directories")
	pf.StringVar(&flags.host, "host", "", "font host serving CATALOG and the archives")
	pf.BoolVar(&flags.local, "local", false, "work from the local catalog only, never touching the network")
	pf.BoolVar(&flags.failFast, "fail-fast", false, "stop at the first font that fails")
}

// overrides turns the flags the user actually set into config overrides
func overrides(cmd *cobra.Command, flags *rootFlags) config.Overrides {
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("repo") {
		o.Repo = &flags.repo
	}
	if changed("install-root") {
		o.InstallRoot = &flags.installRoot
	}
	if changed("host") {
		o.Host = &flags.host
	}
	if changed("local") {
		o.Local = &flags.local
	}
	if changed("fail-fast") {
		o.FailFast = &flags.failFast
	}
	return o
}

// setupLogging puts a zerolog logger and the console logger in the command's context
func setupLogging(cmd *cobra.Command, flags *rootFlags, rootOpts *opts.RootOpts) {
	level := zerolog.WarnLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	stderr := cmd.ErrOrStderr()
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: stderr != os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	rootOpts.Console = cmd.OutOrStdout()
	console := log.New(rootOpts.Console, zlog)

	ctx := zlog.WithContext(cmd.Context())
	cmd.SetContext(log.NewContext(ctx, console))
}
