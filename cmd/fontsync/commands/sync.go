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

package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/cmd/fontsync/opts"
)

// NewSyncCmd creates a new sync command
func NewSyncCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [patterns...]",
		Short: "Download, extract and link fonts from the font host",
		Long: `Sync brings the local repository up to date with the remote catalog.
It will:
1. Load the local catalog and fetch the remote one
2. Show which fonts need a download, an extract or new links
3. Handle each font in name order
4. Write the local catalog

Patterns are globs on font basenames and limit which fonts are handled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(ctx, args)
			if err != nil {
				return err
			}

			if _, err := op.Sync(ctx); err != nil {
				return errors.Errorf("syncing fonts: %w", err)
			}

			return nil
		},
	}

	return cmd
}
