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

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [patterns...]",
		Short: "Show which fonts need to be synced",
		Long: `Status compares the local repository with the catalogs without changing anything.
It will:
1. Load the local catalog and, unless --local, fetch the remote one
2. Inspect archives, extracted directories and links
3. Print the planned actions per font`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(ctx, args)
			if err != nil {
				return err
			}

			rows, err := op.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			for _, row := range rows {
				if row.Err != nil {
					return errors.Errorf("checking %s: %w", row.Name, row.Err)
				}
			}

			return nil
		},
	}

	return cmd
}
