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

// NewCleanCmd creates a new clean command
func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [patterns...]",
		Short: "Remove the links fontsync installed",
		Long: `Clean removes the links of every font in the local catalog.
It will:
1. Load the local catalog and the lock file
2. Remove each font's links from the otf/ and svg/ directories
3. Drop the fonts from the lock file

Archives, extracted fonts and the catalog are left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(ctx, args)
			if err != nil {
				return err
			}

			if err := op.Clean(ctx); err != nil {
				return errors.Errorf("cleaning links: %w", err)
			}

			return nil
		},
	}

	return cmd
}
