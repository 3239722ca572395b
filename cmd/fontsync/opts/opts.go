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

package opts

import (
	"context"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/config"
	"github.com/walteh/fontsync/pkg/operation"
	"github.com/walteh/fontsync/pkg/remote"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// ConfigFile is the --config flag; empty means look in the working directory
	ConfigFile string
	// Overrides holds the persistent flags the user set
	Overrides config.Overrides
	// Console receives user-facing output
	Console io.Writer
}

// 🎯 Config loads the config file, applies flags and patterns, and finalizes it
func (o *RootOpts) Config(ctx context.Context, patterns []string) (*config.Config, error) {
	path := o.ConfigFile
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		path = config.Find(wd)
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(ctx, path); err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	}

	overrides := o.Overrides
	overrides.Fonts = patterns
	cfg.Apply(overrides)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// 🏭 Operator builds an operator for the finalized config
func (o *RootOpts) Operator(ctx context.Context, patterns []string) (operation.Operator, error) {
	cfg, err := o.Config(ctx, patterns)
	if err != nil {
		return nil, err
	}

	var provider remote.Provider
	if !cfg.Local {
		provider = remote.NewClient(cfg.Host, nil)
	}

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Provider: provider,
		Console:  o.Console,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}
	return op, nil
}
