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

package operation

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/config"
	"github.com/walteh/fontsync/pkg/registry"
	"github.com/walteh/fontsync/pkg/remote"
	"github.com/walteh/fontsync/pkg/status"
)

// 🎯 Operator defines the main interface for fontsync operations
type Operator interface {
	// Sync brings every selected font up to date and writes the catalog
	Sync(ctx context.Context) (*registry.Report, error)
	// Status plans every font without touching the filesystem
	Status(ctx context.Context) ([]status.Row, error)
	// Clean removes every managed link of every locally cataloged font
	Clean(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the finalized fontsync configuration
	Config *config.Config
	// Provider serves the remote catalog and archives. Optional when Config.Local is set.
	Provider remote.Provider
	// Console receives the action matrix and the closing report
	Console io.Writer
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Provider == nil && !opts.Config.Local {
		return nil, errors.Errorf("provider is required")
	}
	if opts.Console == nil {
		opts.Console = io.Discard
	}
	return &operator{
		config:   opts.Config,
		provider: opts.Provider,
		console:  opts.Console,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config   *config.Config
	provider remote.Provider
	console  io.Writer
}

func (o *operator) registry(preview func(ctx context.Context, r *registry.Registry) error) (*registry.Registry, error) {
	reg, err := registry.New(registry.Options{
		Layout:    o.config.Layout(),
		LocalOnly: o.config.Local,
		FailFast:  o.config.FailFast,
		Patterns:  o.config.Fonts,
		Provider:  o.provider,
		Preview:   preview,
	})
	if err != nil {
		return nil, errors.Errorf("creating registry: %w", err)
	}
	return reg, nil
}

// rows checks every font and returns one matrix row per font in name order
func rows(ctx context.Context, reg *registry.Registry) []status.Row {
	failed := map[string]error{}
	for _, f := range reg.Check(ctx) {
		failed[f.Font] = f
	}

	names := reg.Names()
	out := make([]status.Row, 0, len(names))
	for _, name := range names {
		f, _ := reg.Font(name)
		row := status.NewRow(f)
		row.Skipped = !reg.Selected(f.Basename)
		row.Err = failed[name]
		out = append(out, row)
	}
	return out
}
