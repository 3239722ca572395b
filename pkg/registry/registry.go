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

// Package registry owns the full set of fonts for a run and drives the
// load, check, handle and write cycle over them in name order.
package registry

import (
	"context"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/catalog"
	"github.com/walteh/fontsync/pkg/fault"
	"github.com/walteh/fontsync/pkg/font"
	"github.com/walteh/fontsync/pkg/layout"
	"github.com/walteh/fontsync/pkg/log"
	"github.com/walteh/fontsync/pkg/manifest"
	"github.com/walteh/fontsync/pkg/remote"
)

// ⚙️ Options configures a registry
type Options struct {
	Layout    layout.Layout
	LocalOnly bool
	FailFast  bool     // stop at the first per-font failure
	Patterns  []string // doublestar globs on basenames; empty handles every font
	Provider  remote.Provider
	Now       func() time.Time

	// Preview runs after Load and before Handle. An error stops the run.
	Preview func(ctx context.Context, r *Registry) error
}

// 📊 Report summarizes a run
type Report struct {
	Fonts    int
	Handled  int
	UpToDate int
	Skipped  int // filtered out by Patterns
	Failures []*fault.Error
}

// OK reports whether no font failed
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// 🗂️ Registry holds every known font, keyed and ordered by display name
type Registry struct {
	opts     Options
	names    []string
	fonts    map[string]*font.Font
	manifest *manifest.Manifest
	local    *catalog.Store
	remote   *catalog.Store
}

// 🏭 New creates an empty registry
func New(opts Options) (*Registry, error) {
	for _, pattern := range opts.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid font pattern %q", pattern)
		}
	}
	if !opts.LocalOnly && opts.Provider == nil {
		return nil, errors.New("a provider is required unless running local-only")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Registry{
		opts:     opts,
		fonts:    map[string]*font.Font{},
		manifest: manifest.New(opts.Layout.Manifest()),
		local:    catalog.NewLocal(opts.Layout.Catalog()),
	}
	if !opts.LocalOnly {
		r.remote = catalog.NewRemote(opts.Provider)
	}
	return r, nil
}

// Names returns the display names in sorted order
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Font returns the font registered under name
func (r *Registry) Font(name string) (*font.Font, bool) {
	f, ok := r.fonts[name]
	return f, ok
}

func (r *Registry) Manifest() *manifest.Manifest {
	return r.manifest
}

func (r *Registry) env() font.Env {
	return font.Env{
		Layout:    r.opts.Layout,
		LocalOnly: r.opts.LocalOnly,
		Provider:  r.opts.Provider,
		Manifest:  r.manifest,
	}
}

// 🔀 Merge adds rec as a new font or merges it into the font of the same name
func (r *Registry) Merge(rec catalog.Record) error {
	if f, ok := r.fonts[rec.DisplayName]; ok {
		return f.Merge(rec)
	}

	r.fonts[rec.DisplayName] = font.New(rec)
	i := sort.SearchStrings(r.names, rec.DisplayName)
	r.names = append(r.names, "")
	copy(r.names[i+1:], r.names[i:])
	r.names[i] = rec.DisplayName
	return nil
}

// 📥 Load reads the manifest, the local catalog and, unless local-only, the remote catalog
func (r *Registry) Load(ctx context.Context) error {
	m, err := manifest.Load(ctx, r.opts.Layout.Manifest())
	if err != nil {
		return fault.New(fault.KindCatalogRead, "", err)
	}
	r.manifest = m

	records, err := r.local.Records(ctx)
	if err != nil {
		return fault.New(fault.KindCatalogRead, "", err)
	}
	if err := r.mergeAll(records); err != nil {
		return err
	}

	if r.remote == nil {
		return nil
	}

	records, err = r.remote.Records(ctx)
	if err != nil {
		return fault.New(fault.KindRemoteCatalog, "", err)
	}
	return r.mergeAll(records)
}

func (r *Registry) mergeAll(records []catalog.Record) error {
	for _, rec := range records {
		if err := r.Merge(rec); err != nil {
			return err
		}
	}
	return nil
}

// Selected reports whether the font with basename passes the pattern filter
func (r *Registry) Selected(basename string) bool {
	if len(r.opts.Patterns) == 0 {
		return true
	}
	for _, pattern := range r.opts.Patterns {
		if ok, _ := doublestar.Match(pattern, basename); ok {
			return true
		}
	}
	return false
}

// ✅ Check plans every selected font. Failures are per font and returned together.
func (r *Registry) Check(ctx context.Context) []*fault.Error {
	var faults []*fault.Error
	env := r.env()
	for _, name := range r.names {
		f := r.fonts[name]
		if !r.Selected(f.Basename) {
			continue
		}
		if err := f.Check(ctx, env); err != nil {
			faults = append(faults, asFault(err, f.Name))
		}
	}
	return faults
}

// ⚙️ Handle checks then handles every selected font in name order
func (r *Registry) Handle(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	report := &Report{Fonts: len(r.names)}
	env := r.env()

	for _, name := range r.names {
		f := r.fonts[name]
		if !r.Selected(f.Basename) {
			report.Skipped++
			continue
		}

		if err := f.Check(ctx, env); err != nil {
			report.Failures = append(report.Failures, asFault(err, f.Name))
			if r.opts.FailFast {
				return report, errors.Errorf("checking %s: %w", f.Name, err)
			}
			continue
		}

		if f.UpToDate() {
			report.UpToDate++
			continue
		}

		faults := f.Handle(ctx, env)
		report.Handled++
		report.Failures = append(report.Failures, faults...)
		if len(faults) > 0 {
			logger.Warn().Str("font", f.Name).Int("failures", len(faults)).Msg("font handled with failures")
			if r.opts.FailFast {
				return report, errors.Errorf("handling %s: %w", f.Name, faults[0])
			}
		}
	}

	return report, nil
}

// 📋 Records returns every font as a catalog record, in name order
func (r *Registry) Records() []catalog.Record {
	records := make([]catalog.Record, 0, len(r.names))
	for _, name := range r.names {
		records = append(records, r.fonts[name].Record())
	}
	return records
}

// 💾 Write saves the local catalog from in-memory state, then the manifest
func (r *Registry) Write(ctx context.Context) error {
	records := r.Records()
	lines := catalog.Serialize(records, catalog.Width(records), r.opts.Now())

	if err := r.local.Write(ctx, lines); err != nil {
		return fault.New(fault.KindCatalogWrite, "", err)
	}
	if err := r.manifest.Save(ctx); err != nil {
		return fault.New(fault.KindCatalogWrite, "", err)
	}
	return nil
}

// 🚀 Run loads, previews, handles and writes. Fatal failures stop the run before the write.
func (r *Registry) Run(ctx context.Context) (*Report, error) {
	console := log.FromContext(ctx)

	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	if r.opts.Preview != nil {
		if err := r.opts.Preview(ctx, r); err != nil {
			return nil, errors.Errorf("previewing actions: %w", err)
		}
	}

	console.Header("Checking necessary actions")
	report, err := r.Handle(ctx)
	if err != nil {
		return report, err
	}

	if err := r.Write(ctx); err != nil {
		return report, err
	}

	return report, nil
}

func asFault(err error, name string) *fault.Error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fe
	}
	return fault.New(fault.KindCheck, name, err)
}
