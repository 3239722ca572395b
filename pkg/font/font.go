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

// Package font holds the per-font reconciliation: what a font needs, and doing it.
package font

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/archive"
	"github.com/walteh/fontsync/pkg/catalog"
	"github.com/walteh/fontsync/pkg/fault"
	"github.com/walteh/fontsync/pkg/layout"
	"github.com/walteh/fontsync/pkg/links"
	"github.com/walteh/fontsync/pkg/log"
	"github.com/walteh/fontsync/pkg/manifest"
	"github.com/walteh/fontsync/pkg/remote"
	"github.com/walteh/fontsync/pkg/version"
)

var (
	ErrConflict    = errors.Base("conflicting basename")
	ErrLinksFailed = errors.Base("links could not be created")
)

// 🌍 Env is what a font needs from the outside world
type Env struct {
	Layout    layout.Layout
	LocalOnly bool
	Provider  remote.Provider    // unused when LocalOnly
	Manifest  *manifest.Manifest // optional
}

func (e Env) owners() links.Owners {
	if e.Manifest == nil {
		return nil
	}
	return e.Manifest
}

// 🔤 Font is one font's versions and the steps it needs
type Font struct {
	Basename      string
	Name          string
	LocalVersion  string
	RemoteVersion string

	steps Steps
}

// New creates a font from its first catalog record
func New(rec catalog.Record) *Font {
	f := &Font{
		Basename:      rec.Basename,
		Name:          rec.DisplayName,
		LocalVersion:  version.Absent,
		RemoteVersion: version.Absent,
	}
	if rec.LocalVersion != "" {
		f.LocalVersion = rec.LocalVersion
	}
	if rec.RemoteVersion != "" {
		f.RemoteVersion = rec.RemoteVersion
	}
	return f
}

// 🔀 Merge fills the version slots that are still absent from rec.
//
// A record for the same name with a different basename is a conflict.
func (f *Font) Merge(rec catalog.Record) error {
	if rec.Basename != f.Basename {
		return fault.New(fault.KindConflict, f.Name,
			errors.Errorf("%q is %q in one catalog and %q in another: %w", f.Name, f.Basename, rec.Basename, ErrConflict))
	}
	if version.IsAbsent(f.LocalVersion) && !version.IsAbsent(rec.LocalVersion) {
		f.LocalVersion = rec.LocalVersion
	}
	if version.IsAbsent(f.RemoteVersion) && !version.IsAbsent(rec.RemoteVersion) {
		f.RemoteVersion = rec.RemoteVersion
	}
	return nil
}

// Record returns the font as a catalog record
func (f *Font) Record() catalog.Record {
	return catalog.Record{
		Basename:      f.Basename,
		DisplayName:   f.Name,
		LocalVersion:  f.LocalVersion,
		RemoteVersion: f.RemoteVersion,
	}
}

func (f *Font) Steps() Steps {
	return f.steps
}

// UpToDate reports whether the last Check found nothing to do
func (f *Font) UpToDate() bool {
	return f.steps == UpToDate
}

// 🔭 Observe inspects the filesystem and versions without changing anything
func (f *Font) Observe(ctx context.Context, env Env) (Observation, error) {
	obs := Observation{
		LocalOnly:      env.LocalOnly,
		NeverInstalled: version.IsAbsent(f.LocalVersion),
	}

	if !env.LocalOnly {
		newer, err := version.RemoteNewer(f.LocalVersion, f.RemoteVersion)
		if err != nil {
			return obs, errors.Errorf("comparing versions: %w", err)
		}
		obs.RemoteNewer = newer
	}

	var err error
	if obs.ArchivePresent, err = isFile(env.Layout.Archive(f.Basename)); err != nil {
		return obs, err
	}
	if obs.DirPresent, err = isDir(env.Layout.FontDir(f.Basename)); err != nil {
		return obs, err
	}
	if obs.LinksConsistent, err = links.Consistent(env.Layout, f.Basename, env.owners()); err != nil {
		return obs, errors.Errorf("checking links: %w", err)
	}

	return obs, nil
}

// ✅ Check decides which steps the font needs. It is safe to call repeatedly.
func (f *Font) Check(ctx context.Context, env Env) error {
	obs, err := f.Observe(ctx, env)
	if err != nil {
		return fault.New(fault.KindCheck, f.Name, err)
	}

	f.steps = Plan(obs)

	zerolog.Ctx(ctx).Debug().
		Str("font", f.Name).
		Interface("observation", obs).
		Stringer("steps", f.steps).
		Msg("font checked")

	return nil
}

// ⚙️ Handle runs the planned steps in order: download, extract, relink.
//
// A failed download skips the remaining steps and leaves LocalVersion alone.
// Extract and relink failures are reported but do not stop the next step.
func (f *Font) Handle(ctx context.Context, env Env) []*fault.Error {
	if f.steps == UpToDate {
		return nil
	}

	console := log.FromContext(ctx)
	console.StartFont(ctx, log.FontOperation{
		Name:          f.Name,
		Basename:      f.Basename,
		LocalVersion:  f.LocalVersion,
		RemoteVersion: f.RemoteVersion,
		Steps:         f.steps.String(),
	})
	defer console.EndFont(ctx)

	var faults []*fault.Error

	if f.steps.Has(NeedsDownload) {
		console.Step(ctx, log.StepOperation{Name: "Download", Detail: env.Provider.ArchiveURL(f.Basename)})
		if err := env.Provider.DownloadArchive(ctx, f.Basename, env.Layout.Archive(f.Basename)); err != nil {
			console.StepFailed(ctx, err)
			return append(faults, fault.New(fault.KindDownload, f.Name, err))
		}
		f.LocalVersion = f.RemoteVersion
		console.StepOK(ctx)
	}

	if f.steps.Has(NeedsExtract) {
		src := env.Layout.Archive(f.Basename)
		console.Step(ctx, log.StepOperation{Name: "Extract", Detail: src})
		if _, err := archive.Extract(ctx, src, env.Layout.FontDir(f.Basename)); err != nil {
			console.StepFailed(ctx, err)
			faults = append(faults, fault.New(fault.KindExtract, f.Name, err))
		} else {
			console.StepOK(ctx)
		}
	}

	if f.steps.Has(NeedsRelink) {
		console.Step(ctx, log.StepOperation{Name: "Update links"})
		res, err := links.Update(ctx, env.Layout, f.Basename, env.owners())
		switch {
		case err != nil:
			console.StepFailed(ctx, err)
			faults = append(faults, fault.New(fault.KindLinks, f.Name, err))
		case !res.OK():
			console.FailedLinks(ctx, res.Failed)
			faults = append(faults, fault.New(fault.KindLinks, f.Name,
				errors.Errorf("%w: %d failed", ErrLinksFailed, len(res.Failed))))
		default:
			console.StepOK(ctx)
		}
		if res != nil {
			env.Manifest.Record(f.Basename, f.LocalVersion, res.Created)
		}
	}

	return faults
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("inspecting %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("inspecting %s: %w", path, err)
	}
	return info.IsDir(), nil
}
