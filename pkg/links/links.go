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

// Package links compares and refreshes the symlinks a font installs.
package links

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/layout"
)

// 🏷️ Owners resolves which basename installed a link, when that is known
type Owners interface {
	Owner(class layout.FormatClass, name string) (basename string, ok bool)
}

// Result reports what an update did
type Result struct {
	Created map[layout.FormatClass][]string
	Removed map[layout.FormatClass][]string
	Failed  []string // source paths whose link could not be created
}

// OK reports whether every link was created
func (r *Result) OK() bool {
	return len(r.Failed) == 0
}

func newResult() *Result {
	return &Result{
		Created: map[layout.FormatClass][]string{},
		Removed: map[layout.FormatClass][]string{},
	}
}

// ✅ Consistent reports whether the installed entries of basename match the
// files in its source directories, by name only and for every format class.
//
// Targets are not checked, and entries do not have to be symlinks.
func Consistent(l layout.Layout, basename string, owners Owners) (bool, error) {
	for _, class := range layout.Classes {
		source, err := listNames(l.SourceDir(basename, class))
		if err != nil {
			return false, err
		}

		installed, err := installedNames(l, class, basename, owners)
		if err != nil {
			return false, err
		}

		if !equivalent(source, installed) {
			return false, nil
		}
	}
	return true, nil
}

// 🔗 Update removes basename's stale links and links every source file whose
// name starts with basename. A link that cannot be created is recorded in
// Result.Failed and the remaining links are still attempted.
func Update(ctx context.Context, l layout.Layout, basename string, owners Owners) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	res := newResult()

	for _, class := range layout.Classes {
		removed, err := removeClass(ctx, l, class, basename, owners)
		if err != nil {
			return res, err
		}
		res.Removed[class] = removed

		sourceDir := l.SourceDir(basename, class)
		names, err := listNames(sourceDir)
		if err != nil {
			return res, err
		}

		absSource, err := filepath.Abs(sourceDir)
		if err != nil {
			return res, errors.Errorf("resolving %s: %w", sourceDir, err)
		}

		created := []string{}
		for _, name := range names {
			if !strings.HasPrefix(name, basename) {
				continue
			}
			target := filepath.Join(absSource, name)
			link := filepath.Join(l.TargetDir(class), name)
			if err := os.Symlink(target, link); err != nil {
				logger.Warn().Err(err).Str("link", link).Str("target", target).Msg("creating link")
				res.Failed = append(res.Failed, target)
				continue
			}
			created = append(created, name)
		}
		res.Created[class] = created

		logger.Debug().
			Str("font", basename).
			Str("class", string(class)).
			Int("removed", len(removed)).
			Int("created", len(created)).
			Msg("links updated")
	}

	return res, nil
}

// 🧹 Remove deletes every link belonging to basename without creating new ones
func Remove(ctx context.Context, l layout.Layout, basename string, owners Owners) (map[layout.FormatClass][]string, error) {
	removed := map[layout.FormatClass][]string{}
	for _, class := range layout.Classes {
		names, err := removeClass(ctx, l, class, basename, owners)
		if err != nil {
			return removed, err
		}
		removed[class] = names
	}
	return removed, nil
}

// removeClass ensures the target directory exists and unlinks basename's symlinks in it
func removeClass(ctx context.Context, l layout.Layout, class layout.FormatClass, basename string, owners Owners) ([]string, error) {
	targetDir := l.TargetDir(class)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, errors.Errorf("creating %s: %w", targetDir, err)
	}

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", targetDir, err)
	}

	removed := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type()&os.ModeSymlink == 0 || !owned(class, name, basename, owners) {
			continue
		}
		if err := os.Remove(filepath.Join(targetDir, name)); err != nil {
			return removed, errors.Errorf("removing link %s: %w", name, err)
		}
		zerolog.Ctx(ctx).Trace().Str("link", name).Msg("removed stale link")
		removed = append(removed, name)
	}
	return removed, nil
}

// installedNames lists the target directory entries attributed to basename
func installedNames(l layout.Layout, class layout.FormatClass, basename string, owners Owners) ([]string, error) {
	names, err := listNames(l.TargetDir(class))
	if err != nil {
		return nil, err
	}

	matched := []string{}
	for _, name := range names {
		if owned(class, name, basename, owners) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// owned is the prefix rule, minus names the manifest gives to another font
func owned(class layout.FormatClass, name, basename string, owners Owners) bool {
	if !strings.HasPrefix(name, basename) {
		return false
	}
	if owners == nil {
		return true
	}
	if owner, ok := owners.Owner(class, name); ok && owner != basename {
		return false
	}
	return true
}

// listNames returns the entry names of dir; a missing dir lists as empty
func listNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func equivalent(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
