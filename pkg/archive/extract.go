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

// Package archive expands downloaded font zips into the font repository.
package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsafePath is returned for zip entries that would land outside the target directory
var ErrUnsafePath = errors.Base("zip entry escapes target directory")

// 📦 Extract clears dir and expands the zip at src into it.
//
// Every entry is checked before dir is touched, so an archive that fails the
// check leaves the previous contents in place. No checksum or structural
// validation of the contents is done.
func Extract(ctx context.Context, src, dir string) (int, error) {
	logger := zerolog.Ctx(ctx)

	r, err := zip.OpenReader(src)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return 0, errors.Errorf("opening archive %s: %w", src, err)
	}
	defer r.Close()

	paths, err := entryPaths(r.File, dir)
	if err != nil {
		return 0, err
	}

	if err := Clear(dir); err != nil {
		return 0, err
	}

	count := 0
	for i, f := range r.File {
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(paths[i], 0755); err != nil {
				return count, errors.Errorf("creating directory %s: %w", paths[i], err)
			}
			continue
		}

		if err := extractFile(f, paths[i]); err != nil {
			return count, err
		}
		count++
	}

	logger.Debug().Str("archive", src).Str("dir", dir).Int("files", count).Msg("archive extracted")
	return count, nil
}

// entryPaths resolves every entry under dir, failing on the first one outside it
func entryPaths(files []*zip.File, dir string) ([]string, error) {
	clean := filepath.Clean(dir)
	root := clean + string(os.PathSeparator)

	paths := make([]string, len(files))
	for i, f := range files {
		path := filepath.Join(clean, f.Name)
		if path != clean && !strings.HasPrefix(path, root) {
			return nil, errors.Errorf("%s: %w", f.Name, ErrUnsafePath)
		}
		paths[i] = path
	}
	return paths, nil
}

// Clear removes dir and recreates it empty
func Clear(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("recreating %s: %w", dir, err)
	}
	return nil
}

func extractFile(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating directory for %s: %w", path, err)
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return errors.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}

	return out.Close()
}
