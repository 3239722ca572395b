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

// Package manifest tracks which installed links belong to which font.
//
// Without it, ownership of a link is guessed from its name prefix, which
// breaks when one basename is a prefix of another ("foo" and "foobar").
package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/layout"
)

// SchemaVersion is bumped whenever the on-disk layout changes
const SchemaVersion = 1

var ErrSchemaVersion = errors.Base("unsupported manifest schema version")

// 🔒 Manifest is the .fontsync.lock file
type Manifest struct {
	SchemaVersion int                   `json:"schema_version"`
	LastUpdated   time.Time             `json:"last_updated"`
	Fonts         map[string]*FontState `json:"fonts"`

	path string
}

// FontState tracks the links installed for one basename
type FontState struct {
	Version     string                          `json:"version"`
	LastUpdated time.Time                       `json:"last_updated"`
	Links       map[layout.FormatClass][]string `json:"links"`
}

// New returns an empty manifest that will be saved to path
func New(path string) *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion,
		Fonts:         map[string]*FontState{},
		path:          path,
	}
}

// 📥 Load reads the manifest at path. A missing file yields an empty manifest.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(path), nil
		}
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	m := New(path)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.SchemaVersion != SchemaVersion {
		return nil, errors.Errorf("%s has version %d: %w", path, m.SchemaVersion, ErrSchemaVersion)
	}
	if m.Fonts == nil {
		m.Fonts = map[string]*FontState{}
	}

	return m, nil
}

// 💾 Save writes the manifest atomically
func (m *Manifest) Save(ctx context.Context) error {
	m.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return errors.Errorf("encoding manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return errors.Errorf("creating manifest directory: %w", err)
	}

	tempPath := m.path + ".tmp"
	if err := os.WriteFile(tempPath, append(data, '\n'), 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, m.path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", m.path).Int("fonts", len(m.Fonts)).Msg("manifest saved")
	return nil
}

func (m *Manifest) Path() string {
	return m.path
}

// 🔍 Owner returns the basename that installed link name in class
func (m *Manifest) Owner(class layout.FormatClass, name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for basename, fs := range m.Fonts {
		for _, link := range fs.Links[class] {
			if link == name {
				return basename, true
			}
		}
	}
	return "", false
}

// Links returns the link names recorded for basename in class
func (m *Manifest) Links(basename string, class layout.FormatClass) []string {
	if m == nil {
		return nil
	}
	fs, ok := m.Fonts[basename]
	if !ok {
		return nil
	}
	return fs.Links[class]
}

// ✏️ Record replaces what is known about basename's installed links
func (m *Manifest) Record(basename, version string, links map[layout.FormatClass][]string) {
	if m == nil {
		return
	}

	copied := make(map[layout.FormatClass][]string, len(links))
	for class, names := range links {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		copied[class] = sorted
	}

	m.Fonts[basename] = &FontState{
		Version:     version,
		LastUpdated: time.Now().UTC(),
		Links:       copied,
	}
}

// Forget drops basename from the manifest
func (m *Manifest) Forget(basename string) {
	if m == nil {
		return
	}
	delete(m.Fonts, basename)
}
