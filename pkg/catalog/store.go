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

package catalog

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/fault"
)

// ErrRemoteWrite is returned when something tries to write a remote catalog
var ErrRemoteWrite = errors.Base("remote catalog is read-only")

// Fetcher supplies the body of a remote catalog
type Fetcher interface {
	FetchCatalog(ctx context.Context) (io.ReadCloser, error)
}

// 🗄️ Store loads a catalog from disk or from the font host
type Store struct {
	source  Source
	path    string
	fetcher Fetcher
}

// NewLocal returns a store backed by the catalog file at path
func NewLocal(path string) *Store {
	return &Store{source: Local, path: path}
}

// NewRemote returns a read-only store backed by f
func NewRemote(f Fetcher) *Store {
	return &Store{source: Remote, fetcher: f}
}

func (s *Store) Source() Source {
	return s.source
}

// 📥 Load reads the raw catalog lines.
//
// A missing local catalog is a first run and yields no lines.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	if s.source == Remote {
		body, err := s.fetcher.FetchCatalog(ctx)
		if err != nil {
			return nil, errors.Errorf("loading remote catalog: %w", err)
		}
		defer body.Close()
		return readLines(body)
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Info().Str("path", s.path).Msg("no local catalog, starting fresh")
			return []string{}, nil
		}
		return nil, errors.Errorf("opening local catalog: %w", err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, errors.Errorf("reading local catalog: %w", err)
	}
	return lines, nil
}

// 📥 Records loads and parses the catalog
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	lines, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, lines, s.source), nil
}

// 💾 Write replaces the local catalog with lines
func (s *Store) Write(ctx context.Context, lines []string) error {
	if s.source == Remote {
		return fault.New(fault.KindContract, "", errors.WithStack(ErrRemoteWrite))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Errorf("creating catalog directory: %w", err)
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := writeFileAtomic(s.path, []byte(content)); err != nil {
		return errors.Errorf("writing local catalog: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("lines", len(lines)).Msg("catalog written")
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("scanning catalog: %w", err)
	}
	return lines, nil
}

func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
