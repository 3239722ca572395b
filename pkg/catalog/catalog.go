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

// Package catalog reads and writes the line-oriented font catalog.
//
// A catalog line is "<basename> <version> <display name...>". Blank lines and
// lines starting with "#" are ignored on read; a short header is written on save.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/walteh/fontsync/pkg/version"
)

// 📚 Source says which side of the reconciliation a catalog describes
type Source int

const (
	Local  Source = iota // what is installed, read from and written to disk
	Remote               // what the font host offers, read-only
)

func (s Source) String() string {
	if s == Remote {
		return "remote"
	}
	return "local"
}

// 📄 Record is one parsed catalog line
type Record struct {
	Basename      string
	DisplayName   string
	LocalVersion  string
	RemoteVersion string
}

// NewRecord builds a record with the version placed in the slot belonging to src
func NewRecord(basename, displayName, v string, src Source) Record {
	rec := Record{
		Basename:      basename,
		DisplayName:   displayName,
		LocalVersion:  version.Absent,
		RemoteVersion: version.Absent,
	}
	if src == Remote {
		rec.RemoteVersion = v
	} else {
		rec.LocalVersion = v
	}
	return rec
}

const (
	headerTitle   = "# Local font catalog"
	headerAuthor  = "# Written by fontsync"
	dateLayout    = "2006-01-02"
	versionColumn = 8
)

// 🔍 Parse turns catalog lines into records.
//
// Lines with fewer than three tokens are skipped with a warning.
func Parse(ctx context.Context, lines []string, src Source) []Record {
	logger := zerolog.Ctx(ctx)

	records := make([]Record, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			logger.Warn().
				Str("source", src.String()).
				Int("line", i+1).
				Str("text", line).
				Msg("skipping malformed catalog line")
			continue
		}

		records = append(records, NewRecord(tokens[0], strings.Join(tokens[2:], " "), tokens[1], src))
	}

	return records
}

// 📝 Serialize renders records as catalog lines, header first.
//
// Basenames are padded to width and local versions to eight columns.
func Serialize(records []Record, width int, date time.Time) []string {
	lines := make([]string, 0, len(records)+4)
	lines = append(lines,
		headerTitle,
		headerAuthor,
		"# "+date.Format(dateLayout),
		"",
	)

	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%-*s %-*s %s", width, rec.Basename, versionColumn, rec.LocalVersion, rec.DisplayName))
	}

	return lines
}

// Width returns the length of the longest basename
func Width(records []Record) int {
	width := 0
	for _, rec := range records {
		if len(rec.Basename) > width {
			width = len(rec.Basename)
		}
	}
	return width
}
