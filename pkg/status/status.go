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

package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/font"
	"github.com/walteh/fontsync/pkg/version"
)

// 📋 Row is one font's line in the action matrix
type Row struct {
	Name          string
	Basename      string
	LocalVersion  string
	RemoteVersion string
	Steps         font.Steps
	Skipped       bool  // filtered out, not checked
	Err           error // check failed
}

// NewRow builds a row from a checked font
func NewRow(f *font.Font) Row {
	return Row{
		Name:          f.Name,
		Basename:      f.Basename,
		LocalVersion:  f.LocalVersion,
		RemoteVersion: f.RemoteVersion,
		Steps:         f.Steps(),
	}
}

var matrixHeader = []string{"Font", "Basename", "Local", "Remote", "Download", "Extract", "Links"}

// 🧮 Matrix returns the table data for rows, header first
func Matrix(rows []Row) pterm.TableData {
	data := pterm.TableData{matrixHeader}
	for _, r := range rows {
		line := []string{r.Name, r.Basename, versionCell(r.LocalVersion), versionCell(r.RemoteVersion)}
		switch {
		case r.Err != nil:
			line = append(line, "error", "error", "error")
		case r.Skipped:
			line = append(line, "skip", "skip", "skip")
		default:
			line = append(line,
				stepCell(r.Steps, font.NeedsDownload),
				stepCell(r.Steps, font.NeedsExtract),
				stepCell(r.Steps, font.NeedsRelink))
		}
		data = append(data, line)
	}
	return data
}

// 🖼️ RenderMatrix writes the action matrix as a table to w
func RenderMatrix(w io.Writer, rows []Row) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(Matrix(rows)).Srender()
	if err != nil {
		return errors.Errorf("rendering action matrix: %w", err)
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return errors.Errorf("writing action matrix: %w", err)
	}
	return nil
}

// 📊 Summary counts what the matrix plans
func Summary(rows []Row) string {
	var install, update, current, skipped, failed int
	for _, r := range rows {
		switch {
		case r.Err != nil:
			failed++
		case r.Skipped:
			skipped++
		case r.Steps.Has(font.NeedsDownload):
			install++
		case r.Steps != font.UpToDate:
			update++
		default:
			current++
		}
	}

	parts := []string{
		fmt.Sprintf("%d to download", install),
		fmt.Sprintf("%d to update", update),
		fmt.Sprintf("%d up to date", current),
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return fmt.Sprintf("%d fonts: %s", len(rows), strings.Join(parts, ", "))
}

func stepCell(s font.Steps, step font.Steps) string {
	if s.Has(step) {
		return "yes"
	}
	return "-"
}

func versionCell(v string) string {
	if version.IsAbsent(v) {
		return "-"
	}
	return v
}
