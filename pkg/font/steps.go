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

package font

import "strings"

// 🪜 Steps is the set of actions a font needs; the zero value means up to date
type Steps uint8

const (
	NeedsDownload Steps = 1 << iota
	NeedsExtract
	NeedsRelink
)

const UpToDate Steps = 0

// Has reports whether every step in other is set
func (s Steps) Has(other Steps) bool {
	return s&other == other
}

func (s Steps) String() string {
	if s == UpToDate {
		return "up-to-date"
	}
	parts := make([]string, 0, 3)
	if s.Has(NeedsDownload) {
		parts = append(parts, "download")
	}
	if s.Has(NeedsExtract) {
		parts = append(parts, "extract")
	}
	if s.Has(NeedsRelink) {
		parts = append(parts, "relink")
	}
	return strings.Join(parts, "|")
}

// 🔭 Observation is everything Plan needs to know about a font
type Observation struct {
	LocalOnly       bool
	NeverInstalled  bool // local version is absent
	RemoteNewer     bool
	ArchivePresent  bool
	DirPresent      bool
	LinksConsistent bool
}

// 🧮 Plan derives the steps a font needs.
//
// A fresh download forces an extract, and either forces a relink.
func Plan(o Observation) Steps {
	var s Steps
	if !o.LocalOnly && (o.NeverInstalled || o.RemoteNewer || !o.ArchivePresent) {
		s |= NeedsDownload
	}
	if s.Has(NeedsDownload) || (o.ArchivePresent && !o.DirPresent) {
		s |= NeedsExtract
	}
	if s != UpToDate || !o.LinksConsistent {
		s |= NeedsRelink
	}
	return s
}
