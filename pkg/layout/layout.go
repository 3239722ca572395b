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

package layout

import (
	"path/filepath"
)

// 📁 FormatClass is one of the parallel directory trees fonts are installed into
type FormatClass string

const (
	OTF FormatClass = "otf" // outline fonts
	SVG FormatClass = "svg" // scalable and web fonts (svg, woff)
)

// Classes lists every format class in processing order
var Classes = []FormatClass{OTF, SVG}

const (
	// CatalogFileName is the name of the catalog, both remote and local
	CatalogFileName = "CATALOG"
	// ManifestFileName is the link manifest kept next to the local catalog
	ManifestFileName = ".fontsync.lock"
	archiveExt       = ".zip"
)

// 🗺️ Layout derives every path the tool touches from the two roots
type Layout struct {
	RepoRoot    string // holds <basename>.zip archives and extracted <basename>/ dirs
	InstallRoot string // holds the otf/ and svg/ link directories
}

// New returns a Layout for the given roots
func New(repoRoot, installRoot string) Layout {
	return Layout{
		RepoRoot:    filepath.Clean(repoRoot),
		InstallRoot: filepath.Clean(installRoot),
	}
}

func (l Layout) Catalog() string {
	return filepath.Join(l.RepoRoot, CatalogFileName)
}

func (l Layout) Manifest() string {
	return filepath.Join(l.RepoRoot, ManifestFileName)
}

// Archive is the downloaded zip for a font
func (l Layout) Archive(basename string) string {
	return filepath.Join(l.RepoRoot, basename+archiveExt)
}

// FontDir is the directory an archive is expanded into
func (l Layout) FontDir(basename string) string {
	return filepath.Join(l.RepoRoot, basename)
}

// SourceDir holds the extracted files of one format class
func (l Layout) SourceDir(basename string, class FormatClass) string {
	return filepath.Join(l.FontDir(basename), string(class))
}

// TargetDir holds the installed links of one format class
func (l Layout) TargetDir(class FormatClass) string {
	return filepath.Join(l.InstallRoot, string(class))
}
