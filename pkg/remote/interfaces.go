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

package remote

import (
	"context"
	"io"
)

// Provider is everything the sync needs from the font host
type Provider interface {
	// CatalogURL returns the well-known location of the remote catalog
	CatalogURL() string
	// ArchiveURL returns where the zip for basename is served from
	ArchiveURL(basename string) string
	// FetchCatalog returns a reader for the remote catalog
	FetchCatalog(ctx context.Context) (io.ReadCloser, error)
	// DownloadArchive streams the zip for basename to dest.
	// dest is replaced only once the whole body has been received.
	DownloadArchive(ctx context.Context, basename string, dest string) error
}
