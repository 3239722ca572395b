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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultHost serves the catalog and every font archive
const DefaultHost = "http://fonts.openlilylib.org"

const catalogPath = "CATALOG"

var _ Provider = (*Client)(nil)

// 🌐 Client fetches catalogs and archives over plain HTTP GET
type Client struct {
	host string
	http *http.Client
}

// 🏭 NewClient creates a client for host. A nil httpClient uses http.DefaultClient.
func NewClient(host string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		host: strings.TrimRight(host, "/"),
		http: httpClient,
	}
}

func (c *Client) Host() string {
	return c.host
}

// 🔗 CatalogURL returns {host}/CATALOG
func (c *Client) CatalogURL() string {
	return fmt.Sprintf("%s/%s", c.host, catalogPath)
}

// 🔗 ArchiveURL returns {host}/{basename}/{basename}.zip
func (c *Client) ArchiveURL(basename string) string {
	return fmt.Sprintf("%s/%s/%s.zip", c.host, basename, basename)
}

// 📥 FetchCatalog issues a single GET for the remote catalog
func (c *Client) FetchCatalog(ctx context.Context) (io.ReadCloser, error) {
	body, err := c.get(ctx, c.CatalogURL())
	if err != nil {
		return nil, errors.Errorf("fetching catalog: %w", err)
	}
	return body, nil
}

// 📦 DownloadArchive streams the archive for basename into dest via a temp file
func (c *Client) DownloadArchive(ctx context.Context, basename string, dest string) error {
	url := c.ArchiveURL(basename)
	zerolog.Ctx(ctx).Debug().Str("url", url).Str("dest", dest).Msg("downloading archive")

	body, err := c.get(ctx, url)
	if err != nil {
		return errors.Errorf("downloading %s: %w", url, err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("writing %s: %w", dest, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int64("bytes", n).Str("dest", dest).Msg("archive downloaded")
	return nil
}

// get performs a GET and returns the body of a 200 response
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
