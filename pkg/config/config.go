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

package config

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/layout"
	"github.com/walteh/fontsync/pkg/remote"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, on top of the defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is everything a run needs to know about its surroundings.
//
// Repo holds the archives and extracted fonts, InstallRoot the otf/ and svg/
// link directories. Fonts limits handling to basenames matching any glob.
type Config struct {
	Repo        string   `json:"repo" yaml:"repo" hcl:"repo,optional"`
	InstallRoot string   `json:"install_root" yaml:"install_root" hcl:"install_root,optional"`
	Host        string   `json:"host,omitempty" yaml:"host,omitempty" hcl:"host,optional"`
	Local       bool     `json:"local,omitempty" yaml:"local,omitempty" hcl:"local,optional"`
	FailFast    bool     `json:"fail_fast,omitempty" yaml:"fail_fast,omitempty" hcl:"fail_fast,optional"`
	Fonts       []string `json:"fonts,omitempty" yaml:"fonts,omitempty" hcl:"fonts,optional"`

	location string
}

// Default returns a config with only the host set
func Default() *Config {
	return &Config{Host: remote.DefaultHost}
}

// 🔧 Overrides are values set on the command line; nil means unset
type Overrides struct {
	Repo        *string
	InstallRoot *string
	Host        *string
	Local       *bool
	FailFast    *bool
	Fonts       []string
}

// Apply copies every set override into the config
func (cfg *Config) Apply(o Overrides) {
	if o.Repo != nil {
		cfg.Repo = *o.Repo
	}
	if o.InstallRoot != nil {
		cfg.InstallRoot = *o.InstallRoot
	}
	if o.Host != nil {
		cfg.Host = *o.Host
	}
	if o.Local != nil {
		cfg.Local = *o.Local
	}
	if o.FailFast != nil {
		cfg.FailFast = *o.FailFast
	}
	if len(o.Fonts) > 0 {
		cfg.Fonts = o.Fonts
	}
}

// 🔍 Validate checks the configuration
func (cfg *Config) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Repo, validation.Required),
		validation.Field(&cfg.InstallRoot, validation.Required),
		validation.Field(&cfg.Host, validation.When(!cfg.Local, validation.Required), validation.By(httpURL)),
		validation.Field(&cfg.Fonts, validation.Each(validation.Required, validation.By(glob))),
	)
}

// 🧹 Finalize makes paths absolute and validates.
//
// Relative paths are resolved against the config file's directory when
// there is one, and the working directory otherwise.
func (cfg *Config) Finalize() error {
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	base := ""
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	}

	var err error
	if cfg.Repo, err = absolute(base, cfg.Repo); err != nil {
		return err
	}
	if cfg.InstallRoot, err = absolute(base, cfg.InstallRoot); err != nil {
		return err
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")

	return nil
}

// Layout derives every path a run touches
func (cfg *Config) Layout() layout.Layout {
	return layout.New(cfg.Repo, cfg.InstallRoot)
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := cfg.Host
	if cfg.Local {
		mode = "local-only"
	}
	return fmt.Sprintf("%s -> %s (%s)", cfg.Repo, cfg.InstallRoot, mode)
}

func absolute(base, path string) (string, error) {
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

func glob(value interface{}) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return errors.New("must be a valid glob pattern")
	}
	return nil
}
