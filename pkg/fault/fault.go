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

// Package fault classifies failures so the runner can decide whether to halt.
package fault

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🚦 Kind says what failed and, through Fatal, whether the run can go on
type Kind int

const (
	KindUnknown       Kind = iota
	KindRemoteCatalog      // remote catalog could not be fetched
	KindCatalogRead        // local catalog exists but could not be read
	KindCatalogWrite       // local catalog or manifest could not be written
	KindConflict           // two records share a display name but not a basename
	KindContract           // a caller broke an API contract (e.g. writing a remote catalog)
	KindCheck              // a font's state could not be inspected
	KindDownload           // a font archive could not be fetched
	KindExtract            // a font archive could not be expanded
	KindLinks              // one or more links could not be replaced
)

// String returns a short name for the kind
func (k Kind) String() string {
	switch k {
	case KindRemoteCatalog:
		return "remote-catalog"
	case KindCatalogRead:
		return "catalog-read"
	case KindCatalogWrite:
		return "catalog-write"
	case KindConflict:
		return "conflict"
	case KindContract:
		return "contract"
	case KindCheck:
		return "check"
	case KindDownload:
		return "download"
	case KindExtract:
		return "extract"
	case KindLinks:
		return "links"
	default:
		return "unknown"
	}
}

// Fatal reports whether a failure of this kind must stop the whole run
func (k Kind) Fatal() bool {
	switch k {
	case KindRemoteCatalog, KindCatalogRead, KindCatalogWrite, KindConflict, KindContract, KindUnknown:
		return true
	default:
		return false
	}
}

// ❌ Error carries a failure kind and, for per-font failures, the font it belongs to
type Error struct {
	Kind Kind
	Font string
	Err  error
}

// New wraps err with a kind. font is empty for run-wide failures.
func New(kind Kind, font string, err error) *Error {
	return &Error{Kind: kind, Font: font, Err: err}
}

func (e *Error) Error() string {
	if e.Font == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Kind, e.Font, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err should stop the run. Errors without a kind are fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err).Fatal()
}
