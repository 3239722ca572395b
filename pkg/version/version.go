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

// Package version turns dotted font versions into comparable integers.
package version

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Absent is the version recorded for a font a catalog does not know about.
const Absent = "0"

const (
	// fieldWidth is the number of decimal digits reserved for each dotted field
	fieldWidth = 3
	// maxFields is how many fields fit before the weight drops below 10^0
	maxFields = 5
	// maxFieldValue is the largest value a single field may hold
	maxFieldValue = 999
)

var (
	ErrMalformed     = errors.Base("malformed version")
	ErrFieldOverflow = errors.Base("version field exceeds 999")
	ErrTooManyFields = errors.Base("version has more than five fields")
	firstFieldWeight = pow10(fieldWidth * (maxFields - 1))
	fieldStep        = pow10(fieldWidth)
)

// 🔢 ToOrderedInteger maps a dotted version onto an integer that sorts the same way.
//
// Each field occupies a three digit slot, most significant first, starting at 10^12.
// Only the fields present contribute, so "1.2" and "1.2.0" are equal.
func ToOrderedInteger(v string) (int64, error) {
	fields := strings.Split(strings.TrimSpace(v), ".")
	if len(fields) > maxFields {
		return 0, errors.Errorf("%q: %w", v, ErrTooManyFields)
	}

	var value int64
	weight := firstFieldWeight
	for _, field := range fields {
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil || n < 0 {
			return 0, errors.Errorf("%q: field %q: %w", v, field, ErrMalformed)
		}
		if n > maxFieldValue {
			return 0, errors.Errorf("%q: field %d: %w", v, n, ErrFieldOverflow)
		}
		value += n * weight
		weight /= fieldStep
	}

	return value, nil
}

// 🆕 RemoteNewer reports whether remote orders strictly after local
func RemoteNewer(local, remote string) (bool, error) {
	l, err := ToOrderedInteger(local)
	if err != nil {
		return false, errors.Errorf("local version: %w", err)
	}
	r, err := ToOrderedInteger(remote)
	if err != nil {
		return false, errors.Errorf("remote version: %w", err)
	}
	return r > l, nil
}

// IsAbsent reports whether v is the sentinel for an unknown version
func IsAbsent(v string) bool {
	return v == "" || v == Absent
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
