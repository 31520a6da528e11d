// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package episode models episode identifiers and spans of them as they appear in
// anime release titles: plain numbers ("08"), absolute numbers ("852"), half
// episodes ("12.5") and labels such as "OVA" or "SP".
package episode

import (
	"math"
	"strconv"
	"strings"
)

// Sort is an ordered episode identifier. It is either numeric or a label.
// The zero value is an unset label and matches nothing.
type Sort struct {
	number  float64
	label   string
	numeric bool
}

// Number returns a numeric Sort.
func Number(n float64) Sort {
	return Sort{number: n, numeric: true}
}

// Label returns a non-numeric Sort. Labels compare by exact string identity.
func Label(label string) Sort {
	return Sort{label: label}
}

// ParseSort builds a Sort from text. Anything that parses as a non-negative
// number becomes numeric, everything else is kept as a label.
func ParseSort(s string) Sort {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil && n >= 0 && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Number(n)
	}
	return Label(s)
}

// IsNumeric reports whether s holds a number.
func (s Sort) IsNumeric() bool {
	return s.numeric
}

// IsZero reports whether s is the unset zero value.
func (s Sort) IsZero() bool {
	return !s.numeric && s.label == ""
}

// Number returns the numeric value and true for numeric sorts.
func (s Sort) Number() (float64, bool) {
	return s.number, s.numeric
}

// Equal reports whether both sorts are of the same kind and identical.
func (s Sort) Equal(other Sort) bool {
	if s.numeric != other.numeric {
		return false
	}
	if s.numeric {
		return s.number == other.number
	}
	return s.label != "" && s.label == other.label
}

// Compare orders two numeric sorts. ok is false when the sorts are not
// comparable, i.e. either of them is a label.
func (s Sort) Compare(other Sort) (cmp int, ok bool) {
	if !s.numeric || !other.numeric {
		return 0, false
	}
	switch {
	case s.number < other.number:
		return -1, true
	case s.number > other.number:
		return 1, true
	}
	return 0, true
}

// String renders numeric sorts zero padded to two digits ("08", "852", "12.5")
// and labels verbatim.
func (s Sort) String() string {
	if !s.numeric {
		return s.label
	}
	if s.number == math.Trunc(s.number) {
		n := strconv.FormatInt(int64(s.number), 10)
		if len(n) < 2 {
			n = "0" + n
		}
		return n
	}
	return strconv.FormatFloat(s.number, 'f', -1, 64)
}

// MarshalText implements encoding.TextMarshaler.
func (s Sort) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sort) UnmarshalText(text []byte) error {
	*s = ParseSort(string(text))
	return nil
}
