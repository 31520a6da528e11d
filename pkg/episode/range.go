// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package episode

import (
	"strconv"
	"strings"
)

// Kind tells which shape a Range has.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSingle
	KindSpan
	KindSeason
	KindUnknownSeason
	KindLabel
	KindCombined
)

// Range is an inclusive span of sorts or a named aggregate of spans.
// Ranges are values and are never mutated after construction.
type Range struct {
	kind   Kind
	start  Sort
	end    Sort
	season int
	label  string
	parts  []Range
}

// Empty returns a range without episodes.
func Empty() Range {
	return Range{kind: KindEmpty}
}

// Single returns a range whose bounds are both s.
func Single(s Sort) Range {
	return Range{kind: KindSingle, start: s, end: s}
}

// Span returns the inclusive range start..end. Numeric bounds are swapped
// when given in descending order; equal bounds collapse to Single.
func Span(start, end Sort) Range {
	if start.Equal(end) {
		return Single(start)
	}
	if cmp, ok := start.Compare(end); ok {
		if cmp == 0 {
			return Single(start)
		}
		if cmp > 0 {
			start, end = end, start
		}
	}
	return Range{kind: KindSpan, start: start, end: end}
}

// Season returns a whole-season range ("S2").
func Season(n int) Range {
	return Range{kind: KindSeason, season: n}
}

// UnknownSeason returns a range for releases that cover an unnumbered season,
// such as a movie or a batch ("S?").
func UnknownSeason() Range {
	return Range{kind: KindUnknownSeason}
}

// Named returns a bare label used as one part of an aggregate ("OAD" in "S1+OAD").
func Named(label string) Range {
	return Range{kind: KindLabel, label: label}
}

// Combine joins parts in order. Nested combinations are flattened and empty
// parts are dropped. A single remaining part is returned as is.
func Combine(parts ...Range) Range {
	flat := make([]Range, 0, len(parts))
	for _, p := range parts {
		switch p.kind {
		case KindEmpty:
			continue
		case KindCombined:
			flat = append(flat, p.parts...)
		default:
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return Empty()
	case 1:
		return flat[0]
	}
	return Range{kind: KindCombined, parts: flat}
}

// Kind returns the shape of r.
func (r Range) Kind() Kind {
	return r.kind
}

// Bounds returns the first and last sort of single and span ranges.
func (r Range) Bounds() (start, end Sort, ok bool) {
	if r.kind != KindSingle && r.kind != KindSpan {
		return Sort{}, Sort{}, false
	}
	return r.start, r.end, true
}

// SeasonNumber returns the season of a KindSeason range.
func (r Range) SeasonNumber() (int, bool) {
	return r.season, r.kind == KindSeason
}

// Parts returns a copy of the parts of a combined range, or r itself.
func (r Range) Parts() []Range {
	if r.kind != KindCombined {
		return []Range{r}
	}
	out := make([]Range, len(r.parts))
	copy(out, r.parts)
	return out
}

// IsSeasonLike reports whether r names a whole season without listing episodes.
func (r Range) IsSeasonLike() bool {
	return r.kind == KindSeason || r.kind == KindUnknownSeason
}

// Contains reports whether s is covered by r. Season ranges never claim
// specific episodes.
func (r Range) Contains(s Sort) bool {
	switch r.kind {
	case KindSingle:
		return r.start.Equal(s)
	case KindSpan:
		lo, okLo := r.start.Compare(s)
		hi, okHi := s.Compare(r.end)
		if okLo && okHi {
			return lo <= 0 && hi <= 0
		}
		return r.start.Equal(s) || r.end.Equal(s)
	case KindLabel:
		return !s.IsNumeric() && s.label == r.label
	case KindCombined:
		for _, p := range r.parts {
			if p.Contains(s) {
				return true
			}
		}
	}
	return false
}

// String renders r in its canonical text form:
// "08..08", "01..25", "S2", "S?", "S1+OAD+S2", "EMPTY".
func (r Range) String() string {
	switch r.kind {
	case KindSingle, KindSpan:
		return r.start.String() + ".." + r.end.String()
	case KindSeason:
		return "S" + strconv.Itoa(r.season)
	case KindUnknownSeason:
		return "S?"
	case KindLabel:
		return r.label
	case KindCombined:
		parts := make([]string, len(r.parts))
		for i, p := range r.parts {
			parts[i] = p.String()
		}
		return strings.Join(parts, "+")
	}
	return "EMPTY"
}

// Equal reports structural equality.
func (r Range) Equal(other Range) bool {
	return r.String() == other.String() && r.kind == other.kind
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the forms produced by String.
func (r *Range) UnmarshalText(text []byte) error {
	*r = ParseRange(string(text))
	return nil
}

// ParseRange reads the canonical text form back into a Range.
func ParseRange(s string) Range {
	s = strings.TrimSpace(s)
	if s == "" || s == "EMPTY" {
		return Empty()
	}
	if strings.Contains(s, "+") {
		items := strings.Split(s, "+")
		parts := make([]Range, 0, len(items))
		for _, item := range items {
			parts = append(parts, parsePart(item))
		}
		return Combine(parts...)
	}
	return parsePart(s)
}

func parsePart(s string) Range {
	s = strings.TrimSpace(s)
	if s == "S?" {
		return UnknownSeason()
	}
	if len(s) > 1 && (s[0] == 'S' || s[0] == 's') {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 0 {
			return Season(n)
		}
	}
	for _, sep := range []string{"..", "-", "~"} {
		if before, after, found := strings.Cut(s, sep); found && before != "" && after != "" {
			return Span(ParseSort(before), ParseSort(after))
		}
	}
	if sort := ParseSort(s); sort.IsNumeric() {
		return Single(sort)
	}
	return Named(s)
}
