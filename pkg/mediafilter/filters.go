// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package mediafilter

import (
	"github.com/autobrr/anititle/pkg/titles"
)

// Filter is a named predicate over a candidate.
type Filter interface {
	Name() string
	Apply(ctx Context, c Candidate) bool
}

type filterFunc struct {
	name string
	fn   func(Context, Candidate) bool
}

func (f filterFunc) Name() string { return f.name }
func (f filterFunc) Apply(ctx Context, c Candidate) bool { return f.fn(ctx, c) }

// NewFilter wraps fn as a Filter.
func NewFilter(name string, fn func(Context, Candidate) bool) Filter {
	return filterFunc{name: name, fn: fn}
}

// SubjectNameFilter accepts candidates naming the subject.
func (m *Matcher) SubjectNameFilter() Filter {
	return NewFilter("subject-name", m.ContainsSubjectName)
}

// EpisodeInfoFilter accepts candidates carrying the wanted episode.
func (m *Matcher) EpisodeInfoFilter() Filter {
	return NewFilter("episode-info", m.ContainsAnyEpisodeInfo)
}

// Filters is a conjunction of filters.
type Filters []Filter

// Default returns the subject name and episode filters of m.
func Default(m *Matcher) Filters {
	return Filters{m.SubjectNameFilter(), m.EpisodeInfoFilter()}
}

// Apply reports whether every filter accepts c. Evaluation stops at the first rejection.
func (fs Filters) Apply(ctx Context, c Candidate) bool {
	_, ok := fs.Explain(ctx, c)
	return ok
}

// Explain returns the name of the first filter rejecting c, or "" and true when
// every filter accepts it.
func (fs Filters) Explain(ctx Context, c Candidate) (rejectedBy string, ok bool) {
	for _, f := range fs {
		if !f.Apply(ctx, c) {
			return f.Name(), false
		}
	}
	return "", true
}

// Select returns the candidates accepted by every filter, in input order.
func (fs Filters) Select(ctx Context, candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if fs.Apply(ctx, c) {
			out = append(out, c)
		}
	}
	return out
}

// CandidateFromTitle builds a candidate from a raw release title, filling the
// episode range with titles.Parse.
func CandidateFromTitle(title string) Candidate {
	return Candidate{
		OriginalTitle: title,
		EpisodeRange:  titles.Parse(title).EpisodeRange,
	}
}
