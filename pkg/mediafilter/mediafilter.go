// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package mediafilter decides whether a release title belongs to a known subject
// and episode. Filters are pure predicates over a Context, describing what the
// user is looking for, and a Candidate, describing one search result.
package mediafilter

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/autobrr/anititle/pkg/chinese"
	"github.com/autobrr/anititle/pkg/episode"
	"github.com/autobrr/anititle/pkg/stringutils"
)

const (
	DefaultMinAliasLength = 2
	// DefaultMinSimilarity tolerates one edit in aliases of seven runes and two in
	// aliases of fourteen. Six-rune aliases such as "魔法少女小圓" must match exactly.
	DefaultMinSimilarity = 0.85
)

// Context is the identity a candidate is checked against.
type Context struct {
	// SubjectNames holds every known alias of the subject.
	SubjectNames []string `json:"subjectNames"`
	// EpisodeSort is the episode number within the season.
	EpisodeSort episode.Sort `json:"episodeSort"`
	// EpisodeEp is the absolute episode number, if different from EpisodeSort.
	EpisodeEp *episode.Sort `json:"episodeEp,omitempty"`
	// EpisodeName is the episode title, used when a candidate carries no number.
	EpisodeName string `json:"episodeName,omitempty"`
}

// Candidate is one search result.
type Candidate struct {
	ID            string         `json:"id,omitempty"`
	OriginalTitle string         `json:"originalTitle"`
	SubjectName   string         `json:"subjectName,omitempty"`
	EpisodeName   string         `json:"episodeName,omitempty"`
	EpisodeRange  *episode.Range `json:"episodeRange,omitempty"`
}

// Options tunes name matching.
type Options struct {
	// MinAliasLength is the minimum length in runes an alias needs before it is
	// looked up inside a title. Shorter aliases only match exactly.
	MinAliasLength int
	// MinSimilarity is the similarity, between 0 and 1, an approximate match must reach.
	MinSimilarity float64
}

// DefaultOptions returns the options used by the package level functions.
func DefaultOptions() Options {
	return Options{
		MinAliasLength: DefaultMinAliasLength,
		MinSimilarity:  DefaultMinSimilarity,
	}
}

// Matcher evaluates the built-in predicates with a fixed set of options.
type Matcher struct {
	opts Options
}

// NewMatcher returns a Matcher. Zero option values select the defaults.
func NewMatcher(opts Options) *Matcher {
	if opts.MinAliasLength <= 0 {
		opts.MinAliasLength = DefaultMinAliasLength
	}
	if opts.MinSimilarity <= 0 || opts.MinSimilarity > 1 {
		opts.MinSimilarity = DefaultMinSimilarity
	}
	return &Matcher{opts: opts}
}

// Options returns the effective options.
func (m *Matcher) Options() Options {
	return m.opts
}

var defaultMatcher = NewMatcher(DefaultOptions())

// ContainsSubjectName reports whether the candidate names any alias of the subject,
// using the default options.
func ContainsSubjectName(ctx Context, c Candidate) bool {
	return defaultMatcher.ContainsSubjectName(ctx, c)
}

// ContainsAnyEpisodeInfo reports whether the candidate carries the wanted episode,
// using the default options.
func ContainsAnyEpisodeInfo(ctx Context, c Candidate) bool {
	return defaultMatcher.ContainsAnyEpisodeInfo(ctx, c)
}

// ContainsSubjectName reports whether the candidate's title, or its subject name
// when set, matches one of ctx.SubjectNames. Both sides are normalized with
// stringutils.NormalizeForMatching. A match is an exact match, a substring in
// either direction, or an approximate substring whose similarity reaches
// Options.MinSimilarity.
func (m *Matcher) ContainsSubjectName(ctx Context, c Candidate) bool {
	targets := []string{c.OriginalTitle}
	if c.SubjectName != "" {
		targets = append(targets, c.SubjectName)
	}

	for _, target := range targets {
		title := stringutils.NormalizeForMatching(target)
		if title == "" {
			continue
		}
		for _, alias := range ctx.SubjectNames {
			if m.nameMatches(stringutils.NormalizeForMatching(alias), title) {
				return true
			}
		}
	}
	return false
}

func (m *Matcher) nameMatches(alias, title string) bool {
	if alias == "" {
		return false
	}
	if alias == title {
		return true
	}

	aliasLen := utf8.RuneCountInString(alias)
	if aliasLen < m.opts.MinAliasLength {
		return false
	}
	if strings.Contains(title, alias) {
		return true
	}
	if utf8.RuneCountInString(title) >= m.opts.MinAliasLength && strings.Contains(alias, title) {
		return true
	}

	return Similarity(alias, title) >= m.opts.MinSimilarity
}

// Similarity returns how well alias occurs somewhere in title, from 0 to 1. It is
// one minus the smallest edit distance between alias and any window of title
// whose length is within one rune of the alias, divided by the alias length.
func Similarity(alias, title string) float64 {
	a := []rune(alias)
	t := []rune(title)
	if len(a) == 0 {
		return 0
	}

	best := -1
	if len(t) <= len(a)+1 {
		best = fuzzy.LevenshteinDistance(alias, title)
	} else {
		for size := max(len(a)-1, 1); size <= len(a)+1; size++ {
			for start := 0; start+size <= len(t); start++ {
				d := fuzzy.LevenshteinDistance(alias, string(t[start:start+size]))
				if best < 0 || d < best {
					best = d
				}
			}
		}
	}

	sim := 1 - float64(best)/float64(len(a))
	if sim < 0 {
		return 0
	}
	return sim
}

// ContainsAnyEpisodeInfo reports whether the candidate is the wanted episode.
//
// A candidate with a known episode range matches when the range contains
// ctx.EpisodeSort or ctx.EpisodeEp. Season packs and candidates without a range
// fall back to the episode name: the title must contain it, and the name must not
// be part of any subject alias, since "黃金" in "來自深淵 烈日的黃金鄉" says nothing
// about the episode.
func (m *Matcher) ContainsAnyEpisodeInfo(ctx Context, c Candidate) bool {
	if r := c.EpisodeRange; r != nil && r.Kind() != episode.KindEmpty && !r.IsSeasonLike() {
		if r.Contains(ctx.EpisodeSort) {
			return true
		}
		return ctx.EpisodeEp != nil && r.Contains(*ctx.EpisodeEp)
	}

	name := foldName(ctx.EpisodeName)
	if name == "" {
		return false
	}
	if !strings.Contains(foldName(c.OriginalTitle), name) {
		return false
	}

	for _, alias := range ctx.SubjectNames {
		if strings.Contains(foldName(alias), name) {
			return false
		}
	}
	if c.SubjectName != "" && strings.Contains(foldName(c.SubjectName), name) {
		return false
	}
	return true
}

func foldName(s string) string {
	return strings.ToLower(chinese.ToTraditional(strings.TrimSpace(s)))
}
