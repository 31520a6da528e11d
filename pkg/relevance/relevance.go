// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package relevance picks the candidate that best matches a wanted subject and
// episode, e.g. the right comment track among many sources.
package relevance

import (
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/autobrr/anititle/pkg/mediafilter"
	"github.com/autobrr/anititle/pkg/stringutils"
	"github.com/autobrr/anititle/pkg/titles"
)

const (
	// DefaultMinSubjectSimilarity is the subject similarity below which a candidate
	// is not relevant at all.
	DefaultMinSubjectSimilarity = 0.5

	exactSubjectBonus  = 1.0
	subjectWeight      = 2.0
	episodeWeight      = 1.0
	episodeNumberBonus = 0.5
)

// Matcher ranks candidates against one subject and episode.
type Matcher struct {
	subjectName          string
	episodeName          string
	episode              titles.ParsedTitle
	minSubjectSimilarity float64
}

// MostRelevant returns a Matcher for the given subject and episode names.
func MostRelevant(subjectName, episodeName string) *Matcher {
	return &Matcher{
		subjectName:          stringutils.NormalizeForMatching(subjectName),
		episodeName:          stringutils.NormalizeForMatching(episodeName),
		episode:              titles.Parse(episodeName),
		minSubjectSimilarity: DefaultMinSubjectSimilarity,
	}
}

// WithMinSubjectSimilarity returns a copy of m using threshold.
func (m *Matcher) WithMinSubjectSimilarity(threshold float64) *Matcher {
	clone := *m
	clone.minSubjectSimilarity = threshold
	return &clone
}

// Score returns the relevance of c and whether it is relevant at all.
func (m *Matcher) Score(c mediafilter.Candidate) (float64, bool) {
	subject := stringutils.NormalizeForMatching(c.SubjectName)
	subjectSim := similarity(m.subjectName, subject)
	if subjectSim < m.minSubjectSimilarity {
		return 0, false
	}

	score := subjectWeight * subjectSim
	if subject == m.subjectName {
		score += exactSubjectBonus
	}

	score += episodeWeight * similarity(m.episodeName, stringutils.NormalizeForMatching(c.EpisodeName))

	if sameEpisodeNumber(m.episode, titles.Parse(c.EpisodeName)) {
		score += episodeNumberBonus
	}

	return score, true
}

// Match returns the highest scoring relevant candidate. Ties keep the candidate
// seen first. ok is false when candidates is empty or nothing is relevant.
func (m *Matcher) Match(candidates iter.Seq[mediafilter.Candidate]) (best mediafilter.Candidate, ok bool) {
	bestScore := 0.0
	for c := range candidates {
		score, relevant := m.Score(c)
		if !relevant {
			continue
		}
		if !ok || score > bestScore {
			best, bestScore, ok = c, score, true
		}
	}
	return best, ok
}

// MatchSlice is Match over a slice.
func (m *Matcher) MatchSlice(candidates []mediafilter.Candidate) (mediafilter.Candidate, bool) {
	return m.Match(slices.Values(candidates))
}

// similarity is one minus the edit distance relative to the longer string.
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(matchr.Levenshtein(a, b))/float64(longest)
}

func sameEpisodeNumber(want, got titles.ParsedTitle) bool {
	if want.EpisodeRange == nil || got.EpisodeRange == nil {
		return false
	}
	ws, _, ok := want.EpisodeRange.Bounds()
	if !ok {
		return false
	}
	gs, _, ok := got.EpisodeRange.Bounds()
	return ok && ws.Equal(gs)
}
