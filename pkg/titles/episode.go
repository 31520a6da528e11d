// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/autobrr/anititle/pkg/episode"
)

// episodeRule extracts an episode range. Rules are tried in table order and the
// first one that matches decides.
type episodeRule struct {
	name  string
	match func(c *titleContext) (episode.Range, bool)
}

const (
	numberPart = `\d{1,4}(?:\.5)?`
	rangeSep   = `(?:-|~|\.\.)`
)

var (
	aggregatePart      = `(?:S\d{1,2}|OVA|OAD|SP|MOVIE|\d{1,4}(?:` + rangeSep + `\d{1,4})?)`
	aggregatePattern   = regexp.MustCompile(`(?i)^` + aggregatePart + `(?:\+` + aggregatePart + `)+$`)
	seasonEpisode      = regexp.MustCompile(`(?i)^S(\d{1,2})E(\d{1,4})(?:-E?(\d{1,4}))?(?:[vV]\d{1,2})?$`)
	cjkEpisodeSpan     = regexp.MustCompile(`第\s*(\d{1,4})\s*[-~]\s*(\d{1,4})\s*[話集回]`)
	cjkEpisode         = regexp.MustCompile(`第\s*(` + numberPart + `|[零一二三四五六七八九十百]+)\s*[話集回]`)
	spacedSpanPattern  = regexp.MustCompile(`(?:^|\s)(\d{1,4})\s*([-~])\s*(\d{1,4})(?:\s|$)`)
	spanPattern        = regexp.MustCompile(`(?i)^(?:EP?)?(\d{1,4})` + rangeSep + `(?:EP?)?(\d{1,4})(?:END|FIN|完)?$`)
	versionedPattern   = regexp.MustCompile(`(?i)^(?:EP?)?(\d{1,4})V\d{1,2}$`)
	endPattern         = regexp.MustCompile(`(?i)^(\d{1,4})(?:END|FIN|完)$`)
	soloTagPattern     = regexp.MustCompile(`(?i)^(?:EP?|第)?(` + numberPart + `)(?:[vV]\d{1,2})?$`)
	prefixedPattern    = regexp.MustCompile(`(?i)^(?:EP\.?|E|#)(` + numberPart + `)$`)
	dashNumberPattern  = regexp.MustCompile(`(?i)^(` + numberPart + `)(?:[vV]\d{1,2}|END)?$`)
	plainNumberPattern = regexp.MustCompile(`^(` + numberPart + `)$`)
	seasonWordPattern  = regexp.MustCompile(`(?i)^(?:S|SEASON)(\d{1,2})$`)
	cjkSeasonPattern   = regexp.MustCompile(`第\s*([零一二三四五六七八九十\d]+)\s*[季期部]`)
)

// specialLabels are words naming a single special episode.
var specialLabels = map[string]string{
	"OVA":     "OVA",
	"OAD":     "OAD",
	"SP":      "SP",
	"SPECIAL": "SP",
	"特別篇":     "特別篇",
}

var movieMarkers = []string{"劇場版", "電影版"}

var batchMarkers = []string{"合集", "全集"}

var batchWords = map[string]struct{}{
	"BATCH":    {},
	"COMPLETE": {},
}

var episodeRules = []episodeRule{
	{"aggregate", matchAggregate},
	{"season-episode", eachWord(allWords, seasonEpisode, func(m []string) (episode.Range, bool) {
		start := parseNumber(m[2])
		if m[3] != "" {
			return episode.Span(start, parseNumber(m[3])), true
		}
		return episode.Single(start), true
	})},
	{"cjk-episode-span", inUpper(cjkEpisodeSpan, func(m []string) (episode.Range, bool) {
		return orderedSpan(m[1], m[2])
	})},
	{"cjk-episode", inUpper(cjkEpisode, func(m []string) (episode.Range, bool) {
		n, ok := cjkNumber(m[1])
		if !ok {
			return episode.Range{}, false
		}
		return episode.Single(n), true
	})},
	{"span", eachWord(allWords, spanPattern, func(m []string) (episode.Range, bool) {
		return orderedSpan(m[1], m[2])
	})},
	{"spaced-span", matchSpacedSpan},
	{"versioned", eachWord(allWords, versionedPattern, singleNumber)},
	{"end-marker", eachWord(allWords, endPattern, singleNumber)},
	{"solo-tag", eachWord((*titleContext).soloTags, soloTagPattern, singleNumber)},
	{"prefixed", eachWord(allWords, prefixedPattern, singleNumber)},
	{"dash-number", eachWord((*titleContext).afterDash, dashNumberPattern, singleNumber)},
	{"special", matchSpecial},
	{"movie", matchMovie},
	{"free-number", matchLastFreeNumber},
	{"season", matchSeason},
	{"batch", matchBatch},
}

func allWords(c *titleContext) []string {
	return c.words
}

// eachWord applies pattern to every word produced by source; the first word
// accepted by build wins.
func eachWord(source func(*titleContext) []string, pattern *regexp.Regexp, build func([]string) (episode.Range, bool)) func(*titleContext) (episode.Range, bool) {
	return func(c *titleContext) (episode.Range, bool) {
		for _, word := range source(c) {
			if m := pattern.FindStringSubmatch(word); m != nil {
				if r, ok := build(m); ok {
					return r, true
				}
			}
		}
		return episode.Range{}, false
	}
}

// inUpper applies pattern to the folded title text.
func inUpper(pattern *regexp.Regexp, build func([]string) (episode.Range, bool)) func(*titleContext) (episode.Range, bool) {
	return func(c *titleContext) (episode.Range, bool) {
		for _, m := range pattern.FindAllStringSubmatch(c.upper, -1) {
			if r, ok := build(m); ok {
				return r, true
			}
		}
		return episode.Range{}, false
	}
}

func singleNumber(m []string) (episode.Range, bool) {
	if isYear(m[1]) {
		return episode.Range{}, false
	}
	return episode.Single(parseNumber(m[1])), true
}

// orderedSpan builds lo..hi. Descending pairs and year pairs such as "2019-2020"
// are not episode ranges.
func orderedSpan(lo, hi string) (episode.Range, bool) {
	if isYear(lo) || isYear(hi) {
		return episode.Range{}, false
	}
	start, end := parseNumber(lo), parseNumber(hi)
	if cmp, _ := start.Compare(end); cmp > 0 {
		return episode.Range{}, false
	}
	return episode.Span(start, end), true
}

// matchSpacedSpan finds ranges written across words, "01 ~ 12" or "01 - 12".
// With a dash both bounds must be zero padded to the same width, which keeps
// "Title 2 - 05" (season 2, episode 5) and "- 28 - 1080" out.
func matchSpacedSpan(c *titleContext) (episode.Range, bool) {
	for _, seg := range c.segments {
		for _, m := range spacedSpanPattern.FindAllStringSubmatch(seg.Text, -1) {
			lo, sep, hi := m[1], m[2], m[3]
			if sep == "-" && (len(lo) < 2 || len(lo) != len(hi)) {
				continue
			}
			if r, ok := orderedSpan(lo, hi); ok {
				return r, true
			}
		}
	}
	return episode.Range{}, false
}

func matchAggregate(c *titleContext) (episode.Range, bool) {
	for _, word := range c.words {
		if !aggregatePattern.MatchString(word) {
			continue
		}
		var parts []episode.Range
		for _, item := range strings.Split(strings.ToUpper(word), "+") {
			parts = append(parts, aggregateItem(item))
		}
		return episode.Combine(parts...), true
	}
	return episode.Range{}, false
}

func aggregateItem(item string) episode.Range {
	if m := seasonWordPattern.FindStringSubmatch(item); m != nil {
		n, _ := strconv.Atoi(m[1])
		return episode.Season(n)
	}
	if m := spanPattern.FindStringSubmatch(item); m != nil {
		return episode.Span(parseNumber(m[1]), parseNumber(m[2]))
	}
	if plainNumberPattern.MatchString(item) {
		return episode.Single(parseNumber(item))
	}
	return episode.Named(item)
}

func matchSpecial(c *titleContext) (episode.Range, bool) {
	for _, word := range c.words {
		if label, ok := specialLabels[strings.ToUpper(word)]; ok {
			return episode.Single(episode.Label(label)), true
		}
	}
	if strings.Contains(c.upper, "特別篇") {
		return episode.Single(episode.Label("特別篇")), true
	}
	return episode.Range{}, false
}

func matchMovie(c *titleContext) (episode.Range, bool) {
	for _, word := range c.words {
		if strings.EqualFold(word, "MOVIE") {
			return episode.UnknownSeason(), true
		}
	}
	for _, marker := range movieMarkers {
		if strings.Contains(c.upper, marker) {
			return episode.UnknownSeason(), true
		}
	}
	return episode.Range{}, false
}

func matchLastFreeNumber(c *titleContext) (episode.Range, bool) {
	words := c.freeWords()
	for i := len(words) - 1; i >= 0; i-- {
		if plainNumberPattern.MatchString(words[i]) && !isYear(words[i]) {
			return episode.Single(parseNumber(words[i])), true
		}
	}
	return episode.Range{}, false
}

func matchSeason(c *titleContext) (episode.Range, bool) {
	for _, word := range c.words {
		if m := seasonWordPattern.FindStringSubmatch(word); m != nil {
			n, _ := strconv.Atoi(m[1])
			return episode.Season(n), true
		}
	}
	if m := cjkSeasonPattern.FindStringSubmatch(c.upper); m != nil {
		if n, ok := cjkNumber(m[1]); ok {
			v, _ := n.Number()
			return episode.Season(int(v)), true
		}
	}
	return episode.Range{}, false
}

func matchBatch(c *titleContext) (episode.Range, bool) {
	for _, word := range c.words {
		if _, ok := batchWords[strings.ToUpper(word)]; ok {
			return episode.UnknownSeason(), true
		}
	}
	for _, marker := range batchMarkers {
		if strings.Contains(c.upper, marker) {
			return episode.UnknownSeason(), true
		}
	}
	return episode.Range{}, false
}

// extractEpisode runs the rule table and reports the rule that matched.
func extractEpisode(c *titleContext) (*episode.Range, string) {
	for _, rule := range episodeRules {
		if r, ok := rule.match(c); ok {
			return &r, rule.name
		}
	}
	return nil, ""
}

func parseNumber(s string) episode.Sort {
	return episode.ParseSort(s)
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1950 && n <= 2099
}

var cjkDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// cjkNumber parses ASCII digits or CJK numerals below one thousand ("十三", "二十", "一百零五").
func cjkNumber(s string) (episode.Sort, bool) {
	if s == "" {
		return episode.Sort{}, false
	}
	if s[0] >= '0' && s[0] <= '9' {
		sort := episode.ParseSort(s)
		return sort, sort.IsNumeric()
	}

	total, current := 0, 0
	for _, r := range s {
		switch r {
		case '十':
			if current == 0 {
				current = 1
			}
			total += current * 10
			current = 0
		case '百':
			if current == 0 {
				current = 1
			}
			total += current * 100
			current = 0
		default:
			d, ok := cjkDigits[r]
			if !ok {
				return episode.Sort{}, false
			}
			current = d
		}
	}
	return episode.Number(float64(total + current)), true
}
