// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/autobrr/anititle/pkg/stringutils"
)

// SegmentKind tells whether a segment came from inside brackets.
type SegmentKind uint8

const (
	SegmentText SegmentKind = iota
	SegmentTag
)

func (k SegmentKind) String() string {
	if k == SegmentTag {
		return "tag"
	}
	return "text"
}

// Segment is a contiguous piece of a title: bracketed tag content or free text between tags.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// bracketPairs maps each opener to its closer. Full-width ASCII brackets are folded
// to half-width before tokenizing, so （） are covered by ().
var bracketPairs = map[rune]rune{
	'[': ']',
	'(': ')',
	'【': '】',
	'〔': '〕',
	'「': '」',
	'『': '』',
}

var bracketClosers = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(bracketPairs))
	for _, c := range bracketPairs {
		m[c] = struct{}{}
	}
	return m
}()

var seasonSpacing = regexp.MustCompile(`(?i)\bseason\s+(\d{1,2})\b`)

// Tokenize splits a title into tag and text segments. Tokenizing is best effort:
// an opener without a matching closer is kept as text and stray closers are dropped.
// Empty segments are omitted.
func Tokenize(title string) []Segment {
	title = seasonSpacing.ReplaceAllString(stringutils.FoldWidth(title), "Season$1")
	runes := []rune(title)

	var (
		segments []Segment
		text     strings.Builder
	)
	flushText := func() {
		if s := strings.TrimSpace(text.String()); s != "" {
			segments = append(segments, Segment{Kind: SegmentText, Text: s})
		}
		text.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if closer, ok := bracketPairs[r]; ok {
			if end := indexRune(runes[i+1:], closer); end >= 0 {
				flushText()
				if tag := strings.TrimSpace(string(runes[i+1 : i+1+end])); tag != "" {
					segments = append(segments, Segment{Kind: SegmentTag, Text: tag})
				}
				i += end + 1
				continue
			}
			text.WriteRune(r)
			continue
		}
		if _, ok := bracketClosers[r]; ok {
			text.WriteByte(' ')
			continue
		}
		text.WriteRune(r)
	}
	flushText()

	return segments
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

// Words splits the segment into words on whitespace and list separators.
// Dashes and plus signs stay inside words so ranges like "01-12" survive.
func (s Segment) Words() []string {
	return splitWords(s.Text)
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, isWordSeparator)
}

func isWordSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '_', '/', '|', '&', ',', '、', '，', '[', ']', '(', ')', '【', '】':
		return true
	}
	return false
}
