// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/autobrr/anititle/pkg/chinese"
)

// noiseMarkers are words that never help a title search, in Traditional and
// Simplified spelling.
var noiseMarkers = func() []string {
	var out []string
	for _, marker := range []string{"劇場版", "總集篇", "電影版", "特別篇"} {
		out = append(out, chinese.Variants(marker)...)
	}
	return append(out, "OAD", "OVA")
}()

// GetSearchKeyword derives the text to search for from a subject name.
//
// With removeSpecial the title is normalized by RemoveSpecials (whitespace kept)
// and noise markers such as "劇場版" or "OVA" are stripped. With useOnlyFirstWord
// only the first remaining word is kept, otherwise the words are joined by single
// spaces.
//
// Examples:
//   - "劇場版 命運石之門 負荷領域的既視感" → "命運石之門"
//   - "打工吧！！魔王大人" → "打工吧"
//   - "測試OAD" → "測試"
func GetSearchKeyword(title string, removeSpecial, useOnlyFirstWord bool) string {
	if !removeSpecial {
		if useOnlyFirstWord {
			if fields := strings.Fields(title); len(fields) > 0 {
				return fields[0]
			}
			return ""
		}
		return title
	}

	normalized := RemoveSpecials(title, false, false)

	words := make([]string, 0, 4)
	for _, word := range strings.Fields(normalized) {
		if word = stripNoise(word); word != "" {
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return ""
	}
	if useOnlyFirstWord {
		return words[0]
	}
	return strings.Join(words, " ")
}

func stripNoise(word string) string {
	for changed := true; changed && word != ""; {
		changed = false
		for _, marker := range noiseMarkers {
			switch {
			case word == marker:
				return ""
			case strings.HasPrefix(word, marker) && attachable(marker, firstRune(word[len(marker):])):
				word = word[len(marker):]
				changed = true
			case strings.HasSuffix(word, marker) && attachable(marker, lastRune(word[:len(word)-len(marker)])):
				word = word[:len(word)-len(marker)]
				changed = true
			}
		}
	}
	return word
}

// attachable reports whether marker may be cut off a word where it touches neighbor.
// CJK markers always can; Latin markers only when the neighbor is Han script, so
// "OVAL" keeps its letters.
func attachable(marker string, neighbor rune) bool {
	if isHanMarker(marker) {
		return true
	}
	return unicode.Is(unicode.Han, neighbor)
}

func isHanMarker(marker string) bool {
	r, _ := utf8.DecodeRuneInString(marker)
	return unicode.Is(unicode.Han, r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
