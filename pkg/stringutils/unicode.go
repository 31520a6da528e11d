// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/autobrr/anititle/pkg/chinese"
)

var (
	// every title passes through FoldWidth before tokenizing
	widthFolds = newMemo(width.Fold.String)

	// subject aliases are compared against every candidate title
	matchingForms = newMemo(matchingForm)
)

func matchingForm(s string) string {
	// Full-width punctuation ("：", "！") folds to its decorative half-width form
	s = FoldWidth(s)

	// Decorative punctuation and whitespace are dropped, numerals become digits
	s = RemoveSpecials(s, true, true)

	// Simplified and Traditional spellings compare equal
	s = chinese.ToTraditional(s)

	// Compatibility forms ("ｆｕｌｌ", "①") collapse to their plain equivalents
	s = norm.NFKC.String(s)

	return strings.ToLower(s)
}

// FoldWidth folds full-width Latin letters, digits and symbols to half-width and
// half-width katakana to full-width. Han characters and full-width CJK
// punctuation are left alone.
//
// Examples:
//   - "［ＡＮｉ］" → "[ANi]"
//   - "１０８０Ｐ" → "1080P"
func FoldWidth(s string) string {
	return widthFolds.get(s)
}

// NormalizeForMatching applies the cached normalization used to compare subject
// names with release titles:
//   - Width folding
//   - RemoveSpecials with whitespace removal and numeral replacement
//   - Simplified to Traditional Chinese folding
//   - NFKC compatibility folding
//   - Lowercase
//
// Examples:
//   - "Re:從零開始的異世界生活" → "re從零開始的異世界生活"
//   - "进击的巨人 第二季" → "進擊的巨人第2季"
//   - "NEW GAME!!" → "newgame"
func NormalizeForMatching(s string) string {
	return matchingForms.get(s)
}
