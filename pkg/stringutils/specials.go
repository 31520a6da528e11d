// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// decorative are the punctuation runes titles wrap names in. Space and tab are
// never decorative; whitespace is handled separately.
const decorative = "·・～~∼!！()（）【】[]「」『』《》。，,、:-—―–?？\"“”"

var decorativeSet = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(decorative))
	for _, r := range decorative {
		m[r] = struct{}{}
	}
	return m
}()

// DefaultNumbers maps CJK and Roman numerals to ASCII digits.
var DefaultNumbers = map[rune]string{
	'一': "1", '二': "2", '三': "3", '四': "4", '五': "5",
	'六': "6", '七': "7", '八': "8", '九': "9", '十': "10",
	'Ⅰ': "1", 'Ⅱ': "2", 'Ⅲ': "3", 'Ⅳ': "4", 'Ⅴ': "5",
	'Ⅵ': "6", 'Ⅶ': "7", 'Ⅷ': "8", 'Ⅸ': "9", 'Ⅹ': "10",
}

// SpecialsOptions configures a Specials normalizer.
type SpecialsOptions struct {
	// Numbers is the numeral replacement table used when replaceNumbers is set.
	// Nil selects DefaultNumbers.
	Numbers map[rune]string
}

// Specials strips decorative punctuation from titles.
type Specials struct {
	numbers map[rune]string
}

// NewSpecials returns a Specials using opts.
func NewSpecials(opts SpecialsOptions) *Specials {
	numbers := opts.Numbers
	if numbers == nil {
		numbers = DefaultNumbers
	}
	return &Specials{numbers: numbers}
}

var defaultSpecials = NewSpecials(SpecialsOptions{})

// IsDecorative reports whether r is one of the decorative punctuation runes.
func IsDecorative(r rune) bool {
	_, ok := decorativeSet[r]
	return ok
}

// RemoveSpecials normalizes a title with the default numeral table.
// See Specials.Remove.
func RemoveSpecials(title string, removeWhitespace, replaceNumbers bool) string {
	return defaultSpecials.Remove(title, removeWhitespace, replaceNumbers)
}

// Remove rewrites decorative runes based on how much real content precedes them:
// with nothing emitted yet they are dropped, right after the first rune they are
// kept as is, and later each one becomes a single space. removeWhitespace drops
// every whitespace rune from the result and replaceNumbers rewrites numerals.
// Trailing whitespace is always trimmed.
//
// Examples:
//   - "Re:從零開始的異世界生活" → "Re 從零開始的異世界生活"
//   - "~~~!測試 第二季" → "測試 第二季"
//   - "new game!!" (removeWhitespace) → "newgame"
func (s *Specials) Remove(title string, removeWhitespace, replaceNumbers bool) string {
	var b strings.Builder
	b.Grow(len(title))

	emitted := 0
	for _, r := range title {
		switch {
		case replaceNumbers && s.numbers[r] != "":
			b.WriteString(s.numbers[r])
			emitted += utf8.RuneCountInString(s.numbers[r])
		case IsDecorative(r):
			switch emitted {
			case 0:
			case 1:
				b.WriteRune(r)
			default:
				if !removeWhitespace {
					b.WriteByte(' ')
				}
			}
		case unicode.IsSpace(r):
			if !removeWhitespace {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
			emitted++
		}
	}

	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
