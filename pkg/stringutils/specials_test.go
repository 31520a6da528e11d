// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveSpecials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		input            string
		removeWhitespace bool
		replaceNumbers   bool
		want             string
	}{
		{"spaces removed", "a b c", true, false, "abc"},
		{"spaces kept", "a b c", false, false, "a b c"},
		{"numbers untouched by default", "超元氣三姐妹", false, false, "超元氣三姐妹"},
		{"numbers replaced", "超元氣三姐妹", false, true, "超元氣3姐妹"},
		{"roman numerals", "魔法禁書目錄Ⅲ", false, true, "魔法禁書目錄3"},
		{"trailing exclamation", "中二病也要談戀愛！", false, false, "中二病也要談戀愛"},
		{"full width colon kept", "Re：從零開始的異世界生活", false, false, "Re：從零開始的異世界生活"},
		{"colon", "Re:從零開始的異世界生活", false, false, "Re 從零開始的異世界生活"},
		{"colon and space", "Re: 從零開始的異世界生活", false, false, "Re  從零開始的異世界生活"},
		{"colon and space removed", "Re: 從零開始的異世界生活", true, false, "Re從零開始的異世界生活"},
		{"creators", "Re：CREATORS", false, false, "Re：CREATORS"},
		{"movie prefix", "劇場版 Re：從零開始的異世界生活", false, false, "劇場版 Re：從零開始的異世界生活"},
		{"empty parens", "劇場版 從零開始的異世界生活()", false, false, "劇場版 從零開始的異世界生活"},
		{"movie suffix", "紫羅蘭永恆花園 劇場版", false, false, "紫羅蘭永恆花園 劇場版"},
		{"period", "紫羅蘭永恆花園。", false, false, "紫羅蘭永恆花園"},
		{"comma", "紫羅蘭永恆花園，", false, false, "紫羅蘭永恆花園"},
		{"comma and space", "紫羅蘭永恆花園， ", false, false, "紫羅蘭永恆花園"},
		{"season", "測試 第二季", false, false, "測試 第二季"},
		{"leading specials", "~~~~~~~~~~!測試 第二季", false, false, "測試 第二季"},
		{"after first rune kept", "測!!!試!!! 第二季", false, false, "測!!!試    第二季"},
		{"after second rune spaced", "測試!!!!!! 第二季", false, false, "測試       第二季"},
		{"middle dot and tilde", "香格里拉·弗隴提亞～屎作獵人向神作發起挑戰～ 第二季", false, false, "香格里拉 弗隴提亞 屎作獵人向神作發起挑戰  第二季"},
		{"middle dot and tilde removed", "香格里拉·弗隴提亞～屎作獵人向神作發起挑戰～ 第二季", true, false, "香格里拉弗隴提亞屎作獵人向神作發起挑戰第二季"},
		{"katakana middle dot removed", "香格里拉・開拓異境～糞作獵手挑戰神作～", true, false, "香格里拉開拓異境糞作獵手挑戰神作"},
		{"katakana middle dot", "香格里拉・開拓異境～糞作獵手挑戰神作～", false, false, "香格里拉 開拓異境 糞作獵手挑戰神作"},
		{"double integral kept", "五等分的新娘∬", true, false, "五等分的新娘∬"},
		{"new game", "new game!!", true, false, "newgame"},
		{"brackets and minus", "理科生墜入情網故嘗試證明[r=1-sinθ]♡", false, false, "理科生墜入情網故嘗試證明 r=1 sinθ ♡"},
		{"tilde pair", "青出於藍～緣～", false, false, "青出於藍 緣"},
		{"hyphen pair", "博人傳-火影次世代-", false, false, "博人傳 火影次世代"},
		{"single hyphen", "博人傳-火影次世代", false, false, "博人傳 火影次世代"},
		{"em dash pair", "博人傳—火影次世代—", false, false, "博人傳 火影次世代"},
		{"empty", "", false, false, ""},
		{"only specials", "！？", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RemoveSpecials(tt.input, tt.removeWhitespace, tt.replaceNumbers))
		})
	}
}

func TestRemoveSpecials_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"香格里拉·弗隴提亞～屎作獵人向神作發起挑戰～ 第二季",
		"理科生墜入情網故嘗試證明[r=1-sinθ]♡",
		"劇場版 從零開始的異世界生活()",
		"new game!!",
		"十!話",
		"Ⅹ-A",
		"二!話",
		"十～十一～",
		"Ⅱ：第十話",
	}

	for _, input := range inputs {
		for _, removeWhitespace := range []bool{false, true} {
			once := RemoveSpecials(input, removeWhitespace, true)
			assert.Equal(t, once, RemoveSpecials(once, removeWhitespace, true), input)
		}
	}
}

func TestRemoveSpecials_MultiRuneNumerals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10 話", RemoveSpecials("十!話", false, true))
	assert.Equal(t, "10 A", RemoveSpecials("Ⅹ-A", false, true))
	assert.Equal(t, "2!話", RemoveSpecials("二!話", false, true))
}

func TestNewSpecials_CustomNumbers(t *testing.T) {
	t.Parallel()

	s := NewSpecials(SpecialsOptions{Numbers: map[rune]string{'壹': "1"}})
	assert.Equal(t, "第1季", s.Remove("第壹季", false, true))
	assert.Equal(t, "第二季", s.Remove("第二季", false, true))
}

func TestDecorativeExcludesWhitespace(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDecorative(' '))
	assert.False(t, IsDecorative('\t'))
	assert.False(t, IsDecorative('：'))
	assert.False(t, IsDecorative('＊'))
	assert.True(t, IsDecorative('～'))
	assert.True(t, IsDecorative('【'))
}
