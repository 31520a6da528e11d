// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"strings"
)

// latinLanguageWords match whole words, case-insensitively. Words joined with
// "+" ("CHS+CHT") are looked up part by part.
var latinLanguageWords = map[string]LanguageSet{
	"CHS":  NewLanguageSet(LanguageCHS),
	"SC":   NewLanguageSet(LanguageCHS),
	"GB":   NewLanguageSet(LanguageCHS),
	"CHT":  NewLanguageSet(LanguageCHT),
	"TC":   NewLanguageSet(LanguageCHT),
	"BIG5": NewLanguageSet(LanguageCHT),
	"JPN":  NewLanguageSet(LanguageJPN),
	"JAP":  NewLanguageSet(LanguageJPN),
	"ENG":  NewLanguageSet(LanguageENG),
	"CHC":  NewLanguageSet(LanguageCHC),
	"JPSC": NewLanguageSet(LanguageCHS, LanguageJPN),
	"JPTC": NewLanguageSet(LanguageCHT, LanguageJPN),
}

// cjkLanguageDescriptors match anywhere inside a word. Words are folded to
// Traditional Chinese first, so "简日双语" is covered by the 簡日 and 雙語 entries.
var cjkLanguageDescriptors = []struct {
	text  string
	langs LanguageSet
}{
	{"簡繁日", NewLanguageSet(LanguageCHS, LanguageCHT, LanguageJPN)},
	{"簡日繁", NewLanguageSet(LanguageCHS, LanguageCHT, LanguageJPN)},
	{"繁日", NewLanguageSet(LanguageCHT, LanguageJPN)},
	{"簡日", NewLanguageSet(LanguageCHS, LanguageJPN)},
	{"簡繁", NewLanguageSet(LanguageCHS, LanguageCHT)},
	{"簡體", NewLanguageSet(LanguageCHS)},
	{"簡中", NewLanguageSet(LanguageCHS)},
	{"繁體", NewLanguageSet(LanguageCHT)},
	{"繁中", NewLanguageSet(LanguageCHT)},
	{"日語", NewLanguageSet(LanguageJPN)},
	{"日文", NewLanguageSet(LanguageJPN)},
	{"英語", NewLanguageSet(LanguageENG)},
	{"英文", NewLanguageSet(LanguageENG)},
	{"粵語", NewLanguageSet(LanguageCHC)},
	{"廣東話", NewLanguageSet(LanguageCHC)},
	{"雙語", NewLanguageSet(LanguageJPN)},
}

func extractLanguages(c *titleContext) LanguageSet {
	var set LanguageSet
	for _, word := range c.words {
		folded := foldUpper(word)
		if langs, ok := latinLanguages(folded); ok {
			set = set.Union(langs)
			continue
		}
		for _, d := range cjkLanguageDescriptors {
			if strings.Contains(folded, d.text) {
				set = set.Union(d.langs)
			}
		}
	}
	return set
}

// latinLanguages resolves a folded word made only of language codes.
func latinLanguages(folded string) (LanguageSet, bool) {
	if langs, ok := latinLanguageWords[folded]; ok {
		return langs, true
	}
	if !strings.Contains(folded, "+") {
		return 0, false
	}

	var set LanguageSet
	for _, part := range strings.Split(folded, "+") {
		langs, ok := latinLanguageWords[part]
		if !ok {
			return 0, false
		}
		set = set.Union(langs)
	}
	return set, true
}

var subtitleKindRules = []struct {
	kind    SubtitleKind
	markers []string
}{
	{SubtitleClosed, []string{"內封", "軟字幕"}},
	{SubtitleEmbedded, []string{"內嵌", "硬字幕"}},
	{SubtitleExternalDiscover, []string{"外掛", "檢索"}},
}

func extractSubtitleKind(c *titleContext) *SubtitleKind {
	for _, rule := range subtitleKindRules {
		for _, marker := range rule.markers {
			if strings.Contains(c.upper, marker) {
				kind := rule.kind
				return &kind
			}
		}
	}
	return nil
}
