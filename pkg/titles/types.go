// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Resolution is the video resolution advertised by a release title.
type Resolution uint8

const (
	ResolutionUnspecified Resolution = iota
	Resolution240P
	Resolution360P
	Resolution480P
	Resolution720P
	Resolution1080P
	Resolution1440P
	Resolution4K
)

var resolutionNames = [...]string{
	ResolutionUnspecified: "null",
	Resolution240P:        "240P",
	Resolution360P:        "360P",
	Resolution480P:        "480P",
	Resolution720P:        "720P",
	Resolution1080P:       "1080P",
	Resolution1440P:       "1440P",
	Resolution4K:          "4K",
}

func (r Resolution) String() string {
	if int(r) < len(resolutionNames) {
		return resolutionNames[r]
	}
	return fmt.Sprintf("Resolution(%d)", uint8(r))
}

// ParseResolution reads a resolution name as printed by String.
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NULL" {
		return ResolutionUnspecified, nil
	}
	for r, name := range resolutionNames {
		if name == s {
			return Resolution(r), nil
		}
	}
	return ResolutionUnspecified, fmt.Errorf("unknown resolution %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resolution) UnmarshalText(text []byte) error {
	parsed, err := ParseResolution(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SubtitleLanguage identifies a subtitle language. Values are declared in id order.
type SubtitleLanguage uint8

const (
	LanguageCHC SubtitleLanguage = iota // Cantonese
	LanguageCHS
	LanguageCHT
	LanguageENG
	LanguageJPN

	languageCount
)

var languageInfo = [languageCount]struct {
	id          string
	displayName string
}{
	LanguageCHC: {"CHC", "粵語"},
	LanguageCHS: {"CHS", "简体中文"},
	LanguageCHT: {"CHT", "繁體中文"},
	LanguageENG: {"ENG", "English"},
	LanguageJPN: {"JPN", "日本語"},
}

// ID returns the stable identifier such as "CHS".
func (l SubtitleLanguage) ID() string {
	if l < languageCount {
		return languageInfo[l].id
	}
	return fmt.Sprintf("SubtitleLanguage(%d)", uint8(l))
}

// DisplayName returns a human readable name.
func (l SubtitleLanguage) DisplayName() string {
	if l < languageCount {
		return languageInfo[l].displayName
	}
	return l.ID()
}

func (l SubtitleLanguage) String() string {
	return l.ID()
}

// ParseSubtitleLanguage looks up a language by id.
func ParseSubtitleLanguage(id string) (SubtitleLanguage, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for l := range languageCount {
		if languageInfo[l].id == id {
			return l, true
		}
	}
	return 0, false
}

// LanguageSet is an unordered set of subtitle languages. The zero value is the empty set.
type LanguageSet uint8

// NewLanguageSet returns a set holding langs.
func NewLanguageSet(langs ...SubtitleLanguage) LanguageSet {
	var s LanguageSet
	for _, l := range langs {
		s = s.With(l)
	}
	return s
}

// With returns s plus l.
func (s LanguageSet) With(l SubtitleLanguage) LanguageSet {
	if l >= languageCount {
		return s
	}
	return s | 1<<l
}

// Union returns the languages in either set.
func (s LanguageSet) Union(other LanguageSet) LanguageSet {
	return s | other
}

// Has reports whether l is in s.
func (s LanguageSet) Has(l SubtitleLanguage) bool {
	return l < languageCount && s&(1<<l) != 0
}

// Len returns the number of languages in s.
func (s LanguageSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// IsEmpty reports whether s holds no languages.
func (s LanguageSet) IsEmpty() bool {
	return s == 0
}

// Languages lists the members of s in id order.
func (s LanguageSet) Languages() []SubtitleLanguage {
	out := make([]SubtitleLanguage, 0, s.Len())
	for l := range languageCount {
		if s.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

// IDs lists the member ids in id order.
func (s LanguageSet) IDs() []string {
	langs := s.Languages()
	ids := make([]string, len(langs))
	for i, l := range langs {
		ids[i] = l.ID()
	}
	return ids
}

// String joins the ids with ", " ("CHS, JPN"). The empty set prints as "".
func (s LanguageSet) String() string {
	return strings.Join(s.IDs(), ", ")
}

// ParseLanguageSet reads the form printed by String.
func ParseLanguageSet(s string) (LanguageSet, error) {
	var set LanguageSet
	for _, id := range strings.Split(s, ",") {
		if strings.TrimSpace(id) == "" {
			continue
		}
		l, ok := ParseSubtitleLanguage(id)
		if !ok {
			return 0, fmt.Errorf("unknown subtitle language %q", id)
		}
		set = set.With(l)
	}
	return set, nil
}

// MarshalJSON encodes the set as an array of ids.
func (s LanguageSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (s *LanguageSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	parsed, err := ParseLanguageSet(strings.Join(ids, ","))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SubtitleKind describes how subtitles are delivered.
type SubtitleKind uint8

const (
	// SubtitleClosed subtitles are muxed as a selectable track.
	SubtitleClosed SubtitleKind = iota + 1
	// SubtitleEmbedded subtitles are burned into the video.
	SubtitleEmbedded
	// SubtitleExternalDiscover subtitles ship as separate files next to the video.
	SubtitleExternalDiscover
)

func (k SubtitleKind) String() string {
	switch k {
	case SubtitleClosed:
		return "CLOSED"
	case SubtitleEmbedded:
		return "EMBEDDED"
	case SubtitleExternalDiscover:
		return "EXTERNAL_DISCOVER"
	}
	return fmt.Sprintf("SubtitleKind(%d)", uint8(k))
}

// ParseSubtitleKind reads a kind as printed by String.
func ParseSubtitleKind(s string) (SubtitleKind, error) {
	for _, k := range []SubtitleKind{SubtitleClosed, SubtitleEmbedded, SubtitleExternalDiscover} {
		if strings.EqualFold(k.String(), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown subtitle kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k SubtitleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SubtitleKind) UnmarshalText(text []byte) error {
	parsed, err := ParseSubtitleKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
