// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package stringutils normalizes anime subject names and release titles:
// decorative punctuation removal, numeral folding, search keyword derivation
// and the cached matching form used when comparing names.
package stringutils

import (
	"time"
	"unique"

	"github.com/autobrr/autobrr/pkg/ttlcache"
)

const memoTTL = 5 * time.Minute

// memo remembers the results of a string rewrite for memoTTL. Group and subject
// names repeat across thousands of titles in a single search.
type memo struct {
	cache   *ttlcache.Cache[string, string]
	rewrite func(string) string
}

func newMemo(rewrite func(string) string) *memo {
	return &memo{
		cache:   ttlcache.New(ttlcache.Options[string, string]{}.SetDefaultTTL(memoTTL)),
		rewrite: rewrite,
	}
}

func (m *memo) get(s string) string {
	if s == "" {
		return ""
	}
	if out, ok := m.cache.Get(s); ok {
		return out
	}

	out := intern(m.rewrite(s))
	m.cache.Set(s, out, ttlcache.DefaultTTL)
	return out
}

// intern shares the backing memory of equal results.
func intern(s string) string {
	if s == "" {
		return ""
	}
	return unique.Make(s).Value()
}
