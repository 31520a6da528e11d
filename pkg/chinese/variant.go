// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package chinese folds Simplified and Traditional Chinese spellings of the same
// name onto each other using the OpenCC dictionaries.
package chinese

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
	"github.com/longbridgeapp/opencc"
)

const conversionCacheTTL = 5 * time.Minute

// converter memoizes one OpenCC conversion. Titles repeat the same group and
// subject names constantly and dictionary segmentation is comparatively slow.
type converter struct {
	cc    func() *opencc.OpenCC
	cache *ttlcache.Cache[string, string]
}

func newConverter(conversion string) *converter {
	return &converter{
		cc: sync.OnceValue(func() *opencc.OpenCC {
			cc, err := opencc.New(conversion)
			if err != nil {
				// the dictionaries are embedded in the binary
				panic(fmt.Sprintf("chinese: load %s dictionaries: %v", conversion, err))
			}
			return cc
		}),
		cache: ttlcache.New(ttlcache.Options[string, string]{}.SetDefaultTTL(conversionCacheTTL)),
	}
}

func (c *converter) convert(s string) string {
	if !HasHan(s) {
		return s
	}
	if cached, ok := c.cache.Get(s); ok {
		return cached
	}

	out, err := c.cc().Convert(s)
	if err != nil {
		return s
	}
	c.cache.Set(s, out, ttlcache.DefaultTTL)
	return out
}

var (
	s2t = newConverter("s2t")
	t2s = newConverter("t2s")
)

// ToTraditional rewrites Simplified spellings to Traditional ones. Text without
// Han characters is returned as is.
func ToTraditional(s string) string {
	return s2t.convert(s)
}

// ToSimplified rewrites Traditional spellings to Simplified ones.
func ToSimplified(s string) string {
	return t2s.convert(s)
}

// Variants returns s followed by its Traditional and Simplified forms, without duplicates.
func Variants(s string) []string {
	out := []string{s}
	for _, v := range []string{ToTraditional(s), ToSimplified(s)} {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// HasHan reports whether s contains at least one Han character.
func HasHan(s string) bool {
	for _, r := range s {
		if isHan(r) {
			return true
		}
	}
	return false
}

func isHan(r rune) bool {
	return r >= 0x3400 && r <= 0x9FFF || r >= 0xF900 && r <= 0xFAFF || r >= 0x20000 && r <= 0x2FA1F
}
