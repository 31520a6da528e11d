// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"strings"
)

type resolutionRule struct {
	resolution Resolution
	words      []string
}

// resolutionRules are checked in order against every word of the title.
// "2160p/1080p" dual releases therefore report 1080P.
var resolutionRules = []resolutionRule{
	{Resolution1080P, []string{"1080P", "1080I", "1920X1080"}},
	{Resolution720P, []string{"720P", "1280X720"}},
	{Resolution4K, []string{"2160P", "2080P", "3840X2160", "4096X2160"}},
	{Resolution1440P, []string{"1440P", "2560X1440"}},
	{Resolution480P, []string{"480P", "848X480", "640X480"}},
	{Resolution360P, []string{"360P"}},
	{Resolution240P, []string{"240P"}},
}

// exact4K is only trusted as a whole tag; "4K SDR" or "4K_HDR" say nothing about
// the file actually shipped.
const exact4K = "4K"

func extractResolution(c *titleContext) Resolution {
	words := make(map[string]struct{}, len(c.words))
	for _, w := range c.words {
		w = strings.ReplaceAll(strings.ToUpper(w), "×", "X")
		words[w] = struct{}{}
	}

	for _, rule := range resolutionRules {
		for _, w := range rule.words {
			if _, ok := words[w]; ok {
				return rule.resolution
			}
		}
		if rule.resolution == Resolution4K {
			for _, tag := range c.tagTexts() {
				if strings.EqualFold(tag, exact4K) {
					return Resolution4K
				}
			}
		}
	}
	return ResolutionUnspecified
}
