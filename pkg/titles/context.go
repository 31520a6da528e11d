// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"strings"

	"github.com/autobrr/anititle/pkg/chinese"
	"github.com/autobrr/anititle/pkg/stringutils"
)

// titleContext is the tokenized view of one title shared by every extractor.
type titleContext struct {
	title    string
	segments []Segment
	// words of every segment in title order
	words []string
	// upper is the width folded, upper cased title with Simplified Chinese folded to Traditional
	upper string
}

func newTitleContext(title string) *titleContext {
	segments := Tokenize(title)

	c := &titleContext{
		title:    title,
		segments: segments,
		upper:    foldUpper(title),
	}
	for _, seg := range segments {
		c.words = append(c.words, seg.Words()...)
	}
	return c
}

func foldUpper(s string) string {
	return chinese.ToTraditional(strings.ToUpper(stringutils.FoldWidth(s)))
}

// soloTags returns the first word of every tag made of at most two words.
func (c *titleContext) soloTags() []string {
	var out []string
	for _, seg := range c.segments {
		if seg.Kind != SegmentTag {
			continue
		}
		if words := seg.Words(); len(words) > 0 && len(words) <= 2 {
			out = append(out, words[0])
		}
	}
	return out
}

// freeWords returns the words of text segments and of long tags, where names and
// stray numbers live.
func (c *titleContext) freeWords() []string {
	var out []string
	for _, seg := range c.segments {
		words := seg.Words()
		if seg.Kind == SegmentText || len(words) > 2 {
			out = append(out, words...)
		}
	}
	return out
}

// afterDash returns each word that directly follows a standalone "-" inside a segment.
func (c *titleContext) afterDash() []string {
	var out []string
	for _, seg := range c.segments {
		fields := strings.Fields(seg.Text)
		for i := 0; i+1 < len(fields); i++ {
			if fields[i] == "-" {
				out = append(out, fields[i+1])
			}
		}
	}
	return out
}

// latinOnly reports whether the title is written without CJK script,
// which is what the scene release parser understands.
func (c *titleContext) latinOnly() bool {
	for _, r := range c.title {
		if r >= 0x2E80 {
			return false
		}
	}
	return true
}

// tagTexts returns the trimmed text of every tag.
func (c *titleContext) tagTexts() []string {
	var out []string
	for _, seg := range c.segments {
		if seg.Kind == SegmentTag {
			out = append(out, seg.Text)
		}
	}
	return out
}
