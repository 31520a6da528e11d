// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  []Segment
	}{
		{
			name:  "tags and text",
			title: "[ANi] 葬送的芙莉蓮 - 09 [1080P]",
			want: []Segment{
				{SegmentTag, "ANi"},
				{SegmentText, "葬送的芙莉蓮 - 09"},
				{SegmentTag, "1080P"},
			},
		},
		{
			name:  "cjk brackets",
			title: "【喵萌奶茶屋】「某番」〔01〕",
			want: []Segment{
				{SegmentTag, "喵萌奶茶屋"},
				{SegmentTag, "某番"},
				{SegmentTag, "01"},
			},
		},
		{
			name:  "full width folded",
			title: "［ＡＮｉ］（１０８０Ｐ）",
			want: []Segment{
				{SegmentTag, "ANi"},
				{SegmentTag, "1080P"},
			},
		},
		{
			name:  "unmatched opener kept as text",
			title: "[ANi 葬送的芙莉蓮",
			want: []Segment{
				{SegmentText, "[ANi 葬送的芙莉蓮"},
			},
		},
		{
			name:  "empty tag dropped",
			title: "[] 某番",
			want: []Segment{
				{SegmentText, "某番"},
			},
		},
		{
			name:  "season spacing",
			title: "Frieren Season 2",
			want: []Segment{
				{SegmentText, "Frieren Season2"},
			},
		},
		{
			name:  "empty",
			title: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.title))
		})
	}
}

func TestTokenize_StrayCloser(t *testing.T) {
	t.Parallel()

	segments := Tokenize("ANi] 葬送的芙莉蓮")
	assert.Len(t, segments, 1)
	assert.Equal(t, []string{"ANi", "葬送的芙莉蓮"}, segments[0].Words())
}

func TestSegment_Words(t *testing.T) {
	t.Parallel()

	seg := Segment{Kind: SegmentTag, Text: "WebRip 1080p HEVC-10bit_AAC/CHS&JPN"}
	assert.Equal(t, []string{"WebRip", "1080p", "HEVC-10bit", "AAC", "CHS", "JPN"}, seg.Words())

	seg = Segment{Kind: SegmentTag, Text: "附BD及劇場特典掃圖、相關音樂"}
	assert.Equal(t, []string{"附BD及劇場特典掃圖", "相關音樂"}, seg.Words())

	seg = Segment{Kind: SegmentText, Text: "S1+OAD+S2"}
	assert.Equal(t, []string{"S1+OAD+S2"}, seg.Words())
}
