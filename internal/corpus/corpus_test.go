// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package corpus

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/anititle/pkg/titles"
)

func TestLoad_VioletEvergarden(t *testing.T) {
	t.Parallel()

	c, err := Load("testdata/violet_evergarden.yaml")
	require.NoError(t, err)

	assert.Equal(t, "剧场版 紫罗兰永恒花园", c.Name)
	assert.Equal(t, "dmhy", c.Source)
	assert.Len(t, c.Cases, 22)
	assert.Equal(t, "S?", c.Cases[0].EpisodeRange)
	assert.Equal(t, "", c.Cases[0].SubtitleLanguages)
	assert.Equal(t, "CHS, JPN", c.Cases[1].SubtitleLanguages)
	assert.Equal(t, "null", c.Cases[1].Resolution)
}

func TestRun_VioletEvergarden(t *testing.T) {
	t.Parallel()

	c, err := Load("testdata/violet_evergarden.yaml")
	require.NoError(t, err)

	res, err := c.Run(context.Background(), titles.NewParser())
	require.NoError(t, err)

	assert.Equal(t, 22, res.Total)
	assert.Equal(t, res.Total, res.Passed)
	assert.True(t, res.OK(), "mismatches: %v", res.Mismatches)
}

func TestDecode_Normalizes(t *testing.T) {
	t.Parallel()

	src := `
name: sample
cases:
  - title: "[ANi] Show - 08 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]"
    episodeRange: "08..08"
    subtitleLanguages: "JPN,CHT"
    resolution: "1080p"
  - title: "[GM-Team][国漫][完美世界][Perfect World][2021][131-135][AVC][GB][1080P]"
    subtitleKind: "embedded"
`
	c, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, c.Cases, 2)

	first := c.Cases[0]
	assert.Equal(t, "CHT, JPN", first.SubtitleLanguages)
	assert.Equal(t, "1080P", first.Resolution)
	assert.Equal(t, "null", first.SubtitleKind)

	second := c.Cases[1]
	assert.Equal(t, "null", second.EpisodeRange)
	assert.Equal(t, "null", second.Resolution)
	assert.Equal(t, "EMBEDDED", second.SubtitleKind)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		target  error
		message string
	}{
		{name: "empty document", src: "", target: ErrEmptyCorpus},
		{name: "no cases", src: "name: x\ncases: []\n", target: ErrEmptyCorpus},
		{name: "blank title", src: "name: x\ncases:\n  - title: \" \"\n", target: ErrBlankTitle},
		{name: "unknown language", src: "name: x\ncases:\n  - title: a\n    subtitleLanguages: KOR\n", message: "unknown subtitle language"},
		{name: "unknown resolution", src: "name: x\ncases:\n  - title: a\n    resolution: 8K\n", message: "unknown resolution"},
		{name: "unknown field", src: "name: x\ncases:\n  - title: a\n    codec: HEVC\n", message: "codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	t.Parallel()

	c := &Corpus{
		Name: "broken",
		Cases: []Case{{
			Title: "[ANi] 葬送的芙莉蓮 - 09 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]",
			CorpusRecord: titles.CorpusRecord{
				EpisodeRange:      "10..10",
				SubtitleLanguages: "CHT",
				Resolution:        "720P",
				SubtitleKind:      "null",
			},
		}},
	}

	res, err := c.Run(context.Background(), titles.NewParser())
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, 0, res.Passed)
	require.Len(t, res.Mismatches, 2)
	assert.Equal(t, Mismatch{Title: c.Cases[0].Title, Field: "episodeRange", Want: "10..10", Got: "09..09"}, res.Mismatches[0])
	assert.Equal(t, "resolution", res.Mismatches[1].Field)
	assert.Contains(t, res.Mismatches[1].String(), `want "720P" got "1080P"`)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	c, err := Load("testdata/violet_evergarden.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Run(ctx, titles.NewParser())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerate_RoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{
		"[ANi] 迷宮飯 - 13 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]",
		"",
		"[北宇治字幕组] 葬送的芙莉莲 / Sousou no Frieren [01-28][WebRip 1080p HEVC-10bit AAC][简繁日内封字幕][Fin]",
	}

	c, err := Generate(context.Background(), "generated", "test", names, titles.NewParser())
	require.NoError(t, err)
	require.Len(t, c.Cases, 2)
	assert.Equal(t, names[0], c.Cases[0].Title)
	assert.Equal(t, "13..13", c.Cases[0].EpisodeRange)
	assert.Equal(t, names[2], c.Cases[1].Title)
	assert.Equal(t, "01..28", c.Cases[1].EpisodeRange)
	assert.Equal(t, "CHS, CHT, JPN", c.Cases[1].SubtitleLanguages)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	reloaded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)

	res, err := reloaded.Run(context.Background(), titles.NewParser())
	require.NoError(t, err)
	assert.True(t, res.OK(), "mismatches: %v", res.Mismatches)
}
