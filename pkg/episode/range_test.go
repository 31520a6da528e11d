// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    Range
		want string
	}{
		{"single", Single(Number(8)), "08..08"},
		{"span", Span(Number(1), Number(25)), "01..25"},
		{"descending span is swapped", Span(Number(25), Number(1)), "01..25"},
		{"equal bounds collapse", Span(Number(3), Number(3)), "03..03"},
		{"label single", Single(Label("SP")), "SP..SP"},
		{"season", Season(2), "S2"},
		{"unknown season", UnknownSeason(), "S?"},
		{"empty", Empty(), "EMPTY"},
		{"combined", Combine(Season(1), Named("OAD"), Season(2), Named("MOVIE"), Season(3)), "S1+OAD+S2+MOVIE+S3"},
		{"span plus label", Combine(Span(Number(1), Number(10)), Named("OVA")), "01..10+OVA"},
		{"combine single part", Combine(Empty(), Season(4)), "S4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	span := Span(Number(1), Number(13))
	assert.True(t, span.Contains(Number(1)))
	assert.True(t, span.Contains(Number(13)))
	assert.True(t, span.Contains(Number(6.5)))
	assert.False(t, span.Contains(Number(14)))
	assert.False(t, span.Contains(Label("SP")))

	single := Single(Number(8))
	assert.True(t, single.Contains(Number(8)))
	assert.False(t, single.Contains(Number(9)))

	ova := Single(Label("OVA"))
	assert.True(t, ova.Contains(Label("OVA")))
	assert.False(t, ova.Contains(Number(1)))

	combined := Combine(Span(Number(1), Number(10)), Named("OVA"))
	assert.True(t, combined.Contains(Number(5)))
	assert.True(t, combined.Contains(Label("OVA")))
	assert.False(t, combined.Contains(Number(11)))

	assert.False(t, Season(2).Contains(Number(1)))
	assert.False(t, UnknownSeason().Contains(Number(1)))
	assert.True(t, Season(2).IsSeasonLike())
	assert.True(t, UnknownSeason().IsSeasonLike())
	assert.False(t, span.IsSeasonLike())
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"08..08", "01..25", "SP..SP", "S2", "S?", "S1+OAD+S2", "01..10+OVA", "12.5..12.5", "EMPTY"} {
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, s, ParseRange(s).String())
		})
	}

	assert.Equal(t, "01..12", ParseRange("1-12").String())
	assert.True(t, ParseRange("S2").Equal(Season(2)))
}

func TestRange_Parts(t *testing.T) {
	t.Parallel()

	r := Combine(Season(1), Combine(Named("OAD"), Season(2)))
	parts := r.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, KindSeason, parts[0].Kind())
	assert.Equal(t, KindLabel, parts[1].Kind())

	n, ok := parts[2].SeasonNumber()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	start, end, ok := Span(Number(2), Number(4)).Bounds()
	require.True(t, ok)
	assert.Equal(t, "02", start.String())
	assert.Equal(t, "04", end.String())
}
