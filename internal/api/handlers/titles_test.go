// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/anititle/pkg/titles"
)

const (
	aniTitle = "[ANi] 葬送的芙莉蓮 - 09 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]"
	gmTitle  = "[GM-Team][国漫][完美世界][Perfect World][2021][131-135][AVC][GB][1080P]"
)

type countingRecorder struct {
	mu          sync.Mutex
	parsed      int
	withEpisode int
	filters     map[string]int
	matches     map[bool]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{filters: map[string]int{}, matches: map[bool]int{}}
}

func (r *countingRecorder) ObserveParse(total, withEpisode int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsed += total
	r.withEpisode += withEpisode
}

func (r *countingRecorder) RecordFilter(filter string, accepted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !accepted {
		r.filters[filter]++
	}
}

func (r *countingRecorder) RecordMatch(found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[found]++
}

func serveTitles(t *testing.T, h *TitlesHandler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api", h.Routes)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTitlesHandler_Parse(t *testing.T) {
	t.Parallel()

	recorder := newCountingRecorder()
	h := NewTitlesHandler(titles.NewParser(), recorder)

	body := `{"titles":["` + aniTitle + `","  ","` + gmTitle + `"]}`
	rec := serveTitles(t, h, "/api/parse", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, aniTitle, resp.Results[0].Title)
	assert.Equal(t, "09..09", resp.Results[0].Corpus.EpisodeRange)
	assert.Equal(t, "CHT", resp.Results[0].Corpus.SubtitleLanguages)
	assert.Equal(t, "131..135", resp.Results[1].Corpus.EpisodeRange)
	require.NotNil(t, resp.Results[1].Parsed.EpisodeRange)
	assert.Equal(t, titles.Resolution1080P, resp.Results[1].Parsed.Resolution)

	assert.Equal(t, 2, recorder.parsed)
	assert.Equal(t, 2, recorder.withEpisode)
}

func TestTitlesHandler_ParseWhere(t *testing.T) {
	t.Parallel()

	h := NewTitlesHandler(titles.NewParser(), nil)

	body := `{"titles":["` + aniTitle + `","` + gmTitle + `"],"where":"covers(133)"}`
	rec := serveTitles(t, h, "/api/parse", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, gmTitle, resp.Results[0].Title)
}

func TestTitlesHandler_ParseErrors(t *testing.T) {
	t.Parallel()

	h := NewTitlesHandler(titles.NewParser(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{titles}`},
		{"no titles", `{"titles":[]}`},
		{"blank titles", `{"titles":[" ",""]}`},
		{"bad expression", `{"titles":["a"],"where":"resolution =="}`},
		{"non bool expression", `{"titles":["a"],"where":"resolution"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serveTitles(t, h, "/api/parse", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestTitlesHandler_Keyword(t *testing.T) {
	t.Parallel()

	h := NewTitlesHandler(titles.NewParser(), nil)

	rec := serveTitles(t, h, "/api/keyword", `{"title":"劇場版 命運石之門 負荷領域的既視感","removeSpecial":true,"useOnlyFirstWord":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp KeywordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "命運石之門", resp.Keyword)

	rec = serveTitles(t, h, "/api/keyword", `{"title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
