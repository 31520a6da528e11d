// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/anititle/pkg/titles"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestRespondJSON_ParseResponse(t *testing.T) {
	t.Parallel()

	parsed := titles.Parse(aniTitle)
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, ParseResponse{
		Results: []ParsedTitleResult{{Title: aniTitle, Parsed: parsed, Corpus: parsed.Corpus()}},
		Total:   1,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ParseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, aniTitle, resp.Results[0].Title)
	assert.Equal(t, "09..09", resp.Results[0].Corpus.EpisodeRange)
	assert.True(t, resp.Results[0].Parsed.SubtitleLanguages.Has(titles.LanguageCHT))
}

func TestRespondJSON_NoBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRespondJSON_EncodeFailureKeepsStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"where": func() {}})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRespondError_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "At least one title is required"},
		{http.StatusBadRequest, "Too many titles"},
		{http.StatusBadRequest, "Subject name is required"},
		{http.StatusInternalServerError, "Failed to parse titles"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			RespondError(rec, tt.status, tt.message)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rec.Body.String())
		})
	}
}

func TestDecodeJSON_Requests(t *testing.T) {
	t.Parallel()

	t.Run("parse request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/parse",
			strings.NewReader(`{"titles":["`+gmTitle+`"],"where":"covers(133)"}`))
		rec := httptest.NewRecorder()

		var dest ParseRequest
		require.True(t, DecodeJSON(rec, req, &dest))
		assert.Equal(t, []string{gmTitle}, dest.Titles)
		assert.Equal(t, "covers(133)", dest.Where)
		assert.Zero(t, rec.Body.Len())
	})

	for name, body := range map[string]string{
		"empty body":    "",
		"truncated":     `{"titles":["` + aniTitle,
		"titles string": `{"titles":"` + aniTitle + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(body))
			rec := httptest.NewRecorder()

			var dest ParseRequest
			assert.False(t, DecodeJSON(rec, req, &dest))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid request body", decodeError(t, rec))
		})
	}
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	t.Parallel()

	encode := func(names []string) *bytes.Reader {
		data, err := json.Marshal(ParseRequest{Titles: names})
		require.NoError(t, err)
		return bytes.NewReader(data)
	}

	t.Run("full batch fits", func(t *testing.T) {
		t.Parallel()

		names := make([]string, maxBatchTitles)
		for i := range names {
			names[i] = aniTitle
		}
		req := httptest.NewRequest(http.MethodPost, "/api/parse", encode(names))
		rec := httptest.NewRecorder()

		var dest ParseRequest
		require.True(t, DecodeJSON(rec, req, &dest))
		assert.Len(t, dest.Titles, maxBatchTitles)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/parse", encode([]string{strings.Repeat("葬", maxBodyBytes/3+1)}))
		rec := httptest.NewRecorder()

		var dest ParseRequest
		assert.False(t, DecodeJSON(rec, req, &dest))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "Request body too large", decodeError(t, rec))
	})
}
