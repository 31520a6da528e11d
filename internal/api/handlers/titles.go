// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/anititle/internal/query"
	"github.com/autobrr/anititle/pkg/stringutils"
	"github.com/autobrr/anititle/pkg/titles"
)

// maxBatchTitles bounds one parse request.
const maxBatchTitles = 5000

// Recorder receives usage metrics. A nil Recorder disables them.
type Recorder interface {
	ObserveParse(total, withEpisode int, took time.Duration)
	RecordFilter(filter string, accepted bool)
	RecordMatch(found bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveParse(int, int, time.Duration) {}
func (nopRecorder) RecordFilter(string, bool)           {}
func (nopRecorder) RecordMatch(bool)                    {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

type TitlesHandler struct {
	parser   *titles.Parser
	recorder Recorder
}

func NewTitlesHandler(parser *titles.Parser, recorder Recorder) *TitlesHandler {
	return &TitlesHandler{
		parser:   parser,
		recorder: recorderOrNop(recorder),
	}
}

func (h *TitlesHandler) Routes(r chi.Router) {
	r.Post("/parse", h.Parse)
	r.Post("/keyword", h.Keyword)
}

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Titles []string `json:"titles"`
	// Where is an optional boolean expression, see package query.
	Where string `json:"where,omitempty"`
}

// ParsedTitleResult pairs a title with its parse result.
type ParsedTitleResult struct {
	Title  string              `json:"title"`
	Parsed titles.ParsedTitle  `json:"parsed"`
	Corpus titles.CorpusRecord `json:"corpus"`
}

// ParseResponse is returned by POST /api/parse.
type ParseResponse struct {
	Results []ParsedTitleResult `json:"results"`
	Total   int                 `json:"total"`
}

// Parse handles POST /api/parse
func (h *TitlesHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	names := make([]string, 0, len(req.Titles))
	for _, name := range req.Titles {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		RespondError(w, http.StatusBadRequest, "At least one title is required")
		return
	}
	if len(names) > maxBatchTitles {
		RespondError(w, http.StatusBadRequest, "Too many titles")
		return
	}

	var where *query.Query
	if strings.TrimSpace(req.Where) != "" {
		q, err := query.Compile(req.Where)
		if err != nil {
			RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		where = q
	}

	start := time.Now()
	parsed, err := h.parser.ParseTitles(r.Context(), names)
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			log.Debug().Err(err).Msg("parse request cancelled")
			return
		}
		log.Error().Err(err).Int("titles", len(names)).Msg("failed to parse titles")
		RespondError(w, http.StatusInternalServerError, "Failed to parse titles")
		return
	}

	withEpisode := 0
	results := make([]ParsedTitleResult, 0, len(parsed))
	for i, p := range parsed {
		if p.EpisodeRange != nil {
			withEpisode++
		}
		if where != nil {
			ok, err := where.Match(names[i], p)
			if err != nil {
				RespondError(w, http.StatusBadRequest, err.Error())
				return
			}
			if !ok {
				continue
			}
		}
		results = append(results, ParsedTitleResult{Title: names[i], Parsed: p, Corpus: p.Corpus()})
	}
	h.recorder.ObserveParse(len(parsed), withEpisode, time.Since(start))

	RespondJSON(w, http.StatusOK, ParseResponse{Results: results, Total: len(parsed)})
}

// KeywordRequest is the body of POST /api/keyword.
type KeywordRequest struct {
	Title            string `json:"title"`
	RemoveSpecial    bool   `json:"removeSpecial"`
	UseOnlyFirstWord bool   `json:"useOnlyFirstWord"`
}

type KeywordResponse struct {
	Keyword string `json:"keyword"`
}

// Keyword handles POST /api/keyword
func (h *TitlesHandler) Keyword(w http.ResponseWriter, r *http.Request) {
	var req KeywordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		RespondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	RespondJSON(w, http.StatusOK, KeywordResponse{
		Keyword: stringutils.GetSearchKeyword(req.Title, req.RemoveSpecial, req.UseOnlyFirstWord),
	})
}
