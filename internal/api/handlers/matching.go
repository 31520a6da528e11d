// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/anititle/pkg/mediafilter"
	"github.com/autobrr/anititle/pkg/relevance"
	"github.com/autobrr/anititle/pkg/titles"
)

const maxCandidates = 5000

type MatchingHandler struct {
	parser               *titles.Parser
	filters              mediafilter.Filters
	minSubjectSimilarity float64
	recorder             Recorder
}

func NewMatchingHandler(parser *titles.Parser, opts mediafilter.Options, minSubjectSimilarity float64, recorder Recorder) *MatchingHandler {
	return &MatchingHandler{
		parser:               parser,
		filters:              mediafilter.Default(mediafilter.NewMatcher(opts)),
		minSubjectSimilarity: minSubjectSimilarity,
		recorder:             recorderOrNop(recorder),
	}
}

func (h *MatchingHandler) Routes(r chi.Router) {
	r.Post("/filter", h.Filter)
	r.Post("/match", h.Match)
}

// FilterRequest is the body of POST /api/filter. Candidates without an
// episodeRange get one parsed from their original title.
type FilterRequest struct {
	Context    mediafilter.Context     `json:"context"`
	Candidates []mediafilter.Candidate `json:"candidates"`
}

// Rejection names the filter that dropped a candidate.
type Rejection struct {
	Candidate mediafilter.Candidate `json:"candidate"`
	Filter    string                `json:"filter"`
}

type FilterResponse struct {
	Accepted []mediafilter.Candidate `json:"accepted"`
	Rejected []Rejection             `json:"rejected"`
}

// Filter handles POST /api/filter
func (h *MatchingHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Context.SubjectNames) == 0 {
		RespondError(w, http.StatusBadRequest, "At least one subject name is required")
		return
	}
	if len(req.Candidates) > maxCandidates {
		RespondError(w, http.StatusBadRequest, "Too many candidates")
		return
	}

	resp := FilterResponse{
		Accepted: make([]mediafilter.Candidate, 0, len(req.Candidates)),
		Rejected: make([]Rejection, 0),
	}
	for _, c := range req.Candidates {
		if c.EpisodeRange == nil && strings.TrimSpace(c.OriginalTitle) != "" {
			c.EpisodeRange = h.parser.Parse(c.OriginalTitle).EpisodeRange
		}

		rejectedBy, ok := h.filters.Explain(req.Context, c)
		if !ok {
			log.Trace().Str("title", c.OriginalTitle).Str("filter", rejectedBy).Msg("candidate rejected")
			h.recorder.RecordFilter(rejectedBy, false)
			resp.Rejected = append(resp.Rejected, Rejection{Candidate: c, Filter: rejectedBy})
			continue
		}
		for _, f := range h.filters {
			h.recorder.RecordFilter(f.Name(), true)
		}
		resp.Accepted = append(resp.Accepted, c)
	}

	RespondJSON(w, http.StatusOK, resp)
}

// MatchRequest is the body of POST /api/match.
type MatchRequest struct {
	SubjectName string                  `json:"subjectName"`
	EpisodeName string                  `json:"episodeName"`
	Candidates  []mediafilter.Candidate `json:"candidates"`
}

type MatchResponse struct {
	Found     bool                   `json:"found"`
	Candidate *mediafilter.Candidate `json:"candidate,omitempty"`
}

// Match handles POST /api/match
func (h *MatchingHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.SubjectName) == "" {
		RespondError(w, http.StatusBadRequest, "Subject name is required")
		return
	}
	if len(req.Candidates) > maxCandidates {
		RespondError(w, http.StatusBadRequest, "Too many candidates")
		return
	}

	matcher := relevance.MostRelevant(req.SubjectName, req.EpisodeName).
		WithMinSubjectSimilarity(h.minSubjectSimilarity)

	best, ok := matcher.MatchSlice(req.Candidates)
	h.recorder.RecordMatch(ok)
	if !ok {
		RespondJSON(w, http.StatusOK, MatchResponse{})
		return
	}

	RespondJSON(w, http.StatusOK, MatchResponse{Found: true, Candidate: &best})
}
