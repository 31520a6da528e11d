// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/anititle/internal/buildinfo"
	"github.com/autobrr/anititle/pkg/titles"
)

// readinessTitle must always parse to readinessEpisode.
const (
	readinessTitle   = "[ANi] 葬送的芙莉蓮 - 09 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]"
	readinessEpisode = "09..09"
)

type HealthHandler struct {
	parser *titles.Parser
}

func NewHealthHandler(parser *titles.Parser) *HealthHandler {
	return &HealthHandler{parser: parser}
}

func (h *HealthHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleHealth)
	r.Get("/readiness", h.HandleReady)
	r.Get("/liveness", h.HandleLiveness)
}

// HandleHealth reports that the service is up along with its build.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{
		Status: "ok",
		Info:   buildinfo.Current(),
	})
}

// HandleReady parses a known title and reports 503 when the result is off.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if h.parser == nil {
		RespondError(w, http.StatusServiceUnavailable, "Parser not configured")
		return
	}

	got := h.parser.Parse(readinessTitle).Corpus().EpisodeRange
	if got != readinessEpisode {
		log.Error().Str("want", readinessEpisode).Str("got", got).Msg("readiness parse returned the wrong episode")
		RespondError(w, http.StatusServiceUnavailable, "Parser self-check failed")
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
