// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "anititle"

type Manager struct {
	registry *prometheus.Registry

	titlesParsed    *prometheus.CounterVec
	parseDuration   prometheus.Histogram
	filterDecisions *prometheus.CounterVec
	matchRequests   *prometheus.CounterVec
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Manager{
		registry: registry,
		titlesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "titles_parsed_total",
			Help:      "Release titles parsed, by whether an episode range was found.",
		}, []string{"episode"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_batch_duration_seconds",
			Help:      "Time spent parsing one batch of titles.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		filterDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_decisions_total",
			Help:      "Candidate filter decisions, by filter and result.",
		}, []string{"filter", "accepted"}),
		matchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Relevance match requests, by whether a candidate was chosen.",
		}, []string{"found"}),
	}

	registry.MustRegister(m.titlesParsed, m.parseDuration, m.filterDecisions, m.matchRequests)

	log.Info().Msg("Metrics manager initialized")

	return m
}

func (m *Manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveParse records one parsed batch. withEpisode counts titles that carried
// an episode range.
func (m *Manager) ObserveParse(total, withEpisode int, took time.Duration) {
	m.titlesParsed.WithLabelValues("true").Add(float64(withEpisode))
	m.titlesParsed.WithLabelValues("false").Add(float64(total - withEpisode))
	m.parseDuration.Observe(took.Seconds())
}

// RecordFilter records the decision of one named filter.
func (m *Manager) RecordFilter(filter string, accepted bool) {
	m.filterDecisions.WithLabelValues(filter, strconv.FormatBool(accepted)).Inc()
}

// RecordMatch records a relevance match request.
func (m *Manager) RecordMatch(found bool) {
	m.matchRequests.WithLabelValues(strconv.FormatBool(found)).Inc()
}
