// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORSPreflight(t *testing.T) {
	deps := newTestDependencies(t)

	server := NewServer(deps)
	router, err := server.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/parse", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowsXRequestedWithHeader(t *testing.T) {
	deps := newTestDependencies(t)

	server := NewServer(deps)
	router, err := server.Handler()
	require.NoError(t, err)

	// browsers send this header in lowercase
	req := httptest.NewRequest(http.MethodOptions, "/api/match", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-requested-with")

	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	allowedHeaders := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
	require.Contains(t, allowedHeaders, "x-requested-with")
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	deps := newTestDependencies(t)

	router, err := NewServer(deps).Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/parse", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithoutConfiguredOriginsOmitsCredentials(t *testing.T) {
	for name, origins := range map[string][]string{
		"empty":    nil,
		"wildcard": {"*"},
	} {
		t.Run(name, func(t *testing.T) {
			deps := newTestDependencies(t)
			deps.Config.Config.CORSAllowedOrigins = origins

			router, err := NewServer(deps).Handler()
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodOptions, "/api/parse", nil)
			req.Header.Set("Origin", "https://anywhere.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestAllowCredentials(t *testing.T) {
	require.False(t, allowCredentials(nil))
	require.False(t, allowCredentials([]string{"https://example.com", "*"}))
	require.True(t, allowCredentials([]string{"https://example.com"}))
}
