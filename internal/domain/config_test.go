// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Host:                 "localhost",
		Port:                 7480,
		LogLevel:             "INFO",
		ParserCacheTTL:       5 * time.Minute,
		ParseConcurrency:     4,
		MinAliasLength:       2,
		MinSimilarity:        0.8,
		MinSubjectSimilarity: 0.5,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "alias length zero", mutate: func(c *Config) { c.MinAliasLength = 0 }, wantErr: "minAliasLength"},
		{name: "similarity zero", mutate: func(c *Config) { c.MinSimilarity = 0 }, wantErr: "minSimilarity"},
		{name: "similarity above one", mutate: func(c *Config) { c.MinSimilarity = 1.5 }, wantErr: "minSimilarity"},
		{name: "subject similarity negative", mutate: func(c *Config) { c.MinSubjectSimilarity = -0.1 }, wantErr: "minSubjectSimilarity"},
		{name: "no workers", mutate: func(c *Config) { c.ParseConcurrency = 0 }, wantErr: "parseConcurrency"},
		{name: "negative ttl", mutate: func(c *Config) { c.ParserCacheTTL = -time.Second }, wantErr: "parserCacheTTL"},
		{name: "bad origin", mutate: func(c *Config) { c.CORSAllowedOrigins = []string{"ftp://example.com"} }, wantErr: "corsAllowedOrigins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseCORSAllowedOrigins(t *testing.T) {
	t.Parallel()

	t.Run("normalizes origins and skips blanks", func(t *testing.T) {
		cfg := &Config{CORSAllowedOrigins: []string{" https://example.com/path ", "", "http://localhost:5173"}}

		origins, err := cfg.ParseCORSAllowedOrigins()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com", "http://localhost:5173"}, origins)
	})

	t.Run("wildcard passes through", func(t *testing.T) {
		cfg := &Config{CORSAllowedOrigins: []string{"*"}}

		origins, err := cfg.ParseCORSAllowedOrigins()
		require.NoError(t, err)
		assert.Equal(t, []string{"*"}, origins)
	})

	t.Run("rejects host-less entries", func(t *testing.T) {
		cfg := &Config{CORSAllowedOrigins: []string{"example.com"}}

		_, err := cfg.ParseCORSAllowedOrigins()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid corsAllowedOrigins entry")
	})
}

func TestAddr(t *testing.T) {
	t.Parallel()

	cfg := &Config{Host: "0.0.0.0", Port: 7480}
	assert.Equal(t, "0.0.0.0:7480", cfg.Addr())
}
