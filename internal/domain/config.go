// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	Version        string
	Host           string `toml:"host" mapstructure:"host"`
	Port           int    `toml:"port" mapstructure:"port"`
	LogLevel       string `toml:"logLevel" mapstructure:"logLevel"`
	LogPath        string `toml:"logPath" mapstructure:"logPath"`
	LogMaxSize     int    `toml:"logMaxSize" mapstructure:"logMaxSize"`
	LogMaxBackups  int    `toml:"logMaxBackups" mapstructure:"logMaxBackups"`
	MetricsEnabled bool   `toml:"metricsEnabled" mapstructure:"metricsEnabled"`

	CORSAllowedOrigins []string `toml:"corsAllowedOrigins" mapstructure:"corsAllowedOrigins"`

	// Parser settings
	ParserCacheTTL   time.Duration `toml:"parserCacheTTL" mapstructure:"parserCacheTTL"`
	ParseConcurrency int           `toml:"parseConcurrency" mapstructure:"parseConcurrency"`

	// Matching thresholds. MinAliasLength guards substring containment so that
	// one or two character aliases do not match everything.
	MinAliasLength       int     `toml:"minAliasLength" mapstructure:"minAliasLength"`
	MinSimilarity        float64 `toml:"minSimilarity" mapstructure:"minSimilarity"`
	MinSubjectSimilarity float64 `toml:"minSubjectSimilarity" mapstructure:"minSubjectSimilarity"`
}

// Addr returns the listen address of the HTTP API.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ParseCORSAllowedOrigins normalizes the configured origins. A lone "*" is
// passed through; every other entry must be an absolute http(s) origin.
func (c *Config) ParseCORSAllowedOrigins() ([]string, error) {
	origins := make([]string, 0, len(c.CORSAllowedOrigins))

	for _, raw := range c.CORSAllowedOrigins {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if entry == "*" {
			origins = append(origins, entry)
			continue
		}

		u, err := url.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid corsAllowedOrigins entry %q: %w", entry, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid corsAllowedOrigins entry %q: expected scheme://host", entry)
		}
		origins = append(origins, u.Scheme+"://"+u.Host)
	}

	return origins, nil
}

// Validate checks the matching thresholds and parser settings.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MinAliasLength < 1 {
		return errors.New("minAliasLength must be at least 1")
	}
	if c.MinSimilarity <= 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("minSimilarity %.2f must be in (0, 1]", c.MinSimilarity)
	}
	if c.MinSubjectSimilarity < 0 || c.MinSubjectSimilarity > 1 {
		return fmt.Errorf("minSubjectSimilarity %.2f must be in [0, 1]", c.MinSubjectSimilarity)
	}
	if c.ParseConcurrency < 1 {
		return errors.New("parseConcurrency must be at least 1")
	}
	if c.ParserCacheTTL < 0 {
		return errors.New("parserCacheTTL must not be negative")
	}

	if _, err := c.ParseCORSAllowedOrigins(); err != nil {
		return err
	}

	return nil
}
