// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/autobrr/anititle/internal/buildinfo"
	"github.com/autobrr/anititle/internal/domain"
	"github.com/autobrr/anititle/pkg/mediafilter"
	"github.com/autobrr/anititle/pkg/relevance"
	"github.com/autobrr/anititle/pkg/titles"
)

const (
	configFileName = "config.toml"
	envPrefix      = "ANITITLE__"
	appDirName     = "anititle"
)

// AppConfig wraps the loaded configuration together with the file it came from.
type AppConfig struct {
	Config    *domain.Config
	viper     *viper.Viper
	path      string
	configDir string
}

// defaults lists every configuration key. Each key can be overridden by an
// ANITITLE__<UPPER_SNAKE> environment variable.
var defaults = map[string]any{
	"host":                 "localhost",
	"port":                 7480,
	"logLevel":             "INFO",
	"logPath":              "",
	"logMaxSize":           50,
	"logMaxBackups":        3,
	"metricsEnabled":       false,
	"corsAllowedOrigins":   []string{},
	"parserCacheTTL":       titles.DefaultCacheTTL,
	"parseConcurrency":     titles.DefaultConcurrency,
	"minAliasLength":       mediafilter.DefaultMinAliasLength,
	"minSimilarity":        mediafilter.DefaultMinSimilarity,
	"minSubjectSimilarity": relevance.DefaultMinSubjectSimilarity,
}

// New loads configuration from configPath. An empty path selects config.toml
// in the default config directory. A missing file is not an error: defaults and
// environment overrides still apply.
func New(configPath string) (*AppConfig, error) {
	if configPath == "" {
		configPath = filepath.Join(getDefaultConfigDir(), configFileName)
	} else if info, err := os.Stat(configPath); err == nil && info.IsDir() {
		configPath = filepath.Join(configPath, configFileName)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve config path %q", configPath)
	}

	v := viper.New()
	v.SetConfigFile(absPath)
	v.SetConfigType("toml")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, envKey(key)); err != nil {
			return nil, errors.Wrapf(err, "could not bind env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) && !isConfigNotFound(err) {
			return nil, errors.Wrapf(err, "could not read config file %s", absPath)
		}
		log.Debug().Str("path", absPath).Msg("config file not found, using defaults")
	}

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}
	cfg.Version = buildinfo.Version

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &AppConfig{
		Config:    cfg,
		viper:     v,
		path:      absPath,
		configDir: filepath.Dir(absPath),
	}, nil
}

// Path returns the absolute path of the config file, whether or not it exists.
func (c *AppConfig) Path() string {
	return c.path
}

// GetConfigDir returns the directory holding the config file.
func (c *AppConfig) GetConfigDir() string {
	return c.configDir
}

// GetLogPath returns the log file path. Relative paths are resolved against the
// config directory. An empty result means logging to stdout only.
func (c *AppConfig) GetLogPath() string {
	p := strings.TrimSpace(c.Config.LogPath)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// getDefaultConfigDir honours XDG_CONFIG_HOME. In containers it is usually set
// to /config, which is then used as is.
func getDefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		if filepath.Clean(xdg) == "/config" {
			return "/config"
		}
		return filepath.Join(xdg, appDirName)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "."
		}
		return filepath.Join(home, ".config", appDirName)
	}
	return filepath.Join(dir, appDirName)
}

// envKey converts a camelCase key to its environment variable,
// e.g. logMaxSize -> ANITITLE__LOG_MAX_SIZE and parserCacheTTL -> ANITITLE__PARSER_CACHE_TTL.
func envKey(key string) string {
	var b strings.Builder
	b.WriteString(envPrefix)

	runes := []rune(key)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
