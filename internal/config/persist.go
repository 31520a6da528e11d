// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultConfigTemplate = `# config.toml - Auto-generated on first run

# Hostname / IP
# Default: "localhost"
host = "localhost"

# Port
# Default: 7480
port = 7480

# Log file path
# If not defined, logs to stdout
# Optional
#logPath = "log/anititle.log"

# Log rotation
# Maximum log file size in megabytes before rotation
# Default: 50
#logMaxSize = 50

# Number of rotated log files to retain (0 keeps all)
# Default: 3
#logMaxBackups = 3

# Log level
# Default: "INFO"
# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"
logLevel = "INFO"

# Expose Prometheus metrics on /metrics
# Default: false
#metricsEnabled = false

# Origins allowed to call the HTTP API from a browser
#corsAllowedOrigins = ["http://localhost:5173"]

# Parser
# Default: "5m"
#parserCacheTTL = "5m"
# Default: 4
#parseConcurrency = 4

# Matching
# Aliases shorter than this only match exactly. Default: 2
#minAliasLength = 2
# Approximate subject matches need this similarity. Default: 0.85
#minSimilarity = 0.85
# Candidates below this subject similarity are never relevant. Default: 0.5
#minSubjectSimilarity = 0.5
`

// WriteDefault creates a commented config file at path unless one exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "could not stat %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrapf(err, "could not create config directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return false, errors.Wrapf(err, "could not write %s", path)
	}

	log.Info().Str("path", path).Msg("wrote default config")
	return true, nil
}

// UpdateLogSettings persists log settings to the config file, keeping comments
// and layout intact, and applies them to the loaded configuration.
func (c *AppConfig) UpdateLogSettings(level, logPath string, maxSize, maxBackups int) error {
	if _, err := WriteDefault(c.path); err != nil {
		return err
	}

	content, err := os.ReadFile(c.path)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", c.path)
	}

	updated := updateLogSettingsInTOML(string(content), level, logPath, maxSize, maxBackups)
	if err := os.WriteFile(c.path, []byte(updated), 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", c.path)
	}

	c.Config.LogLevel = level
	c.Config.LogPath = logPath
	c.Config.LogMaxSize = maxSize
	c.Config.LogMaxBackups = maxBackups
	return nil
}

// updateLogSettingsInTOML rewrites the top-level log keys in place. Commented
// keys are uncommented. Keys that are missing are inserted before the first
// table header so that they stay top-level.
func updateLogSettingsInTOML(content, level, logPath string, maxSize, maxBackups int) string {
	values := []struct {
		key   string
		value string
	}{
		{"logLevel", fmt.Sprintf("%q", level)},
		{"logPath", fmt.Sprintf("%q", logPath)},
		{"logMaxSize", fmt.Sprintf("%d", maxSize)},
		{"logMaxBackups", fmt.Sprintf("%d", maxBackups)},
	}

	lines := strings.Split(content, "\n")
	firstTable := len(lines)
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			firstTable = i
			break
		}
	}

	var missing []string
	for _, kv := range values {
		found := false
		for i := 0; i < firstTable; i++ {
			if tomlKey(lines[i]) == kv.key {
				lines[i] = kv.key + " = " + kv.value
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, kv.key+" = "+kv.value)
		}
	}

	if len(missing) == 0 {
		return strings.Join(lines, "\n")
	}

	out := make([]string, 0, len(lines)+len(missing)+1)
	out = append(out, lines[:firstTable]...)
	out = append(out, missing...)
	if firstTable < len(lines) {
		out = append(out, "")
	}
	out = append(out, lines[firstTable:]...)
	return strings.Join(out, "\n")
}

// tomlKey returns the key of a "key = value" line, commented or not.
func tomlKey(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#")
	key, _, found := strings.Cut(trimmed, "=")
	if !found {
		return ""
	}
	key = strings.TrimSpace(key)
	if strings.ContainsAny(key, " \t") {
		return ""
	}
	return key
}
