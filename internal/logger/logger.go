// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where logs go and how much is written.
type Options struct {
	Level      string
	Path       string
	MaxSize    int
	MaxBackups int
	// Output overrides stderr, mostly for tests.
	Output io.Writer
	// Pretty forces the console writer. When false it is enabled only on a TTY.
	Pretty bool
}

// ParseLevel maps the configured level names (ERROR, WARN, INFO, DEBUG, TRACE)
// to zerolog levels. Unknown names fall back to INFO.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR":
		return zerolog.ErrorLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "TRACE":
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

// Setup installs the global logger and returns a closer for the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer = out
	if opts.Pretty || isTerminal(out) {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	writers := []io.Writer{console}

	var closer io.Closer = nopCloser{}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "could not create log directory for %s", opts.Path)
		}
		file := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
		}
		writers = append(writers, file)
		closer = file
	}

	level := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level)

	return closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
