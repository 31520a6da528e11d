// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/internal/config"
	"github.com/autobrr/anititle/internal/logger"
	"github.com/autobrr/anititle/pkg/titles"
)

const annotationNoConfig = "anititle/no-config"

// maxLineBytes bounds one title read from stdin.
const maxLineBytes = 1 << 20

// cliContext carries the loaded configuration between the root command and
// its subcommands.
type cliContext struct {
	configPath string
	logLevel   string

	cfg    *config.AppConfig
	closer io.Closer
}

// setup loads configuration and installs the logger. withFile also writes to
// the configured log file, which only the long running server does.
func (c *cliContext) setup(cmd *cobra.Command, withFile bool) error {
	if c.cfg == nil {
		cfg, err := config.New(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}

	level := c.cfg.Config.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}

	opts := logger.Options{
		Level:  level,
		Output: cmd.ErrOrStderr(),
	}
	if withFile {
		opts.Path = c.cfg.GetLogPath()
		opts.MaxSize = c.cfg.Config.LogMaxSize
		opts.MaxBackups = c.cfg.Config.LogMaxBackups
	}

	if err := c.close(); err != nil {
		return err
	}
	closer, err := logger.Setup(opts)
	if err != nil {
		return err
	}
	c.closer = closer
	return nil
}

func (c *cliContext) close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

func (c *cliContext) config() (*config.AppConfig, error) {
	if c.cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return c.cfg, nil
}

func (c *cliContext) parser() (*titles.Parser, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return titles.NewParserWithOptions(titles.ParserOptions{
		CacheTTL:    cfg.Config.ParserCacheTTL,
		Concurrency: cfg.Config.ParseConcurrency,
	}), nil
}

// readTitles returns the non-blank args when any are given, otherwise one title
// per non-empty line of stdin.
func readTitles(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		out := make([]string, 0, len(args))
		for _, arg := range args {
			if strings.TrimSpace(arg) != "" {
				out = append(out, arg)
			}
		}
		if len(out) == 0 {
			return nil, errors.New("no titles given")
		}
		return out, nil
	}

	var out []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read titles from stdin")
	}
	if len(out) == 0 {
		return nil, errors.New("no titles given")
	}
	return out, nil
}
