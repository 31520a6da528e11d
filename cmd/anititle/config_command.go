// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/internal/config"
	"github.com/autobrr/anititle/internal/logger"
)

func RunConfigCommand(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(runConfigInitCommand(cli))
	cmd.AddCommand(runConfigLogCommand(cli))
	return cmd
}

func runConfigInitCommand(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config.toml if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cli.config()
			if err != nil {
				return err
			}

			written, err := config.WriteDefault(cfg.Path())
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Path())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", cfg.Path())
			}
			return nil
		},
	}
}

func runConfigLogCommand(cli *cliContext) *cobra.Command {
	var (
		level      string
		path       string
		maxSize    int
		maxBackups int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Persist log settings to config.toml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cli.config()
			if err != nil {
				return err
			}

			current := cfg.Config
			if !cmd.Flags().Changed("level") {
				level = current.LogLevel
			}
			if !cmd.Flags().Changed("path") {
				path = current.LogPath
			}
			if !cmd.Flags().Changed("max-size") {
				maxSize = current.LogMaxSize
			}
			if !cmd.Flags().Changed("max-backups") {
				maxBackups = current.LogMaxBackups
			}
			level = strings.ToUpper(logger.ParseLevel(level).String())

			if err := cfg.UpdateLogSettings(level, path, maxSize, maxBackups); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated log settings in %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Log level (ERROR, WARN, INFO, DEBUG, TRACE)")
	cmd.Flags().StringVar(&path, "path", "", "Log file path, relative to the config directory")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Maximum log file size in megabytes")
	cmd.Flags().IntVar(&maxBackups, "max-backups", 0, "Rotated log files to keep")

	return cmd
}
