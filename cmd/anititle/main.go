// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cli := &cliContext{}

	rootCmd := &cobra.Command{
		Use:           "anititle",
		Short:         "Parse and match anime release titles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipSetup(cmd) {
				return nil
			}
			return cli.setup(cmd, false)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return cli.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to config.toml or its directory")
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Override the configured log level (ERROR, WARN, INFO, DEBUG, TRACE)")

	rootCmd.AddCommand(RunParseCommand(cli))
	rootCmd.AddCommand(RunKeywordCommand())
	rootCmd.AddCommand(RunFilterCommand(cli))
	rootCmd.AddCommand(RunMatchCommand(cli))
	rootCmd.AddCommand(RunCheckCommand(cli))
	rootCmd.AddCommand(RunRecordCommand(cli))
	rootCmd.AddCommand(RunServeCommand(cli))
	rootCmd.AddCommand(RunConfigCommand(cli))
	rootCmd.AddCommand(RunVersionCommand())

	return rootCmd
}

// skipSetup reports whether cmd runs without configuration, e.g. version.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoConfig] == "true" {
			return true
		}
	}
	return false
}
