// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/internal/api"
	"github.com/autobrr/anititle/internal/buildinfo"
	"github.com/autobrr/anititle/internal/metrics"
)

func RunServeCommand(cli *cliContext) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.setup(cmd, true); err != nil {
				return err
			}

			cfg, err := cli.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Config.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Config.Port = port
			}

			parser, err := cli.parser()
			if err != nil {
				return err
			}

			deps := &api.Dependencies{
				Config: cfg,
				Parser: parser,
			}
			if cfg.Config.MetricsEnabled {
				deps.Metrics = metrics.NewManager()
			}

			log.Info().
				Str("version", buildinfo.Version).
				Str("config", cfg.Path()).
				Bool("metrics", cfg.Config.MetricsEnabled).
				Msg("Starting anititle")

			return api.NewServer(deps).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Override the configured listen host")
	cmd.Flags().IntVar(&port, "port", 0, "Override the configured listen port")

	return cmd
}
