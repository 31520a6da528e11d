// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/internal/corpus"
)

var errCorpusMismatch = errors.New("corpus check failed")

func RunCheckCommand(cli *cliContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check <corpus.yaml>...",
		Short: "Run regression corpora against the parser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := cli.parser()
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				c, err := corpus.Load(path)
				if err != nil {
					return err
				}

				res, err := c.Run(cmd.Context(), parser)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d passed\n", res.Name, res.Passed, res.Total)
				if !res.OK() {
					failed++
					limit := 10
					if verbose {
						limit = len(res.Mismatches)
					}
					for i, m := range res.Mismatches {
						if i == limit {
							fmt.Fprintf(cmd.OutOrStdout(), "  ... %d more\n", len(res.Mismatches)-limit)
							break
						}
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", m)
					}
				}
				log.Debug().Str("corpus", path).Int("passed", res.Passed).Int("total", res.Total).Msg("corpus checked")
			}

			if failed > 0 {
				return errors.Wrapf(errCorpusMismatch, "%d of %d corpora have mismatches", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every mismatch")

	return cmd
}

func RunRecordCommand(cli *cliContext) *cobra.Command {
	var (
		name   string
		source string
		output string
	)

	cmd := &cobra.Command{
		Use:   "record [titles...]",
		Short: "Record current parse results as a regression corpus",
		Long: `Parses the given titles (or stdin, one per line) and writes a corpus file
that "anititle check" can verify later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}

			names, err := readTitles(cmd, args)
			if err != nil {
				return err
			}
			parser, err := cli.parser()
			if err != nil {
				return err
			}

			c, err := corpus.Generate(cmd.Context(), name, source, names, parser)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return c.Encode(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return errors.Wrapf(err, "could not create %s", output)
			}
			if err := c.Encode(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Corpus name, usually the search keyword")
	cmd.Flags().StringVar(&source, "source", "", "Where the titles came from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
