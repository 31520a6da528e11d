// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/internal/query"
	"github.com/autobrr/anititle/pkg/titles"
)

type parseOutput struct {
	Title  string              `json:"title"`
	Parsed titles.ParsedTitle  `json:"parsed"`
	Corpus titles.CorpusRecord `json:"corpus"`
}

func RunParseCommand(cli *cliContext) *cobra.Command {
	var (
		asJSON bool
		where  string
	)

	cmd := &cobra.Command{
		Use:   "parse [titles...]",
		Short: "Parse release titles (reads stdin when no titles are given)",
		Example: `  anititle parse "[ANi] 葬送的芙莉蓮 - 09 [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]"
  cat titles.txt | anititle parse --where 'resolution == "1080P" && "CHS" in languages'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := readTitles(cmd, args)
			if err != nil {
				return err
			}

			var q *query.Query
			if where != "" {
				if q, err = query.Compile(where); err != nil {
					return err
				}
			}

			parser, err := cli.parser()
			if err != nil {
				return err
			}

			start := time.Now()
			parsed, err := parser.ParseTitles(cmd.Context(), names)
			if err != nil {
				return err
			}
			log.Debug().Int("titles", len(parsed)).Dur("took", time.Since(start)).Msg("parsed titles")

			results := make([]parseOutput, 0, len(parsed))
			for i, p := range parsed {
				if q != nil {
					ok, err := q.Match(names[i], p)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
				}
				results = append(results, parseOutput{Title: names[i], Parsed: p, Corpus: p.Corpus()})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				langs := r.Corpus.SubtitleLanguages
				if langs == "" {
					langs = "-"
				}
				rows = append(rows, []string{r.Corpus.EpisodeRange, r.Corpus.Resolution, langs, r.Corpus.SubtitleKind, r.Title})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Episode", "Resolution", "Languages", "Kind", "Title"},
				rows,
			))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&where, "where", "", "Only print titles matching this expression")

	return cmd
}
