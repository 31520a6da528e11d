// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/pkg/episode"
	"github.com/autobrr/anititle/pkg/mediafilter"
	"github.com/autobrr/anititle/pkg/relevance"
)

var errNoRelevantCandidate = errors.New("no relevant candidate")

func RunFilterCommand(cli *cliContext) *cobra.Command {
	var (
		subjects    []string
		sort        string
		ep          string
		episodeName string
		explain     bool
	)

	cmd := &cobra.Command{
		Use:   "filter [titles...]",
		Short: "Print the titles that belong to a subject and episode",
		Example: `  cat results.txt | anititle filter --subject 葬送的芙莉蓮 --subject "Sousou no Frieren" --sort 9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(subjects) == 0 {
				return errors.New("--subject is required")
			}
			if strings.TrimSpace(sort) == "" {
				return errors.New("--sort is required")
			}

			names, err := readTitles(cmd, args)
			if err != nil {
				return err
			}

			cfg, err := cli.config()
			if err != nil {
				return err
			}
			parser, err := cli.parser()
			if err != nil {
				return err
			}

			ctx := mediafilter.Context{
				SubjectNames: subjects,
				EpisodeSort:  episode.ParseSort(sort),
				EpisodeName:  episodeName,
			}
			if ep != "" {
				s := episode.ParseSort(ep)
				ctx.EpisodeEp = &s
			}

			filters := mediafilter.Default(mediafilter.NewMatcher(mediafilter.Options{
				MinAliasLength: cfg.Config.MinAliasLength,
				MinSimilarity:  cfg.Config.MinSimilarity,
			}))

			for _, name := range names {
				c := mediafilter.Candidate{
					OriginalTitle: name,
					EpisodeRange:  parser.Parse(name).EpisodeRange,
				}
				if rejectedBy, ok := filters.Explain(ctx, c); !ok {
					if explain {
						fmt.Fprintf(cmd.ErrOrStderr(), "rejected by %s: %s\n", rejectedBy, name)
					}
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&subjects, "subject", nil, "Subject name or alias (repeatable)")
	cmd.Flags().StringVar(&sort, "sort", "", "Episode number within the season")
	cmd.Flags().StringVar(&ep, "ep", "", "Absolute episode number, when different from --sort")
	cmd.Flags().StringVar(&episodeName, "episode-name", "", "Episode title, used for titles without numbers")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print rejected titles and the filter that rejected them to stderr")

	return cmd
}

func RunMatchCommand(cli *cliContext) *cobra.Command {
	var (
		subject        string
		episodeName    string
		candidatesPath string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pick the most relevant candidate from a JSON list",
		Long: `Reads a JSON array of candidates ({"id", "originalTitle", "subjectName", "episodeName"})
and prints the one that best matches --subject and --episode.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(subject) == "" {
				return errors.New("--subject is required")
			}
			if candidatesPath == "" {
				return errors.New("--candidates is required")
			}

			cfg, err := cli.config()
			if err != nil {
				return err
			}

			candidates, err := loadCandidates(cmd.InOrStdin(), candidatesPath)
			if err != nil {
				return err
			}

			best, ok := relevance.MostRelevant(subject, episodeName).
				WithMinSubjectSimilarity(cfg.Config.MinSubjectSimilarity).
				MatchSlice(candidates)
			if !ok {
				return errNoRelevantCandidate
			}

			log.Debug().Str("id", best.ID).Str("subject", best.SubjectName).Msg("selected candidate")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(best)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name")
	cmd.Flags().StringVar(&episodeName, "episode", "", "Episode name, e.g. \"第13話 炎龍3\"")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "JSON file with candidates, - for stdin")

	return cmd
}

func loadCandidates(stdin io.Reader, path string) ([]mediafilter.Candidate, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read candidates %s", path)
	}

	var candidates []mediafilter.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, errors.Wrapf(err, "could not decode candidates %s", path)
	}
	return candidates, nil
}
