// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autobrr/anititle/pkg/stringutils"
)

func RunKeywordCommand() *cobra.Command {
	var (
		keepSpecials bool
		allWords     bool
	)

	cmd := &cobra.Command{
		Use:         "keyword <title>",
		Short:       "Derive a search keyword from a subject title",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), stringutils.GetSearchKeyword(args[0], !keepSpecials, !allWords))
			return err
		},
	}

	cmd.Flags().BoolVar(&keepSpecials, "keep-specials", false, "Keep punctuation and decorative symbols")
	cmd.Flags().BoolVar(&allWords, "all-words", false, "Keep every word instead of only the first")

	return cmd
}
