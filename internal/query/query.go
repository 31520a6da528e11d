// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package query filters parsed titles with boolean expressions such as
//
//	resolution == "1080P" && "CHS" in languages && covers(12)
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/autobrr/anititle/pkg/episode"
	"github.com/autobrr/anititle/pkg/titles"
)

var ErrNotBool = errors.New("expression does not evaluate to a bool")

// Env is what an expression can see of one title.
// In expressions the fields are named in lower camel case (episodeStart).
type Env struct {
	Title        string
	Episode      string
	HasEpisode   bool
	EpisodeStart float64
	EpisodeEnd   float64
	Season       int
	Resolution   string
	Languages    []string
	Kind         string

	episodeRange *episode.Range
}

// NewEnv flattens a parse result. Absent values are empty strings and zeros.
func NewEnv(title string, p titles.ParsedTitle) Env {
	env := Env{
		Title:     title,
		Languages: p.SubtitleLanguages.IDs(),
	}
	if env.Languages == nil {
		env.Languages = []string{}
	}
	if p.Resolution != titles.ResolutionUnspecified {
		env.Resolution = p.Resolution.String()
	}
	if p.SubtitleKind != nil {
		env.Kind = p.SubtitleKind.String()
	}
	if p.EpisodeRange != nil {
		r := *p.EpisodeRange
		env.episodeRange = &r
		env.HasEpisode = true
		env.Episode = r.String()
		if start, end, ok := r.Bounds(); ok {
			env.EpisodeStart, _ = start.Number()
			env.EpisodeEnd, _ = end.Number()
		}
		if n, ok := r.SeasonNumber(); ok {
			env.Season = n
		}
	}
	return env
}

// Query is a compiled expression. It is safe for concurrent use.
type Query struct {
	source  string
	program *vm.Program
}

// Compile checks src against Env and requires a bool result.
func Compile(src string) (*Query, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("empty expression")
	}

	program, err := expr.Compile(src, options()...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}

	return &Query{source: src, program: program}, nil
}

func options() []expr.Option {
	return []expr.Option{
		expr.Env(Env{Languages: []string{}}.vars()),
		expr.AsBool(),
	}
}

// String returns the source expression.
func (q *Query) String() string {
	return q.source
}

// Match evaluates q for one title.
func (q *Query) Match(title string, p titles.ParsedTitle) (bool, error) {
	return q.Eval(NewEnv(title, p))
}

// Eval evaluates q against env.
func (q *Query) Eval(env Env) (bool, error) {
	out, err := expr.Run(q.program, env.vars())
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", q.source, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, ErrNotBool
	}
	return b, nil
}

// vars exposes env to expressions. covers(n) reports whether the episode range
// contains episode n.
func (e Env) vars() map[string]any {
	return map[string]any{
		"title":        e.Title,
		"episode":      e.Episode,
		"hasEpisode":   e.HasEpisode,
		"episodeStart": e.EpisodeStart,
		"episodeEnd":   e.EpisodeEnd,
		"season":       e.Season,
		"resolution":   e.Resolution,
		"languages":    e.Languages,
		"kind":         e.Kind,
		"covers":       e.covers,
	}
}

func (e Env) covers(n float64) bool {
	if e.episodeRange == nil {
		return false
	}
	return e.episodeRange.Contains(episode.Number(n))
}
