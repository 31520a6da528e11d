// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package corpus loads regression corpora of release titles with their expected
// parse results and checks a parser against them.
package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/autobrr/anititle/pkg/titles"
)

var (
	ErrEmptyCorpus = errors.New("corpus has no cases")
	ErrBlankTitle  = errors.New("corpus case has a blank title")
)

const null = "null"

// Case is one title and the record it is expected to parse to.
type Case struct {
	Title               string `yaml:"title"`
	titles.CorpusRecord `yaml:",inline"`
}

// Corpus is a named list of cases, usually scraped from one search.
type Corpus struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source,omitempty"`
	Cases  []Case `yaml:"cases"`
}

// Load reads a corpus from a YAML file.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open corpus %s", path)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load corpus %s", path)
	}
	return c, nil
}

// Decode reads a corpus from r and normalizes the expected values.
func Decode(r io.Reader) (*Corpus, error) {
	var c Corpus
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCorpus
		}
		return nil, errors.Wrap(err, "could not decode yaml")
	}

	if len(c.Cases) == 0 {
		return nil, ErrEmptyCorpus
	}

	for i := range c.Cases {
		if strings.TrimSpace(c.Cases[i].Title) == "" {
			return nil, errors.Wrapf(ErrBlankTitle, "case %d", i)
		}
		rec, err := normalize(c.Cases[i].CorpusRecord)
		if err != nil {
			return nil, errors.Wrapf(err, "case %d (%s)", i, c.Cases[i].Title)
		}
		c.Cases[i].CorpusRecord = rec
	}

	return &c, nil
}

// normalize rewrites blank values to "null" and puts every field into the form
// printed by the parser, so that comparisons are plain string equality.
func normalize(rec titles.CorpusRecord) (titles.CorpusRecord, error) {
	if strings.TrimSpace(rec.EpisodeRange) == "" {
		rec.EpisodeRange = null
	}
	rec.EpisodeRange = strings.TrimSpace(rec.EpisodeRange)

	langs, err := titles.ParseLanguageSet(rec.SubtitleLanguages)
	if err != nil {
		return rec, err
	}
	rec.SubtitleLanguages = langs.String()

	res, err := titles.ParseResolution(rec.Resolution)
	if err != nil {
		return rec, err
	}
	rec.Resolution = res.String()

	kind := strings.TrimSpace(rec.SubtitleKind)
	if kind == "" || strings.EqualFold(kind, null) {
		rec.SubtitleKind = null
	} else {
		k, err := titles.ParseSubtitleKind(kind)
		if err != nil {
			return rec, err
		}
		rec.SubtitleKind = k.String()
	}

	return rec, nil
}

// Mismatch is one field of one case that parsed differently than expected.
type Mismatch struct {
	Title string `json:"title"`
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s want %q got %q", m.Title, m.Field, m.Want, m.Got)
}

// Result summarizes a corpus run.
type Result struct {
	Name       string     `json:"name"`
	Total      int        `json:"total"`
	Passed     int        `json:"passed"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// OK reports whether every case matched.
func (r Result) OK() bool {
	return len(r.Mismatches) == 0
}

// BatchParser parses many titles at once, keeping input order.
type BatchParser interface {
	ParseTitles(ctx context.Context, names []string) ([]titles.ParsedTitle, error)
}

// Run parses every case with p and compares the results.
func (c *Corpus) Run(ctx context.Context, p BatchParser) (Result, error) {
	names := make([]string, len(c.Cases))
	for i, tc := range c.Cases {
		names[i] = tc.Title
	}

	parsed, err := p.ParseTitles(ctx, names)
	if err != nil {
		return Result{}, errors.Wrapf(err, "could not parse corpus %s", c.Name)
	}
	if len(parsed) != len(names) {
		return Result{}, errors.Errorf("parser returned %d results for %d titles", len(parsed), len(names))
	}

	res := Result{Name: c.Name, Total: len(c.Cases)}
	for i, tc := range c.Cases {
		mismatches := compare(tc, parsed[i].Corpus())
		if len(mismatches) == 0 {
			res.Passed++
			continue
		}
		for _, m := range mismatches {
			log.Debug().Str("corpus", c.Name).Str("title", m.Title).Str("field", m.Field).
				Str("want", m.Want).Str("got", m.Got).Msg("corpus mismatch")
		}
		res.Mismatches = append(res.Mismatches, mismatches...)
	}

	return res, nil
}

func compare(tc Case, got titles.CorpusRecord) []Mismatch {
	fields := []struct {
		name      string
		want, got string
	}{
		{"episodeRange", tc.EpisodeRange, got.EpisodeRange},
		{"subtitleLanguages", tc.SubtitleLanguages, got.SubtitleLanguages},
		{"resolution", tc.Resolution, got.Resolution},
		{"subtitleKind", tc.SubtitleKind, got.SubtitleKind},
	}

	var out []Mismatch
	for _, f := range fields {
		if f.want != f.got {
			out = append(out, Mismatch{Title: tc.Title, Field: f.name, Want: f.want, Got: f.got})
		}
	}
	return out
}

// Generate builds a corpus from the current parser output, e.g. to record a
// new search as a regression baseline.
func Generate(ctx context.Context, name, source string, names []string, p BatchParser) (*Corpus, error) {
	parsed, err := p.ParseTitles(ctx, names)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse titles")
	}

	if len(parsed) != len(names) {
		return nil, errors.Errorf("parser returned %d results for %d titles", len(parsed), len(names))
	}

	c := &Corpus{Name: name, Source: source}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c.Cases = append(c.Cases, Case{Title: n, CorpusRecord: parsed[i].Corpus()})
	}
	if len(c.Cases) == 0 {
		return nil, ErrEmptyCorpus
	}
	return c, nil
}

// Encode writes c as YAML.
func (c *Corpus) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "could not encode corpus")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "could not encode corpus")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
