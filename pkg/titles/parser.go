// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package titles parses community release titles of anime ("[ANi] 葬送的芙莉蓮 - 09
// [1080P][Baha][WEB-DL][AAC AVC][CHT][MP4]") into structured metadata: the episode
// range, the resolution, the subtitle languages and how subtitles are delivered.
//
// Parsing never fails. Anything the rules do not recognize is reported as absent.
package titles

import (
	"context"
	"strings"
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
	"github.com/moistari/rls"
	"golang.org/x/sync/errgroup"

	"github.com/autobrr/anititle/pkg/episode"
)

const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultConcurrency = 4
)

// ParsedTitle represents parsed title information from a release name
type ParsedTitle struct {
	EpisodeRange      *episode.Range `json:"episodeRange,omitempty"`
	Resolution        Resolution     `json:"resolution,omitempty"`
	SubtitleLanguages LanguageSet    `json:"subtitleLanguages"`
	SubtitleKind      *SubtitleKind  `json:"subtitleKind,omitempty"`
}

// CorpusRecord is the flattened text form of a ParsedTitle used by regression corpora.
type CorpusRecord struct {
	EpisodeRange      string `json:"episodeRange" yaml:"episodeRange"`
	SubtitleLanguages string `json:"subtitleLanguages" yaml:"subtitleLanguages"`
	Resolution        string `json:"resolution" yaml:"resolution"`
	SubtitleKind      string `json:"subtitleKind" yaml:"subtitleKind"`
}

// Corpus renders p in regression form: absent values print as "null" and the
// language set as sorted ids ("CHS, JPN").
func (p ParsedTitle) Corpus() CorpusRecord {
	rec := CorpusRecord{
		EpisodeRange:      "null",
		SubtitleLanguages: p.SubtitleLanguages.String(),
		Resolution:        p.Resolution.String(),
		SubtitleKind:      "null",
	}
	if p.EpisodeRange != nil {
		rec.EpisodeRange = p.EpisodeRange.String()
	}
	if p.SubtitleKind != nil {
		rec.SubtitleKind = p.SubtitleKind.String()
	}
	return rec
}

// Parse extracts metadata from a single title. It is a pure function.
func Parse(title string) ParsedTitle {
	c := newTitleContext(title)

	episodeRange, _ := extractEpisode(c)
	parsed := ParsedTitle{
		EpisodeRange:      episodeRange,
		Resolution:        extractResolution(c),
		SubtitleLanguages: extractLanguages(c),
		SubtitleKind:      extractSubtitleKind(c),
	}

	if c.latinOnly() && (parsed.EpisodeRange == nil || parsed.Resolution == ResolutionUnspecified) {
		applySceneFallback(title, &parsed)
	}

	return parsed
}

// applySceneFallback fills gaps from the scene release parser, which understands
// dotted Latin names such as "Show.S02E05.1080p.WEB.H264-GROUP".
func applySceneFallback(title string, parsed *ParsedTitle) {
	release := rls.ParseString(title)

	if parsed.EpisodeRange == nil {
		switch {
		case release.Episode > 0:
			r := episode.Single(episode.Number(float64(release.Episode)))
			parsed.EpisodeRange = &r
		case release.Series > 0:
			r := episode.Season(release.Series)
			parsed.EpisodeRange = &r
		}
	}

	if parsed.Resolution == ResolutionUnspecified && release.Resolution != "" {
		parsed.Resolution = sceneResolution(release.Resolution)
	}
}

func sceneResolution(s string) Resolution {
	switch strings.ToUpper(s) {
	case "2160P", "4K", "UHD":
		return Resolution4K
	case "1440P":
		return Resolution1440P
	case "1080P", "1080I":
		return Resolution1080P
	case "720P":
		return Resolution720P
	case "480P", "480I", "576P":
		return Resolution480P
	case "360P":
		return Resolution360P
	case "240P":
		return Resolution240P
	}
	return ResolutionUnspecified
}

// Parser handles parsing of release titles with caching
type Parser struct {
	cache       *ttlcache.Cache[string, ParsedTitle]
	concurrency int
}

// ParserOptions tunes a Parser. Zero values select the defaults.
type ParserOptions struct {
	CacheTTL    time.Duration
	Concurrency int
}

// NewParser creates a new title parser with TTL cache
func NewParser() *Parser {
	return NewParserWithOptions(ParserOptions{})
}

// NewParserWithOptions creates a parser with the given cache TTL and batch concurrency.
func NewParserWithOptions(opts ParserOptions) *Parser {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Parser{
		cache:       ttlcache.New(ttlcache.Options[string, ParsedTitle]{}.SetDefaultTTL(opts.CacheTTL)),
		concurrency: opts.Concurrency,
	}
}

// Parse returns the cached result for title, parsing it on a miss.
func (p *Parser) Parse(title string) ParsedTitle {
	if cached, found := p.cache.Get(title); found {
		return cached
	}

	parsed := Parse(title)
	p.cache.Set(title, parsed, ttlcache.DefaultTTL)
	return parsed
}

// ParseTitles parses a list of release names concurrently and returns exactly one
// result per name, in input order. Blank names yield a zero ParsedTitle. It stops
// early when ctx is cancelled.
func (p *Parser) ParseTitles(ctx context.Context, names []string) ([]ParsedTitle, error) {
	result := make([]ParsedTitle, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result[i] = p.Parse(name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
