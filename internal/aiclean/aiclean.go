// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aiclean repairs parsed lyrics with a language model. The rule
// pipeline in songpdf fixes the defects it knows about; this stage catches
// the long tail (unlisted merged words, odd ligature losses) by asking a
// model to proofread each section. See docs/ARCHITECTURE.md § AI Cleanup.
package aiclean

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
	"golang.org/x/time/rate"

	"github.com/pdiddy/lyricaster/internal/songpdf"
	"github.com/pdiddy/lyricaster/pkg/types"
)

// Backend abstracts the model API so tests can supply a mock. One call
// proofreads one section.
type Backend interface {
	Clean(ctx context.Context, songTitle, sectionName, lyrics string) (string, error)
}

// Summary holds per-section counts from a cleanup run.
type Summary struct {
	Cleaned   int
	Unchanged int
	Failed    int
}

// Total returns the number of sections processed.
func (s Summary) Total() int {
	return s.Cleaned + s.Unchanged + s.Failed
}

// HasFailures reports whether any sections failed cleanup.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(o Summary) {
	s.Cleaned += o.Cleaned
	s.Unchanged += o.Unchanged
	s.Failed += o.Failed
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the backend with exponential backoff.
func callWithRetry(ctx context.Context, b Backend, title, section, lyrics string, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := b.Clean(ctx, title, section, lyrics)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// CleanSong proofreads every section of song in place. A section that fails
// keeps its original text: a deck with one rough section beats no deck.
// limiter paces the API calls; maxRetries bounds per-section attempts.
func CleanSong(ctx context.Context, b Backend, song *types.Song, limiter *rate.Limiter, maxRetries int, w io.Writer) Summary {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var summary Summary
	for _, entry := range song.Sections.Entries() {
		name := songpdf.DisplayName(entry.Key)

		if err := limiter.Wait(ctx); err != nil {
			fmt.Fprintf(w, "failed  %s %s: %v\n", song.ID, name, err)
			summary.Failed++
			continue
		}

		out, err := callWithRetry(ctx, b, song.Title, name, entry.Lyrics, maxRetries)
		if err != nil {
			fmt.Fprintf(w, "failed  %s %s: %v (keeping original)\n", song.ID, name, err)
			summary.Failed++
			continue
		}

		out = strings.TrimSpace(out)
		if out == "" || out == entry.Lyrics {
			summary.Unchanged++
			continue
		}

		song.Sections.Replace(entry.Key, out)
		fmt.Fprintf(w, "cleaned %s %s\n", song.ID, name)
		summary.Cleaned++
	}
	return summary
}

// CleanFile proofreads one parsed song YAML, rewriting the file only when a
// section actually changed.
func CleanFile(ctx context.Context, b Backend, path string, limiter *rate.Limiter, maxRetries int, w io.Writer) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading song %s: %w", path, err)
	}
	var song types.Song
	if err := yaml.Unmarshal(data, &song); err != nil {
		return Summary{}, fmt.Errorf("parsing song %s: %w", path, err)
	}

	summary := CleanSong(ctx, b, &song, limiter, maxRetries, w)
	if summary.Cleaned == 0 {
		return summary, nil
	}

	out, err := yaml.Marshal(&song)
	if err != nil {
		return summary, fmt.Errorf("marshaling song %s: %w", song.ID, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return summary, fmt.Errorf("writing song %s: %w", song.ID, err)
	}
	return summary, nil
}

// CleanAll proofreads every parsed song under cfg.SongsDir/parsed/, pacing
// calls to cfg.RequestsPerSecond.
func CleanAll(ctx context.Context, b Backend, cfg types.CleanupConfig, w io.Writer) (Summary, error) {
	limiter := NewLimiter(cfg.RequestsPerSecond)

	paths, err := filepath.Glob(filepath.Join(cfg.SongsDir, "parsed", "*.yaml"))
	if err != nil {
		return Summary{}, fmt.Errorf("listing songs in %s: %w", cfg.SongsDir, err)
	}

	var summary Summary
	for _, path := range paths {
		s, err := CleanFile(ctx, b, path, limiter, cfg.MaxRetries, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(path), err)
			summary.Failed++
			continue
		}
		summary.add(s)
	}

	fmt.Fprintf(w, "\nCleanup summary: %d cleaned, %d unchanged, %d failed (total: %d)\n",
		summary.Cleaned, summary.Unchanged, summary.Failed, summary.Total())
	return summary, nil
}

// NewLimiter builds a rate limiter for requestsPerSecond; zero or negative
// means unlimited.
func NewLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}
