// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/lyricaster/internal/songpdf"
	"github.com/pdiddy/lyricaster/pkg/types"
)

// RenderDeck writes a plain-text rendering of the deck, one block per
// slide, so a deck can be proofread before pushing it to a presentation.
func RenderDeck(w io.Writer, deck []types.Slide) {
	for i, s := range deck {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- slide %d of %d ---\n", i+1, len(deck))
		fmt.Fprintln(w, strings.ToUpper(s.Title))
		if s.Body != "" {
			fmt.Fprintln(w, s.Body)
		}
		if s.Footer != "" {
			fmt.Fprintf(w, "(%s)\n", s.Footer)
		}
	}
}

// WritePreview renders the deck to outDir/<slug of title>.txt and returns
// the written path.
func WritePreview(outDir, title string, deck []types.Slide) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(outDir, songpdf.Slug(title)+".txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating preview file: %w", err)
	}
	RenderDeck(f, deck)
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing preview file: %w", err)
	}
	return path, nil
}
