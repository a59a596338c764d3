// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// leadingNumberPattern strips set-list numbering like "01. " from a
	// filename.
	leadingNumberPattern = regexp.MustCompile(`^\d+\.\s*`)

	// trailingKeyPattern strips a trailing musical key annotation like
	// " - G" or " - Eb~F" from a filename.
	trailingKeyPattern = regexp.MustCompile(`\s*-\s*[A-G][#b]?(?:~[A-G][#b]?)?\s*$`)

	slugStripPattern    = regexp.MustCompile(`[^a-z0-9]+`)
	slugCollapsePattern = regexp.MustCompile(`-{2,}`)
)

// SongTitle derives a song title from a PDF path. Sheet filenames in the
// corpus look like "03. Trading My Sorrows - G.pdf"; the numbering and key
// annotation are packaging, not title.
func SongTitle(pdfPath string) string {
	name := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	name = leadingNumberPattern.ReplaceAllString(name, "")
	name = trailingKeyPattern.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// Slug converts a title into a filesystem- and ID-safe slug.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "-")
	s = slugCollapsePattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
