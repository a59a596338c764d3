// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyricaster/pkg/types"
)

// PageReader extracts positioned words from a PDF file, one Page per
// document page. The pdfium-free reader in this package implements it;
// tests substitute fixed pages.
type PageReader interface {
	ReadPages(pdfPath string) ([]Page, error)
}

// ParsePages assembles the sections of a whole document. Pages are walked in
// order and each page contributes its left column before its right one, so
// first-seen-wins dedup follows natural reading order.
func ParsePages(pages []Page, rules *Rules) *types.SectionMap {
	sections := types.NewSectionMap()
	for _, p := range pages {
		left, right := ExtractColumns(p)
		AssembleSections(left, rules, sections)
		AssembleSections(right, rules, sections)
	}
	return sections
}

// ParseSong reads one lyric-sheet PDF and returns the parsed song. The
// song's title and ID come from the filename.
func ParseSong(r PageReader, pdfPath string, rules *Rules) (*types.Song, error) {
	pages, err := r.ReadPages(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pdfPath, err)
	}

	title := SongTitle(pdfPath)
	song := &types.Song{
		ID:       Slug(title),
		Title:    title,
		PDFPath:  pdfPath,
		Sections: ParsePages(pages, rules),
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}
	return song, nil
}

type parseStatus int

const (
	parseDone parseStatus = iota
	parseSkipped
	parseFailed
)

// BatchResult holds the outcome of a batch parse run.
type BatchResult struct {
	Parsed  int
	Skipped int
	Failed  int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Parsed + r.Skipped + r.Failed
}

// HasFailures reports whether any PDFs failed to parse.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ParseFile parses a single PDF and writes the resulting song YAML to
// outDir. If the output already exists the PDF is skipped; delete the YAML
// (or re-run after editing the rule tables) to force a re-parse.
func ParseFile(r PageReader, pdfPath, outDir string, rules *Rules, w io.Writer) parseStatus {
	title := SongTitle(pdfPath)
	outPath := filepath.Join(outDir, Slug(title)+".yaml")

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", title)
		return parseSkipped
	}

	song, err := ParseSong(r, pdfPath, rules)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
		return parseFailed
	}

	data, err := yaml.Marshal(song)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
		return parseFailed
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
		return parseFailed
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
		return parseFailed
	}

	fmt.Fprintf(w, "parsed:  %s (%d sections)\n", title, song.Sections.Len())
	return parseDone
}

// ParseBatch parses every PDF path through ParseFile, printing per-file
// status to w and returning a summary.
func ParseBatch(r PageReader, pdfPaths []string, outDir string, rules *Rules, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ParseFile(r, p, outDir, rules, w) {
		case parseDone:
			result.Parsed++
		case parseSkipped:
			result.Skipped++
		case parseFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d skipped, %d failed (total: %d)\n",
		result.Parsed, result.Skipped, result.Failed, result.Total())
	return result
}
