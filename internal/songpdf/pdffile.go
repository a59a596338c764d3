// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// charRowTolerance is the Y tolerance, in points, for grouping extracted
	// character fragments onto one text row.
	charRowTolerance = 2.0

	// wordGapMultiplier scales a fragment's font size into the horizontal
	// gap that separates two words. Smaller gaps are intra-word kerning.
	wordGapMultiplier = 0.3

	// fallbackWordGap is used when a fragment reports no font size.
	fallbackWordGap = 3.0
)

// FileReader reads lyric-sheet PDFs from the filesystem. It implements
// PageReader on top of the pure-Go pdf library, so no external tooling is
// required to parse sheets.
type FileReader struct{}

// ReadPages extracts positioned words from every page of the PDF at path.
// PDF text arrives as character fragments with a bottom-up Y axis; fragments
// are merged into words and Y is flipped so Word.Top grows downward, the
// orientation the column extractor expects.
func (FileReader) ReadPages(path string) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts := filterFragments(p.Content().Text)
		if len(texts) == 0 {
			continue
		}
		width, height := pageBounds(p, texts)
		pages = append(pages, Page{
			Width: width,
			Words: mergeWords(texts, height),
		})
	}
	return pages, nil
}

// filterFragments drops empty and newline-only fragments.
func filterFragments(texts []pdf.Text) []pdf.Text {
	kept := texts[:0:0]
	for _, t := range texts {
		if s := strings.TrimSpace(t.S); s != "" && s != "\n" {
			kept = append(kept, t)
		}
	}
	return kept
}

// pageBounds returns the page width and height from the MediaBox, falling
// back to the text extents when the box is missing or degenerate.
func pageBounds(p pdf.Page, texts []pdf.Text) (width, height float64) {
	if mb := p.V.Key("MediaBox"); mb.Len() == 4 {
		width = mb.Index(2).Float64() - mb.Index(0).Float64()
		height = mb.Index(3).Float64() - mb.Index(1).Float64()
	}
	if width > 0 && height > 0 {
		return width, height
	}
	for _, t := range texts {
		if r := t.X + t.W; r > width {
			width = r
		}
		if t.Y > height {
			height = t.Y
		}
	}
	return width, height
}

// mergeWords groups character fragments into rows by Y, then merges
// fragments within a row into words wherever the horizontal gap stays under
// the font-size threshold.
func mergeWords(texts []pdf.Text, pageHeight float64) []Word {
	var words []Word
	for _, row := range groupRows(texts) {
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })

		start := row[0]
		text := start.S
		right := start.X + start.W
		for _, t := range row[1:] {
			threshold := wordGapMultiplier * t.FontSize
			if t.FontSize == 0 {
				threshold = fallbackWordGap
			}
			if t.X-right <= threshold {
				text += t.S
				right = t.X + t.W
				continue
			}
			words = append(words, Word{Text: text, X: start.X, Top: pageHeight - start.Y})
			start = t
			text = t.S
			right = t.X + t.W
		}
		words = append(words, Word{Text: text, X: start.X, Top: pageHeight - start.Y})
	}
	return words
}

// groupRows buckets fragments by Y coordinate within charRowTolerance.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}
	var buckets []bucket

	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-charRowTolerance && t.Y <= buckets[i].yMax+charRowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	// Top of page first: PDF Y grows upward.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.texts
	}
	return rows
}
