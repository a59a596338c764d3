// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"sort"
	"strings"
)

// Word is one positioned text fragment from a PDF page. X grows rightward
// and Top grows downward, both in PDF points.
type Word struct {
	Text string
	X    float64
	Top  float64
}

// Page holds the positioned words of one PDF page.
type Page struct {
	Width float64
	Words []Word
}

// rowTolerance is the vertical distance, in points, beyond which two
// consecutive words are considered to sit on different lines.
const rowTolerance = 5.0

// ExtractColumns splits a page's words into left and right columns at the
// horizontal midpoint and reassembles each column into text lines. Lyric
// sheets in the corpus are laid out two-up, one song section flow per side.
func ExtractColumns(p Page) (left, right []string) {
	mid := p.Width / 2
	var leftWords, rightWords []Word
	for _, w := range p.Words {
		if w.X < mid {
			leftWords = append(leftWords, w)
		} else {
			rightWords = append(rightWords, w)
		}
	}
	return assembleLines(leftWords), assembleLines(rightWords)
}

// assembleLines orders words top-to-bottom, left-to-right and groups them
// into lines. The comparison anchor is the previous word, not the first word
// of the line, so lines drift along with slight baseline slopes instead of
// splitting mid-line.
func assembleLines(words []Word) []string {
	if len(words) == 0 {
		return nil
	}
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Top != words[j].Top {
			return words[i].Top < words[j].Top
		}
		return words[i].X < words[j].X
	})

	var lines []string
	var current []Word
	lastTop := words[0].Top
	for _, w := range words {
		if diff := w.Top - lastTop; diff >= rowTolerance || diff <= -rowTolerance {
			if line := joinLine(current); line != "" {
				lines = append(lines, line)
			}
			current = nil
		}
		current = append(current, w)
		lastTop = w.Top
	}
	if line := joinLine(current); line != "" {
		lines = append(lines, line)
	}
	return lines
}

// joinLine sorts one finished line's words by x and joins their text with
// single spaces. The global sort is by (Top, X), so baseline jitter inside
// the row tolerance can hand words over out of reading order; the per-line
// re-sort restores it. Words left empty by the control strip are dropped
// here but still anchored the row grouping above.
func joinLine(line []Word) string {
	sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
	var parts []string
	for _, w := range line {
		if text := stripControl(w.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// stripControl removes NUL and other control characters that PDF text
// extraction occasionally leaks into word content.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
