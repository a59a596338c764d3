// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songpdf extracts named lyric sections from song-sheet PDFs.
// It reconstructs two-column layouts from positioned words, strips chords,
// footers, and stage directions, and repairs common extraction defects.
// See docs/ARCHITECTURE.md § Parsing.
package songpdf

import (
	"regexp"
	"strings"
)

// chordPattern matches a single chord symbol: root note A-G with optional
// sharp/flat, quality, extension digits, parenthetical extension, and bass
// note. Covers A, Am7, G(4), F2, F/C, Gsus4, Bb, C#m, Dm7/F.
var chordPattern = regexp.MustCompile(
	`^[A-G][#b]?` +
		`(?:m|maj|min|dim|aug|sus|add)?` +
		`[0-9]*` +
		`(?:\([0-9]+\))?` +
		`(?:/[A-G][#b]?)?$`)

// bassFragmentPattern matches a stranded bass-note fragment like "/E" or
// "/G#" left behind when a slash chord splits across words.
var bassFragmentPattern = regexp.MustCompile(`^/[A-G][#b]?$`)

// repeatMarkers are chart repeat counts that may appear between chords.
var repeatMarkers = map[string]bool{"x2": true, "x3": true, "x4": true}

// IsChord reports whether word is a chord symbol. Empty and whitespace-only
// words are not chords.
func IsChord(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	return chordPattern.MatchString(word)
}

// isBassFragment reports whether word is a stranded "/E"-style fragment.
func isBassFragment(word string) bool {
	return bassFragmentPattern.MatchString(word)
}

// IsChordLine reports whether line consists only of chord symbols and
// separators. Both pipe-delimited charts ("| C | Am7 | F2 |", ignoring
// repeat markers) and plain runs of chords ("Am  G  C") qualify. Any
// non-chord token disqualifies the line; an empty line is not a chord line.
func IsChordLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.Contains(line, "|") {
		parts := splitNonEmpty(line, pipeOrSpace)
		kept := parts[:0]
		for _, p := range parts {
			if !repeatMarkers[p] {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 && allChords(kept) {
			return true
		}
	}

	parts := splitNonEmpty(line, whitespace)
	if len(parts) == 0 {
		return false
	}
	return allChords(parts)
}

var (
	pipeOrSpace = regexp.MustCompile(`[\s|]+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

func splitNonEmpty(s string, sep *regexp.Regexp) []string {
	var out []string
	for _, p := range sep.Split(s, -1) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allChords(words []string) bool {
	for _, w := range words {
		if !IsChord(w) {
			return false
		}
	}
	return true
}

// metadataPattern matches sheet metadata lines like "Key - C | Tempo - 72".
// Both hyphen and en-dash separators occur in the wild.
var metadataPattern = regexp.MustCompile(`(?i)^(Key|Tempo)\s*[-–]`)

// IsMetadataLine reports whether line is sheet metadata (key, tempo).
func IsMetadataLine(line string) bool {
	return metadataPattern.MatchString(strings.TrimSpace(line))
}

// navigationPatterns mark performance-navigation directives and publisher
// credits that should never land on a slide. A match anywhere in the line
// excludes it.
var navigationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(To\s+\w+.*?\)`), // (To Turnaround), (To Chorus 1b)
	regexp.MustCompile(`(?i)\(\d+\.\)`),       // (1.), (2.)
	regexp.MustCompile(`(?i)^To\s+(Turnaround|Instrumental|Chorus|Verse|Bridge|Vamp|Coda|Intro|Outro|Ending|Tag)\b`),
	regexp.MustCompile(`(?i)Grace Praise`),  // publisher credit
	regexp.MustCompile(`(?i)Praise Charts`), // publisher credit
}

// IsNavigationLine reports whether line contains a navigation directive or
// publisher credit.
func IsNavigationLine(line string) bool {
	for _, p := range navigationPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
