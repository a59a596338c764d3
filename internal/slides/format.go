// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slides turns parsed songs into a flat run of presentation slides.
// See docs/ARCHITECTURE.md § Slides.
package slides

import (
	"regexp"
	"strings"
)

// reverentWords maps lowercase pronouns and names of God to their reverent
// capitalization. Lyrics context makes a bare "he" reverent often enough
// that the replacement is unconditional.
var reverentWords = map[string]string{
	"he":      "He",
	"him":     "Him",
	"his":     "His",
	"himself": "Himself",
	"god":     "God",
	"god's":   "God's",
	"lord":    "Lord",
	"lord's":  "Lord's",
	"father":  "Father",
	"son":     "Son",
	"spirit":  "Spirit",
	"jesus":   "Jesus",
	"christ":  "Christ",
	"savior":  "Savior",
	"saviour": "Saviour",
	"king":    "King",
	"lamb":    "Lamb",
	"thee":    "Thee",
	"thou":    "Thou",
	"thy":     "Thy",
	"thine":   "Thine",
}

// wordPattern matches words including apostrophe contractions, so "god's"
// is one token.
var wordPattern = regexp.MustCompile(`\b[\w']+\b`)

// CapitalizeReverentWords applies reverent capitalization to lyrics.
func CapitalizeReverentWords(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, func(word string) string {
		if r, ok := reverentWords[strings.ToLower(word)]; ok {
			return r
		}
		return word
	})
}

// SplitSlides breaks section lyrics into slide-sized chunks of at most
// maxLines lines. Blank lines in the lyrics mark stanza boundaries; a chunk
// that has reached half the limit breaks early at a stanza boundary rather
// than splitting the next stanza mid-thought.
func SplitSlides(text string, maxLines int) []string {
	type line struct {
		text       string
		afterBlank bool
	}

	var lines []line
	prevBlank := false
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			prevBlank = true
			continue
		}
		lines = append(lines, line{text: raw, afterBlank: prevBlank})
		prevBlank = false
	}
	if len(lines) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	for _, l := range lines {
		switch {
		case len(current) >= maxLines:
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
		case len(current) > 0 && l.afterBlank && len(current) >= maxLines/2:
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, l.text)
	}
	return append(chunks, strings.Join(current, "\n"))
}
