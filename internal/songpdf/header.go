// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"regexp"
	"strings"
)

// validSections are the section types extracted into slides.
var validSections = []string{"VERSE", "CHORUS", "VAMP", "BRIDGE", "PRE-CHORUS", "TAG"}

// ignoredSections are purely instrumental passages. Their headers are
// recognized so the assembler can discard everything under them.
var ignoredSections = []string{"INSTRUMENTAL", "INTERLUDE", "INTRO", "OUTRO", "ENDING", "TURNAROUND"}

// bracketHeaderPattern matches chart-style headers like "[Verse 1]" or
// "[Chorus 1A]".
var bracketHeaderPattern = regexp.MustCompile(
	`(?i)^\[(Verse|Chorus|Vamp|Bridge|Pre-Chorus|Tag)\s*(\d*[AB]?)\]`)

// bareHeaderPatterns match whole-line headers like "VERSE 1", "CHORUS",
// "CHORUS 1A". The entire line must match; a lyric that merely contains the
// word "verse" is not a header.
var bareHeaderPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(validSections))
	for _, s := range validSections {
		m[s] = regexp.MustCompile(`^` + regexp.QuoteMeta(s) + `\s*(\d*[AB]?)$`)
	}
	return m
}()

// ParseSectionHeader classifies line as a section boundary. It returns the
// section type (upper case), the number/letter suffix, and whether the line
// is a header at all.
func ParseSectionHeader(line string) (sectionType, suffix string, ok bool) {
	line = strings.TrimSpace(line)

	if m := bracketHeaderPattern.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1]), strings.ToUpper(m[2]), true
	}

	upper := strings.ToUpper(line)
	for _, s := range validSections {
		if upper == s {
			return s, "", true
		}
		if m := bareHeaderPatterns[s].FindStringSubmatch(upper); m != nil {
			return s, m[1], true
		}
	}

	return "", "", false
}

// IsIgnoredSectionHeader reports whether line opens a section that carries
// no lyrics (instrumental, interlude, intro, outro, ending, turnaround).
// Brackets are stripped first; the word must be the whole line or followed
// by a space and more text ("INTERLUDE 2").
func IsIgnoredSectionHeader(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	upper = strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(upper))

	for _, ignored := range ignoredSections {
		if upper == ignored || strings.HasPrefix(upper, ignored+" ") {
			return true
		}
	}
	return false
}

// sectionAbbrev maps section types to their key abbreviation.
var sectionAbbrev = map[string]string{
	"VERSE":      "V",
	"CHORUS":     "C",
	"BRIDGE":     "B",
	"VAMP":       "Va",
	"PRE-CHORUS": "PC",
	"TAG":        "Tag",
}

// sectionName is the inverse of sectionAbbrev, keyed by upper-cased abbreviation.
var sectionName = map[string]string{
	"V":   "VERSE",
	"C":   "CHORUS",
	"B":   "BRIDGE",
	"VA":  "VAMP",
	"PC":  "PRE-CHORUS",
	"TAG": "TAG",
}

// NormalizeSectionKey builds the canonical section key for a type and
// suffix: VERSE+1 → "V1", CHORUS → "C", VAMP → "Va". Unknown types fall
// back to their first letter. Keys are normalized once, at creation, and
// never mutated afterward.
func NormalizeSectionKey(sectionType, suffix string) string {
	sectionType = strings.ToUpper(strings.TrimSpace(sectionType))
	suffix = strings.TrimSpace(suffix)

	abbrev, ok := sectionAbbrev[sectionType]
	if !ok && sectionType != "" {
		abbrev = sectionType[:1]
	}
	return abbrev + suffix
}

// displayKeyPattern splits a canonical key into abbreviation and suffix.
// Va must precede V in the alternation or "Va" would parse as VERSE + "a".
var displayKeyPattern = regexp.MustCompile(`(?i)^(Va|PC|Tag|V|C|B)(\d*[AB]?)$`)

// DisplayName converts a section key to its slide title: "V1" → "VERSE 1",
// "C" → "CHORUS", "Va" → "VAMP". Unrecognized keys are upper-cased as-is.
func DisplayName(key string) string {
	m := displayKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return strings.ToUpper(key)
	}

	name, ok := sectionName[strings.ToUpper(m[1])]
	if !ok {
		name = strings.ToUpper(m[1])
	}
	if m[2] != "" {
		return name + " " + strings.ToUpper(m[2])
	}
	return name
}
