// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"strings"

	"github.com/pdiddy/lyricaster/pkg/types"
)

// assembler accumulates cleaned lyric lines into named sections as it walks
// a column of text top to bottom.
type assembler struct {
	rules    *Rules
	sections *types.SectionMap

	key      string   // normalized key of the open section, "" when none
	lines    []string // cleaned lines gathered so far
	ignoring bool     // inside an ignored section (Intro, Interlude, ...)
}

func newAssembler(rules *Rules, sections *types.SectionMap) *assembler {
	return &assembler{rules: rules, sections: sections}
}

// feed consumes one raw line. Section headers open a new section, ignored
// headers switch to discard mode, everything else is cleaned and appended to
// the open section. Lines that precede the first header are dropped: on a
// lyric sheet those are titles, keys and attribution, never lyrics.
func (a *assembler) feed(line string) {
	trimmed := strings.TrimSpace(line)

	if IsIgnoredSectionHeader(trimmed) {
		a.flush()
		a.ignoring = true
		return
	}
	if sectionType, suffix, ok := ParseSectionHeader(trimmed); ok {
		a.flush()
		a.key = NormalizeSectionKey(sectionType, suffix)
		a.ignoring = false
		return
	}
	if a.ignoring || a.key == "" {
		return
	}
	if cleaned, ok := a.rules.CleanLine(trimmed); ok {
		a.lines = append(a.lines, cleaned)
	}
}

// flush finalizes the open section. Empty sections are not recorded, and a
// key already present keeps its first-seen lyrics.
func (a *assembler) flush() {
	if a.key != "" {
		lyrics := strings.TrimSpace(strings.Join(a.lines, "\n"))
		if lyrics != "" {
			a.sections.Add(a.key, lyrics)
		}
	}
	a.key = ""
	a.lines = nil
}

// AssembleSections walks one column of raw lines and merges any sections it
// finds into sections. Duplicate section keys keep their first occurrence,
// which lets callers feed columns and pages in reading order and have
// repeated choruses collapse naturally.
func AssembleSections(lines []string, rules *Rules, sections *types.SectionMap) {
	a := newAssembler(rules, sections)
	for _, line := range lines {
		a.feed(line)
	}
	a.flush()
}
