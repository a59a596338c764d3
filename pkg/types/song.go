// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lyricaster pipeline.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import "fmt"

// SectionEntry is one named lyrical section and its text. Lyrics hold the
// kept lines joined with newlines.
type SectionEntry struct {
	// Key is the canonical section key (e.g. "V1", "C", "C1A", "Va").
	Key string `json:"key" yaml:"key"`

	// Lyrics is the section text, one kept line per newline.
	Lyrics string `json:"lyrics" yaml:"lyrics"`
}

// SectionMap is an insertion-ordered association from section key to lyrics.
// Keys follow first-seen-wins semantics: Add records a key only the first
// time it is seen; later inserts under the same key are discarded. Insertion
// order reflects the order sections first appeared in the source document.
type SectionMap struct {
	entries []SectionEntry
	index   map[string]int
}

// NewSectionMap returns an empty SectionMap.
func NewSectionMap() *SectionMap {
	return &SectionMap{index: make(map[string]int)}
}

// Add records lyrics under key if the key has not been seen before.
// It reports whether the entry was inserted.
func (m *SectionMap) Add(key, lyrics string) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, ok := m.index[key]; ok {
		return false
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, SectionEntry{Key: key, Lyrics: lyrics})
	return true
}

// Replace overwrites the lyrics for an existing key, preserving its position.
// It reports whether the key was present. Used by the AI cleanup stage, which
// rewrites text values in place without touching key identity or order.
func (m *SectionMap) Replace(key, lyrics string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.entries[i].Lyrics = lyrics
	return true
}

// Get returns the lyrics for key and whether the key is present.
func (m *SectionMap) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.entries[i].Lyrics, true
}

// Keys returns the section keys in insertion order.
func (m *SectionMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *SectionMap) Entries() []SectionEntry {
	out := make([]SectionEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of sections.
func (m *SectionMap) Len() int {
	return len(m.entries)
}

// MarshalYAML serializes the map as an ordered list of entries, so the
// on-disk form preserves insertion order without relying on map ordering.
func (m *SectionMap) MarshalYAML() (any, error) {
	return m.entries, nil
}

// UnmarshalYAML restores the map from the ordered entry list, re-applying
// first-seen-wins on duplicate keys.
func (m *SectionMap) UnmarshalYAML(unmarshal func(any) error) error {
	var entries []SectionEntry
	if err := unmarshal(&entries); err != nil {
		return err
	}
	m.entries = nil
	m.index = make(map[string]int)
	for _, e := range entries {
		m.Add(e.Key, e.Lyrics)
	}
	return nil
}

// Song holds everything known about one parsed lyric sheet.
type Song struct {
	// ID is a slug derived from the song title (e.g. "trading-my-sorrows").
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable song title, taken from the PDF filename.
	Title string `json:"title" yaml:"title"`

	// PDFPath is the local filesystem path to the source PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Sections maps canonical section keys to lyrics, in the order the
	// sections first appeared across the document's pages and columns.
	Sections *SectionMap `json:"sections" yaml:"sections"`

	// Order is the performance order as section-key search tokens
	// (e.g. ["C", "Va", "C", "Va", "V"]). Tokens may be under-specified;
	// they are resolved against Sections at render time. An empty order
	// means "use the order sections appear in the sheet".
	Order []string `json:"order" yaml:"order"`

	// MaxLines overrides the lines-per-slide limit for this song.
	// Zero means use the deck-level setting.
	MaxLines int `json:"max_lines,omitempty" yaml:"max_lines,omitempty"`
}

// Validate checks the invariants a parsed song must satisfy before it is
// stored or rendered.
func (s *Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("song has no id")
	}
	if s.Title == "" {
		return fmt.Errorf("song %s has no title", s.ID)
	}
	if s.Sections == nil || s.Sections.Len() == 0 {
		return fmt.Errorf("song %s has no sections", s.ID)
	}
	return nil
}
