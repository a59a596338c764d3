// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package order

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Setlist is the on-disk plan for one service: which songs go into the deck,
// in what sequence, and any per-song overrides. Songs are referenced by
// title; titles are resolved against the songbook with the same fuzzy
// matching the bulk order format uses.
type Setlist struct {
	// Name labels the deck; it becomes the presentation title.
	Name string `yaml:"name"`

	Songs []SetlistSong `yaml:"songs"`
}

// SetlistSong is one entry in a setlist.
type SetlistSong struct {
	Title string `yaml:"title"`

	// Order overrides the song's stored performance order. Entries may use
	// either key form ("V1 C V2") or spelled-out names ("Verse 1").
	Order []string `yaml:"order,omitempty"`

	// MaxLines overrides the deck-level lines-per-slide limit for this song.
	MaxLines int `yaml:"max_lines,omitempty"`
}

// ReadSetlist loads a setlist from a YAML file. As a convenience the plain
// text order format is accepted too: a file that fails YAML parsing, or
// parses to no songs, is retried line by line, so an existing order file can
// be handed straight to the slides stage.
func ReadSetlist(path string) (*Setlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading setlist: %w", err)
	}

	var sl Setlist
	if err := yaml.Unmarshal(data, &sl); err == nil && len(sl.Songs) > 0 {
		for i := range sl.Songs {
			sl.Songs[i].Order = NormalizeTokens(sl.Songs[i].Order)
		}
		return &sl, nil
	}

	return setlistFromText(string(data)), nil
}

// setlistFromText builds a setlist from the plain order format, one song
// per line.
func setlistFromText(content string) *Setlist {
	sl := &Setlist{}
	for _, line := range strings.Split(content, "\n") {
		title, tokens, ok := ParseLine(line)
		if !ok {
			continue
		}
		sl.Songs = append(sl.Songs, SetlistSong{Title: title, Order: tokens})
	}
	return sl
}

// NormalizeTokens trims and canonicalizes a list of order tokens, so
// spelled-out forms like "Verse 1" become "V1".
func NormalizeTokens(tokens []string) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, normalizeToken(t))
		}
	}
	return out
}

// WriteSetlist saves a setlist to a YAML file.
func WriteSetlist(path string, sl *Setlist) error {
	data, err := yaml.Marshal(sl)
	if err != nil {
		return fmt.Errorf("marshaling setlist: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
