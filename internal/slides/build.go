// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"fmt"
	"strings"

	"github.com/pdiddy/lyricaster/internal/songpdf"
	"github.com/pdiddy/lyricaster/pkg/types"
)

// DefaultMaxLines is the lines-per-slide limit when neither the deck nor
// the song overrides it.
const DefaultMaxLines = 4

// baseType reduces a section key to its type for loose matching: "V2" → "V",
// "C1A" → "C". "Va" is its own type, not VERSE + suffix.
func baseType(key string) string {
	upper := strings.ToUpper(key)
	if strings.HasPrefix(upper, "VA") {
		return "VA"
	}
	return strings.TrimRight(upper, "0123456789AB")
}

// Resolve finds the section a performance-order token refers to. Exact key
// match (case-insensitive) wins; otherwise any section of the same base
// type serves, earliest in sheet order first, so an order saying "C" plays
// the only chorus even when the sheet labels it "C1". ok is false when no
// section of the type exists.
func Resolve(token string, sections *types.SectionMap) (key, lyrics string, ok bool) {
	want := strings.ToUpper(strings.TrimSpace(token))

	var candidates []string
	for _, entry := range sections.Entries() {
		if strings.ToUpper(entry.Key) == want {
			return entry.Key, entry.Lyrics, true
		}
		if baseType(entry.Key) == baseType(want) {
			candidates = append(candidates, entry.Key)
		}
	}
	if len(candidates) == 0 {
		return "", "", false
	}
	lyrics, _ = sections.Get(candidates[0])
	return candidates[0], lyrics, true
}

// BuildSong renders one song into slides: a title-only slide, then each
// section of the performance order split into lyric slides. An order token
// with no matching section produces a visible placeholder slide rather than
// silently vanishing from the deck. When songFooter is set, lyric slides
// carry the song title as a footer.
func BuildSong(song *types.Song, maxLines int, songFooter bool) []types.Slide {
	if song.MaxLines > 0 {
		maxLines = song.MaxLines
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	order := song.Order
	if len(order) == 0 {
		order = song.Sections.Keys()
	}

	footer := ""
	if songFooter {
		footer = song.Title
	}

	out := []types.Slide{{Title: strings.ToUpper(song.Title)}}
	for _, token := range order {
		key, lyrics, ok := Resolve(token, song.Sections)
		if !ok {
			out = append(out, types.Slide{
				Title:  songpdf.DisplayName(token),
				Body:   fmt.Sprintf("[Section '%s' not found]", token),
				Footer: footer,
			})
			continue
		}
		title := songpdf.DisplayName(key)
		for _, body := range SplitSlides(CapitalizeReverentWords(lyrics), maxLines) {
			out = append(out, types.Slide{Title: title, Body: body, Footer: footer})
		}
	}
	return out
}

// BuildDeck renders a run of songs into one flat slide sequence.
func BuildDeck(songs []*types.Song, maxLines int, songFooter bool) []types.Slide {
	var out []types.Slide
	for _, s := range songs {
		out = append(out, BuildSong(s, maxLines, songFooter)...)
	}
	return out
}
