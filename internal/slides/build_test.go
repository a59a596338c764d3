// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"reflect"
	"testing"

	"github.com/pdiddy/lyricaster/pkg/types"
)

func sectionMap(pairs ...string) *types.SectionMap {
	m := types.NewSectionMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

func TestResolve(t *testing.T) {
	sections := sectionMap(
		"V1", "verse one",
		"C1A", "the chorus",
		"Va", "the vamp",
		"B", "the bridge",
	)

	tests := []struct {
		token      string
		wantKey    string
		wantLyrics string
		wantOK     bool
	}{
		{"V1", "V1", "verse one", true},
		{"v1", "V1", "verse one", true},
		{"C", "C1A", "the chorus", true},
		{"C1A", "C1A", "the chorus", true},
		{"V", "V1", "verse one", true},
		{"V2", "V1", "verse one", true},
		{"Va", "Va", "the vamp", true},
		{"B", "B", "the bridge", true},
		{"PC", "", "", false},
	}
	for _, tt := range tests {
		key, lyrics, ok := Resolve(tt.token, sections)
		if key != tt.wantKey || lyrics != tt.wantLyrics || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.token, key, lyrics, ok, tt.wantKey, tt.wantLyrics, tt.wantOK)
		}
	}
}

func TestBuildSong(t *testing.T) {
	song := &types.Song{
		ID:    "agnus-dei",
		Title: "Agnus Dei",
		Sections: sectionMap(
			"V1", "alleluia\nfor the lord god almighty reigns",
			"C", "holy\nholy are you lord god almighty",
		),
		Order: []string{"V1", "C", "V1"},
	}

	got := BuildSong(song, 4, false)

	want := []types.Slide{
		{Title: "AGNUS DEI"},
		{Title: "VERSE 1", Body: "alleluia\nfor the Lord God almighty reigns"},
		{Title: "CHORUS", Body: "holy\nholy are you Lord God almighty"},
		{Title: "VERSE 1", Body: "alleluia\nfor the Lord God almighty reigns"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSong = %v, want %v", got, want)
	}
}

func TestBuildSongPlaceholder(t *testing.T) {
	song := &types.Song{
		ID:       "x",
		Title:    "X",
		Sections: sectionMap("V1", "line"),
		Order:    []string{"B", "V1"},
	}

	got := BuildSong(song, 4, false)
	if len(got) != 3 {
		t.Fatalf("len = %d: %v", len(got), got)
	}
	if got[1].Title != "BRIDGE" || got[1].Body != "[Section 'B' not found]" {
		t.Errorf("placeholder = %+v", got[1])
	}
}

func TestBuildSongDefaultsToSheetOrder(t *testing.T) {
	song := &types.Song{
		ID:       "x",
		Title:    "X",
		Sections: sectionMap("C", "chorus line", "V1", "verse line"),
	}

	got := BuildSong(song, 4, false)
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	want := []string{"X", "CHORUS", "VERSE 1"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestBuildSongFooterAndMaxLines(t *testing.T) {
	song := &types.Song{
		ID:       "x",
		Title:    "Agnus Dei",
		Sections: sectionMap("V1", "1\n2\n3"),
		Order:    []string{"V1"},
		MaxLines: 2,
	}

	got := BuildSong(song, 4, true)

	if got[0].Footer != "" || !got[0].IsTitleOnly() {
		t.Errorf("title slide = %+v", got[0])
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want song MaxLines to override deck limit", len(got))
	}
	for _, s := range got[1:] {
		if s.Footer != "Agnus Dei" {
			t.Errorf("footer = %q", s.Footer)
		}
	}
}

func TestBuildDeck(t *testing.T) {
	songs := []*types.Song{
		{ID: "a", Title: "A", Sections: sectionMap("V1", "one"), Order: []string{"V1"}},
		{ID: "b", Title: "B", Sections: sectionMap("C", "two"), Order: []string{"C"}},
	}

	got := BuildDeck(songs, 4, false)
	if len(got) != 4 {
		t.Fatalf("len = %d: %v", len(got), got)
	}
	if got[0].Title != "A" || got[2].Title != "B" {
		t.Errorf("deck titles = %q, %q", got[0].Title, got[2].Title)
	}
}
