// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanLineSkips(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		line string
	}{
		{"blank", "   "},
		{"chord line", "Am  G  C  F"},
		{"piped chords", "| Am | G | x2"},
		{"footer ccli", "CCLI Song # 2574653"},
		{"footer copyright", "© 1998 Integrity's Hosanna! Music"},
		{"footer url", "www.songselect.com"},
		{"metadata key", "Key - G"},
		{"metadata tempo", "Tempo - 120"},
		{"filler", "Lai, lai, lai-lai-lai"},
		{"section header", "VERSE 1"},
		{"ignored header", "INTERLUDE"},
		{"navigation", "(To Chorus)"},
		{"navigation bare", "To Turnaround"},
		{"single char after cleaning", "G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := rules.CleanLine(tt.line); ok {
				t.Errorf("CleanLine(%q) = (%q, true), want skip", tt.line, got)
			}
		})
	}
}

func TestCleanLineRepairs(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain lyric", "Trading my sorrows", "Trading my sorrows"},
		{"embedded chords dropped", "I'm trading Am my sorrows G", "I'm trading my sorrows"},
		{"bass fragment dropped", "walked on /E water", "walked on water"},
		{"hyphen split joined", "sor - rows", "sorrows"},
		{"amen line", "- men", "Amen"},
		{"amen word", "sing A-men again", "sing Amen again"},
		{"possessive space", "joy'sgonna be my strength", "joy's gonna be my strength"},
		{"comma space upper", "everlasting,You reign", "everlasting, You reign"},
		{"comma space lower", "holy,holy", "holy, holy"},
		{"camel split", "gloryAt the sound", "glory At the sound"},
		{"merged prefix", "Jesuswalked on water", "Jesus walked on water"},
		{"merged prefix case", "thy kingdomcome", "thy kingdom come"},
		{"split word rejoined", "walked on wa ter", "walked on water"},
		{"split then resplit", "Je suswalked on wa ter", "Jesus walked on water"},
		{"ligature rst", "the rst and the last", "the first and the last"},
		{"ligature lled", "my cup is lled", "my cup is filled"},
		{"ligature nd", "seek and you will nd", "seek and you will find"},
		{"spaces collapsed", "my   heart    sings", "my heart sings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rules.CleanLine(tt.line)
			if !ok {
				t.Fatalf("CleanLine(%q) skipped, want %q", tt.line, tt.want)
			}
			if got != tt.want {
				t.Errorf("CleanLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestCleanLineStable(t *testing.T) {
	// Cleaning an already-clean line must not change it.
	rules := DefaultRules()
	lines := []string{
		"Jesus walked on water",
		"joy's gonna be my strength",
		"Yes Lord, yes Lord, yes yes Lord",
	}
	for _, line := range lines {
		got, ok := rules.CleanLine(line)
		if !ok || got != line {
			t.Errorf("CleanLine(%q) = (%q, %v), want unchanged", line, got, ok)
		}
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
merged_word_prefixes:
  - blessed
ligature_fixes:
  - pattern: '\bxyz\b'
    replacement: fixed
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	// Overridden tables.
	if got, _ := rules.CleanLine("blessedassurance all day"); got != "blessed assurance all day" {
		t.Errorf("override prefix: got %q", got)
	}
	if got, _ := rules.CleanLine("it is xyz now"); got != "it is fixed now" {
		t.Errorf("override ligature: got %q", got)
	}
	if got, _ := rules.CleanLine("Jesuswalked on water"); got != "Jesuswalked on water" {
		t.Errorf("default prefix should be replaced by override: got %q", got)
	}

	// Footer markers keep their defaults when absent from the file.
	if _, ok := rules.CleanLine("CCLI Song # 2574653"); ok {
		t.Error("default footer markers not retained")
	}
}

func TestLoadRulesBadPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
ligature_fixes:
  - pattern: '[unclosed'
    replacement: x
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("LoadRules accepted an invalid pattern")
	}
}
