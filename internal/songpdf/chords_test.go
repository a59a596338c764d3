// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songpdf

import "testing"

func TestIsChord(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"A", true},
		{"F#", true},
		{"Bb", true},
		{"Am", true},
		{"Cmaj7", true},
		{"Dsus4", true},
		{"Gadd9", true},
		{"F#m7", true},
		{"C(9)", true},
		{"D/F#", true},
		{"Bb/D", true},
		{"H", false},
		{"Amen", false},
		{"Go", false},
		{"", false},
		{"A-men", false},
		{"Grace", false},
	}
	for _, tt := range tests {
		if got := IsChord(tt.token); got != tt.want {
			t.Errorf("IsChord(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestIsChordLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"plain chords", "Am  G  C  F", true},
		{"single chord", "Em", true},
		{"piped chords", "| Am | G | C |", true},
		{"piped with repeat", "| Am G | C F | x2", true},
		{"slash chords", "D/F#  G/B", true},
		{"lyrics", "Trading my sorrows", false},
		{"mixed", "Am I ever going home", false},
		{"empty", "", false},
		{"piped lyrics", "| what a friend |", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChordLine(tt.line); got != tt.want {
				t.Errorf("IsChordLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsMetadataLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Key - G", true},
		{"Tempo - 120", true},
		{"key – Eb", true},
		{"Keyboard solo", false},
		{"The key to my heart", false},
	}
	for _, tt := range tests {
		if got := IsMetadataLine(tt.line); got != tt.want {
			t.Errorf("IsMetadataLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsNavigationLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"(To Chorus)", true},
		{"(To Bridge on repeat)", true},
		{"(2.)", true},
		{"To Turnaround", true},
		{"To Vamp", true},
		{"Grace Praise Music", true},
		{"Praise Charts", true},
		{"To God be the glory", false},
		{"Praise Him all creatures", false},
	}
	for _, tt := range tests {
		if got := IsNavigationLine(tt.line); got != tt.want {
			t.Errorf("IsNavigationLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
