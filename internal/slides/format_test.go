// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"reflect"
	"strings"
	"testing"
)

func TestCapitalizeReverentWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"he is lord of all, god's plan", "He is Lord of all, God's plan"},
		{"thou art my king", "Thou art my King"},
		{"HE reigns", "He reigns"},
		{"the son of god", "the Son of God"},
		{"hello heart", "hello heart"},
		{"his story, history", "His story, history"},
	}
	for _, tt := range tests {
		if got := CapitalizeReverentWords(tt.in); got != tt.want {
			t.Errorf("CapitalizeReverentWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitSlides(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLines int
		want     []string
	}{
		{
			name:     "fits one slide",
			text:     "one\ntwo\nthree",
			maxLines: 4,
			want:     []string{"one\ntwo\nthree"},
		},
		{
			name:     "hard limit",
			text:     strings.Join([]string{"1", "2", "3", "4", "5"}, "\n"),
			maxLines: 4,
			want:     []string{"1\n2\n3\n4", "5"},
		},
		{
			name:     "nine lines split four four one",
			text:     strings.Join([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "\n"),
			maxLines: 4,
			want:     []string{"1\n2\n3\n4", "5\n6\n7\n8", "9"},
		},
		{
			name:     "stanza break after half",
			text:     "one\ntwo\n\nthree\nfour",
			maxLines: 4,
			want:     []string{"one\ntwo", "three\nfour"},
		},
		{
			name:     "stanza break before half ignored",
			text:     "one\n\ntwo\nthree\nfour",
			maxLines: 4,
			want:     []string{"one\ntwo\nthree\nfour"},
		},
		{
			name:     "empty",
			text:     "  \n ",
			maxLines: 4,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSlides(tt.text, tt.maxLines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSlides = %v, want %v", got, tt.want)
			}
		})
	}
}
