// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/lyricaster/pkg/types"
)

func TestRenderDeck(t *testing.T) {
	deck := []types.Slide{
		{Title: "Trading My Sorrows"},
		{Title: "VERSE 1", Body: "I'm trading my sorrows\nI'm trading my shame", Footer: "Trading My Sorrows"},
	}
	var buf bytes.Buffer
	RenderDeck(&buf, deck)

	want := "--- slide 1 of 2 ---\n" +
		"TRADING MY SORROWS\n" +
		"\n" +
		"--- slide 2 of 2 ---\n" +
		"VERSE 1\n" +
		"I'm trading my sorrows\nI'm trading my shame\n" +
		"(Trading My Sorrows)\n"
	if buf.String() != want {
		t.Errorf("RenderDeck output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWritePreview(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	deck := []types.Slide{{Title: "Amazing Grace"}}

	path, err := WritePreview(dir, "Sunday Service 2026-08-30", deck)
	if err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	if filepath.Base(path) != "sunday-service-2026-08-30.txt" {
		t.Errorf("preview file = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	if !strings.Contains(string(data), "AMAZING GRACE") {
		t.Errorf("preview content = %q", data)
	}
}
