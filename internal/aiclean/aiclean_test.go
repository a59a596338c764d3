// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aiclean

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyricaster/pkg/types"
)

func TestMain(m *testing.M) {
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

// mockBackend rewrites lyrics with a fixed function.
type mockBackend struct {
	fn    func(lyrics string) string
	calls int
}

func (b *mockBackend) Clean(_ context.Context, _, _, lyrics string) (string, error) {
	b.calls++
	return b.fn(lyrics), nil
}

// failNTimes fails the first n calls, then succeeds.
type failNTimes struct {
	n     int
	calls int
	out   string
}

func (b *failNTimes) Clean(context.Context, string, string, string) (string, error) {
	b.calls++
	if b.calls <= b.n {
		return "", errors.New("rate limited")
	}
	return b.out, nil
}

// alwaysFails never succeeds.
type alwaysFails struct{}

func (alwaysFails) Clean(context.Context, string, string, string) (string, error) {
	return "", errors.New("backend down")
}

func testSong() *types.Song {
	sections := types.NewSectionMap()
	sections.Add("V1", "Je suswalked on wa ter")
	sections.Add("C", "clean already")
	return &types.Song{ID: "test-song", Title: "Test Song", Sections: sections}
}

func TestCleanSong(t *testing.T) {
	song := testSong()
	backend := &mockBackend{fn: func(lyrics string) string {
		if strings.Contains(lyrics, "suswalked") {
			return "Jesus walked on water"
		}
		return lyrics
	}}

	var buf bytes.Buffer
	summary := CleanSong(context.Background(), backend, song, NewLimiter(0), 3, &buf)

	if summary.Cleaned != 1 || summary.Unchanged != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if got, _ := song.Sections.Get("V1"); got != "Jesus walked on water" {
		t.Errorf("V1 = %q", got)
	}
	if got, _ := song.Sections.Get("C"); got != "clean already" {
		t.Errorf("C = %q", got)
	}
	if !strings.Contains(buf.String(), "cleaned test-song VERSE 1") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCleanSongRetries(t *testing.T) {
	song := testSong()
	backend := &failNTimes{n: 2, out: "fixed"}

	summary := CleanSong(context.Background(), backend, song, NewLimiter(0), 3, &bytes.Buffer{})

	if summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if got, _ := song.Sections.Get("V1"); got != "fixed" {
		t.Errorf("V1 = %q after retries", got)
	}
}

func TestCleanSongKeepsOriginalOnFailure(t *testing.T) {
	song := testSong()

	var buf bytes.Buffer
	summary := CleanSong(context.Background(), alwaysFails{}, song, NewLimiter(0), 1, &buf)

	if summary.Failed != 2 || summary.Cleaned != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if got, _ := song.Sections.Get("V1"); got != "Je suswalked on wa ter" {
		t.Errorf("V1 = %q, want original kept", got)
	}
	if !strings.Contains(buf.String(), "keeping original") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCleanSongPreservesOrder(t *testing.T) {
	song := testSong()
	backend := &mockBackend{fn: func(lyrics string) string { return lyrics + "!" }}

	CleanSong(context.Background(), backend, song, NewLimiter(0), 3, &bytes.Buffer{})

	keys := song.Sections.Keys()
	if len(keys) != 2 || keys[0] != "V1" || keys[1] != "C" {
		t.Errorf("keys = %v, want order preserved", keys)
	}
}

func TestCleanAll(t *testing.T) {
	dir := t.TempDir()
	parsed := filepath.Join(dir, "parsed")
	if err := os.MkdirAll(parsed, 0o755); err != nil {
		t.Fatal(err)
	}
	for i, song := range []*types.Song{testSong(), testSong()} {
		song.ID = fmt.Sprintf("song-%d", i)
		data, err := yaml.Marshal(song)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(parsed, song.ID+".yaml"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	backend := &mockBackend{fn: func(string) string { return "rewritten" }}
	cfg := types.CleanupConfig{SongsDir: dir}

	var buf bytes.Buffer
	summary, err := CleanAll(context.Background(), backend, cfg, &buf)
	if err != nil {
		t.Fatalf("CleanAll: %v", err)
	}
	if summary.Cleaned != 4 {
		t.Fatalf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(parsed, "song-0.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var song types.Song
	if err := yaml.Unmarshal(data, &song); err != nil {
		t.Fatal(err)
	}
	if got, _ := song.Sections.Get("V1"); got != "rewritten" {
		t.Errorf("persisted V1 = %q", got)
	}
	if !strings.Contains(buf.String(), "Cleanup summary: 4 cleaned") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCleanFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	backend := &mockBackend{fn: func(s string) string { return s }}
	if _, err := CleanFile(context.Background(), backend, path, NewLimiter(0), 1, &bytes.Buffer{}); err == nil {
		t.Error("CleanFile accepted malformed YAML")
	}
}
