// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/lyricaster/pkg/types"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "parsed"), 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := NewStore(types.SongbookConfig{SongsDir: dir})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func makeSong(id, title string, order []string) *types.Song {
	sections := types.NewSectionMap()
	sections.Add("V1", "alleluia for the Lord God almighty reigns")
	sections.Add("C", "holy holy are You Lord God almighty")
	return &types.Song{ID: id, Title: title, PDFPath: id + ".pdf", Sections: sections, Order: order}
}

func writeSongFile(t *testing.T, dir string, song *types.Song) string {
	t.Helper()
	path := filepath.Join(dir, "parsed", song.ID+".yaml")
	if err := WriteSong(path, song); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestAndGet(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", []string{"V1", "C"}))
	writeSongFile(t, dir, makeSong("he-reigns", "He Reigns", nil))

	var buf bytes.Buffer
	summary, err := s.Ingest(ctx, &buf)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	song, err := s.Get(ctx, "agnus-dei")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if song.Title != "Agnus Dei" || song.PDFPath != "agnus-dei.pdf" {
		t.Errorf("song = %+v", song)
	}
	if want := []string{"V1", "C"}; !reflect.DeepEqual(song.Sections.Keys(), want) {
		t.Errorf("keys = %v, want %v", song.Sections.Keys(), want)
	}
	if !reflect.DeepEqual(song.Order, []string{"V1", "C"}) {
		t.Errorf("order = %v", song.Order)
	}
}

func TestIngestIncremental(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	path := writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", nil))

	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	// Unchanged file is skipped.
	summary, err := s.Ingest(ctx, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Fatalf("rerun summary = %+v", summary)
	}

	// Touched file is re-indexed.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	summary, err = s.Ingest(ctx, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Fatalf("touch summary = %+v", summary)
	}

	// Updating must not duplicate sections.
	song, err := s.Get(ctx, "agnus-dei")
	if err != nil {
		t.Fatal(err)
	}
	if song.Sections.Len() != 2 {
		t.Errorf("sections = %d after update", song.Sections.Len())
	}
}

func TestList(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeSongFile(t, dir, makeSong("b-song", "Zebra Song", nil))
	writeSongFile(t, dir, makeSong("a-song", "Apple Song", []string{"C"}))
	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len = %d", len(infos))
	}
	if infos[0].Title != "Apple Song" || infos[1].Title != "Zebra Song" {
		t.Errorf("titles = %q, %q, want sorted", infos[0].Title, infos[1].Title)
	}
	if !infos[0].HasOrder || infos[1].HasOrder {
		t.Errorf("HasOrder = %v, %v", infos[0].HasOrder, infos[1].HasOrder)
	}
	if infos[0].Sections != 2 {
		t.Errorf("Sections = %d", infos[0].Sections)
	}
}

func TestSearch(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", nil))
	other := &types.Song{ID: "other", Title: "Other", Sections: types.NewSectionMap()}
	other.Sections.Add("V1", "trading my sorrows")
	writeSongFile(t, dir, other)
	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, "sorrows", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].SongID != "other" || results[0].Key != "V1" {
		t.Errorf("result = %+v", results[0])
	}

	results, err = s.Search(ctx, "almighty", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("almighty results = %d, want both sections", len(results))
	}
}

func TestRemove(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", nil))
	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove(ctx, "agnus-dei"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, "agnus-dei"); err == nil {
		t.Error("Get succeeded after Remove")
	}
	if results, _ := s.Search(ctx, "almighty", 0); len(results) != 0 {
		t.Errorf("sections survived removal: %+v", results)
	}
	if err := s.Remove(ctx, "missing"); err == nil {
		t.Error("Remove accepted an unknown song")
	}
}

func TestUpdateOrder(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	path := writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", nil))
	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	order := []string{"C", "V1", "C"}
	if err := s.UpdateOrder(ctx, "agnus-dei", order); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	song, err := s.Get(ctx, "agnus-dei")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(song.Order, order) {
		t.Errorf("stored order = %v", song.Order)
	}

	// The YAML file carries the new order too.
	onDisk, err := ReadSong(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(onDisk.Order, order) {
		t.Errorf("file order = %v", onDisk.Order)
	}

	// A fresh ingest does not undo the update.
	summary, err := s.Ingest(ctx, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 {
		t.Errorf("post-update summary = %+v", summary)
	}
}

func TestExportYAML(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeSongFile(t, dir, makeSong("agnus-dei", "Agnus Dei", nil))
	if _, err := s.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "export.yaml")
	if err := s.ExportYAML(ctx, path); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Agnus Dei")) {
		t.Errorf("export missing song: %s", data)
	}
}
