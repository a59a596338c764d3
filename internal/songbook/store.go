// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songbook persists parsed songs in a SQLite database with a
// full-text index over lyrics. The parsed YAML files stay the source of
// truth; the database is a derived index and can be rebuilt from them at
// any time. See docs/ARCHITECTURE.md § Songbook.
package songbook

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyricaster/pkg/types"
)

const (
	// parsedDir is the subdirectory under the songs base for parsed YAML.
	parsedDir = "parsed"
	// indexDir is the subdirectory under the songs base for the database.
	indexDir = "index"
	dbFile   = "songbook.db"
)

// Store manages the songbook SQLite database.
type Store struct {
	db         *sql.DB
	songsDir   string
	maxResults int
}

// NewStore opens or creates the songbook database at
// songsDir/index/songbook.db, creating the schema if needed.
func NewStore(cfg types.SongbookConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.SongsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, songsDir: cfg.SongsDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			pdf_path TEXT,
			song_order TEXT,
			max_lines INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			position INTEGER NOT NULL,
			lyrics TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_song_id ON sections(song_id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			song_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sections_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE sections_fts USING fts5(lyrics, content=sections, content_rowid=rowid)`,
			`CREATE TRIGGER sections_ai AFTER INSERT ON sections BEGIN
				INSERT INTO sections_fts(rowid, lyrics) VALUES (new.rowid, new.lyrics);
			END`,
			`CREATE TRIGGER sections_ad AFTER DELETE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, lyrics) VALUES('delete', old.rowid, old.lyrics);
			END`,
			`CREATE TRIGGER sections_au AFTER UPDATE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, lyrics) VALUES('delete', old.rowid, old.lyrics);
				INSERT INTO sections_fts(rowid, lyrics) VALUES (new.rowid, new.lyrics);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a songbook indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of song files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads parsed song YAML files from songsDir and populates the
// database, re-indexing only files whose modification time changed since
// the last run.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	srcDir := filepath.Join(s.songsDir, parsedDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading parsed directory %s: %w", srcDir, err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		songID := strings.TrimSuffix(entry.Name(), ".yaml")
		path := filepath.Join(srcDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", songID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE song_id = ?`, songID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", songID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		song, err := ReadSong(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", songID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestSong(ctx, song, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", songID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d sections)\n", songID, song.Sections.Len())
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d sections)\n", songID, song.Sections.Len())
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) ingestSong(ctx context.Context, song *types.Song, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE song_id = ?`, song.ID); err != nil {
			return fmt.Errorf("deleting old sections: %w", err)
		}
	}

	orderJSON, _ := json.Marshal(song.Order)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO songs (id, title, pdf_path, song_order, max_lines)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, pdf_path=excluded.pdf_path,
			song_order=excluded.song_order, max_lines=excluded.max_lines`,
		song.ID, song.Title, song.PDFPath, string(orderJSON), song.MaxLines,
	)
	if err != nil {
		return fmt.Errorf("upserting song: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (song_id, key, position, lyrics) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range song.Sections.Entries() {
		if _, err := stmt.ExecContext(ctx, song.ID, entry.Key, i, entry.Lyrics); err != nil {
			return fmt.Errorf("inserting section %s: %w", entry.Key, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (song_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(song_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		song.ID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// SongInfo is the listing row for one stored song.
type SongInfo struct {
	ID       string
	Title    string
	Sections int
	HasOrder bool
}

// List returns all stored songs ordered by title.
func (s *Store) List(ctx context.Context) ([]SongInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.title, s.song_order,
			(SELECT count(*) FROM sections WHERE song_id = s.id)
		 FROM songs s ORDER BY s.title`)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer rows.Close()

	var infos []SongInfo
	for rows.Next() {
		var info SongInfo
		var orderJSON sql.NullString
		if err := rows.Scan(&info.ID, &info.Title, &orderJSON, &info.Sections); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if orderJSON.Valid {
			var order []string
			json.Unmarshal([]byte(orderJSON.String), &order)
			info.HasOrder = len(order) > 0
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Get reconstructs one stored song, sections in sheet order.
func (s *Store) Get(ctx context.Context, songID string) (*types.Song, error) {
	song := &types.Song{ID: songID, Sections: types.NewSectionMap()}

	var orderJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT title, pdf_path, song_order, max_lines FROM songs WHERE id = ?`, songID,
	).Scan(&song.Title, &song.PDFPath, &orderJSON, &song.MaxLines)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song %s not found", songID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading song %s: %w", songID, err)
	}
	if orderJSON.Valid {
		json.Unmarshal([]byte(orderJSON.String), &song.Order)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, lyrics FROM sections WHERE song_id = ? ORDER BY position`, songID)
	if err != nil {
		return nil, fmt.Errorf("loading sections for %s: %w", songID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, lyrics string
		if err := rows.Scan(&key, &lyrics); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		song.Sections.Add(key, lyrics)
	}
	return song, rows.Err()
}

// Remove deletes a song and its sections from the index. The parsed YAML
// file is left alone.
func (s *Store) Remove(ctx context.Context, songID string) error {
	// Explicit section delete so the FTS sync triggers fire.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE song_id = ?`, songID); err != nil {
		return fmt.Errorf("removing sections for %s: %w", songID, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, songID)
	if err != nil {
		return fmt.Errorf("removing song %s: %w", songID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("song %s not found", songID)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM indexing_status WHERE song_id = ?`, songID)
	if err != nil {
		return fmt.Errorf("clearing indexing status for %s: %w", songID, err)
	}
	return nil
}

// UpdateOrder stores a new performance order for a song, in both the
// database and the parsed YAML file so the next Ingest does not undo it.
func (s *Store) UpdateOrder(ctx context.Context, songID string, order []string) error {
	orderJSON, _ := json.Marshal(order)
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET song_order = ? WHERE id = ?`, string(orderJSON), songID)
	if err != nil {
		return fmt.Errorf("updating order for %s: %w", songID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("song %s not found", songID)
	}

	path := filepath.Join(s.songsDir, parsedDir, songID+".yaml")
	song, err := ReadSong(path)
	if err != nil {
		return fmt.Errorf("updating order in %s: %w", path, err)
	}
	song.Order = order
	if err := WriteSong(path, song); err != nil {
		return err
	}

	// Record the rewritten file's mod time so Ingest keeps skipping it.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO indexing_status (song_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(song_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		songID, info.ModTime().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}
	return nil
}

// SearchResult is one lyrics match.
type SearchResult struct {
	SongID    string
	SongTitle string
	Key       string
	Lyrics    string
}

// Search runs an FTS5 query over all section lyrics, ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sec.song_id, songs.title, sec.key, sec.lyrics
		 FROM sections_fts
		 JOIN sections sec ON sec.rowid = sections_fts.rowid
		 JOIN songs ON songs.id = sec.song_id
		 WHERE sections_fts MATCH ?
		 ORDER BY sections_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching songbook: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.SongID, &r.SongTitle, &r.Key, &r.Lyrics); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ExportYAML writes every stored song to one YAML file at path, ordered by
// title, for sharing or backup.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	infos, err := s.List(ctx)
	if err != nil {
		return err
	}

	var songs []*types.Song
	for _, info := range infos {
		song, err := s.Get(ctx, info.ID)
		if err != nil {
			return err
		}
		songs = append(songs, song)
	}

	data, err := yaml.Marshal(map[string]any{"songs": songs})
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
