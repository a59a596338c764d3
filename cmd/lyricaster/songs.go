// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lyricaster/internal/songpdf"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Manage the songbook (list, show, search, remove, ingest, export)",
	Long: `Songs manages the songbook: a SQLite index over the parsed song
files with full-text search across lyrics. The parsed YAML files under
songs/parsed/ stay the source of truth; ingest refreshes the index from
them and skips unchanged files.`,
}

var songsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all songs in the songbook",
	RunE:  runSongsList,
}

var songsShowCmd = &cobra.Command{
	Use:   "show [song-id]",
	Short: "Show a song's sections and lyrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runSongsShow,
}

var songsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search across song lyrics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSongsSearch,
}

var songsRemoveCmd = &cobra.Command{
	Use:   "remove [song-ids...]",
	Short: "Remove songs from the songbook",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSongsRemove,
}

var songsIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Refresh the songbook index from songs/parsed/",
	RunE:  runSongsIngest,
}

var songsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole songbook to a YAML file",
	RunE:  runSongsExport,
}

func init() {
	subcommands := []*cobra.Command{
		songsListCmd, songsShowCmd, songsSearchCmd,
		songsRemoveCmd, songsIngestCmd, songsExportCmd,
	}
	for _, c := range subcommands {
		c.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
		songsCmd.AddCommand(c)
	}
	songsSearchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")
	songsExportCmd.Flags().String("out", "", "output path (default songs-dir/index/songbook.yaml)")

	rootCmd.AddCommand(songsCmd)
}

func runSongsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		fmt.Println("Songbook is empty. Run 'lyricaster parse' first.")
		return nil
	}

	fmt.Printf("%-30s  %-40s  %8s  %s\n", "ID", "Title", "Sections", "Order")
	fmt.Println(strings.Repeat("-", 90))
	for _, s := range songs {
		hasOrder := ""
		if s.HasOrder {
			hasOrder = "yes"
		}
		fmt.Printf("%-30s  %-40s  %8d  %s\n", s.ID, s.Title, s.Sections, hasOrder)
	}
	fmt.Printf("\n%d songs\n", len(songs))
	return nil
}

func runSongsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	song, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", song.Title, song.ID)
	if len(song.Order) > 0 {
		fmt.Printf("order: %s\n", strings.Join(song.Order, " "))
	}
	for _, entry := range song.Sections.Entries() {
		fmt.Printf("\n[%s]\n%s\n", songpdf.DisplayName(entry.Key), entry.Lyrics)
	}
	return nil
}

func runSongsSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	results, err := store.Search(context.Background(), strings.Join(args, " "), maxResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		snippet := strings.ReplaceAll(r.Lyrics, "\n", " / ")
		if len(snippet) > 70 {
			snippet = snippet[:67] + "..."
		}
		fmt.Printf("%2d. %s [%s] %s\n", i+1, r.SongTitle, songpdf.DisplayName(r.Key), snippet)
	}
	fmt.Printf("\n%d results\n", len(results))
	return nil
}

func runSongsRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	for _, id := range args {
		if err := store.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Printf("removed: %s\n", id)
	}
	return nil
}

func runSongsIngest(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d song(s) failed indexing", summary.Failed)
	}
	return nil
}

func runSongsExport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		songsDir := stringSetting(cmd, "songs-dir", "songbook.songs_dir")
		out = filepath.Join(songsDir, "index", "songbook.yaml")
	}
	if err := store.ExportYAML(context.Background(), out); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", out)
	return nil
}
