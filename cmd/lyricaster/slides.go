// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lyricaster/internal/gslides"
	"github.com/pdiddy/lyricaster/internal/order"
	"github.com/pdiddy/lyricaster/internal/slides"
	"github.com/pdiddy/lyricaster/internal/songbook"
	"github.com/pdiddy/lyricaster/pkg/types"
)

var slidesCmd = &cobra.Command{
	Use:   "slides [song-ids...]",
	Short: "Build a slide deck from songbook songs",
	Long: `Slides assembles a deck from songbook songs: a title slide per song
followed by its lyric sections in performance order, split across slides.
A plain-text preview is always written under output/ for proofreading.

Use --setlist to drive the deck from a setlist file instead of naming
song IDs; setlist entries may override a song's order and lines-per-slide.
With --push the deck is also created as a Google Slides presentation and
its URL printed. Push needs a Google service-account JSON path in
.secrets/google-credentials or the slides.credentials_file config key.`,
	RunE: runSlides,
}

func init() {
	slidesCmd.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
	slidesCmd.Flags().String("setlist", "", "setlist file (YAML or plain text) naming the songs")
	slidesCmd.Flags().String("title", "", "presentation title (default \"Lyricaster - <date>\")")
	slidesCmd.Flags().Int("max-lines", 0, "maximum lyric lines per slide (default 4)")
	slidesCmd.Flags().Bool("song-footer", false, "put the song title as a footer on every lyric slide")
	slidesCmd.Flags().String("output-dir", "output", "directory for deck previews")
	slidesCmd.Flags().Bool("push", false, "create a Google Slides presentation")
	slidesCmd.Flags().String("credentials", "", "Google service-account or OAuth client JSON path")
	slidesCmd.Flags().String("folder-id", "", "Google Drive folder to move the presentation into")

	rootCmd.AddCommand(slidesCmd)
}

func runSlides(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "slides.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	songs, err := deckSongs(ctx, cmd, store, args)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		return fmt.Errorf("provide one or more song IDs, or --setlist")
	}

	maxLines, _ := cmd.Flags().GetInt("max-lines")
	if maxLines == 0 {
		maxLines = viper.GetInt("slides.max_lines")
	}
	songFooter, _ := cmd.Flags().GetBool("song-footer")
	if !cmd.Flags().Changed("song-footer") && viper.IsSet("slides.song_footer") {
		songFooter = viper.GetBool("slides.song_footer")
	}

	deck := slides.BuildDeck(songs, maxLines, songFooter)

	title := stringSetting(cmd, "title", "slides.title")
	if title == "" {
		title = gslides.DefaultTitle()
	}

	outDir := stringSetting(cmd, "output-dir", "slides.output_dir")
	previewPath, err := slides.WritePreview(outDir, title, deck)
	if err != nil {
		return err
	}
	fmt.Printf("%d slides; preview written to %s\n", len(deck), previewPath)

	if push, _ := cmd.Flags().GetBool("push"); !push {
		return nil
	}

	cfg := types.SlidesConfig{
		MaxLines:        maxLines,
		SongFooter:      songFooter,
		OutputDir:       outDir,
		CredentialsFile: secretDefault("google-credentials", stringSetting(cmd, "credentials", "slides.credentials_file")),
		FolderID:        stringSetting(cmd, "folder-id", "slides.folder_id"),
	}

	client, err := gslides.New(ctx, cfg)
	if errors.Is(err, gslides.ErrMissingCredentials) {
		return fmt.Errorf("push needs Google credentials: put a service-account JSON path in .secrets/google-credentials or set slides.credentials_file")
	}
	if err != nil {
		return err
	}

	url, err := client.Generate(ctx, title, deck, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Presentation created: %s\n", url)
	return nil
}

// deckSongs resolves the deck's song list: explicit song IDs, or a setlist
// whose titles are fuzzy-matched against the songbook. Setlist entries may
// override a song's stored order and lines-per-slide.
func deckSongs(ctx context.Context, cmd *cobra.Command, store *songbook.Store, ids []string) ([]*types.Song, error) {
	setlistPath, _ := cmd.Flags().GetString("setlist")
	if setlistPath == "" {
		songs := make([]*types.Song, 0, len(ids))
		for _, id := range ids {
			song, err := store.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			songs = append(songs, song)
		}
		return songs, nil
	}

	sl, err := order.ReadSetlist(setlistPath)
	if err != nil {
		return nil, err
	}

	infos, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	var songs []*types.Song
	for _, entry := range sl.Songs {
		song, err := matchSetlistSong(ctx, store, infos, entry.Title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		if len(entry.Order) > 0 {
			song.Order = entry.Order
		}
		if entry.MaxLines > 0 {
			song.MaxLines = entry.MaxLines
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func matchSetlistSong(ctx context.Context, store *songbook.Store, infos []songbook.SongInfo, title string) (*types.Song, error) {
	candidate := []order.Entry{{Title: title}}
	for _, info := range infos {
		if _, ok := order.MatchSong(info.Title, candidate); ok {
			return store.Get(ctx, info.ID)
		}
	}
	return nil, fmt.Errorf("no songbook match for %q", title)
}
