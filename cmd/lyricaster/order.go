// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lyricaster/internal/order"
	"github.com/pdiddy/lyricaster/internal/songbook"
	"github.com/pdiddy/lyricaster/pkg/types"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage per-song performance orders",
	Long: `Order manages the performance order of each song: the sequence of
sections (V1 C V2 C B C) the slide deck follows. Orders are stored in the
songbook and in the parsed YAML file. Songs without an order fall back to
sheet order at deck-build time.`,
}

var orderShowCmd = &cobra.Command{
	Use:   "show [song-id]",
	Short: "Show a song's stored order and available sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

var orderSetCmd = &cobra.Command{
	Use:   "set [song-id] [tokens...]",
	Short: "Set a song's performance order",
	Long: `Set stores a performance order for one song. Tokens may be canonical
keys (V1, C, B) or spelled out (Verse 1, Chorus). With --interleaved and no
tokens, a verse-chorus alternation is derived from the song's sections.

Tokens naming no section are stored anyway and show up in the deck as
placeholder slides; a warning lists them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrderSet,
}

var orderApplyCmd = &cobra.Command{
	Use:   "apply [order-file]",
	Short: "Apply a bulk order file to matching songbook songs",
	Long: `Apply reads a plain-text order file, one song per line
("Title: V1 C V2 C B C"), fuzzy-matches each line's title against the
songbook, and stores the orders. Unmatched lines are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrderApply,
}

func init() {
	for _, c := range []*cobra.Command{orderShowCmd, orderSetCmd, orderApplyCmd} {
		c.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
	}
	orderSetCmd.Flags().Bool("interleaved", false, "derive a verse-chorus alternation instead of naming tokens")

	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderSetCmd)
	orderCmd.AddCommand(orderApplyCmd)
	rootCmd.AddCommand(orderCmd)
}

func openStore(cmd *cobra.Command, viperKey string) (*songbook.Store, error) {
	return songbook.NewStore(types.SongbookConfig{
		SongsDir: stringSetting(cmd, "songs-dir", viperKey),
	})
}

func runOrderShow(cmd *cobra.Command, args []string) error {
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
	fmt.Printf("sections: %s\n", strings.Join(song.Sections.Keys(), " "))
	if len(song.Order) > 0 {
		fmt.Printf("order:    %s\n", strings.Join(song.Order, " "))
	} else {
		fmt.Printf("order:    (none, deck uses sheet order)\n")
	}
	return nil
}

func runOrderSet(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	song, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}

	tokens := order.NormalizeTokens(args[1:])
	if interleaved, _ := cmd.Flags().GetBool("interleaved"); interleaved && len(tokens) == 0 {
		tokens = order.InterleavedOrder(song.Sections.Keys())
	}
	if len(tokens) == 0 {
		return fmt.Errorf("provide order tokens or --interleaved")
	}

	if missing := order.MissingSections(tokens, song.Sections.Keys()); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: no section for token(s): %s\n", strings.Join(missing, " "))
	}

	if err := store.UpdateOrder(ctx, song.ID, tokens); err != nil {
		return err
	}
	fmt.Printf("order for %s: %s\n", song.ID, strings.Join(tokens, " "))
	return nil
}

func runOrderApply(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening order file: %w", err)
	}
	orders, err := order.ParseFile(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return fmt.Errorf("no orders found in %s", args[0])
	}

	store, err := openStore(cmd, "songbook.songs_dir")
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	songs, err := store.List(ctx)
	if err != nil {
		return err
	}

	matched := 0
	for _, info := range songs {
		tokens, ok := order.MatchSong(info.Title, orders)
		if !ok {
			continue
		}
		if err := store.UpdateOrder(ctx, info.ID, tokens); err != nil {
			return err
		}
		fmt.Printf("ordered: %s (%s)\n", info.ID, strings.Join(tokens, " "))
		matched++
	}

	for _, entry := range orders {
		one := []order.Entry{entry}
		found := false
		for _, info := range songs {
			if _, ok := order.MatchSong(info.Title, one); ok {
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "warning: no songbook match for %q\n", entry.Title)
		}
	}

	fmt.Printf("\nApplied orders to %d of %d songs\n", matched, len(songs))
	return nil
}
