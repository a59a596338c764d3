// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lyricaster/internal/songbook"
	"github.com/pdiddy/lyricaster/internal/songpdf"
	"github.com/pdiddy/lyricaster/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [pdf-files...]",
	Short: "Parse lyric-sheet PDFs into per-song section files",
	Long: `Parse extracts titled lyric sections from chord-annotated song-sheet
PDFs, strips chord lines and sheet furniture, and writes one YAML file per
song under songs/parsed/. Parsed songs are then ingested into the songbook
index. Already-parsed songs are skipped.

Use --batch to parse every PDF under songs/pdf/ instead of naming files.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
	parseCmd.Flags().String("rules", "", "YAML file overriding the built-in text-repair tables")
	parseCmd.Flags().Bool("batch", false, "parse all PDFs under songs-dir/pdf")
	parseCmd.Flags().Bool("no-ingest", false, "skip the songbook ingest after parsing")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	songsDir := stringSetting(cmd, "songs-dir", "parse.songs_dir")

	pdfPaths := args
	if batch {
		globbed, err := filepath.Glob(filepath.Join(songsDir, "pdf", "*.pdf"))
		if err != nil {
			return fmt.Errorf("listing PDFs: %w", err)
		}
		pdfPaths = append(globbed, pdfPaths...)
	}
	if len(pdfPaths) == 0 {
		return fmt.Errorf("provide one or more PDF files, or --batch")
	}

	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	outDir := filepath.Join(songsDir, "parsed")
	result := songpdf.ParseBatch(songpdf.FileReader{}, pdfPaths, outDir, rules, os.Stdout)

	if noIngest, _ := cmd.Flags().GetBool("no-ingest"); !noIngest {
		store, err := songbook.NewStore(types.SongbookConfig{SongsDir: songsDir})
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.Ingest(context.Background(), os.Stdout); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed parsing", result.Failed)
	}
	return nil
}

func loadRules(cmd *cobra.Command) (*songpdf.Rules, error) {
	rulesFile := stringSetting(cmd, "rules", "parse.rules_file")
	if rulesFile == "" {
		return songpdf.DefaultRules(), nil
	}
	return songpdf.LoadRules(rulesFile)
}
