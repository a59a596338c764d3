// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lyricaster/internal/aiclean"
	"github.com/pdiddy/lyricaster/internal/songbook"
	"github.com/pdiddy/lyricaster/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [song-ids...]",
	Short: "Proofread parsed lyrics with an AI model",
	Long: `Clean sends each parsed lyric section to an AI proofreader that
repairs residual extraction artifacts (split and merged words, stray
chord letters). Sections that fail keep their original text. With no
arguments every song under songs/parsed/ is cleaned.

Requires an OpenRouter API key in .secrets/openrouter-api-key or the
LYRICASTER_OPENROUTER_API_KEY environment variable.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
	cleanCmd.Flags().String("model", "", "AI model identifier (default "+aiclean.DefaultModel+")")
	cleanCmd.Flags().Int("max-retries", 0, "retry attempts per section (default 3)")
	cleanCmd.Flags().Float64("rps", 0, "maximum AI requests per second (default 1)")
	cleanCmd.Flags().Bool("no-ingest", false, "skip the songbook ingest after cleaning")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	songsDir := stringSetting(cmd, "songs-dir", "cleanup.songs_dir")

	model := stringSetting(cmd, "model", "cleanup.model")
	if model == "" {
		model = aiclean.DefaultModel
	}
	apiKey := secretDefault("openrouter-api-key", viper.GetString("openrouter_api_key"))
	backend, err := aiclean.NewOpenRouterBackend(apiKey, model)
	if err != nil {
		return err
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	rps, _ := cmd.Flags().GetFloat64("rps")
	if rps == 0 {
		rps = 1
	}

	cfg := types.CleanupConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			MaxRetries: maxRetries,
		},
		SongsDir:          songsDir,
		RequestsPerSecond: rps,
	}

	ctx := context.Background()
	var summary aiclean.Summary
	if len(args) == 0 {
		summary, err = aiclean.CleanAll(ctx, backend, cfg, os.Stdout)
		if err != nil {
			return err
		}
	} else {
		limiter := aiclean.NewLimiter(cfg.RequestsPerSecond)
		for _, id := range args {
			path := filepath.Join(songsDir, "parsed", id+".yaml")
			s, err := aiclean.CleanFile(ctx, backend, path, limiter, cfg.MaxRetries, os.Stdout)
			if err != nil {
				return err
			}
			summary.Cleaned += s.Cleaned
			summary.Unchanged += s.Unchanged
			summary.Failed += s.Failed
		}
	}

	if noIngest, _ := cmd.Flags().GetBool("no-ingest"); !noIngest {
		store, err := songbook.NewStore(types.SongbookConfig{SongsDir: songsDir})
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.Ingest(ctx, os.Stdout); err != nil {
			return err
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d section(s) failed cleaning", summary.Failed)
	}
	return nil
}
