// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lyricaster/internal/fetch"
	"github.com/pdiddy/lyricaster/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "lyricaster/0.1"
	defaultSongsDir  = "songs"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download song-sheet PDFs into songs/pdf/",
	Long: `Fetch downloads song-sheet PDFs by URL into songs/pdf/. Existing
files are skipped, so a URL list can be re-run after adding entries.
Use --list to read URLs from a file, one per line ('#' starts a comment).`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("songs-dir", defaultSongsDir, "base directory for songs")
	fetchCmd.Flags().String("list", "", "file of URLs to fetch, one per line")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls := args
	if listPath, _ := cmd.Flags().GetString("list"); listPath != "" {
		f, err := os.Open(listPath)
		if err != nil {
			return fmt.Errorf("opening URL list: %w", err)
		}
		fromList, err := fetch.ReadURLList(f)
		f.Close()
		if err != nil {
			return err
		}
		urls = append(fromList, urls...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("provide one or more PDF URLs, or --list")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		DownloadDelay: delay,
		SongsDir:      stringSetting(cmd, "songs-dir", "fetch.songs_dir"),
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	result := fetch.FetchBatch(context.Background(), client, urls, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}
