// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads song-sheet PDFs into the songs directory.
// See docs/ARCHITECTURE.md § Fetch.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/lyricaster/internal/httputil"
	"github.com/pdiddy/lyricaster/pkg/types"
)

const pdfDir = "pdf"

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchFile downloads a single song-sheet PDF into SongsDir/pdf/. The
// destination filename comes from the last segment of the URL path. If the
// file already exists on disk the download is skipped. The skipped return
// value indicates whether the download was skipped.
func FetchFile(ctx context.Context, client *http.Client, rawURL string, cfg types.FetchConfig, w io.Writer) (destPath string, skipped bool, err error) {
	name, err := fileName(rawURL)
	if err != nil {
		return "", false, err
	}

	destPath = filepath.Join(cfg.SongsDir, pdfDir, name)
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		return destPath, true, nil
	}

	if err := os.MkdirAll(filepath.Join(cfg.SongsDir, pdfDir), 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory: %w", err)
	}

	fmt.Fprintf(w, "downloading: %s\n", name)
	if err := downloadFile(ctx, client, rawURL, destPath, cfg); err != nil {
		return "", false, fmt.Errorf("downloading %s: %w", name, err)
	}
	return destPath, false, nil
}

// FetchBatch downloads multiple URLs, printing per-item status and returning
// a summary. It continues after individual failures and applies a delay
// between consecutive downloads.
func FetchBatch(ctx context.Context, client *http.Client, urls []string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}
		_, wasSkipped, err := FetchFile(ctx, client, u, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// ReadURLList reads a list of URLs from r, one per line. Blank lines and
// lines starting with '#' are ignored.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return urls, nil
}

// fileName derives the destination filename from the URL path. A ".pdf"
// extension is added when the path segment carries none.
func fileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive filename from URL %q", rawURL)
	}
	if !strings.EqualFold(path.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}

// downloadFile fetches url to destPath using a temporary file, renaming it
// into place on success. It sets the User-Agent header and requests PDF via
// the Accept header. Rate-limited responses are retried by the shared helper.
func downloadFile(ctx context.Context, client *http.Client, rawURL, destPath string, cfg types.FetchConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
