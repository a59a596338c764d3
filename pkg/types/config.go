// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lyricaster/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// SongsDir is the base directory for songs (contains pdf/, parsed/, index/).
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`
}

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// SongsDir is the base directory for songs (contains pdf/, parsed/, index/).
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`

	// RulesFile is an optional YAML file overriding the built-in text-repair
	// tables (merged-word prefixes, split-word fixes, ligature fixes, footer
	// markers). The
	// tables are hand-curated for observed extraction artifacts and vary by
	// publisher, so they are data, not code.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "openai/gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CleanupConfig holds settings for the AI lyric-cleanup stage.
type CleanupConfig struct {
	AIConfig `yaml:",inline"`

	// SongsDir is the base directory for songs (contains parsed/).
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`

	// RequestsPerSecond caps the call rate against the AI API (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// SongbookConfig holds settings for the songbook store.
type SongbookConfig struct {
	// SongsDir is the base directory for songs (contains parsed/, index/).
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`

	// MaxResults is the default maximum number of lyric-search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SlidesConfig holds settings for deck building and the Google Slides sink.
type SlidesConfig struct {
	// MaxLines is the maximum lyric lines per slide (default 4).
	MaxLines int `json:"max_lines" yaml:"max_lines"`

	// SongFooter puts the song title as a small footer on every lyric slide.
	SongFooter bool `json:"song_footer" yaml:"song_footer"`

	// OutputDir is the directory for deck previews (e.g. "output/").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CredentialsFile is the path to a Google service-account or OAuth
	// client JSON. Empty means the push sink is unconfigured.
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`

	// FolderID is the Google Drive folder the presentation is moved into
	// after creation. Empty leaves it in the Drive root.
	FolderID string `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Parse    ParseConfig    `json:"parse" yaml:"parse"`
	Cleanup  CleanupConfig  `json:"cleanup" yaml:"cleanup"`
	Songbook SongbookConfig `json:"songbook" yaml:"songbook"`
	Slides   SlidesConfig   `json:"slides" yaml:"slides"`
}
