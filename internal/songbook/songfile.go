// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyricaster/pkg/types"
)

// ReadSong loads one parsed song YAML file.
func ReadSong(path string) (*types.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading song file %s: %w", path, err)
	}
	var song types.Song
	if err := yaml.Unmarshal(data, &song); err != nil {
		return nil, fmt.Errorf("parsing song file %s: %w", path, err)
	}
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("song file %s: %w", path, err)
	}
	return &song, nil
}

// WriteSong saves a song to a YAML file.
func WriteSong(path string, song *types.Song) error {
	data, err := yaml.Marshal(song)
	if err != nil {
		return fmt.Errorf("marshaling song %s: %w", song.ID, err)
	}
	return os.WriteFile(path, data, 0o644)
}
