// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lyricaster CLI.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lyricaster/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// stringSetting resolves a string option: an explicitly set flag wins, then
// the config file / environment via viper, then the flag default.
func stringSetting(cmd *cobra.Command, flag, viperKey string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(viperKey) {
		return viper.GetString(viperKey)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// rootCmd is the base command for the lyricaster CLI.
var rootCmd = &cobra.Command{
	Use:   "lyricaster",
	Short: "Turn worship lyric-sheet PDFs into presentation slides",
	Long: `lyricaster turns chord-annotated worship lyric-sheet PDFs into clean
presentation slide decks. Each pipeline stage is a subcommand: fetch sheet
PDFs, parse them into per-song section files, clean residual extraction
artifacts with an AI proofreader, set performance orders, and build decks
as text previews or Google Slides presentations.

Parsed songs persist as YAML files under songs/parsed/ plus a SQLite
songbook index, so stages compose across separate invocations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lyricaster.yaml or ~/.config/lyricaster/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lyricaster")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lyricaster"))
		}
	}

	viper.SetEnvPrefix("LYRICASTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
