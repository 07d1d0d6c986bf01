// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Rank RankConfig `toml:"rank"`
}

// RankConfig maps ranking-related settings.
type RankConfig struct {
	Lang       *string `toml:"lang"`
	WordList   *string `toml:"wordlist"`
	Length     *int    `toml:"length"`
	Top        *int    `toml:"top"`
	Positional *bool   `toml:"positional"`
	Weights    *string `toml:"weights"`
	MaxTurns   *int    `toml:"max-turns"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
