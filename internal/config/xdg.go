// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const appName = "wordrank"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListPath builds the default word list path for a language and
// word length. A length of 0 selects the unrestricted list.
func DefaultWordListPath(lang string, length int) string {
	return filepath.Join(DefaultWordListDir(), WordListName(lang, length))
}

// WordListName returns the file name used for a language and word length.
func WordListName(lang string, length int) string {
	if length > 0 {
		return lang + "-" + strconv.Itoa(length) + ".txt"
	}
	return lang + ".txt"
}

// DefaultWordListDir returns the default directory for word lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), appName, "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultEnvPath returns the .env file read next to the config file.
func DefaultEnvPath() string {
	return filepath.Join(XDGConfigHome(), appName, ".env")
}
