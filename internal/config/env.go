package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables understood by wordrank.
const (
	EnvWordList = "WORDRANK_WORDLIST"
	EnvDebug    = "WORDRANK_DEBUG"
	EnvDBPath   = "WORDRANK_DB"
)

// Env holds overrides read from the environment.
type Env struct {
	WordList string
	DBPath   string
	Debug    bool
}

// LoadEnv loads the given .env files when they exist, then reads the
// WORDRANK_* variables. Variables already set in the process win over
// values from the files.
func LoadEnv(paths ...string) (Env, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Env{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	env := Env{
		WordList: os.Getenv(EnvWordList),
		DBPath:   os.Getenv(EnvDBPath),
	}
	if raw := os.Getenv(EnvDebug); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return Env{}, fmt.Errorf("invalid %s value %q: %w", EnvDebug, raw, err)
		}
		env.Debug = debug
	}
	return env, nil
}
