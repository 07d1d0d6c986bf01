package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordrank/internal/config"
	"github.com/verte-zerg/wordrank/internal/corpus"
	"github.com/verte-zerg/wordrank/internal/model"
	"github.com/verte-zerg/wordrank/internal/solver"
	"github.com/verte-zerg/wordrank/internal/wordlist"
)

const (
	defaultLang     = "en"
	defaultLength   = 5
	defaultTop      = 10
	defaultWeights  = "all"
	defaultMaxTurns = 6
)

// rankFlags are the word list and ranking flags shared by several commands.
type rankFlags struct {
	lang       string
	wordList   string
	length     int
	top        int
	positional bool
	weights    string
	maxTurns   int
}

func addRankFlags(cmd *cobra.Command, f *rankFlags) {
	cmd.Flags().StringVar(&f.lang, "lang", defaultLang, "language code")
	cmd.Flags().StringVar(&f.wordList, "wordlist", "", "word list file (default: downloaded list for --lang and --length)")
	cmd.Flags().IntVar(&f.length, "length", defaultLength, "word length, 0 for any")
	cmd.Flags().IntVar(&f.top, "top", defaultTop, "number of ranked words to show, 0 for all")
	cmd.Flags().BoolVar(&f.positional, "positional", false, "weight letters by position")
	cmd.Flags().StringVar(&f.weights, "weights", defaultWeights, "build letter weights from all words or remaining candidates")
	cmd.Flags().IntVar(&f.maxTurns, "max-turns", defaultMaxTurns, "guesses allowed per game")
}

// resolve layers the config file under flags the user did not set.
func (f *rankFlags) resolve(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	rc := fileCfg.Rank
	applyStringConfig(cmd, "lang", &f.lang, rc.Lang)
	applyStringConfig(cmd, "wordlist", &f.wordList, rc.WordList)
	applyIntConfig(cmd, "length", &f.length, rc.Length)
	applyIntConfig(cmd, "top", &f.top, rc.Top)
	applyBoolConfig(cmd, "positional", &f.positional, rc.Positional)
	applyStringConfig(cmd, "weights", &f.weights, rc.Weights)
	applyIntConfig(cmd, "max-turns", &f.maxTurns, rc.MaxTurns)
	if env.WordList != "" && !cmd.Flags().Changed("wordlist") {
		f.wordList = env.WordList
	}

	cfg := model.Config{
		Lang:         strings.ToLower(strings.TrimSpace(f.lang)),
		WordListPath: f.wordList,
		Length:       f.length,
		Top:          f.top,
		Positional:   f.positional,
		Weights:      f.weights,
		MaxTurns:     f.maxTurns,
	}
	if cfg.WordListPath == "" {
		cfg.WordListPath = config.DefaultWordListPath(cfg.Lang, cfg.Length)
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Length < 0 || cfg.Length > corpus.MaxPosition {
		return fmt.Errorf("--length must be between 0 and %d", corpus.MaxPosition)
	}
	if cfg.Top < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	if cfg.MaxTurns <= 0 {
		return fmt.Errorf("--max-turns must be > 0")
	}
	if _, err := solver.ParseWeightSource(cfg.Weights); err != nil {
		return err
	}
	return nil
}

// loadCorpus reads and normalizes the configured word list. Words too long
// for the positional model are dropped when it is in use.
func loadCorpus(cfg model.Config) (corpus.Corpus, error) {
	raw, err := wordlist.LoadWords(cfg.WordListPath)
	if err != nil {
		return corpus.Corpus{}, wordListLoadError(cfg, err)
	}
	words := wordlist.Normalize(raw, cfg.Lang, cfg.Length)
	if cfg.Positional {
		kept := words[:0]
		for _, w := range words {
			if utf8.RuneCountInString(w) <= corpus.MaxPosition {
				kept = append(kept, w)
			}
		}
		if dropped := len(words) - len(kept); dropped > 0 {
			logg.Warn("skipping words too long for positional weights", "count", dropped, "max", corpus.MaxPosition)
		}
		words = kept
	}
	if len(words) == 0 {
		return corpus.Corpus{}, fmt.Errorf("no usable words in %s for length %d", cfg.WordListPath, cfg.Length)
	}
	logg.Debug("loaded word list", "path", cfg.WordListPath, "words", len(words))
	return corpus.New(words), nil
}

func wordListLoadError(cfg model.Config, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", cfg.WordListPath),
		"Run: wordrank langs",
		fmt.Sprintf("Download: wordrank wordlist --lang %s --length %d", cfg.Lang, cfg.Length),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func dbPath() string {
	if env.DBPath != "" {
		return env.DBPath
	}
	return config.DefaultDBPath()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordrank configuration
# Uncomment a value to enable it. CLI flags override config values.

[rank]
# lang = %q              # Language code
# wordlist = ""           # Word list file (default: downloaded list)
# length = %d              # Word length, 0 for any
# top = %d                # Ranked words to show, 0 for all
# positional = false      # Weight letters by position
# weights = %q          # all or candidates
# max-turns = %d           # Guesses allowed per game
`,
		defaultLang,
		defaultLength,
		defaultTop,
		defaultWeights,
		defaultMaxTurns,
	)
}
