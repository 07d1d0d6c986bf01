// Package main provides the CLI entrypoint for wordrank.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordrank/internal/config"
	"github.com/verte-zerg/wordrank/internal/corpus"
	"github.com/verte-zerg/wordrank/internal/feedback"
	"github.com/verte-zerg/wordrank/internal/filter"
	"github.com/verte-zerg/wordrank/internal/logger"
	"github.com/verte-zerg/wordrank/internal/output"
	"github.com/verte-zerg/wordrank/internal/solver"
)

var (
	rankSettings rankFlags

	rankStarts   string
	rankEnds     string
	rankContains string
	rankExcludes string
	rankHas      string
	rankLacks    string
	rankMatch    string
	rankMismatch string
	rankGuesses  []string
	rankFormat   string

	env  config.Env
	logg *log.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordrank",
		Short: "Rank candidate words for word-guessing games",
		Long: `Rank words from a word list by how common their letters are.

Filters narrow the list first; --guess applies game feedback given as
word:marks, where marks use g (correct), y (present) and . (absent).`,
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runRankCmd,
	}

	addRankFlags(rootCmd, &rankSettings)
	rootCmd.Flags().StringVar(&rankStarts, "starts", "", "keep words starting with this prefix")
	rootCmd.Flags().StringVar(&rankEnds, "ends", "", "keep words ending with this suffix")
	rootCmd.Flags().StringVar(&rankContains, "contains", "", "keep words containing this substring")
	rootCmd.Flags().StringVar(&rankExcludes, "excludes", "", "drop words containing this substring")
	rootCmd.Flags().StringVar(&rankHas, "has", "", "keep words containing every one of these letters")
	rootCmd.Flags().StringVar(&rankLacks, "lacks", "", "drop words containing any of these letters")
	rootCmd.Flags().StringVar(&rankMatch, "match", "", "letters required at positions, _ for any (e.g. _r__e)")
	rootCmd.Flags().StringVar(&rankMismatch, "mismatch", "", "letters forbidden at positions, _ for any (e.g. c____)")
	rootCmd.Flags().StringArrayVar(&rankGuesses, "guess", nil, "game feedback as word:marks (repeatable)")
	rootCmd.Flags().StringVar(&rankFormat, "format", string(output.Text), "output format: text, json or yaml")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadEnv(".env", config.DefaultEnvPath())
	if err != nil {
		return err
	}
	env = loaded
	logger.SetDebug(env.Debug)
	logg = logger.New("wordrank")
	return nil
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := rankSettings.resolve(cmd)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(rankFormat)
	if err != nil {
		return err
	}
	weights, err := solver.ParseWeightSource(cfg.Weights)
	if err != nil {
		return err
	}
	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	p, err := buildPipeline(filter.From(c), cfg.Length)
	if err != nil {
		return err
	}
	candidates := p.Apply()
	logg.Debug("filtered", "words", c.Len(), "candidates", candidates.Len())

	weightCorpus := c
	if weights == solver.WeightCandidates {
		weightCorpus = candidates
	}
	var m corpus.Model = corpus.BuildCharModel(weightCorpus)
	if cfg.Positional {
		m = corpus.BuildPositionalModel(weightCorpus)
	}
	top := cfg.Top
	if top <= 0 {
		top = candidates.Len()
	}
	ranked := corpus.Rank(candidates, m, top)
	return output.Write(cmd.OutOrStdout(), format, ranked, candidates.Len())
}

func buildPipeline(p filter.Pipeline, length int) (filter.Pipeline, error) {
	if length > 0 {
		p = p.Length(length)
	}
	p = p.StartsWith(strings.ToLower(rankStarts)).
		EndsWith(strings.ToLower(rankEnds)).
		Contains(strings.ToLower(rankContains)).
		Excludes(strings.ToLower(rankExcludes)).
		ContainsChars(strings.ToLower(rankHas)).
		ExcludesChars(strings.ToLower(rankLacks))

	match, err := filter.ParsePattern(strings.ToLower(rankMatch))
	if err != nil {
		return p, fmt.Errorf("invalid --match: %w", err)
	}
	mismatch, err := filter.ParsePattern(strings.ToLower(rankMismatch))
	if err != nil {
		return p, fmt.Errorf("invalid --mismatch: %w", err)
	}
	p = p.Positional(match).NotPositional(mismatch)

	turns, err := parseTurns(rankGuesses)
	if err != nil {
		return p, err
	}
	return feedback.Apply(p, turns...), nil
}

func parseTurns(raw []string) ([]feedback.Turn, error) {
	turns := make([]feedback.Turn, 0, len(raw))
	for _, s := range raw {
		turn, err := feedback.ParseTurn(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("invalid --guess %q: %w", s, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
