package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordrank/internal/generator"
	"github.com/verte-zerg/wordrank/internal/model"
	"github.com/verte-zerg/wordrank/internal/solver"
	"github.com/verte-zerg/wordrank/internal/stats"
	"github.com/verte-zerg/wordrank/internal/store"
	"github.com/verte-zerg/wordrank/internal/tui"
)

var (
	solveSettings rankFlags

	playSettings rankFlags
	playSecret   string
	playGames    int
	playWorkers  int
	playSeed     int64
	playCommon   float64
	playNoSave   bool
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Interactive assistant for a game played elsewhere",
		Args:  cobra.NoArgs,
		RunE:  runSolveCmd,
	}
	addRankFlags(cmd, &solveSettings)
	return cmd
}

func runSolveCmd(cmd *cobra.Command, _ []string) error {
	cfg, s, err := newSolver(cmd, &solveSettings)
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logg.Error("failed to close db", "err", cerr)
		}
	}()

	m := tui.NewModel(cfg, st, s, cfg.WordListPath, logg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the solver play against a secret word",
		Long: `Let the solver play against a secret word.

With --secret one game is played and every turn is shown. Otherwise
--games secrets are drawn from the word list and played concurrently,
and a summary with the guess distribution is printed.`,
		Args: cobra.NoArgs,
		RunE: runPlayCmd,
	}
	addRankFlags(cmd, &playSettings)
	cmd.Flags().StringVar(&playSecret, "secret", "", "secret word to play against")
	cmd.Flags().IntVar(&playGames, "games", 1, "number of random secrets to play")
	cmd.Flags().IntVar(&playWorkers, "workers", runtime.NumCPU(), "games played concurrently")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for secrets (0: time based)")
	cmd.Flags().Float64Var(&playCommon, "common", 0, "bias secrets toward frequent words (0: uniform)")
	cmd.Flags().BoolVar(&playNoSave, "no-save", false, "do not store games in the history")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, s, err := newSolver(cmd, &playSettings)
	if err != nil {
		return err
	}
	if playGames <= 0 {
		return fmt.Errorf("--games must be > 0")
	}

	secrets := []string{strings.ToLower(strings.TrimSpace(playSecret))}
	if secrets[0] == "" {
		secrets = generator.New(playSeed).PickCommon(s.Corpus().Words(), playGames, playCommon)
	}

	started := time.Now()
	sum, err := s.Benchmark(cmd.Context(), secrets, cfg.MaxTurns, playWorkers)
	if err != nil {
		return err
	}
	logg.Debug("played", "games", len(sum.Games), "elapsed", time.Since(started))

	out := cmd.OutOrStdout()
	if len(sum.Games) == 1 {
		if err := writeGame(out, sum.Games[0]); err != nil {
			return err
		}
	} else if err := writeSummary(out, sum); err != nil {
		return err
	}

	if playNoSave {
		return nil
	}
	return saveGames(cmd.Context(), cfg, s.Options(), sum.Games, started)
}

func newSolver(cmd *cobra.Command, f *rankFlags) (model.Config, *solver.Solver, error) {
	cfg, err := f.resolve(cmd)
	if err != nil {
		return model.Config{}, nil, err
	}
	weights, err := solver.ParseWeightSource(cfg.Weights)
	if err != nil {
		return model.Config{}, nil, err
	}
	c, err := loadCorpus(cfg)
	if err != nil {
		return model.Config{}, nil, err
	}
	s := solver.New(c, solver.Options{Positional: cfg.Positional, WeightFrom: weights, Top: cfg.Top})
	return cfg, s, nil
}

func writeGame(w io.Writer, g solver.Game) error {
	for i, step := range g.Steps {
		if _, err := fmt.Fprintf(w, "%d. %s %s (%d left)\n", i+1, step.Turn.Guess, step.Turn.Marks, step.Remaining); err != nil {
			return err
		}
	}
	result := fmt.Sprintf("solved %q in %d", g.Secret, g.Turns())
	if !g.Solved {
		result = fmt.Sprintf("failed to solve %q", g.Secret)
	}
	_, err := fmt.Fprintln(w, result)
	return err
}

func writeSummary(w io.Writer, sum solver.Summary) error {
	if _, err := fmt.Fprintf(w, "Games: %d\nSolved: %d (%.1f%%)\nMean turns: %.2f\n",
		len(sum.Games), sum.Solved, sum.SolveRate()*100, sum.MeanTurns()); err != nil {
		return err
	}
	if failed := sum.Failed(); len(failed) > 0 {
		if _, err := fmt.Fprintf(w, "Failed: %s\n", strings.Join(failed, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderHistogram(w, sum.Distribution, 0)
}

func saveGames(ctx context.Context, cfg model.Config, opts solver.Options, games []solver.Game, started time.Time) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logg.Error("failed to close db", "err", cerr)
		}
	}()

	ended := time.Now()
	for _, g := range games {
		record := model.GameRecord{
			StartedAt:    started,
			EndedAt:      ended,
			Lang:         cfg.Lang,
			WordListPath: cfg.WordListPath,
			Source:       model.SourcePlay,
			Secret:       g.Secret,
			Solved:       g.Solved,
			Turns:        g.Turns(),
			Positional:   opts.Positional,
			Weights:      opts.WeightFrom.String(),
		}
		turns := make([]model.TurnRecord, 0, len(g.Steps))
		for i, step := range g.Steps {
			turns = append(turns, model.TurnRecord{
				Turn:      i + 1,
				Guess:     step.Turn.Guess,
				Marks:     step.Turn.Marks.String(),
				Remaining: step.Remaining,
			})
		}
		if _, err := st.InsertGame(ctx, record, turns); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}
	}
	logg.Debug("saved games", "count", len(games), "db", dbPath())
	return nil
}
