package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/wordrank/internal/model"
	"github.com/verte-zerg/wordrank/internal/store"
)

const openingLimit = 5

// Report contains precomputed data for history rendering.
type Report struct {
	Games    []model.GameAggregate
	Openings []store.GuessCount
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	openings, err := st.OpeningCounts(ctx, cfg, openingLimit)
	if err != nil {
		return Report{}, err
	}
	return Report{Games: games, Openings: openings}, nil
}

// Distribution counts solved games by number of turns.
func Distribution(games []model.GameAggregate) map[int]int {
	dist := map[int]int{}
	for _, g := range games {
		if g.Solved {
			dist[g.Turns]++
		}
	}
	return dist
}

// StreakStats returns the current and longest runs of solved games.
func StreakStats(games []model.GameAggregate) (current, best int) {
	for _, g := range games {
		if !g.Solved {
			current = 0
			continue
		}
		current++
		best = max(best, current)
	}
	return current, best
}

// RenderSummary prints totals for the report.
func RenderSummary(w io.Writer, r Report) error {
	if len(r.Games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	solved, turns := 0, 0
	for _, g := range r.Games {
		if g.Solved {
			solved++
			turns += g.Turns
		}
	}
	mean := 0.0
	if solved > 0 {
		mean = float64(turns) / float64(solved)
	}
	current, best := StreakStats(r.Games)
	rows := [][]string{
		{"Games", strconv.Itoa(len(r.Games))},
		{"Solved", fmt.Sprintf("%d (%.1f%%)", solved, float64(solved)/float64(len(r.Games))*100)},
		{"Mean turns", fmt.Sprintf("%.2f", mean)},
		{"Streak", fmt.Sprintf("%d (best %d)", current, best)},
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if err := writeLines(w, formatTable(nil, rows, nil)); err != nil {
		return err
	}
	if len(r.Openings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nOpenings"); err != nil {
		return err
	}
	openRows := make([][]string, 0, len(r.Openings))
	for _, o := range r.Openings {
		openRows = append(openRows, []string{o.Guess, strconv.Itoa(o.Count)})
	}
	return writeLines(w, formatTable(nil, openRows, map[int]bool{1: true}))
}
