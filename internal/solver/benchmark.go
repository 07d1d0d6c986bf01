package solver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates many self-played games.
type Summary struct {
	// Games are in the order of the secrets given to Benchmark.
	Games  []Game
	Solved int
	// Distribution counts solved games by number of turns.
	Distribution map[int]int
	totalTurns   int
}

// SolveRate returns the fraction of solved games.
func (s Summary) SolveRate() float64 {
	if len(s.Games) == 0 {
		return 0
	}
	return float64(s.Solved) / float64(len(s.Games))
}

// MeanTurns returns the mean number of turns over solved games.
func (s Summary) MeanTurns() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.totalTurns) / float64(s.Solved)
}

// Failed returns the secrets that were not solved.
func (s Summary) Failed() []string {
	var out []string
	for _, g := range s.Games {
		if !g.Solved {
			out = append(out, g.Secret)
		}
	}
	return out
}

// Benchmark plays every secret with at most workers games in flight.
func (s *Solver) Benchmark(ctx context.Context, secrets []string, maxTurns, workers int) (Summary, error) {
	if workers <= 0 {
		workers = 1
	}
	games := make([]Game, len(secrets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, secret := range secrets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			game, err := s.Play(secret, maxTurns)
			if err != nil {
				return fmt.Errorf("failed to play %q: %w", secret, err)
			}
			games[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: games, Distribution: map[int]int{}}
	for _, game := range games {
		if !game.Solved {
			continue
		}
		sum.Solved++
		sum.totalTurns += game.Turns()
		sum.Distribution[game.Turns()]++
	}
	return sum, nil
}
