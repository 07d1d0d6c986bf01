// Package solver suggests guesses for word-guessing games by filtering a
// corpus with the feedback so far and ranking what is left.
package solver

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/wordrank/internal/corpus"
	"github.com/verte-zerg/wordrank/internal/feedback"
	"github.com/verte-zerg/wordrank/internal/filter"
	"github.com/verte-zerg/wordrank/internal/lexicon"
)

// WeightSource selects which words the character model is built from.
type WeightSource int

const (
	// WeightAll builds the model once from the whole corpus.
	WeightAll WeightSource = iota
	// WeightCandidates rebuilds the model from the remaining candidates
	// on every suggestion.
	WeightCandidates
)

// ParseWeightSource reads "all" or "candidates".
func ParseWeightSource(s string) (WeightSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return WeightAll, nil
	case "candidates", "cand":
		return WeightCandidates, nil
	default:
		return WeightAll, fmt.Errorf("invalid weights %q (use all or candidates)", s)
	}
}

func (w WeightSource) String() string {
	if w == WeightCandidates {
		return "candidates"
	}
	return "all"
}

// Options configures a Solver.
type Options struct {
	Positional bool
	WeightFrom WeightSource
	// Top limits the ranked suggestions; zero or less ranks every candidate.
	Top int
}

// Solver holds an immutable corpus and is safe for concurrent use.
type Solver struct {
	words corpus.Corpus
	lex   *lexicon.Lexicon
	opts  Options
	full  corpus.Model
}

// New prepares a solver over c. With Positional set, every word of c must
// fit the positional model bound.
func New(c corpus.Corpus, opts Options) *Solver {
	s := &Solver{words: c, lex: lexicon.New(c), opts: opts}
	if opts.WeightFrom == WeightAll {
		s.full = s.buildModel(c)
	}
	return s
}

// Options returns the solver configuration.
func (s *Solver) Options() Options {
	return s.opts
}

// Corpus returns the word list the solver draws from.
func (s *Solver) Corpus() corpus.Corpus {
	return s.words
}

// ValidGuess reports whether word is in the corpus.
func (s *Solver) ValidGuess(word string) bool {
	return s.lex.Has(word)
}

// Complete returns up to limit corpus words starting with prefix.
func (s *Solver) Complete(prefix string, limit int) []string {
	return s.lex.WithPrefix(prefix, limit)
}

// Result is a suggestion round.
type Result struct {
	// Candidates are the words consistent with every turn, in corpus order.
	Candidates corpus.Corpus
	// Ranked holds the best candidates, highest score first.
	Ranked []corpus.Ranked
}

// Best returns the top suggestion.
func (r Result) Best() (string, bool) {
	if len(r.Ranked) == 0 {
		return "", false
	}
	return r.Ranked[0].Word, true
}

// Suggest filters the corpus with turns and ranks the remaining words.
func (s *Solver) Suggest(turns ...feedback.Turn) Result {
	return s.suggest(s.opts.Top, turns)
}

func (s *Solver) suggest(top int, turns []feedback.Turn) Result {
	candidates := feedback.Apply(filter.From(s.words), turns...).Apply()
	m := s.full
	if m == nil {
		m = s.buildModel(candidates)
	}
	if top <= 0 {
		top = candidates.Len()
	}
	return Result{Candidates: candidates, Ranked: corpus.Rank(candidates, m, top)}
}

func (s *Solver) buildModel(c corpus.Corpus) corpus.Model {
	if s.opts.Positional {
		return corpus.BuildPositionalModel(c)
	}
	return corpus.BuildCharModel(c)
}

// Step is one turn of a played game.
type Step struct {
	Turn feedback.Turn
	// Remaining counts candidates still consistent after this turn.
	Remaining int
}

// Game is the outcome of self-play against one secret.
type Game struct {
	Secret string
	Steps  []Step
	Solved bool
}

// Turns returns the number of guesses made.
func (g Game) Turns() int {
	return len(g.Steps)
}

// Play guesses the top suggestion each turn until secret is found or
// maxTurns guesses are used. secret must be in the corpus.
func (s *Solver) Play(secret string, maxTurns int) (Game, error) {
	if !s.lex.Has(secret) {
		return Game{}, fmt.Errorf("secret %q is not in the word list", secret)
	}
	if maxTurns <= 0 {
		return Game{}, fmt.Errorf("max turns must be greater than 0")
	}
	game := Game{Secret: secret}
	var turns []feedback.Turn
	for len(turns) < maxTurns {
		res := s.suggest(1, turns)
		guess, ok := res.Best()
		if !ok {
			break
		}
		turn := feedback.Turn{Guess: guess, Marks: feedback.Evaluate(secret, guess)}
		turns = append(turns, turn)
		remaining := feedback.Apply(filter.From(res.Candidates), turn).Count()
		game.Steps = append(game.Steps, Step{Turn: turn, Remaining: remaining})
		if turn.Marks.Solved() {
			game.Solved = true
			break
		}
	}
	return game, nil
}
