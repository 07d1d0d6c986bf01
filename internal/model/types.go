// Package model defines shared data structures.
package model

import "time"

// Config defines ranking settings shared by the rank, solve and play commands.
type Config struct {
	Lang         string
	WordListPath string
	Length       int
	Top          int
	Positional   bool
	Weights      string
	MaxTurns     int
}

// HistoryConfig defines filters for the history report.
type HistoryConfig struct {
	Lang   string
	Source string
	Since  *time.Time
	Last   int
}

// GameRecord captures a finished game, played interactively or by the solver.
type GameRecord struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Lang         string
	WordListPath string
	Source       string
	Secret       string
	Solved       bool
	Turns        int
	Positional   bool
	Weights      string
}

// TurnRecord stores one guess of a game.
type TurnRecord struct {
	Turn      int
	Guess     string
	Marks     string
	Remaining int
}

// GameAggregate summarizes a stored game for reporting.
type GameAggregate struct {
	GameID  int64
	EndedAt time.Time
	Source  string
	Secret  string
	Solved  bool
	Turns   int
}

// Game sources.
const (
	SourcePlay  = "play"
	SourceSolve = "solve"
)
