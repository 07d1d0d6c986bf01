// Package store handles SQLite persistence of played games.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordrank/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			wordlist_path TEXT NOT NULL,
			source TEXT NOT NULL,
			secret TEXT NOT NULL,
			solved INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			positional INTEGER NOT NULL,
			weights TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_turns (
			game_id INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			guess TEXT NOT NULL,
			marks TEXT NOT NULL,
			remaining INTEGER NOT NULL,
			PRIMARY KEY (game_id, turn)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_game_turns_guess ON game_turns(guess);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its turns.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord, turns []model.TurnRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, lang, wordlist_path, source, secret, solved, turns, positional, weights)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.StartedAt.Format(time.RFC3339Nano),
		game.EndedAt.Format(time.RFC3339Nano),
		game.Lang,
		game.WordListPath,
		game.Source,
		game.Secret,
		boolInt(game.Solved),
		game.Turns,
		boolInt(game.Positional),
		game.Weights,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(turns) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO game_turns (game_id, turn, guess, marks, remaining)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, t := range turns {
			if _, err := stmt.ExecContext(ctx, id, t.Turn, t.Guess, t.Marks, t.Remaining); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListGames returns game aggregates filtered by cfg, oldest first.
// cfg.Last is not applied here.
func (s *Store) ListGames(ctx context.Context, cfg model.HistoryConfig) ([]model.GameAggregate, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT id, ended_at, source, secret, solved, turns
		FROM games
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		var solved int
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Source, &agg.Secret, &solved, &agg.Turns); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Solved = solved != 0
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// ListTurns returns the stored turns of a game in order.
func (s *Store) ListTurns(ctx context.Context, gameID int64) ([]model.TurnRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT turn, guess, marks, remaining FROM game_turns WHERE game_id = ? ORDER BY turn ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var turns []model.TurnRecord
	for rows.Next() {
		var t model.TurnRecord
		if err := rows.Scan(&t.Turn, &t.Guess, &t.Marks, &t.Remaining); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

// OpeningCounts counts first guesses across the games selected by cfg,
// most used first. With cfg.Last set only the most recent games count.
func (s *Store) OpeningCounts(ctx context.Context, cfg model.HistoryConfig, limit int) ([]GuessCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	where, args := historyFilter(cfg)
	last := -1
	if cfg.Last > 0 {
		last = cfg.Last
	}
	args = append(args, last, limit)
	query := fmt.Sprintf(`SELECT t.guess, COUNT(*) AS n
		FROM game_turns t
		JOIN (
			SELECT id FROM games
			WHERE %s
			ORDER BY ended_at DESC, id DESC
			LIMIT ?
		) g ON g.id = t.game_id
		WHERE t.turn = 1
		GROUP BY t.guess
		ORDER BY n DESC, t.guess ASC
		LIMIT ?`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []GuessCount
	for rows.Next() {
		var gc GuessCount
		if err := rows.Scan(&gc.Guess, &gc.Count); err != nil {
			return nil, err
		}
		result = append(result, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GuessCount is a guess with how often it was played.
type GuessCount struct {
	Guess string
	Count int
}

// historyFilter builds the WHERE clause shared by history queries.
func historyFilter(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
