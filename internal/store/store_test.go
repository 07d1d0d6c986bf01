package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordrank/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "wordrank.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	secrets := []string{"crane", "slate", "plumb"}
	sources := []string{model.SourcePlay, model.SourceSolve, model.SourcePlay}
	var ids []int64
	for i, secret := range secrets {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		game := model.GameRecord{
			StartedAt:    start,
			EndedAt:      start.Add(10 * time.Second),
			Lang:         "en",
			WordListPath: "dummy",
			Source:       sources[i],
			Secret:       secret,
			Solved:       i != 2,
			Turns:        i + 2,
			Weights:      "all",
		}
		turns := []model.TurnRecord{
			{Turn: 1, Guess: "arose", Marks: "..y..", Remaining: 120},
			{Turn: 2, Guess: secret, Marks: "ggggg", Remaining: 1},
		}
		id, err := st.InsertGame(ctx, game, turns)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}

	games, err := st.ListGames(ctx, model.HistoryConfig{Lang: "en"})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	if games[0].Secret != "crane" || !games[0].Solved || games[2].Solved {
		t.Fatalf("unexpected games: %+v", games)
	}

	played, err := st.ListGames(ctx, model.HistoryConfig{Source: model.SourcePlay})
	if err != nil {
		t.Fatalf("list played: %v", err)
	}
	if len(played) != 2 {
		t.Fatalf("expected 2 played games, got %d", len(played))
	}

	since := time.Unix(0, 0).Add(90 * time.Second)
	recent, err := st.ListGames(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Secret != "plumb" {
		t.Fatalf("unexpected recent games: %+v", recent)
	}

	turns, err := st.ListTurns(ctx, ids[1])
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 2 || turns[1].Guess != "slate" || turns[0].Remaining != 120 {
		t.Fatalf("unexpected turns: %+v", turns)
	}

	openings, err := st.OpeningCounts(ctx, model.HistoryConfig{Lang: "en"}, 5)
	if err != nil {
		t.Fatalf("opening counts: %v", err)
	}
	if len(openings) != 1 || openings[0].Guess != "arose" || openings[0].Count != 3 {
		t.Fatalf("unexpected openings: %+v", openings)
	}

	solveOpenings, err := st.OpeningCounts(ctx, model.HistoryConfig{Source: model.SourceSolve}, 5)
	if err != nil {
		t.Fatalf("solve opening counts: %v", err)
	}
	if len(solveOpenings) != 1 || solveOpenings[0].Count != 1 {
		t.Fatalf("unexpected solve openings: %+v", solveOpenings)
	}

	lastOpenings, err := st.OpeningCounts(ctx, model.HistoryConfig{Last: 2}, 5)
	if err != nil {
		t.Fatalf("last opening counts: %v", err)
	}
	if len(lastOpenings) != 1 || lastOpenings[0].Count != 2 {
		t.Fatalf("unexpected last openings: %+v", lastOpenings)
	}
}

func TestOpeningCountsManyGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	const games = 33000
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	gameStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO games (id, started_at, ended_at, lang, wordlist_path, source, secret, solved, turns, positional, weights)
		 VALUES (?, ?, ?, 'en', 'dummy', 'play', 'crane', 1, 2, 0, 'all')`)
	if err != nil {
		t.Fatalf("prepare games: %v", err)
	}
	turnStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO game_turns (game_id, turn, guess, marks, remaining) VALUES (?, 1, ?, '..y..', 10)`)
	if err != nil {
		t.Fatalf("prepare turns: %v", err)
	}
	base := time.Unix(0, 0)
	for i := 1; i <= games; i++ {
		ts := base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano)
		if _, err := gameStmt.ExecContext(ctx, i, ts, ts); err != nil {
			t.Fatalf("insert game %d: %v", i, err)
		}
		guess := "slate"
		if i%3 == 0 {
			guess = "arose"
		}
		if _, err := turnStmt.ExecContext(ctx, i, guess); err != nil {
			t.Fatalf("insert turn %d: %v", i, err)
		}
	}
	_ = gameStmt.Close()
	_ = turnStmt.Close()
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	openings, err := st.OpeningCounts(ctx, model.HistoryConfig{}, 5)
	if err != nil {
		t.Fatalf("opening counts: %v", err)
	}
	if len(openings) != 2 || openings[0].Guess != "slate" || openings[0].Count != 22000 || openings[1].Count != 11000 {
		t.Fatalf("unexpected openings: %+v", openings)
	}

	recent, err := st.OpeningCounts(ctx, model.HistoryConfig{Last: 3}, 5)
	if err != nil {
		t.Fatalf("recent opening counts: %v", err)
	}
	if len(recent) != 2 || recent[0].Guess != "slate" || recent[0].Count != 2 || recent[1].Count != 1 {
		t.Fatalf("unexpected recent openings: %+v", recent)
	}
}

func TestOpeningCountsEmpty(t *testing.T) {
	st := openTestStore(t)
	got, err := st.OpeningCounts(context.Background(), model.HistoryConfig{}, 5)
	if err != nil || got != nil {
		t.Fatalf("expected nil result, got %v (%v)", got, err)
	}
}
