package sim

import (
	"context"
	"errors"
	"testing"

	"landlord/internal/bot"
	"landlord/internal/config"
	"landlord/internal/domain"
	"landlord/internal/history"
	"landlord/internal/ports"
)

type recorder struct {
	records []ports.GameRecord
	err     error
}

func (r *recorder) RecordGame(ctx context.Context, rec ports.GameRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func TestPlayGameFinishesAndRecords(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 1000} {
		rec := &recorder{}
		runner, err := NewRunner(config.Default(), seed, rec, nil)
		if err != nil {
			t.Fatalf("NewRunner: %v", err)
		}

		game, err := runner.PlayGame(context.Background())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if game.Phase != domain.PhaseFinished || !game.Closed || game.WinnerID == "" {
			t.Fatalf("seed %d: phase=%s closed=%v winner=%q", seed, game.Phase, game.Closed, game.WinnerID)
		}
		if len(rec.records) != 1 {
			t.Fatalf("seed %d: recorded %d games", seed, len(rec.records))
		}

		var sum int64
		for _, v := range rec.records[0].Scores {
			sum += v
		}
		if sum != 0 {
			t.Errorf("seed %d: scores do not balance: %v", seed, rec.records[0].Scores)
		}
		if got := game.CardCount(); got != domain.FullDeckSize {
			t.Errorf("seed %d: card count = %d", seed, got)
		}
	}
}

func TestPlayGameReportsRecordFailure(t *testing.T) {
	boom := errors.New("disk full")
	runner, err := NewRunner(config.Default(), 7, &recorder{err: boom}, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := runner.PlayGame(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestPlayGameHonoursCancel(t *testing.T) {
	runner, err := NewRunner(config.Default(), 7, nil, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.PlayGame(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunnerWithHistoryStore(t *testing.T) {
	// The pool mixes easy, standard and hard bots.
	if err := bot.LoadIdentities("../../data/bot_identities.json"); err != nil {
		t.Fatalf("load identities: %v", err)
	}
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	runner, err := NewRunner(config.Default(), 11, store, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	const games = 3
	for i := 0; i < games; i++ {
		if _, err := runner.PlayGame(context.Background()); err != nil {
			t.Fatalf("game %d: %v", i, err)
		}
	}

	totals, err := store.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if len(totals) != len(runner.Players()) {
		t.Fatalf("totals for %d players, want %d", len(totals), len(runner.Players()))
	}
	var wins int
	for _, total := range totals {
		if total.Games != games {
			t.Errorf("%s played %d games", total.UserID, total.Games)
		}
		wins += total.Wins
	}
	if wins < games {
		t.Errorf("wins = %d, want at least %d", wins, games)
	}
}
