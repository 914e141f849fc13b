// Package history archives finished landlord games in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"landlord/internal/ports"
)

var _ ports.ResultsPort = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id           TEXT PRIMARY KEY,
	match_id     TEXT NOT NULL DEFAULT '',
	landlord_id  TEXT NOT NULL,
	winner_id    TEXT NOT NULL,
	landlord_win INTEGER NOT NULL,
	bid          INTEGER NOT NULL,
	multiplier   INTEGER NOT NULL,
	base_score   INTEGER NOT NULL,
	finished_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS game_scores (
	game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	delta   INTEGER NOT NULL,
	PRIMARY KEY (game_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_game_scores_user ON game_scores(user_id);
`

// Store is a SQLite backed ResultsPort.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// PlayerTotal is the aggregate record of one player.
type PlayerTotal struct {
	UserID string
	Games  int
	Wins   int
	Score  int64
}

// Open opens (and creates if missing) the database at path and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordGame inserts the game and its per-player deltas in one transaction.
// Recording the same game twice is a no-op.
func (s *Store) RecordGame(ctx context.Context, rec ports.GameRecord) error {
	if rec.GameID == "" {
		return errors.New("history: game id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO games
		(id, match_id, landlord_id, winner_id, landlord_win, bid, multiplier, base_score, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.MatchID, rec.LandlordID, rec.WinnerID, rec.LandlordWin,
		rec.Bid, rec.Multiplier, rec.BaseScore, rec.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	for userID, delta := range rec.Scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO game_scores (game_id, user_id, delta) VALUES (?, ?, ?)`,
			rec.GameID, userID, delta); err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}
	return tx.Commit()
}

// ByPlayer returns the games userID took part in, most recent first.
func (s *Store) ByPlayer(ctx context.Context, userID string) ([]ports.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT g.id, g.match_id, g.landlord_id, g.winner_id,
			g.landlord_win, g.bid, g.multiplier, g.base_score, g.finished_at
		FROM games g JOIN game_scores s ON s.game_id = g.id
		WHERE s.user_id = ?
		ORDER BY g.finished_at DESC, g.id`, userID)
	if err != nil {
		return nil, err
	}

	var records []ports.GameRecord
	for rows.Next() {
		var (
			rec      ports.GameRecord
			finished string
		)
		if err := rows.Scan(&rec.GameID, &rec.MatchID, &rec.LandlordID, &rec.WinnerID,
			&rec.LandlordWin, &rec.Bid, &rec.Multiplier, &rec.BaseScore, &finished); err != nil {
			rows.Close()
			return nil, err
		}
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		records = append(records, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		scores, err := s.scores(ctx, records[i].GameID)
		if err != nil {
			return nil, err
		}
		records[i].Scores = scores
	}
	return records, nil
}

func (s *Store) scores(ctx context.Context, gameID string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, delta FROM game_scores WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]int64)
	for rows.Next() {
		var (
			userID string
			delta  int64
		)
		if err := rows.Scan(&userID, &delta); err != nil {
			return nil, err
		}
		scores[userID] = delta
	}
	return scores, rows.Err()
}

// Totals aggregates games, wins and score per player, best score first.
func (s *Store) Totals(ctx context.Context) ([]PlayerTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT user_id, COUNT(*), SUM(CASE WHEN delta > 0 THEN 1 ELSE 0 END), SUM(delta)
		FROM game_scores
		GROUP BY user_id
		ORDER BY SUM(delta) DESC, user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []PlayerTotal
	for rows.Next() {
		var t PlayerTotal
		if err := rows.Scan(&t.UserID, &t.Games, &t.Wins, &t.Score); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
