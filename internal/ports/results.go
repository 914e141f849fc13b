package ports

import (
	"context"
	"time"
)

// GameRecord is the archived outcome of a finished game.
type GameRecord struct {
	GameID      string           `json:"game_id"`
	MatchID     string           `json:"match_id,omitempty"`
	LandlordID  string           `json:"landlord_id"`
	WinnerID    string           `json:"winner_id"`
	LandlordWin bool             `json:"landlord_win"`
	Bid         int              `json:"bid"`
	Multiplier  int              `json:"multiplier"`
	BaseScore   int64            `json:"base_score"`
	Scores      map[string]int64 `json:"scores"`
	FinishedAt  time.Time        `json:"finished_at"`
}

// ResultsPort archives finished games.
type ResultsPort interface {
	RecordGame(ctx context.Context, rec GameRecord) error
}
