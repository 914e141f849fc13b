package domain

// ScoreResult is one participant's outcome of a finished game.
type ScoreResult struct {
	PlayerID   string `json:"player_id"`
	IsLandlord bool   `json:"is_landlord"`
	IsWinner   bool   `json:"is_winner"`
	Score      int64  `json:"score"`
}

// Settlement is the scored outcome of a game.
type Settlement struct {
	WinnerID       string           `json:"winner_id"`
	LandlordWin    bool             `json:"is_landlord_win"`
	Multiplier     int              `json:"multiplier"`
	FinalScore     int64            `json:"final_score"`
	Results        []ScoreResult    `json:"results"`
	BalanceChanges map[string]int64 `json:"-"`
}

// Settle converts the winner, landlord and multiplier into per-player score deltas.
// The landlord wins or loses double the final score; each farmer wins or loses it once.
func Settle(playerIDs []string, winnerID, landlordID string, baseScore int64, multiplier int) Settlement {
	final := baseScore * int64(multiplier)
	landlordWin := winnerID == landlordID

	s := Settlement{
		WinnerID:       winnerID,
		LandlordWin:    landlordWin,
		Multiplier:     multiplier,
		FinalScore:     final,
		Results:        make([]ScoreResult, 0, len(playerIDs)),
		BalanceChanges: make(map[string]int64, len(playerIDs)),
	}

	for _, id := range playerIDs {
		isLandlord := id == landlordID
		var score int64
		switch {
		case landlordWin && isLandlord:
			score = 2 * final
		case landlordWin:
			score = -final
		case isLandlord:
			score = -2 * final
		default:
			score = final
		}
		s.Results = append(s.Results, ScoreResult{
			PlayerID:   id,
			IsLandlord: isLandlord,
			IsWinner:   isLandlord == landlordWin,
			Score:      score,
		})
		s.BalanceChanges[id] = score
	}
	return s
}
