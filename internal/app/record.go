package app

import (
	"time"

	"landlord/internal/domain"
	"landlord/internal/ports"
)

// Record converts a settled game into its archive form. It reports false for
// games that ended without a settlement.
func Record(game *domain.Game, matchID string, baseScore int64, at time.Time) (ports.GameRecord, bool) {
	if game == nil || game.Settlement == nil {
		return ports.GameRecord{}, false
	}
	st := game.Settlement
	scores := make(map[string]int64, len(st.BalanceChanges))
	for id, delta := range st.BalanceChanges {
		scores[id] = delta
	}
	return ports.GameRecord{
		GameID:      game.ID,
		MatchID:     matchID,
		LandlordID:  game.LandlordID,
		WinnerID:    st.WinnerID,
		LandlordWin: st.LandlordWin,
		Bid:         game.CurrentBid,
		Multiplier:  st.Multiplier,
		BaseScore:   baseScore,
		Scores:      scores,
		FinishedAt:  at.UTC(),
	}, true
}
