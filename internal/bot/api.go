package bot

import (
	"landlord/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// DecideBid returns 0 to decline or a score above the current bid.
	DecideBid(game *domain.Game, player *domain.Player) int
	CalculateMove(game *domain.Game, player *domain.Player) (Move, error)
}
