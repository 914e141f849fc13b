package bot

import (
	"landlord/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Bid asks the agent for its bid on the current auction.
func (a *Agent) Bid(game *domain.Game) int {
	player, ok := game.Players[a.ID]
	if !ok {
		return 0
	}
	return a.Strategy.DecideBid(game, player)
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		// Agent is not part of this game
		return Move{Pass: true}, nil
	}

	move, err := a.Strategy.CalculateMove(game, player)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}
