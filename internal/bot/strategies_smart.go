package bot

import (
	"landlord/internal/bot/brain"
	"landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// SmartBot plays like StandardBot but counts cards. It leads a combination
// nobody can beat when the rest of its hand goes out in one play, and it bombs
// an opponent without waiting for a threat when no heavier bomb is unseen.
type SmartBot struct {
	StandardBot
}

func (b *SmartBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}
	last := openTrick(game)
	moves := internal.GetValidMoves(player.Hand, last)
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}
	for _, m := range moves {
		if len(m.Cards) == len(player.Hand) {
			return Move{Cards: m.Cards}, nil
		}
	}

	mem := brain.Observe(game, player)
	switch {
	case last == nil:
		if m, ok := finishingMove(player.Hand, moves, mem, false); ok {
			return Move{Cards: m.Cards}, nil
		}
	case !ledByPartner(game, player):
		if m, ok := finishingMove(player.Hand, moves, mem, true); ok {
			return Move{Cards: m.Cards}, nil
		}
	}
	return b.StandardBot.CalculateMove(game, player)
}

// finishingMove returns an unbeatable move after which the rest of hand is a
// single legal play. With bombsOnly set, only bombs and the rocket qualify.
func finishingMove(hand []domain.Card, moves []internal.ValidMove, mem *brain.Memory, bombsOnly bool) (internal.ValidMove, bool) {
	sortCheapest(moves)
	for _, m := range moves {
		if bombsOnly && !m.IsBomb() {
			continue
		}
		if !mem.Unbeatable(m.Classification) {
			continue
		}
		rest := domain.RemoveCards(hand, m.Cards)
		if domain.Classify(rest).Category != domain.Invalid {
			return m, true
		}
	}
	return internal.ValidMove{}, false
}
