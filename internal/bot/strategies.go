package bot

import (
	"sort"

	"landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// GreedyBot always plays the cheapest legal move and never passes when it can beat.
type GreedyBot struct {
	Tuning Tuning
}

func (b *GreedyBot) DecideBid(game *domain.Game, player *domain.Player) int {
	return b.Tuning.bidFor(internal.ProfileHand(player.Hand).Strength(), game.CurrentBid)
}

func (b *GreedyBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}
	moves := internal.GetValidMoves(player.Hand, openTrick(game))
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}
	sortCheapest(moves)
	return Move{Cards: moves[0].Cards}, nil
}

// StandardBot sheds its lowest cards in the largest group it can, does not
// overtake a partner, keeps bombs intact, and spends them only against a threat.
type StandardBot struct {
	Tuning Tuning
}

func (b *StandardBot) DecideBid(game *domain.Game, player *domain.Player) int {
	return b.Tuning.bidFor(internal.ProfileHand(player.Hand).Strength(), game.CurrentBid)
}

func (b *StandardBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
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

	if last == nil {
		return Move{Cards: b.lead(player.Hand, moves).Cards}, nil
	}

	if ledByPartner(game, player) {
		return Move{Pass: true}, nil
	}

	bombRanks := bombRanks(player.Hand)
	var plain, bombs []internal.ValidMove
	for _, m := range moves {
		switch {
		case m.IsBomb():
			bombs = append(bombs, m)
		case !breaksBomb(m.Cards, bombRanks):
			plain = append(plain, m)
		}
	}
	if len(plain) > 0 {
		sortCheapest(plain)
		return Move{Cards: plain[0].Cards}, nil
	}
	if len(bombs) > 0 && b.threatened(game, player) {
		sortCheapest(bombs)
		return Move{Cards: bombs[0].Cards}, nil
	}
	return Move{Pass: true}, nil
}

// lead picks the non-bomb move that sheds the most cards while including the hand's lowest rank.
func (b *StandardBot) lead(hand []domain.Card, moves []internal.ValidMove) internal.ValidMove {
	lowest, _ := domain.LowestCard(hand)
	bombRanks := bombRanks(hand)

	var intact []internal.ValidMove
	best := -1
	for _, m := range moves {
		if m.IsBomb() || breaksBomb(m.Cards, bombRanks) {
			continue
		}
		intact = append(intact, m)
		if !containsRank(m.Cards, lowest.Rank) {
			continue
		}
		if best < 0 || len(m.Cards) > len(intact[best].Cards) {
			best = len(intact) - 1
		}
	}
	switch {
	case best >= 0:
		return intact[best]
	case len(intact) > 0:
		sortCheapest(intact)
		return intact[0]
	}
	sortCheapest(moves)
	return moves[0]
}

// threatened reports whether an opponent could go out soon or the game is in its endgame.
func (b *StandardBot) threatened(game *domain.Game, player *domain.Player) bool {
	if internal.DetectPhase(game) == internal.PhaseEnd {
		return true
	}
	for _, id := range game.TurnOrder {
		opp := game.Player(id)
		if opp == nil || opp == player || isPartner(player, opp) {
			continue
		}
		if len(opp.Hand) <= b.Tuning.ThreatThreshold {
			return true
		}
	}
	return false
}

// openTrick returns the play that must be beaten, or nil when the player leads.
func openTrick(game *domain.Game) *domain.Hand {
	if game.MustPlay {
		return nil
	}
	return game.LastPlayed
}

// ledByPartner reports whether the play on the table belongs to player's fellow farmer.
func ledByPartner(game *domain.Game, player *domain.Player) bool {
	last := game.Player(game.LastPlayerID)
	return last != nil && isPartner(player, last)
}

func isPartner(a, b *domain.Player) bool {
	return a.UserID != b.UserID && !a.IsLandlord && !b.IsLandlord
}

// sortCheapest orders moves so bombs come last, then by weight, then by shedding more cards.
func sortCheapest(moves []internal.ValidMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		bi, bj := moves[i].IsBomb(), moves[j].IsBomb()
		if bi != bj {
			return !bi
		}
		wi, wj := moves[i].Classification.Weight, moves[j].Classification.Weight
		if wi != wj {
			return wi < wj
		}
		return len(moves[i].Cards) > len(moves[j].Cards)
	})
}

func bombRanks(hand []domain.Card) map[domain.Rank]bool {
	counts := make(map[domain.Rank]int)
	for _, c := range hand {
		counts[c.Rank]++
	}
	out := make(map[domain.Rank]bool)
	for r, n := range counts {
		if n == 4 {
			out[r] = true
		}
	}
	if counts[domain.RankSmallJoker] == 1 && counts[domain.RankBigJoker] == 1 {
		out[domain.RankSmallJoker] = true
		out[domain.RankBigJoker] = true
	}
	return out
}

func breaksBomb(cards []domain.Card, bombRanks map[domain.Rank]bool) bool {
	for _, c := range cards {
		if bombRanks[c.Rank] {
			return true
		}
	}
	return false
}

func containsRank(cards []domain.Card, rank domain.Rank) bool {
	for _, c := range cards {
		if c.Rank == rank {
			return true
		}
	}
	return false
}
