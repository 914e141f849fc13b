// Package brain holds what a bot can infer about the cards it cannot see.
package brain

import "landlord/internal/domain"

// Memory counts, per rank, the cards still out of the bot's sight: the full
// deck minus its own hand and everything already played. Hidden cards not yet
// taken by the landlord count as outstanding.
type Memory struct {
	outstanding [domain.RankBigJoker + 1]int
}

// Observe builds the memory of player at the current point of game.
func Observe(game *domain.Game, player *domain.Player) *Memory {
	m := &Memory{}
	for r := domain.Rank3; r <= domain.Rank2; r++ {
		m.outstanding[r] = len(domain.StandardSuits)
	}
	m.outstanding[domain.RankSmallJoker] = 1
	m.outstanding[domain.RankBigJoker] = 1

	if player != nil {
		m.remove(player.Hand)
	}
	if game != nil {
		m.remove(game.Played)
	}
	return m
}

func (m *Memory) remove(cards []domain.Card) {
	for _, c := range cards {
		if int(c.Rank) < len(m.outstanding) && m.outstanding[c.Rank] > 0 {
			m.outstanding[c.Rank]--
		}
	}
}

// Outstanding returns how many cards of rank the bot has not seen.
func (m *Memory) Outstanding(r domain.Rank) int {
	if int(r) >= len(m.outstanding) {
		return 0
	}
	return m.outstanding[r]
}

// IsBoss reports whether no unseen card outranks c.
func (m *Memory) IsBoss(c domain.Card) bool {
	for r := c.Rank + 1; r <= domain.RankBigJoker; r++ {
		if m.outstanding[r] > 0 {
			return false
		}
	}
	return true
}

// RocketOut reports whether both jokers are still unseen.
func (m *Memory) RocketOut() bool {
	return m.outstanding[domain.RankSmallJoker] > 0 && m.outstanding[domain.RankBigJoker] > 0
}

// BombAbove reports whether unseen cards could form a bomb heavier than weight, or the rocket.
func (m *Memory) BombAbove(weight int) bool {
	if m.RocketOut() {
		return true
	}
	for r := domain.Rank3; r <= domain.Rank2; r++ {
		if int(r) > weight && m.outstanding[r] == len(domain.StandardSuits) {
			return true
		}
	}
	return false
}

// Unbeatable reports whether no combination formed from unseen cards could
// beat cls. Sequences and four_two are never considered safe.
func (m *Memory) Unbeatable(cls domain.Classification) bool {
	switch cls.Category {
	case domain.Rocket:
		return true
	case domain.Bomb:
		return !m.BombAbove(cls.Weight)
	case domain.Single:
		return !m.BombAbove(0) && !m.groupAbove(cls.Weight, 1)
	case domain.Pair:
		return !m.BombAbove(0) && !m.groupAbove(cls.Weight, 2)
	case domain.Triple, domain.TripleOne, domain.TriplePair:
		return !m.BombAbove(0) && !m.groupAbove(cls.Weight, 3)
	}
	return false
}

// groupAbove reports whether some rank heavier than weight has at least size unseen cards.
func (m *Memory) groupAbove(weight, size int) bool {
	for r := domain.Rank3; r <= domain.RankBigJoker; r++ {
		if int(r) > weight && m.outstanding[r] >= size {
			return true
		}
	}
	return false
}
