package internal

import "landlord/internal/domain"

// HandProfile summarizes the high-value structure of a hand.
type HandProfile struct {
	TotalCards int
	Bombs      int
	HasRocket  bool
	Jokers     int
	Twos       int
	Aces       int
	Singles    int // ranks held exactly once, excluding jokers and twos
}

// ProfileHand counts the control cards and loose singles in a hand.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{TotalCards: len(hand)}
	groups := groupByRank(hand)

	for rank, cards := range groups {
		switch {
		case rank == domain.RankSmallJoker || rank == domain.RankBigJoker:
			profile.Jokers++
		case rank == domain.Rank2:
			profile.Twos += len(cards)
		case rank == domain.RankA:
			profile.Aces += len(cards)
		}
		if len(cards) == 4 {
			profile.Bombs++
		}
		if len(cards) == 1 && rank < domain.Rank2 {
			profile.Singles++
		}
	}
	profile.HasRocket = profile.Jokers == 2
	return profile
}

// Strength scores how well the hand can seize and hold the lead.
func (p HandProfile) Strength() int {
	score := 2*p.Twos + p.Aces/2 + 3*p.Bombs
	switch {
	case p.HasRocket:
		score += 6
	case p.Jokers == 1:
		score += 2
	}
	if p.Singles > 5 {
		score -= p.Singles - 5
	}
	return score
}
