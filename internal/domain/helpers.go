package domain

// RemoveCards removes the specified cards from a hand and returns the updated hand.
// Cards not present in the hand are ignored; callers check ownership with HasCards first.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// HasCards reports whether every card in want is held in hand.
func HasCards(hand []Card, want []Card) bool {
	held := make(map[Card]int, len(hand))
	for _, c := range hand {
		held[c]++
	}
	for _, c := range want {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

// HasDuplicates reports whether the same card identity appears twice.
func HasDuplicates(cards []Card) bool {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// LowestCard returns the lowest-weight card of a hand.
func LowestCard(hand []Card) (Card, bool) {
	if len(hand) == 0 {
		return Card{}, false
	}
	lowest := hand[0]
	for _, c := range hand[1:] {
		if c.Rank < lowest.Rank || (c.Rank == lowest.Rank && c.Suit < lowest.Suit) {
			lowest = c
		}
	}
	return lowest, true
}
