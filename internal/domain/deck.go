package domain

import (
	"math/rand"
	"sort"
)

const (
	// FullDeckSize is the number of cards in a deck with both jokers.
	FullDeckSize = 54
	// HandSize is the number of cards dealt to each player.
	HandSize = 17
	// HiddenCardCount is the number of cards reserved for the landlord.
	HiddenCardCount = 3
)

// Deck is an ordered pile of cards consumed from the front.
type Deck struct {
	cards []Card
}

// NewDeck returns a sorted deck of 54 cards, or 52 when withJokers is false.
func NewDeck(withJokers bool) *Deck {
	cards := make([]Card, 0, FullDeckSize)
	for _, s := range StandardSuits {
		for r := Rank3; r <= Rank2; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	if withJokers {
		cards = append(cards, SmallJoker, BigJoker)
	}
	return &Deck{cards: cards}
}

// Shuffle randomises the remaining cards in place using rng.
func (d *Deck) Shuffle(rng *rand.Rand) *Deck {
	rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
	return d
}

// Deal removes up to n cards from the front of the deck.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out
}

// Remaining returns how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// SortHand orders cards by ascending weight, breaking ties by suit for stable display.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank < cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}
