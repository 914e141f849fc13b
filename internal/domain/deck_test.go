package domain

import (
	"math/rand"
	"testing"
)

func TestDealPartitionsDeck(t *testing.T) {
	deck := NewDeck(true).Shuffle(rand.New(rand.NewSource(7)))
	seen := make(map[Card]bool, FullDeckSize)
	for i := 0; i < PlayerCount; i++ {
		hand := deck.Deal(HandSize)
		if len(hand) != HandSize {
			t.Fatalf("hand %d has %d cards", i, len(hand))
		}
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
	hidden := deck.Deal(HiddenCardCount)
	if len(hidden) != HiddenCardCount {
		t.Fatalf("expected %d hidden cards, got %d", HiddenCardCount, len(hidden))
	}
	for _, c := range hidden {
		if seen[c] {
			t.Fatalf("hidden card %s already dealt", c)
		}
		seen[c] = true
	}
	if deck.Remaining() != 0 || len(seen) != FullDeckSize {
		t.Fatalf("remaining=%d seen=%d", deck.Remaining(), len(seen))
	}
}

func TestNewDeckWithoutJokers(t *testing.T) {
	deck := NewDeck(false)
	if deck.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", deck.Remaining())
	}
	for _, c := range deck.Cards() {
		if c.IsJoker() {
			t.Fatalf("unexpected joker %s", c)
		}
	}
}

func TestSortHand(t *testing.T) {
	hand := cards(t, "joker_B", "spade_2", "heart_3", "spade_3", "club_K")
	SortHand(hand)
	want := []string{"spade_3", "heart_3", "club_K", "spade_2", "joker_B"}
	for i, id := range CardIDs(hand) {
		if id != want[i] {
			t.Fatalf("SortHand = %v, want %v", CardIDs(hand), want)
		}
	}
}
