package brain

import (
	"testing"

	"landlord/internal/domain"
)

func cards(t *testing.T, ids ...string) []domain.Card {
	t.Helper()
	out, err := domain.ParseCards(ids)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return out
}

func TestObserveCountsUnseenCards(t *testing.T) {
	me := &domain.Player{Hand: cards(t, "spade_2", "heart_2", "joker_B")}
	game := &domain.Game{Played: cards(t, "club_2", "spade_A")}

	m := Observe(game, me)
	tests := []struct {
		rank domain.Rank
		want int
	}{
		{domain.Rank2, 1},
		{domain.RankA, 3},
		{domain.RankBigJoker, 0},
		{domain.RankSmallJoker, 1},
		{domain.Rank3, 4},
	}
	for _, test := range tests {
		if got := m.Outstanding(test.rank); got != test.want {
			t.Errorf("Outstanding(%v) = %d, want %d", test.rank, got, test.want)
		}
	}
	if m.RocketOut() {
		t.Error("rocket cannot be out while the bot holds the big joker")
	}
}

func TestIsBoss(t *testing.T) {
	me := &domain.Player{Hand: cards(t, "joker_B", "joker_S", "spade_2")}
	game := &domain.Game{Played: cards(t, "heart_2", "club_2", "diamond_2")}
	m := Observe(game, me)

	if !m.IsBoss(cards(t, "spade_2")[0]) {
		t.Error("last 2 with both jokers in hand should be boss")
	}
	if m.IsBoss(cards(t, "spade_K")[0]) {
		t.Error("king is not boss while aces are unseen")
	}
}

func TestUnbeatable(t *testing.T) {
	// The bot holds both jokers and every 2, so nothing can beat its 2s or
	// any bomb, but unseen bombs of lower ranks remain.
	me := &domain.Player{Hand: cards(t, "joker_B", "joker_S", "spade_2", "heart_2", "club_2", "diamond_2")}
	m := Observe(&domain.Game{}, me)

	tests := []struct {
		name string
		play []string
		want bool
	}{
		{name: "PairOfTwosFacesUnseenBombs", play: []string{"spade_2", "heart_2"}, want: false},
		{name: "BombOfTwos", play: []string{"spade_2", "heart_2", "club_2", "diamond_2"}, want: true},
		{name: "Rocket", play: []string{"joker_S", "joker_B"}, want: true},
		{name: "StraightNeverSafe", play: []string{"spade_3", "spade_4", "spade_5", "spade_6", "spade_7"}, want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := m.Unbeatable(domain.Classify(cards(t, test.play...))); got != test.want {
				t.Fatalf("Unbeatable() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestUnbeatableSingleLateGame(t *testing.T) {
	// Every bomb is broken and the jokers are gone; only one ace remains unseen.
	var played []string
	for _, r := range []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"} {
		played = append(played, "spade_"+r)
	}
	played = append(played, "joker_S", "joker_B", "spade_A", "heart_A", "club_A")
	me := &domain.Player{Hand: cards(t, "spade_2")}
	m := Observe(&domain.Game{Played: cards(t, played...)}, me)

	if !m.Unbeatable(domain.Classify(cards(t, "heart_2"))) {
		t.Error("a 2 above every unseen single should be unbeatable")
	}
	if m.Unbeatable(domain.Classify(cards(t, "heart_K"))) {
		t.Error("a king loses to the unseen ace")
	}
}
