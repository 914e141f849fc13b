package app

import (
	"errors"
	"testing"

	"landlord/internal/domain"
)

func TestBiddingZeroTwoThree(t *testing.T) {
	svc, _, game, _ := dealtGame(t, 11)

	var bidders []string
	var evs []Event
	for _, score := range []int{0, 2, 3} {
		bidders = append(bidders, game.CurrentPlayerID)
		var err error
		evs, err = svc.Bid(game, game.CurrentPlayerID, score)
		if err != nil {
			t.Fatalf("bid %d error: %v", score, err)
		}
	}

	landlordID := bidders[2]
	if game.LandlordID != landlordID || game.CurrentBid != 3 || game.Multiplier != 3 {
		t.Fatalf("landlord=%s bid=%d multiplier=%d", game.LandlordID, game.CurrentBid, game.Multiplier)
	}
	set := findKind(t, evs, EventLandlordSet).Payload.(LandlordSetPayload)
	if set.LandlordID != landlordID || len(set.LandlordCards) != domain.HiddenCardCount || set.BidScore != 3 {
		t.Fatalf("unexpected landlord_set %+v", set)
	}
	update := findKind(t, evs, EventCardsUpdate)
	if len(update.Recipients) != 1 || update.Recipients[0] != landlordID {
		t.Fatalf("cards_update should go to the landlord only: %v", update.Recipients)
	}
	if n := len(game.Landlord().Hand); n != domain.HandSize+domain.HiddenCardCount {
		t.Fatalf("landlord hand = %d cards", n)
	}
	if game.CardCount() != domain.FullDeckSize {
		t.Fatalf("card count = %d", game.CardCount())
	}
	if game.Pending != domain.StepStartPlaying {
		t.Fatalf("pending = %s, want start_playing", game.Pending)
	}
}

func TestBiddingStopsAtMaxBid(t *testing.T) {
	svc, _, game, _ := dealtGame(t, 12)
	first := game.CurrentPlayerID

	evs, err := svc.Bid(game, first, domain.MaxBid)
	if err != nil {
		t.Fatalf("bid error: %v", err)
	}
	if countKind(evs, EventBidTurn) != 0 {
		t.Fatal("no further bid turns after the maximum bid")
	}
	if game.LandlordID != first || !game.Player(first).IsLandlord {
		t.Fatalf("landlord = %s, want %s", game.LandlordID, first)
	}
	for id, p := range game.Players {
		if id != first && p.HasBid {
			t.Fatalf("%s should not have been asked to bid", id)
		}
	}
}

func TestBidValidation(t *testing.T) {
	svc, _, game, _ := dealtGame(t, 13)
	first := game.CurrentPlayerID
	if _, err := svc.Bid(game, first, 1); err != nil {
		t.Fatalf("bid error: %v", err)
	}
	second := game.CurrentPlayerID

	tests := []struct {
		name   string
		userID string
		score  int
		want   error
	}{
		{name: "Not higher", userID: second, score: 1, want: ErrInvalidBid},
		{name: "Above max", userID: second, score: 4, want: ErrInvalidBid},
		{name: "Negative", userID: second, score: -1, want: ErrInvalidBid},
		{name: "Out of turn", userID: first, score: 2, want: ErrNotYourTurn},
		{name: "Unknown", userID: "ghost", score: 2, want: ErrUnknownPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Bid(game, tt.userID, tt.score); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if game.CurrentPlayerID != second || game.CurrentBid != 1 {
				t.Fatalf("rejected bid changed state: current=%s bid=%d", game.CurrentPlayerID, game.CurrentBid)
			}
		})
	}
}

func TestBidTimeoutDeclines(t *testing.T) {
	svc, clock, game, _ := dealtGame(t, 14)
	first := game.CurrentPlayerID

	clock.Advance(svc.Config().BidTimeout())
	evs := svc.Tick(game)

	timeout := findKind(t, evs, EventBidTimeout).Payload.(BidTimeoutPayload)
	if timeout.PlayerID != first {
		t.Fatalf("timeout for %s, want %s", timeout.PlayerID, first)
	}
	if p := game.Player(first); !p.HasBid || p.BidScore != 0 {
		t.Fatalf("timeout should record an implicit decline: %+v", p)
	}
	if game.CurrentPlayerID != game.NextInOrder(first) {
		t.Fatalf("turn did not advance: %s", game.CurrentPlayerID)
	}
}

func TestTwoRoundsWithoutBidForceRandomLandlord(t *testing.T) {
	svc, clock, game, _ := dealtGame(t, 15)

	var evs []Event
	for i := 0; i < domain.PlayerCount; i++ {
		var err error
		if evs, err = svc.Bid(game, game.CurrentPlayerID, 0); err != nil {
			t.Fatalf("bid error: %v", err)
		}
	}
	if countKind(evs, EventRebid) != 1 || game.Pending != domain.StepRedeal {
		t.Fatalf("expected a rebid, pending=%s", game.Pending)
	}

	clock.Advance(svc.Config().RebidDelay())
	evs = svc.Tick(game)
	if countKind(evs, EventCardsDealt) != domain.PlayerCount || countKind(evs, EventBidTurn) != 1 {
		t.Fatalf("redeal should deal and open bidding again, got %d events", len(evs))
	}
	for _, p := range game.Players {
		if p.HasBid {
			t.Fatalf("bid state not reset for %s", p.UserID)
		}
	}

	for i := 0; i < domain.PlayerCount; i++ {
		var err error
		if evs, err = svc.Bid(game, game.CurrentPlayerID, 0); err != nil {
			t.Fatalf("bid error: %v", err)
		}
	}
	random := findKind(t, evs, EventRandomLandlord).Payload.(RandomLandlordPayload)
	if game.LandlordID != random.LandlordID || game.Player(random.LandlordID) == nil {
		t.Fatalf("random landlord %q not applied", random.LandlordID)
	}
	if game.CurrentBid != 1 || game.Multiplier != 1 {
		t.Fatalf("bid=%d multiplier=%d, want 1", game.CurrentBid, game.Multiplier)
	}
	if countKind(evs, EventLandlordSet) != 1 {
		t.Fatal("random landlord must still be revealed")
	}
}
