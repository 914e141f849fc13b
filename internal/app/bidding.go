package app

import "landlord/internal/domain"

// beginBidding resets the auction and opens the first bid turn at a random seat.
func (s *Service) beginBidding(game *domain.Game) []Event {
	game.Phase = domain.PhaseBidding
	game.CurrentBid = 0
	game.HighestBidder = ""
	game.LandlordID = ""
	game.BidRound = 0
	game.BidStartIndex = s.rng.Intn(domain.PlayerCount)

	events := []Event{{
		Kind:    EventBiddingStart,
		Payload: BiddingStartPayload{FirstBidder: game.TurnOrder[game.BidStartIndex]},
	}}
	return append(events, s.bidTurn(game)...)
}

func (s *Service) bidTurn(game *domain.Game) []Event {
	bidder := game.TurnOrder[(game.BidStartIndex+game.BidRound)%domain.PlayerCount]
	game.CurrentPlayerID = bidder
	game.Suspend(domain.StepAwaitBid, s.after(s.cfg.BidTimeout()))

	return []Event{{
		Kind: EventBidTurn,
		Payload: BidTurnPayload{
			PlayerID:   bidder,
			CurrentBid: game.CurrentBid,
			Timeout:    s.cfg.BidTimeoutSeconds,
		},
	}}
}

// Bid records the current bidder's score. 0 declines; any other score must
// exceed the current bid and not exceed MaxBid.
func (s *Service) Bid(game *domain.Game, userID string, score int) ([]Event, error) {
	if game.Phase != domain.PhaseBidding || game.Pending != domain.StepAwaitBid {
		return nil, ErrWrongPhase
	}
	p := game.Player(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentPlayerID != userID {
		return nil, ErrNotYourTurn
	}
	if p.HasBid {
		return nil, ErrAlreadyActed
	}
	if score < 0 || score > domain.MaxBid || (score > 0 && score <= game.CurrentBid) {
		return nil, ErrInvalidBid
	}

	p.HasBid = true
	p.BidScore = score
	if score > game.CurrentBid {
		game.CurrentBid = score
		game.HighestBidder = userID
		game.LandlordID = userID
	}

	events := []Event{{
		Kind: EventBidResult,
		Payload: BidResultPayload{
			PlayerID:      userID,
			Score:         score,
			CurrentBid:    game.CurrentBid,
			HighestBidder: game.HighestBidder,
		},
	}}
	return append(events, s.advanceBidding(game)...), nil
}

func (s *Service) bidTimedOut(game *domain.Game) []Event {
	p := game.Current()
	if p == nil {
		return nil
	}
	p.HasBid = true
	p.BidScore = 0

	events := []Event{{Kind: EventBidTimeout, Payload: BidTimeoutPayload{PlayerID: p.UserID}}}
	return append(events, s.advanceBidding(game)...)
}

func (s *Service) advanceBidding(game *domain.Game) []Event {
	game.BidRound++
	if game.CurrentBid < domain.MaxBid && game.BidRound < domain.PlayerCount {
		return s.bidTurn(game)
	}

	game.CurrentPlayerID = ""
	if game.HighestBidder != "" {
		return s.assignLandlord(game)
	}

	game.BidAttempts++
	if game.BidAttempts < maxBidAttempts {
		game.Suspend(domain.StepRedeal, s.after(s.cfg.RebidDelay()))
		return []Event{{Kind: EventRebid, Payload: RebidPayload{Message: msgRebid}}}
	}

	game.LandlordID = game.TurnOrder[s.rng.Intn(domain.PlayerCount)]
	game.HighestBidder = game.LandlordID
	game.CurrentBid = 1
	events := []Event{{Kind: EventRandomLandlord, Payload: RandomLandlordPayload{LandlordID: game.LandlordID}}}
	return append(events, s.assignLandlord(game)...)
}

// assignLandlord hands the hidden cards to the landlord, seeds the multiplier
// with the winning bid and reveals both to the table.
func (s *Service) assignLandlord(game *domain.Game) []Event {
	landlord := game.Landlord()
	landlord.IsLandlord = true
	landlord.Hand = append(landlord.Hand, game.HiddenCards...)
	domain.SortHand(landlord.Hand)
	game.Multiplier = game.CurrentBid

	game.Suspend(domain.StepStartPlaying, s.after(s.cfg.RevealDelay()))
	return []Event{
		{
			Kind: EventLandlordSet,
			Payload: LandlordSetPayload{
				LandlordID:    landlord.UserID,
				LandlordCards: cloneCards(game.HiddenCards),
				BidScore:      game.CurrentBid,
				Multiplier:    game.Multiplier,
			},
		},
		{
			Kind:       EventCardsUpdate,
			Payload:    CardsUpdatePayload{Cards: cloneCards(landlord.Hand)},
			Recipients: []string{landlord.UserID},
		},
	}
}
