package app

import (
	"math/rand"
	"time"

	"landlord/internal/config"
	"landlord/internal/domain"

	"github.com/google/uuid"
)

// Service contains landlord use-cases operating on domain state.
// A Service is stateless apart from its rng; all game state lives in the
// *domain.Game passed to each call, which callers must not share between goroutines.
type Service struct {
	cfg   config.GameConfig
	rng   *rand.Rand
	clock func() time.Time
}

// NewService constructs a Service. A nil rng gets a time-seeded default and a nil clock uses time.Now.
func NewService(cfg config.GameConfig, rng *rand.Rand, clock func() time.Time) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{cfg: cfg, rng: rng, clock: clock}
}

// Config returns the table configuration the service runs with.
func (s *Service) Config() config.GameConfig {
	return s.cfg
}

// StartGame creates a game for exactly three participants, randomizes the turn
// order and schedules the deal after the start countdown.
func (s *Service) StartGame(playerIDs []string) (*domain.Game, []Event, error) {
	ids := make([]string, 0, domain.PlayerCount)
	seen := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	switch {
	case len(ids) < domain.PlayerCount:
		return nil, nil, ErrTooFewPlayers
	case len(ids) > domain.PlayerCount:
		return nil, nil, ErrTooManyPlayers
	}

	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	game := &domain.Game{
		ID:         uuid.NewString(),
		Phase:      domain.PhaseWaiting,
		Players:    make(map[string]*domain.Player, domain.PlayerCount),
		Multiplier: 1,
	}
	for seat, id := range ids {
		game.TurnOrder[seat] = id
		game.Players[id] = &domain.Player{UserID: id, Seat: seat}
	}
	game.Suspend(domain.StepDeal, s.after(s.cfg.StartDelay()))

	return game, []Event{{
		Kind: EventGameStarting,
		Payload: GameStartingPayload{
			GameID:    game.ID,
			Message:   msgStarting,
			Countdown: s.cfg.StartDelaySeconds,
		},
	}}, nil
}

// Tick runs every continuation whose deadline has passed and returns the resulting events.
func (s *Service) Tick(game *domain.Game) []Event {
	if game == nil {
		return nil
	}
	now := s.clock()
	var events []Event
	for i := 0; i < maxStepsPerTick && game.Due(now); i++ {
		step := game.Pending
		game.Suspend(domain.StepNone, time.Time{})
		events = append(events, s.runStep(game, step)...)
	}
	return events
}

func (s *Service) runStep(game *domain.Game, step domain.Step) []Event {
	switch step {
	case domain.StepDeal:
		return append(s.deal(game), s.beginBidding(game)...)
	case domain.StepAwaitBid:
		return s.bidTimedOut(game)
	case domain.StepRedeal:
		for _, p := range game.Players {
			p.HasBid = false
			p.BidScore = 0
		}
		return append(s.deal(game), s.beginBidding(game)...)
	case domain.StepStartPlaying:
		return s.startPlaying(game)
	case domain.StepAwaitPlay:
		return s.playTimedOut(game)
	case domain.StepClose:
		game.Closed = true
	}
	return nil
}

// deal shuffles a fresh deck into three hands of 17 and three hidden cards.
func (s *Service) deal(game *domain.Game) []Event {
	deck := domain.NewDeck(true).Shuffle(s.rng)
	events := make([]Event, 0, domain.PlayerCount+1)

	for seat, id := range game.TurnOrder {
		p := game.Players[id]
		p.Hand = deck.Deal(domain.HandSize)
		p.IsLandlord = false
		domain.SortHand(p.Hand)
		events = append(events, Event{
			Kind:       EventCardsDealt,
			Payload:    CardsDealtPayload{Cards: cloneCards(p.Hand), Position: seat},
			Recipients: []string{id},
		})
	}
	game.HiddenCards = deck.Deal(domain.HiddenCardCount)
	game.Played = nil

	events = append(events, Event{
		Kind: EventDealComplete,
		Payload: DealCompletePayload{
			Message:            msgDealComplete,
			LandlordCardsCount: len(game.HiddenCards),
			Attempt:            game.BidAttempts + 1,
		},
	})
	return events
}

// Leave aborts an unfinished game when a participant drops out. There is no settlement.
func (s *Service) Leave(game *domain.Game, userID string) ([]Event, error) {
	if game.Player(userID) == nil {
		return nil, ErrUnknownPlayer
	}
	if !game.InProgress() {
		return nil, nil
	}
	return s.abort(game, userID, ReasonPlayerLeft), nil
}

func (s *Service) abort(game *domain.Game, userID, reason string) []Event {
	game.Phase = domain.PhaseFinished
	game.EndReason = reason
	game.CurrentPlayerID = ""
	game.Suspend(domain.StepClose, s.after(s.cfg.ErrorDelay()))
	return []Event{{
		Kind:    EventErrorEnd,
		Payload: ErrorEndPayload{Reason: reason, PlayerID: userID},
	}}
}

// Snapshot builds the requester's game:state view. Opponents' hands are reduced to counts.
func (s *Service) Snapshot(game *domain.Game, userID string) (Event, error) {
	me := game.Player(userID)
	if me == nil {
		return Event{}, ErrUnknownPlayer
	}

	payload := StatePayload{
		GameID:          game.ID,
		Phase:           game.Phase,
		YourCards:       cloneCards(me.Hand),
		IsLandlord:      me.IsLandlord,
		LandlordID:      game.LandlordID,
		CurrentPlayerID: game.CurrentPlayerID,
		CurrentBid:      game.CurrentBid,
		LastCards:       []domain.Card{},
		LastPlayerID:    game.LastPlayerID,
		Multiplier:      game.Multiplier,
		OtherPlayers:    make([]OpponentState, 0, domain.PlayerCount-1),
	}
	if game.LastPlayed != nil {
		payload.LastCards = cloneCards(game.LastPlayed.Cards)
	}
	for _, id := range game.TurnOrder {
		if id == userID {
			continue
		}
		p := game.Players[id]
		payload.OtherPlayers = append(payload.OtherPlayers, OpponentState{
			PlayerID:   id,
			CardCount:  len(p.Hand),
			IsLandlord: p.IsLandlord,
		})
	}

	return Event{Kind: EventState, Payload: payload, Recipients: []string{userID}}, nil
}

// LobbySnapshot builds the game:state view of a table that has not started:
// phase waiting, no cards, and the other seated users with a zero card count.
func LobbySnapshot(seats []string, userID string) (Event, error) {
	seated := false
	others := make([]OpponentState, 0, domain.PlayerCount-1)
	for _, id := range seats {
		switch id {
		case "":
		case userID:
			seated = true
		default:
			others = append(others, OpponentState{PlayerID: id})
		}
	}
	if !seated {
		return Event{}, ErrUnknownPlayer
	}

	return Event{
		Kind: EventState,
		Payload: StatePayload{
			Phase:        domain.PhaseWaiting,
			YourCards:    []domain.Card{},
			LastCards:    []domain.Card{},
			Multiplier:   1,
			OtherPlayers: others,
		},
		Recipients: []string{userID},
	}, nil
}

func (s *Service) after(d time.Duration) time.Time {
	return s.clock().Add(d)
}

func cloneCards(cards []domain.Card) []domain.Card {
	return append(make([]domain.Card, 0, len(cards)), cards...)
}
