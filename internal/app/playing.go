package app

import (
	"landlord/internal/domain"
)

func (s *Service) startPlaying(game *domain.Game) []Event {
	game.Phase = domain.PhasePlaying
	game.LastPlayed = nil
	game.LastPlayerID = ""
	game.PassCount = 0

	events := []Event{{Kind: EventPlayingStart, Payload: PlayingStartPayload{FirstPlayer: game.LandlordID}}}
	return append(events, s.beginTurn(game, game.LandlordID)...)
}

// beginTurn hands the turn to userID. When the two others passed since that
// participant's play, the trick closes and they lead a new one.
func (s *Service) beginTurn(game *domain.Game, userID string) []Event {
	if game.PassCount >= domain.PlayerCount-1 && userID == game.LastPlayerID {
		game.LastPlayed = nil
		game.LastPlayerID = ""
		game.PassCount = 0
	}
	game.MustPlay = game.LastPlayed == nil || game.LastPlayerID == userID
	game.CurrentPlayerID = userID
	game.Player(userID).ActionTaken = false
	game.Suspend(domain.StepAwaitPlay, s.after(s.cfg.PlayTimeout()))

	payload := PlayTurnPayload{
		PlayerID:     userID,
		MustPlay:     game.MustPlay,
		LastCards:    []domain.Card{},
		LastPlayerID: game.LastPlayerID,
		Timeout:      s.cfg.PlayTimeoutSeconds,
	}
	if game.LastPlayed != nil {
		payload.LastCards = cloneCards(game.LastPlayed.Cards)
	}
	return []Event{{Kind: EventPlayTurn, Payload: payload}}
}

func (s *Service) checkTurn(game *domain.Game, userID string) (*domain.Player, error) {
	if game.Phase != domain.PhasePlaying || game.Pending != domain.StepAwaitPlay {
		return nil, ErrWrongPhase
	}
	p := game.Player(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentPlayerID != userID {
		return nil, ErrNotYourTurn
	}
	if p.ActionTaken {
		return nil, ErrAlreadyActed
	}
	return p, nil
}

// PlayCards validates and applies a play. A rejected play leaves the hand and the turn untouched.
func (s *Service) PlayCards(game *domain.Game, userID string, cards []domain.Card) ([]Event, error) {
	p, err := s.checkTurn(game, userID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrEmptyPlay
	}
	if domain.HasDuplicates(cards) {
		return nil, ErrDuplicateCards
	}
	cls := domain.Classify(cards)
	if cls.Category == domain.Invalid {
		return nil, ErrInvalidHand
	}
	if game.LastPlayed != nil && !cls.Beats(game.LastPlayed.Classification) {
		return nil, ErrCannotBeat
	}
	if !domain.HasCards(p.Hand, cards) {
		return nil, ErrCardsNotHeld
	}
	return s.applyPlay(game, p, cloneCards(cards), cls, false), nil
}

// Pass declines to follow the open trick.
func (s *Service) Pass(game *domain.Game, userID string) ([]Event, error) {
	p, err := s.checkTurn(game, userID)
	if err != nil {
		return nil, err
	}
	if game.MustPlay {
		return nil, ErrMustPlay
	}
	return s.applyPass(game, p, false), nil
}

func (s *Service) applyPlay(game *domain.Game, p *domain.Player, cards []domain.Card, cls domain.Classification, auto bool) []Event {
	p.Hand = domain.RemoveCards(p.Hand, cards)
	p.ActionTaken = true
	game.Played = append(game.Played, cards...)
	game.LastPlayed = &domain.Hand{Cards: cards, Classification: cls}
	game.LastPlayerID = p.UserID
	game.PassCount = 0
	if cls.Category.DoublesMultiplier() {
		game.Multiplier *= 2
	}

	events := []Event{
		{
			Kind: EventCardsPlayed,
			Payload: CardsPlayedPayload{
				PlayerID:       p.UserID,
				Cards:          cloneCards(cards),
				CardType:       cls.Category,
				RemainingCount: len(p.Hand),
				Multiplier:     game.Multiplier,
				Auto:           auto,
			},
		},
		{
			Kind:       EventCardsUpdate,
			Payload:    CardsUpdatePayload{Cards: cloneCards(p.Hand)},
			Recipients: []string{p.UserID},
		},
	}
	if len(p.Hand) == 0 {
		return append(events, s.finish(game, p.UserID)...)
	}
	return append(events, s.beginTurn(game, game.NextInOrder(p.UserID))...)
}

func (s *Service) applyPass(game *domain.Game, p *domain.Player, auto bool) []Event {
	p.ActionTaken = true
	game.PassCount++
	events := []Event{{Kind: EventPlayerPass, Payload: PlayerPassPayload{PlayerID: p.UserID, Auto: auto}}}
	return append(events, s.beginTurn(game, game.NextInOrder(p.UserID))...)
}

// playTimedOut plays the lowest single when leading and passes otherwise.
func (s *Service) playTimedOut(game *domain.Game) []Event {
	p := game.Current()
	if p == nil {
		return nil
	}
	if !game.MustPlay {
		return s.applyPass(game, p, true)
	}
	lowest, ok := domain.LowestCard(p.Hand)
	if !ok {
		return nil
	}
	cards := []domain.Card{lowest}
	return s.applyPlay(game, p, cards, domain.Classify(cards), true)
}

// finish ends the game with winnerID emptying their hand and settles the scores.
func (s *Service) finish(game *domain.Game, winnerID string) []Event {
	settlement := domain.Settle(game.TurnOrder[:], winnerID, game.LandlordID, s.cfg.BaseScore, game.Multiplier)

	game.Phase = domain.PhaseFinished
	game.WinnerID = winnerID
	game.Settlement = &settlement
	game.CurrentPlayerID = ""
	game.Suspend(domain.StepClose, s.after(s.cfg.EndDelay()))

	return []Event{{
		Kind:    EventGameEnd,
		Payload: GameEndPayload{GameID: game.ID, Settlement: settlement},
	}}
}
