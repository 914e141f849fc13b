package internal

import "landlord/internal/domain"

// GamePhase describes the current strategic stage of a game.
type GamePhase int

const (
	// PhaseOpening indicates no one has shed a meaningful part of their hand yet.
	PhaseOpening GamePhase = iota
	PhaseMid
	// PhaseEnd indicates some participant is close to going out.
	PhaseEnd
)

// EndgameThreshold is the hand size at or below which a participant threatens to go out.
const EndgameThreshold = 5

// DetectPhase infers the phase from the smallest hand at the table.
func DetectPhase(game *domain.Game) GamePhase {
	if game == nil || len(game.Players) == 0 {
		return PhaseMid
	}
	smallest := domain.HandSize + domain.HiddenCardCount
	for _, p := range game.Players {
		if n := len(p.Hand); n < smallest {
			smallest = n
		}
	}
	switch {
	case smallest <= EndgameThreshold:
		return PhaseEnd
	case smallest >= domain.HandSize-2:
		return PhaseOpening
	default:
		return PhaseMid
	}
}
