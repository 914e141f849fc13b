package app

import "errors"

// Protocol violations: the request is out of place and is dropped without a reply.
var (
	ErrWrongPhase     = errors.New("action not allowed in current phase")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrAlreadyActed   = errors.New("already acted this turn")
	ErrMustPlay       = errors.New("cannot pass while leading")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers = errors.New("too many players to start")
)

// Rule violations: reported privately to the participant, whose turn stays open.
var (
	ErrInvalidBid     = errors.New("invalid bid score")
	ErrEmptyPlay      = errors.New("no cards selected")
	ErrDuplicateCards = errors.New("duplicate cards in play")
	ErrInvalidHand    = errors.New("invalid card combination")
	ErrCannotBeat     = errors.New("cards do not beat the last play")
	ErrCardsNotHeld   = errors.New("cards not in hand")
)

var ruleViolations = []error{
	ErrInvalidBid, ErrEmptyPlay, ErrDuplicateCards, ErrInvalidHand, ErrCannotBeat, ErrCardsNotHeld,
}

// IsRuleViolation reports whether err should be surfaced to the acting participant.
func IsRuleViolation(err error) bool {
	for _, target := range ruleViolations {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
