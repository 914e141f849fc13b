package domain

import "time"

// Phase represents the lifecycle stage of a landlord game.
type Phase string

const (
	// PhaseWaiting is the pre-game state while seats fill and cards are dealt.
	PhaseWaiting Phase = "waiting"
	// PhaseBidding is the auction for the landlord role.
	PhaseBidding Phase = "bidding"
	// PhasePlaying is the trick-taking phase.
	PhasePlaying Phase = "playing"
	// PhaseFinished is the terminal state, reached by a win or an aborted game.
	PhaseFinished Phase = "finished"
)

// PlayerCount is the fixed number of participants.
const PlayerCount = 3

// MaxBid is the highest bid; reaching it ends bidding immediately.
const MaxBid = 3

// Step is the continuation the game is suspended on until its deadline.
type Step int

const (
	StepNone Step = iota
	StepDeal
	StepAwaitBid
	StepRedeal
	StepStartPlaying
	StepAwaitPlay
	StepClose
)

func (s Step) String() string {
	switch s {
	case StepDeal:
		return "deal"
	case StepAwaitBid:
		return "await_bid"
	case StepRedeal:
		return "redeal"
	case StepStartPlaying:
		return "start_playing"
	case StepAwaitPlay:
		return "await_play"
	case StepClose:
		return "close"
	default:
		return "none"
	}
}

// Player is the per-game round state of one participant.
type Player struct {
	UserID     string
	Seat       int // position in the turn order, 0..2
	Hand       []Card
	IsLandlord bool

	HasBid   bool
	BidScore int

	ActionTaken bool
}

// Hand is a played set of cards together with its classification.
type Hand struct {
	Cards          []Card
	Classification Classification
}

// Game holds the authoritative state of a single landlord game.
type Game struct {
	ID    string
	Phase Phase

	Players   map[string]*Player // userId -> player
	TurnOrder [PlayerCount]string

	HiddenCards []Card
	Played      []Card // every card already on the table this game

	LandlordID      string
	CurrentPlayerID string

	// Bidding
	CurrentBid    int
	HighestBidder string
	BidRound      int // bid turns taken in the current attempt
	BidAttempts   int // completed deal+bid attempts
	BidStartIndex int

	// Playing
	LastPlayed   *Hand
	LastPlayerID string
	PassCount    int
	MustPlay     bool
	Multiplier   int

	// Suspension
	Pending  Step
	Deadline time.Time

	WinnerID   string
	Settlement *Settlement
	EndReason  string
	Closed     bool
}

// Player returns the participant for userID or nil.
func (g *Game) Player(userID string) *Player {
	if g == nil {
		return nil
	}
	return g.Players[userID]
}

// Current returns the participant whose turn it is, or nil.
func (g *Game) Current() *Player {
	return g.Player(g.CurrentPlayerID)
}

// NextInOrder returns the user after userID in the turn order.
func (g *Game) NextInOrder(userID string) string {
	for i, id := range g.TurnOrder {
		if id == userID {
			return g.TurnOrder[(i+1)%PlayerCount]
		}
	}
	return g.TurnOrder[0]
}

// Landlord returns the landlord participant once assigned.
func (g *Game) Landlord() *Player {
	return g.Player(g.LandlordID)
}

// InProgress reports whether the game has been created and not yet finished.
// A participant leaving an in-progress game aborts it, countdown included.
func (g *Game) InProgress() bool {
	return g != nil && g.Phase != PhaseFinished
}

// Suspend records the step to run once the deadline passes.
func (g *Game) Suspend(step Step, until time.Time) {
	g.Pending = step
	g.Deadline = until
}

// Due reports whether the pending step should run at now.
func (g *Game) Due(now time.Time) bool {
	return g.Pending != StepNone && !now.Before(g.Deadline)
}

// CardCount returns how many cards exist across hands, the table and, until
// they are merged into the landlord's hand, the hidden cards.
func (g *Game) CardCount() int {
	n := len(g.Played)
	if l := g.Landlord(); l == nil || !l.IsLandlord {
		n += len(g.HiddenCards)
	}
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	return n
}
