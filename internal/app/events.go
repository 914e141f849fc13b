package app

import "landlord/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
// The values double as the wire event names.
type EventKind string

const (
	EventRoomCreated    EventKind = "room:created"
	EventPlayerJoin     EventKind = "player:join"
	EventPlayerLeave    EventKind = "player:leave"
	EventGameStarting   EventKind = "game:starting"
	EventCardsDealt     EventKind = "game:cards_dealt"
	EventDealComplete   EventKind = "game:deal_complete"
	EventBiddingStart   EventKind = "game:bidding_start"
	EventBidTurn        EventKind = "game:bid_turn"
	EventBidTimeout     EventKind = "game:bid_timeout"
	EventBidResult      EventKind = "game:bid_result"
	EventBidError       EventKind = "game:bid_error"
	EventRebid          EventKind = "game:rebid"
	EventRandomLandlord EventKind = "game:random_landlord"
	EventLandlordSet    EventKind = "game:landlord_set"
	EventCardsUpdate    EventKind = "game:cards_update"
	EventPlayingStart   EventKind = "game:playing_start"
	EventPlayTurn       EventKind = "game:play_turn"
	EventPlayerPass     EventKind = "game:player_pass"
	EventCardsPlayed    EventKind = "game:cards_played"
	EventPlayError      EventKind = "game:play_error"
	EventGameEnd        EventKind = "game:end"
	EventErrorEnd       EventKind = "game:error_end"
	EventState          EventKind = "game:state"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// Private reports whether the event targets specific users.
func (e Event) Private() bool {
	return len(e.Recipients) > 0
}

type RoomConfig struct {
	MaxPlayers int   `json:"max_players"`
	MinPlayers int   `json:"min_players"`
	BaseScore  int64 `json:"base_score"`
}

type RoomCreatedPayload struct {
	RoomID string     `json:"room_id"`
	Config RoomConfig `json:"config"`
}

type PlayerJoinPayload struct {
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	Seat        int    `json:"seat"`
	IsBot       bool   `json:"is_bot"`
	PlayerCount int    `json:"player_count"`
}

type PlayerLeavePayload struct {
	PlayerID    string `json:"player_id"`
	PlayerCount int    `json:"player_count"`
}

type GameStartingPayload struct {
	GameID    string `json:"game_id"`
	Message   string `json:"message"`
	Countdown int    `json:"countdown"`
}

type CardsDealtPayload struct {
	Cards    []domain.Card `json:"cards"`
	Position int           `json:"position"`
}

type DealCompletePayload struct {
	Message            string `json:"message"`
	LandlordCardsCount int    `json:"landlord_cards_count"`
	Attempt            int    `json:"attempt"`
}

type BiddingStartPayload struct {
	FirstBidder string `json:"first_bidder"`
}

type BidTurnPayload struct {
	PlayerID   string `json:"player_id"`
	CurrentBid int    `json:"current_bid"`
	Timeout    int    `json:"timeout"`
}

type BidTimeoutPayload struct {
	PlayerID string `json:"player_id"`
}

type BidResultPayload struct {
	PlayerID      string `json:"player_id"`
	Score         int    `json:"score"`
	CurrentBid    int    `json:"current_bid"`
	HighestBidder string `json:"highest_bidder"`
}

// ErrorPayload carries a rule violation back to the offending participant.
type ErrorPayload struct {
	Message string `json:"message"`
}

type RebidPayload struct {
	Message string `json:"message"`
}

type RandomLandlordPayload struct {
	LandlordID string `json:"landlord_id"`
}

type LandlordSetPayload struct {
	LandlordID    string        `json:"landlord_id"`
	LandlordCards []domain.Card `json:"landlord_cards"`
	BidScore      int           `json:"bid_score"`
	Multiplier    int           `json:"multiplier"`
}

type CardsUpdatePayload struct {
	Cards []domain.Card `json:"cards"`
}

type PlayingStartPayload struct {
	FirstPlayer string `json:"first_player"`
}

type PlayTurnPayload struct {
	PlayerID     string        `json:"player_id"`
	MustPlay     bool          `json:"must_play"`
	LastCards    []domain.Card `json:"last_cards"`
	LastPlayerID string        `json:"last_player_id,omitempty"`
	Timeout      int           `json:"timeout"`
}

type PlayerPassPayload struct {
	PlayerID string `json:"player_id"`
	Auto     bool   `json:"auto,omitempty"`
}

type CardsPlayedPayload struct {
	PlayerID       string          `json:"player_id"`
	Cards          []domain.Card   `json:"cards"`
	CardType       domain.Category `json:"card_type"`
	RemainingCount int             `json:"remaining_count"`
	Multiplier     int             `json:"multiplier"`
	Auto           bool            `json:"auto,omitempty"`
}

type GameEndPayload struct {
	GameID string `json:"game_id"`
	domain.Settlement
}

type ErrorEndPayload struct {
	Reason   string `json:"reason"`
	PlayerID string `json:"player_id,omitempty"`
}

type OpponentState struct {
	PlayerID   string `json:"id"`
	CardCount  int    `json:"card_count"`
	IsLandlord bool   `json:"is_landlord"`
}

// StatePayload is a participant's view of the game: their own hand and only
// the card counts of the others.
type StatePayload struct {
	GameID          string          `json:"game_id"`
	Phase           domain.Phase    `json:"phase"`
	YourCards       []domain.Card   `json:"your_cards"`
	IsLandlord      bool            `json:"is_landlord"`
	LandlordID      string          `json:"landlord_id,omitempty"`
	CurrentPlayerID string          `json:"current_player_id,omitempty"`
	CurrentBid      int             `json:"current_bid"`
	LastCards       []domain.Card   `json:"last_cards"`
	LastPlayerID    string          `json:"last_player_id,omitempty"`
	Multiplier      int             `json:"multiplier"`
	OtherPlayers    []OpponentState `json:"other_players"`
}
