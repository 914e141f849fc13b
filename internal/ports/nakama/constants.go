package nakama

import "landlord/internal/app"

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a table with a free seat.
	RpcQuickMatch = "quick_match"

	// MatchNameLandlord is the authoritative match handler name registered with Nakama.
	MatchNameLandlord = "landlord_match"

	// GameConfigPath and BotIdentitiesPath are resolved relative to the Nakama working directory.
	GameConfigPath    = "data/game_config.json"
	BotIdentitiesPath = "data/bot_identities.json"
)

// Op codes for client requests.
const (
	OpBid      int64 = 1
	OpPlay     int64 = 2
	OpPass     int64 = 3
	OpGetState int64 = 4
)

// Op codes for server events, one per event kind.
const (
	OpRoomCreated int64 = 100 + iota
	OpPlayerJoin
	OpPlayerLeave
	OpGameStarting
	OpCardsDealt // private
	OpDealComplete
	OpBiddingStart
	OpBidTurn
	OpBidTimeout
	OpBidResult
	OpBidError // private
	OpRebid
	OpRandomLandlord
	OpLandlordSet
	OpCardsUpdate // private
	OpPlayingStart
	OpPlayTurn
	OpPlayerPass
	OpCardsPlayed
	OpPlayError // private
	OpGameEnd
	OpErrorEnd
	OpState // private
)

var eventOpCodes = map[app.EventKind]int64{
	app.EventRoomCreated:    OpRoomCreated,
	app.EventPlayerJoin:     OpPlayerJoin,
	app.EventPlayerLeave:    OpPlayerLeave,
	app.EventGameStarting:   OpGameStarting,
	app.EventCardsDealt:     OpCardsDealt,
	app.EventDealComplete:   OpDealComplete,
	app.EventBiddingStart:   OpBiddingStart,
	app.EventBidTurn:        OpBidTurn,
	app.EventBidTimeout:     OpBidTimeout,
	app.EventBidResult:      OpBidResult,
	app.EventBidError:       OpBidError,
	app.EventRebid:          OpRebid,
	app.EventRandomLandlord: OpRandomLandlord,
	app.EventLandlordSet:    OpLandlordSet,
	app.EventCardsUpdate:    OpCardsUpdate,
	app.EventPlayingStart:   OpPlayingStart,
	app.EventPlayTurn:       OpPlayTurn,
	app.EventPlayerPass:     OpPlayerPass,
	app.EventCardsPlayed:    OpCardsPlayed,
	app.EventPlayError:      OpPlayError,
	app.EventGameEnd:        OpGameEnd,
	app.EventErrorEnd:       OpErrorEnd,
	app.EventState:          OpState,
}

// OpCodeFor returns the op code an event is dispatched with.
func OpCodeFor(kind app.EventKind) (int64, bool) {
	op, ok := eventOpCodes[kind]
	return op, ok
}
