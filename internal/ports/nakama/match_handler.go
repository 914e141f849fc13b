package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"landlord/internal/app"
	"landlord/internal/bot"
	"landlord/internal/config"
	"landlord/internal/domain"
	"landlord/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// signalStart asks a table with auto_start disabled to start once full.
const signalStart = "start"

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	MatchID   string                      `json:"match_id"`
	Seats     [config.TablePlayers]string `json:"seats"` // user IDs, empty string means seat is empty
	Tick      int64                       `json:"tick"`
	Config    config.GameConfig           `json:"-"`
	Presences map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil until the table starts
	Tickets   *app.TicketService          `json:"-"` // nil when seat tickets are disabled

	Bots             map[string]*bot.Agent `json:"-"`
	BotActor         string                `json:"bot_actor"`          // bot whose think delay is running
	BotWaitUntil     int64                 `json:"bot_wait_until"`     // tick when BotActor acts
	WaitingSinceTick int64                 `json:"waiting_since_tick"` // tick the auto-fill timer started

	Economy ports.EconomyPort `json:"-"`
	Results ports.ResultsPort `json:"-"`

	label string
	rng   *rand.Rand
	now   func() time.Time
}

func newMatchState(matchID string, cfg config.GameConfig, svc *app.Service) *MatchState {
	return &MatchState{
		MatchID:   matchID,
		Config:    cfg,
		Presences: make(map[string]runtime.Presence),
		App:       svc,
		Tickets:   app.NewTicketService(cfg.TicketSecret, cfg.TicketTTL(), nil),
		Bots:      make(map[string]*bot.Agent),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat != "" && seat == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities(BotIdentitiesPath); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	cfg := runtimeConfig(ctx, logger)
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := newMatchState(matchID, cfg, app.NewService(cfg, nil, nil))
	if nk != nil {
		state.Economy = NewNakamaEconomyAdapter(nk)
		state.Results = NewNakamaResultsAdapter(nk, isBotUserId)
	}

	label, err := labelFor(state).encode()
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	state.label = label

	tickRate := 1 // one tick per second; bot timers count ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	switch {
	case matchState.Game != nil:
		return state, false, "game in progress"
	case matchState.seatOf(userID) >= 0:
		return state, false, "already seated"
	case matchState.GetOpenSeatsCount() <= 0:
		return state, false, "match full"
	}

	if err := matchState.Tickets.Verify(metadata["ticket"], userID, matchState.MatchID); err != nil {
		logger.Warn("MatchJoinAttempt: Rejected user %s: %v", userID, err)
		return state, false, "invalid seat ticket"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.seatOf(userID) >= 0 {
			continue
		}
		creator := matchState.GetOccupiedSeatCount() == 0
		seat := mh.takeSeat(matchState, userID)
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", userID)
			continue
		}
		logger.Debug("MatchJoin: User %s took seat %d.", userID, seat)

		var events []app.Event
		if creator {
			events = append(events, app.Event{
				Kind: app.EventRoomCreated,
				Payload: app.RoomCreatedPayload{
					RoomID: matchState.MatchID,
					Config: app.RoomConfig{
						MaxPlayers: matchState.Config.MaxPlayers,
						MinPlayers: matchState.Config.MinPlayers,
						BaseScore:  matchState.Config.BaseScore,
					},
				},
				Recipients: []string{userID},
			})
		}
		events = append(events, app.Event{
			Kind: app.EventPlayerJoin,
			Payload: app.PlayerJoinPayload{
				PlayerID:    userID,
				Username:    p.GetUsername(),
				Seat:        seat,
				PlayerCount: matchState.GetOccupiedSeatCount(),
			},
		})
		mh.dispatch(ctx, matchState, dispatcher, logger, events)
	}

	if matchState.Config.AutoStart {
		mh.maybeStart(ctx, matchState, dispatcher, logger)
	}
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) takeSeat(state *MatchState, userID string) int {
	for i, seat := range state.Seats {
		if seat == "" {
			state.Seats[i] = userID
			return i
		}
	}
	return -1
}

// MatchLeave is called when one or more players leave the match.
// Losing a participant mid-game aborts the game.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		matchState.Seats[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)

		events := []app.Event{{
			Kind:    app.EventPlayerLeave,
			Payload: app.PlayerLeavePayload{PlayerID: userID, PlayerCount: matchState.GetOccupiedSeatCount()},
		}}
		if matchState.Game != nil {
			aborted, err := matchState.App.Leave(matchState.Game, userID)
			if err != nil {
				logger.Debug("MatchLeave: %v", err)
			}
			events = append(events, aborted...)
		}
		mh.dispatch(ctx, matchState, dispatcher, logger, events)
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	if matchState.Config.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	if matchState.Game != nil {
		mh.dispatch(ctx, matchState, dispatcher, logger, matchState.App.Tick(matchState.Game))
		if matchState.Game.Closed {
			logger.Info("MatchLoop: Game %s closed (%s), terminating match.", matchState.Game.ID, closeReason(matchState.Game))
			return nil
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func closeReason(game *domain.Game) string {
	if game.EndReason != "" {
		return game.EndReason
	}
	return "winner " + game.WinnerID
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil && msg.GetOpCode() == OpGetState {
		ev, err := app.LobbySnapshot(state.Seats[:], senderID)
		if err != nil {
			logger.Debug("handleMessage: Ignoring get_state from %s: %v", senderID, err)
			return
		}
		mh.dispatch(ctx, state, dispatcher, logger, []app.Event{ev})
		return
	}
	if state.Game == nil {
		logger.Debug("handleMessage: Dropping op %d from %s, game not started.", msg.GetOpCode(), senderID)
		return
	}

	var (
		events  []app.Event
		err     error
		errKind = app.EventPlayError
	)
	switch msg.GetOpCode() {
	case OpBid:
		errKind = app.EventBidError
		var score int
		if score, err = decodeBid(msg.GetData()); err == nil {
			events, err = state.App.Bid(state.Game, senderID, score)
		}
	case OpPlay:
		var cards []domain.Card
		if cards, err = decodePlay(msg.GetData()); err == nil {
			events, err = state.App.PlayCards(state.Game, senderID, cards)
		}
	case OpPass:
		events, err = state.App.Pass(state.Game, senderID)
	case OpGetState:
		var ev app.Event
		if ev, err = state.App.Snapshot(state.Game, senderID); err == nil {
			events = []app.Event{ev}
		}
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		mh.reject(ctx, state, dispatcher, logger, senderID, errKind, err)
		return
	}
	mh.dispatch(ctx, state, dispatcher, logger, events)
}

// reject reports rule violations privately and drops protocol violations.
func (mh *matchHandler) reject(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, kind app.EventKind, err error) {
	if !app.IsRuleViolation(err) {
		logger.Debug("handleMessage: Ignoring request from %s: %v", userID, err)
		return
	}
	logger.Warn("handleMessage: User %s broke a rule: %v", userID, err)
	mh.dispatch(ctx, state, dispatcher, logger, []app.Event{{
		Kind:       kind,
		Payload:    app.ErrorPayload{Message: err.Error()},
		Recipients: []string{userID},
	}})
}

// maybeStart starts the game once every seat is taken.
func (mh *matchHandler) maybeStart(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	if state.Game != nil || state.GetOpenSeatsCount() > 0 {
		return false
	}

	game, events, err := state.App.StartGame(state.Seats[:])
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return false
	}
	state.Game = game
	state.WaitingSinceTick = 0
	logger.Info("StartGame: Game %s started in match %s.", game.ID, state.MatchID)

	mh.dispatch(ctx, state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	return true
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		mh.autoFill(ctx, state, dispatcher, logger)
		return
	}

	game := state.Game
	awaiting := (game.Phase == domain.PhaseBidding && game.Pending == domain.StepAwaitBid) ||
		(game.Phase == domain.PhasePlaying && game.Pending == domain.StepAwaitPlay)
	agent, isBot := state.Bots[game.CurrentPlayerID]
	if !awaiting || !isBot {
		state.BotActor, state.BotWaitUntil = "", 0
		return
	}

	if state.BotActor != agent.ID {
		delay := state.Config.BotMinThinkSeconds
		if spread := state.Config.BotMaxThinkSeconds - state.Config.BotMinThinkSeconds; spread > 0 {
			delay += state.rng.Intn(spread + 1)
		}
		state.BotActor = agent.ID
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", agent.ID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotActor, state.BotWaitUntil = "", 0

	var (
		events []app.Event
		err    error
	)
	if game.Phase == domain.PhaseBidding {
		score := agent.Bid(game)
		if events, err = state.App.Bid(game, agent.ID, score); err != nil {
			logger.Warn("processBots: Bot %s bid %d rejected: %v", agent.ID, score, err)
			events, err = state.App.Bid(game, agent.ID, 0)
		}
	} else {
		events, err = mh.botPlay(state, agent, logger)
	}
	if err != nil {
		logger.Error("processBots: Bot %s could not act: %v", agent.ID, err)
		return
	}
	mh.dispatch(ctx, state, dispatcher, logger, events)
}

// botPlay applies the agent's move, falling back to the timeout action when
// the move is rejected.
func (mh *matchHandler) botPlay(state *MatchState, agent *bot.Agent, logger runtime.Logger) ([]app.Event, error) {
	game := state.Game
	move, err := agent.Play(game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", agent.ID, err)
	} else {
		var events []app.Event
		if move.Pass {
			events, err = state.App.Pass(game, agent.ID)
		} else {
			events, err = state.App.PlayCards(game, agent.ID, move.Cards)
		}
		if err == nil {
			return events, nil
		}
		logger.Warn("processBots: Bot %s move rejected: %v", agent.ID, err)
	}

	if !game.MustPlay {
		return state.App.Pass(game, agent.ID)
	}
	lowest, ok := domain.LowestCard(game.Player(agent.ID).Hand)
	if !ok {
		return nil, app.ErrEmptyPlay
	}
	return state.App.PlayCards(game, agent.ID, []domain.Card{lowest})
}

// autoFill seats bots in every empty seat once a human has waited long enough.
func (mh *matchHandler) autoFill(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.GetHumanPlayerCount() == 0 || state.GetOpenSeatsCount() == 0 {
		state.WaitingSinceTick = 0
		return
	}
	if state.WaitingSinceTick == 0 {
		state.WaitingSinceTick = state.Tick
		logger.Debug("processBots: Table waiting for players, starting auto-fill timer.")
		return
	}
	if state.Tick-state.WaitingSinceTick < int64(state.Config.BotAutoFillDelaySeconds) {
		return
	}

	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)

		mh.dispatch(ctx, state, dispatcher, logger, []app.Event{{
			Kind: app.EventPlayerJoin,
			Payload: app.PlayerJoinPayload{
				PlayerID:    identity.UserID,
				Username:    bot.GetBotDisplayName(identity.UserID),
				Seat:        i,
				IsBot:       true,
				PlayerCount: state.GetOccupiedSeatCount(),
			},
		}})
	}
	state.WaitingSinceTick = 0

	if state.Config.AutoStart {
		mh.maybeStart(ctx, state, dispatcher, logger)
	}
	mh.updateLabel(state, dispatcher, logger)
}

// dispatch sends events in order and applies the side effects of a finished game.
func (mh *matchHandler) dispatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
		if ev.Kind == app.EventGameEnd {
			mh.settle(ctx, state, logger, ev.Payload.(app.GameEndPayload))
		}
	}
}

// broadcastEvent encodes an app event and sends it to its recipients, or to everyone.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := OpCodeFor(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if ev.Private() {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for bots or disconnected users must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to dispatch event %v: %v", ev.Kind, err)
	}
}

// settle applies the score deltas to human wallets and archives the game.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, end app.GameEndPayload) {
	if state.Economy != nil {
		updates := make([]ports.WalletUpdate, 0, len(end.BalanceChanges))
		for userID, amount := range end.BalanceChanges {
			if isBotUserId(userID) {
				continue
			}
			updates = append(updates, ports.WalletUpdate{
				UserID: userID,
				Amount: amount,
				Metadata: map[string]interface{}{
					"match_id": state.MatchID,
					"game_id":  end.GameID,
					"reason":   "game_settlement",
				},
			})
		}
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("Failed to update balances for game %s: %v", end.GameID, err)
		}
	}

	if state.Results != nil {
		rec, ok := app.Record(state.Game, state.MatchID, state.Config.BaseScore, state.now())
		if !ok {
			return
		}
		if err := state.Results.RecordGame(ctx, rec); err != nil {
			logger.Error("Failed to record game %s: %v", end.GameID, err)
		}
	}
}

// updateLabel pushes the label when seats or phase changed since the last push.
func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := labelFor(state).encode()
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if label == state.label {
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.label = label
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminating, grace %d seconds", graceSeconds)
	return state
}

// MatchSignal handles "start", which starts a full table when auto_start is off.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != signalStart {
		return state, ""
	}
	if !mh.maybeStart(ctx, matchState, dispatcher, logger) {
		return matchState, "not started"
	}
	return matchState, "started"
}
