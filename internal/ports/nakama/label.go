package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	labelGame = "landlord"

	// Label phase of a table still waiting for players.
	labelPhaseLobby = "lobby"
)

// Label keys, queried by quick_match as "+label.<key>:<value>".
const (
	MatchLabelKeyGame      = "game"
	MatchLabelKeyOpenSeats = "open"
	MatchLabelKeyPhase     = "phase"
	MatchLabelKeyPlayers   = "players"
)

// matchLabel is the searchable summary Nakama indexes for each table.
type matchLabel struct {
	Open    int
	Players int
	Phase   string
}

func (l matchLabel) encode() (string, error) {
	st, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKeyGame:      labelGame,
		MatchLabelKeyOpenSeats: l.Open,
		MatchLabelKeyPhase:     l.Phase,
		MatchLabelKeyPlayers:   l.Players,
	})
	if err != nil {
		return "", fmt.Errorf("build match label: %w", err)
	}
	b, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal match label: %w", err)
	}
	return string(b), nil
}

func labelFor(state *MatchState) matchLabel {
	phase := labelPhaseLobby
	if state.Game != nil {
		phase = string(state.Game.Phase)
	}
	return matchLabel{
		Open:    state.GetOpenSeatsCount(),
		Players: state.GetOccupiedSeatCount(),
		Phase:   phase,
	}
}

// quickMatchQuery finds lobbies of this game with at least one free seat.
var quickMatchQuery = fmt.Sprintf("+label.%s:%s +label.%s:%s +label.%s:>=1",
	MatchLabelKeyGame, labelGame, MatchLabelKeyPhase, labelPhaseLobby, MatchLabelKeyOpenSeats)
