package bot

import (
	"fmt"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGreedy BotLevel = iota
	BotLevelStandard
	BotLevelSmart
)

// LevelFromDifficulty maps an identity difficulty onto a strategy level.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelGreedy
	case "hard":
		return BotLevelSmart
	}
	return BotLevelStandard
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGreedy:
		return &GreedyBot{Tuning: GreedyTuning}, nil
	case BotLevelStandard:
		return &StandardBot{Tuning: DefaultTuning}, nil
	case BotLevelSmart:
		return &SmartBot{StandardBot: StandardBot{Tuning: DefaultTuning}}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds the agent for a bot user, choosing its brain from the identity difficulty.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return nil, fmt.Errorf("unknown bot %s", userID)
	}
	brain, err := NewBrain(LevelFromDifficulty(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: identity.DisplayName, Strategy: brain}, nil
}
