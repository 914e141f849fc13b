package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Fixed table size; max_players and min_players must both equal this.
const TablePlayers = 3

// GameConfig holds the tunables of a landlord table.
type GameConfig struct {
	MaxPlayers         int   `json:"max_players"`
	MinPlayers         int   `json:"min_players"`
	AutoStart          bool  `json:"auto_start"`
	BidTimeoutSeconds  int   `json:"bid_timeout"`
	PlayTimeoutSeconds int   `json:"play_timeout"`
	BaseScore          int64 `json:"base_score"`

	StartDelaySeconds  int `json:"start_delay"`
	RebidDelaySeconds  int `json:"rebid_delay"`
	RevealDelaySeconds int `json:"reveal_delay"`
	EndDelaySeconds    int `json:"end_delay"`
	ErrorDelaySeconds  int `json:"error_end_delay"`

	BotsEnabled bool `json:"bots_enabled"`
	// BotAutoFillDelaySeconds configures how many seconds an incomplete table waits before a bot takes a seat.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinThinkSeconds      int `json:"bot_min_think_seconds"`
	BotMaxThinkSeconds      int `json:"bot_max_think_seconds"`

	// StartingBalance is the score granted once to every new account.
	StartingBalance int64 `json:"starting_balance"`

	// TicketSecret signs quick_match seat tickets. Empty disables ticket checks.
	TicketSecret     string `json:"ticket_secret"`
	TicketTTLSeconds int    `json:"ticket_ttl_seconds"`
}

// Default returns the configuration used when no file is provided.
func Default() GameConfig {
	return GameConfig{
		MaxPlayers:              TablePlayers,
		MinPlayers:              TablePlayers,
		AutoStart:               true,
		BidTimeoutSeconds:       15,
		PlayTimeoutSeconds:      30,
		BaseScore:               100,
		StartDelaySeconds:       3,
		RebidDelaySeconds:       2,
		RevealDelaySeconds:      2,
		EndDelaySeconds:         5,
		ErrorDelaySeconds:       2,
		BotsEnabled:             false,
		BotAutoFillDelaySeconds: 10,
		BotMinThinkSeconds:      1,
		BotMaxThinkSeconds:      3,
		StartingBalance:         10000,
		TicketTTLSeconds:        60,
	}
}

var ErrInvalidConfig = errors.New("invalid game config")

// Validate rejects configurations the engine cannot run with.
func (c GameConfig) Validate() error {
	switch {
	case c.MaxPlayers != TablePlayers || c.MinPlayers != TablePlayers:
		return fmt.Errorf("%w: max_players and min_players must be %d", ErrInvalidConfig, TablePlayers)
	case c.BidTimeoutSeconds <= 0 || c.PlayTimeoutSeconds <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	case c.BaseScore <= 0:
		return fmt.Errorf("%w: base_score must be positive", ErrInvalidConfig)
	case c.StartDelaySeconds < 0 || c.RebidDelaySeconds < 0 || c.RevealDelaySeconds < 0 ||
		c.EndDelaySeconds < 0 || c.ErrorDelaySeconds < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	case c.BotMinThinkSeconds < 0 || c.BotMaxThinkSeconds < c.BotMinThinkSeconds:
		return fmt.Errorf("%w: bot think window is empty", ErrInvalidConfig)
	case c.StartingBalance < 0:
		return fmt.Errorf("%w: starting_balance must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c GameConfig) BidTimeout() time.Duration { return seconds(c.BidTimeoutSeconds) }
func (c GameConfig) PlayTimeout() time.Duration { return seconds(c.PlayTimeoutSeconds) }
func (c GameConfig) StartDelay() time.Duration { return seconds(c.StartDelaySeconds) }
func (c GameConfig) RebidDelay() time.Duration { return seconds(c.RebidDelaySeconds) }
func (c GameConfig) RevealDelay() time.Duration { return seconds(c.RevealDelaySeconds) }
func (c GameConfig) EndDelay() time.Duration { return seconds(c.EndDelaySeconds) }
func (c GameConfig) ErrorDelay() time.Duration { return seconds(c.ErrorDelaySeconds) }
func (c GameConfig) TicketTTL() time.Duration { return seconds(c.TicketTTLSeconds) }

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Env keys recognised by ApplyEnv.
const (
	EnvBidTimeout   = "landlord_bid_timeout_sec"
	EnvPlayTimeout  = "landlord_play_timeout_sec"
	EnvBaseScore    = "landlord_base_score"
	EnvAutoStart    = "landlord_auto_start"
	EnvBotsEnabled  = "landlord_bots_enabled"
	EnvBotFillDelay = "landlord_bot_fill_delay_sec"
	EnvTicketSecret = "landlord_ticket_secret"
)

// ApplyEnv overrides fields from a runtime environment map, such as the Nakama
// RUNTIME_CTX_ENV. Unparseable values are reported and leave the field unchanged.
func (c *GameConfig) ApplyEnv(env map[string]string) error {
	var errs []error
	setInt := func(key string, dst *int) {
		v, ok := env[key]
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
	setBool := func(key string, dst *bool) {
		v, ok := env[key]
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = b
	}

	setInt(EnvBidTimeout, &c.BidTimeoutSeconds)
	setInt(EnvPlayTimeout, &c.PlayTimeoutSeconds)
	setInt(EnvBotFillDelay, &c.BotAutoFillDelaySeconds)
	setBool(EnvAutoStart, &c.AutoStart)
	setBool(EnvBotsEnabled, &c.BotsEnabled)
	if v, ok := env[EnvBaseScore]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvBaseScore, err))
		} else {
			c.BaseScore = n
		}
	}
	if v, ok := env[EnvTicketSecret]; ok {
		c.TicketSecret = v
	}
	return errors.Join(errs...)
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path once.
// Fields missing from the file keep their defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// Parse decodes a JSON config over the defaults and validates it.
func Parse(data []byte) (GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

// GetGameConfig returns the loaded configuration, or the defaults when nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
