package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.BidTimeout() != 15*time.Second || c.PlayTimeout() != 30*time.Second || c.BaseScore != 100 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	c, err := Parse([]byte(`{"base_score": 50, "play_timeout": 20}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.BaseScore != 50 || c.PlayTimeoutSeconds != 20 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.BidTimeoutSeconds != 15 || c.MaxPlayers != TablePlayers {
		t.Fatalf("defaults lost: %+v", c)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "Four players", json: `{"max_players": 4}`},
		{name: "Zero timeout", json: `{"bid_timeout": 0}`},
		{name: "Negative score", json: `{"base_score": -1}`},
		{name: "Bad think window", json: `{"bot_min_think_seconds": 5, "bot_max_think_seconds": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.json)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(map[string]string{
		EnvBidTimeout:   "5",
		EnvBaseScore:    "250",
		EnvBotsEnabled:  "true",
		EnvTicketSecret: "s3cret",
		EnvPlayTimeout:  "soon",
	})
	if err == nil {
		t.Fatal("expected error for unparseable play timeout")
	}
	if c.BidTimeoutSeconds != 5 || c.BaseScore != 250 || !c.BotsEnabled || c.TicketSecret != "s3cret" {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.PlayTimeoutSeconds != 30 {
		t.Fatalf("bad value should leave default, got %d", c.PlayTimeoutSeconds)
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	if err := os.WriteFile(path, []byte(`{"auto_start": false}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if GetGameConfig().AutoStart {
		t.Fatal("auto_start should be false after load")
	}
}
