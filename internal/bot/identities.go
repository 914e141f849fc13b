package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "standard" or "hard"
}

var (
	mu            sync.RWMutex
	botIdentities []BotIdentity
	botConfigMap  = make(map[string]BotIdentity)
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		botIdentities = identities
		for _, identity := range identities {
			if identity.UserID != "" {
				botConfigMap[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and carry the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		for i := range botIdentities {
			identity := &botIdentities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":     true,
				"difficulty": identity.Difficulty,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			botConfigMap[userID] = *identity
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	mu.RLock()
	defer mu.RUnlock()
	identity, ok := botConfigMap[userID]
	return identity, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
// Pool entries that were never provisioned, or an empty pool, get a local
// user id which is registered so IsBot recognizes it.
func GetBotIdentity(index int) BotIdentity {
	mu.Lock()
	defer mu.Unlock()

	identity := BotIdentity{
		UserID:      fmt.Sprintf("bot-%d", index),
		Username:    fmt.Sprintf("bot%d", index),
		DisplayName: fmt.Sprintf("AI Player %d", index),
		Difficulty:  "standard",
	}
	if n := len(botIdentities); n > 0 {
		pooled := botIdentities[index%n]
		if pooled.UserID != "" {
			return pooled
		}
		identity.Username = pooled.Username
		identity.DisplayName = pooled.DisplayName
		identity.Difficulty = pooled.Difficulty
	}
	botConfigMap[identity.UserID] = identity
	return identity
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := GetBotConfig(userID)
	return ok
}
