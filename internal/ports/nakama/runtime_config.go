package nakama

import (
	"context"

	"landlord/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// runtimeConfig returns the table configuration with RUNTIME_CTX_ENV overrides applied.
func runtimeConfig(ctx context.Context, logger runtime.Logger) config.GameConfig {
	if err := config.LoadGameConfig(GameConfigPath); err != nil {
		logger.Warn("Could not load game config, using defaults: %v", err)
	}
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	return withEnv(config.GetGameConfig(), env, logger)
}

// withEnv applies env overrides on top of base. Unparseable values are skipped;
// when the overrides leave an invalid config, base is returned unchanged.
func withEnv(base config.GameConfig, env map[string]string, logger runtime.Logger) config.GameConfig {
	if len(env) == 0 {
		return base
	}
	cfg := base
	if err := cfg.ApplyEnv(env); err != nil {
		logger.Warn("Ignoring invalid env overrides: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Env overrides produce an invalid game config, keeping file config: %v", err)
		return base
	}
	return cfg
}
