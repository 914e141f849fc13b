package nakama

import (
	"context"
	"database/sql"

	"landlord/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := bot.LoadIdentities(BotIdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else {
		bot.ProvisionBots(ctx, nk, logger)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameLandlord, NewMatch); err != nil {
		return err
	}

	logger.Info("Landlord Go module loaded.")
	return nil
}
