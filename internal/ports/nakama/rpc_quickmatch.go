package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"landlord/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients looking for a table.
// Ticket is set when seat tickets are enabled and must be passed as the
// "ticket" join metadata.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
	Ticket  string `json:"ticket,omitempty"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	cfg := runtimeConfig(ctx, logger)
	tickets := app.NewTicketService(cfg.TicketSecret, cfg.TicketTTL(), nil)
	if tickets.Enabled() && userID == "" {
		return "", runtime.NewError("quick_match requires an authenticated user", 16) // UNAUTHENTICATED
	}

	limit := 10
	authoritative := true
	minSize := 0
	maxSize := cfg.MaxPlayers - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("RpcQuickMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	resp := QuickMatchResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
		logger.Info("RpcQuickMatch [User:%s]: Found existing match %s", userID, resp.MatchID)
	} else {
		// Seat assignment happens in MatchJoin (server-authoritative).
		matchID, err := nk.MatchCreate(ctx, MatchNameLandlord, map[string]interface{}{})
		if err != nil {
			logger.Error("RpcQuickMatch [User:%s]: Failed to create match: %v", userID, err)
			return "", err
		}
		resp.MatchID = matchID
		resp.IsNew = true
		logger.Info("RpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	}

	if tickets.Enabled() {
		ticket, err := tickets.Issue(userID, resp.MatchID)
		if err != nil {
			logger.Error("RpcQuickMatch [User:%s]: Failed to issue ticket: %v", userID, err)
			return "", runtime.NewError("failed to issue seat ticket", 13) // INTERNAL
		}
		resp.Ticket = ticket
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
