package ports

import "context"

// StartingBalancePort grants the sign-up score balance at most once per user.
type StartingBalancePort interface {
	// GrantStartingBalanceOnce returns granted=false when the balance was already granted.
	GrantStartingBalanceOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
