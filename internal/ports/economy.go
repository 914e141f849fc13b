package ports

import "context"

// ScoreCurrency is the wallet currency that game settlements move.
const ScoreCurrency = "score"

// WalletUpdate represents a single currency change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort defines the interface for managing player score balances.
type EconomyPort interface {
	// GetBalance retrieves the current score balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies multiple wallet changes.
	// This is used at the end of a game to settle the score deltas.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
