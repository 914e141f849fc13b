package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"landlord/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	startingBalanceCollection = "onboarding"
	startingBalanceKey        = "starting_balance_v1"
)

// NakamaStartingBalanceAdapter grants the sign-up score using Nakama storage + wallet updates.
type NakamaStartingBalanceAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStartingBalanceAdapter creates a new starting balance adapter.
func NewNakamaStartingBalanceAdapter(nk runtime.NakamaModule) *NakamaStartingBalanceAdapter {
	return &NakamaStartingBalanceAdapter{nk: nk}
}

// GrantStartingBalanceOnce credits amount and writes a marker in one MultiUpdate.
// The marker is written with version "*" so a second grant is rejected by storage.
func (a *NakamaStartingBalanceAdapter) GrantStartingBalanceOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	marker := map[string]interface{}{
		"amount":     amount,
		"currency":   ports.ScoreCurrency,
		"granted_at": time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal starting balance marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      startingBalanceCollection,
			Key:             startingBalanceKey,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	walletUpdates := []*runtime.WalletUpdate{
		{
			UserID:    userID,
			Changeset: map[string]int64{ports.ScoreCurrency: amount},
			Metadata:  metadata,
		},
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to grant starting balance: %w", err)
	}

	return true, nil
}

var _ ports.StartingBalancePort = (*NakamaStartingBalanceAdapter)(nil)
