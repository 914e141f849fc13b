package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"landlord/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const resultsCollection = "landlord_results"

// NakamaResultsAdapter archives finished games in Nakama storage: one
// owner-readable copy per participant, keyed by game id.
type NakamaResultsAdapter struct {
	nk runtime.NakamaModule
	// skip filters out participants without a Nakama account, such as local bots.
	skip func(userID string) bool
}

// NewNakamaResultsAdapter creates a results adapter. skip may be nil.
func NewNakamaResultsAdapter(nk runtime.NakamaModule, skip func(userID string) bool) *NakamaResultsAdapter {
	if skip == nil {
		skip = func(string) bool { return false }
	}
	return &NakamaResultsAdapter{nk: nk, skip: skip}
}

// RecordGame writes the record for every participant with an account.
func (a *NakamaResultsAdapter) RecordGame(ctx context.Context, rec ports.GameRecord) error {
	if rec.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	writes := make([]*runtime.StorageWrite, 0, len(rec.Scores))
	for userID := range rec.Scores {
		if a.skip(userID) {
			continue
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      resultsCollection,
			Key:             rec.GameID,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		})
	}
	if len(writes) == 0 {
		return nil
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to store game %s: %w", rec.GameID, err)
	}
	return nil
}

var _ ports.ResultsPort = (*NakamaResultsAdapter)(nil)
