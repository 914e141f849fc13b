package nakama

import (
	"encoding/json"
	"fmt"

	"landlord/internal/app"
	"landlord/internal/domain"
)

// BidRequest is the OpBid payload.
type BidRequest struct {
	Score int `json:"score"`
}

// PlayRequest is the OpPlay payload. Cards are "<suit>_<rank>" ids.
type PlayRequest struct {
	Cards []string `json:"cards"`
}

func decodeBid(data []byte) (int, error) {
	var req BidRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return 0, fmt.Errorf("invalid bid payload: %w", err)
	}
	return req.Score, nil
}

// decodePlay parses the requested cards. An unknown card id is a rule
// violation; a malformed payload is not.
func decodePlay(data []byte) ([]domain.Card, error) {
	var req PlayRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid play payload: %w", err)
	}
	cards, err := domain.ParseCards(req.Cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrInvalidHand, err)
	}
	return cards, nil
}
