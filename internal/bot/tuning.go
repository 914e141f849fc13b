package bot

import "landlord/internal/domain"

// Tuning holds the thresholds the strategies decide with.
type Tuning struct {
	// BidThresholds[i] is the minimum hand strength to bid i+1.
	BidThresholds [domain.MaxBid]int
	// ThreatThreshold is the opponent hand size at which bombs are spent.
	ThreatThreshold int
}

// DefaultTuning bids on two control cards and bombs when an opponent is down to three cards.
var DefaultTuning = Tuning{
	BidThresholds:   [domain.MaxBid]int{4, 7, 10},
	ThreatThreshold: 3,
}

// GreedyTuning bids eagerly.
var GreedyTuning = Tuning{
	BidThresholds:   [domain.MaxBid]int{2, 5, 8},
	ThreatThreshold: domain.HandSize + domain.HiddenCardCount,
}

// bidFor maps a hand strength onto the highest bid it supports above current, or 0.
func (t Tuning) bidFor(strength, current int) int {
	bid := 0
	for i, min := range t.BidThresholds {
		if strength >= min {
			bid = i + 1
		}
	}
	if bid <= current {
		return 0
	}
	return bid
}
