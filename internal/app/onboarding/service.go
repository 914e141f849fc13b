package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"landlord/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// BalanceGranted is false when the starting balance had already been granted.
	BalanceGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	balances ports.StartingBalancePort
	amount   int64
	rng      *rand.Rand
}

// NewService constructs an onboarding service granting amount score to each new user.
// rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, balances ports.StartingBalancePort, amount int64, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		balances: balances,
		amount:   amount,
		rng:      rng,
	}
}

// OnboardNewUser gives a newly created account a display name and its starting score balance.
// The profile update is best-effort; failing to grant the balance is an error.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.balances == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		result.ProfileUpdateErr = err
	}

	if s.amount <= 0 {
		return result, nil
	}
	granted, err := s.balances.GrantStartingBalanceOnce(ctx, userID, s.amount, map[string]interface{}{
		"reason": "starting_balance",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant starting balance: %w", err)
	}
	result.BalanceGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Bold", "Quiet", "Sharp", "Clever", "Steady", "Sly", "Merry", "Cunning", "Brave"}
	nouns := []string{"Landlord", "Farmer", "Rocket", "Bomb", "Joker", "Ace", "Plane", "Dragon", "Tiger", "Crane"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
