package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
	names     []string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.names = append(f.names, displayName)
	return f.updateErr
}

type fakeBalancePort struct {
	grantErr error
	calls    []grantCall
	granted  bool
}

type grantCall struct {
	userID   string
	amount   int64
	metadata map[string]interface{}
}

func (f *fakeBalancePort) GrantStartingBalanceOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	f.calls = append(f.calls, grantCall{userID: userID, amount: amount, metadata: metadata})
	if f.grantErr != nil {
		return false, f.grantErr
	}
	return f.granted, nil
}

func TestOnboardNewUser_GrantsStartingBalance(t *testing.T) {
	accounts := &fakeAccountPort{}
	balances := &fakeBalancePort{granted: true}
	service := NewService(accounts, balances, 5000, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("Expected no profile update error, got %v", result.ProfileUpdateErr)
	}
	if len(accounts.names) != 1 || accounts.names[0] == "" {
		t.Fatalf("Expected a generated display name, got %v", accounts.names)
	}
	if len(balances.calls) != 1 || balances.calls[0].amount != 5000 || balances.calls[0].userID != "user-1" {
		t.Fatalf("unexpected grant calls %+v", balances.calls)
	}
	if balances.calls[0].metadata["reason"] != "starting_balance" {
		t.Fatalf("unexpected metadata %v", balances.calls[0].metadata)
	}
	if !result.BalanceGranted {
		t.Fatal("Expected starting balance to be marked as granted")
	}
}

func TestOnboardNewUser_AccountUpdateFailureStillGrants(t *testing.T) {
	balances := &fakeBalancePort{granted: true}
	service := NewService(&fakeAccountPort{updateErr: errors.New("update failed")}, balances, 5000, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("Expected profile update error to be captured")
	}
	if len(balances.calls) != 1 || !result.BalanceGranted {
		t.Fatalf("Expected the balance to be granted, calls=%d", len(balances.calls))
	}
}

func TestOnboardNewUser_GrantFailureReturnsError(t *testing.T) {
	service := NewService(&fakeAccountPort{}, &fakeBalancePort{grantErr: errors.New("wallet failed")}, 5000, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when the grant fails")
	}
}

func TestOnboardNewUser_AlreadyGranted(t *testing.T) {
	service := NewService(&fakeAccountPort{}, &fakeBalancePort{granted: false}, 5000, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.BalanceGranted {
		t.Fatal("Expected the balance to be reported as already granted")
	}
}

func TestOnboardNewUser_ZeroAmountSkipsGrant(t *testing.T) {
	balances := &fakeBalancePort{granted: true}
	service := NewService(&fakeAccountPort{}, balances, 0, nil)

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if len(balances.calls) != 0 {
		t.Fatalf("no grant expected, got %d calls", len(balances.calls))
	}
}
