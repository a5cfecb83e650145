package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warthug/points-backend/internal/models"
)

func stakeFixture(t *testing.T, balance int) (*StakeService, *fakeUserRepo) {
	t.Helper()
	user := &models.User{TelegramUserID: "tg-1", Username: "alice", Balance: balance, TotalEarnings: balance}
	userRepo := newFakeUserRepo(user)
	return NewStakeService(userRepo, newFakeStakeRepo()), userRepo
}

func TestCreateStakeEscrowsBalance(t *testing.T) {
	svc, userRepo := stakeFixture(t, 50000)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stake, err := svc.Create(ctx, "tg-1", 20000, 15, now)
	if err != nil {
		t.Fatal(err)
	}
	if stake.Status != models.StakeActive {
		t.Errorf("status = %q", stake.Status)
	}

	stored, _ := userRepo.FindByTelegramID(ctx, "tg-1")
	if stored.Balance != 30000 {
		t.Errorf("balance = %d, want 30000", stored.Balance)
	}
	// Escrow is not a spend-and-refund of earnings.
	if stored.TotalEarnings != 50000 {
		t.Errorf("total earnings = %d, want 50000", stored.TotalEarnings)
	}
	if len(stored.Stakes) != 1 || stored.Stakes[0] != stake.ID {
		t.Errorf("stakes = %v", stored.Stakes)
	}
}

func TestCreateStakeInsufficientBalance(t *testing.T) {
	svc, _ := stakeFixture(t, 1000)

	_, err := svc.Create(context.Background(), "tg-1", 20000, 15, time.Now())
	if !errors.Is(err, models.ErrInsufficientBalance) {
		t.Errorf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestCreateStakeInvalidPeriod(t *testing.T) {
	svc, _ := stakeFixture(t, 50000)

	_, err := svc.Create(context.Background(), "tg-1", 1000, 7, time.Now())
	if !errors.Is(err, models.ErrInvalidStakePeriod) {
		t.Errorf("err = %v, want ErrInvalidStakePeriod", err)
	}
}

func TestClaimMaturedStake(t *testing.T) {
	svc, userRepo := stakeFixture(t, 50000)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stake, err := svc.Create(ctx, "tg-1", 20000, 15, now)
	if err != nil {
		t.Fatal(err)
	}

	// Too early.
	if _, err := svc.Claim(ctx, "tg-1", stake.ID, now.AddDate(0, 0, 14)); !errors.Is(err, models.ErrStakeNotMatured) {
		t.Fatalf("early claim err = %v, want ErrStakeNotMatured", err)
	}

	settlement, err := svc.Claim(ctx, "tg-1", stake.ID, now.AddDate(0, 0, 15))
	if err != nil {
		t.Fatal(err)
	}
	if settlement.Principal != 20000 || settlement.Interest != 2000 {
		t.Errorf("settlement = %d+%d, want 20000+2000", settlement.Principal, settlement.Interest)
	}
	if settlement.NewBalance != 52000 {
		t.Errorf("NewBalance = %d, want 52000", settlement.NewBalance)
	}

	stored, _ := userRepo.FindByTelegramID(ctx, "tg-1")
	if len(stored.Stakes) != 0 {
		t.Errorf("stake reference not removed: %v", stored.Stakes)
	}

	// Double claim is rejected.
	if _, err := svc.Claim(ctx, "tg-1", stake.ID, now.AddDate(0, 0, 16)); !errors.Is(err, models.ErrStakeNotActive) {
		t.Errorf("double claim err = %v, want ErrStakeNotActive", err)
	}
}

func TestUnstakeEarlyForfeitsInterest(t *testing.T) {
	svc, _ := stakeFixture(t, 50000)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stake, err := svc.Create(ctx, "tg-1", 20000, 45, now)
	if err != nil {
		t.Fatal(err)
	}

	settlement, err := svc.Unstake(ctx, "tg-1", stake.ID, now.AddDate(0, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	if settlement.Principal != 20000 || settlement.Interest != 0 {
		t.Errorf("settlement = %d+%d, want 20000+0", settlement.Principal, settlement.Interest)
	}
	if settlement.NewBalance != 50000 {
		t.Errorf("NewBalance = %d, want 50000", settlement.NewBalance)
	}
}

func TestStakeOwnership(t *testing.T) {
	alice := &models.User{TelegramUserID: "tg-1", Username: "alice", Balance: 50000}
	bob := &models.User{TelegramUserID: "tg-2", Username: "bob", Balance: 50000}
	userRepo := newFakeUserRepo(alice, bob)
	svc := NewStakeService(userRepo, newFakeStakeRepo())
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stake, err := svc.Create(ctx, "tg-1", 10000, 3, now)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Unstake(ctx, "tg-2", stake.ID, now); !errors.Is(err, models.ErrStakeNotOwned) {
		t.Errorf("err = %v, want ErrStakeNotOwned", err)
	}
}

func TestActiveAndClaimableStakes(t *testing.T) {
	svc, _ := stakeFixture(t, 100000)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	short, err := svc.Create(ctx, "tg-1", 10000, 3, now)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "tg-1", 10000, 45, now); err != nil {
		t.Fatal(err)
	}

	active, err := svc.ActiveStakes(ctx, "tg-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("active stakes = %d, want 2", len(active))
	}

	// After 3 days only the short stake is claimable.
	claimable, err := svc.ClaimableStakes(ctx, "tg-1", now.AddDate(0, 0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(claimable) != 1 || claimable[0].ID != short.ID {
		t.Errorf("claimable = %v", claimable)
	}
}
