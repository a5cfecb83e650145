package models

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 9, 30, 0, 0, time.UTC)
}

func TestClaimAmountProgression(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{1, 1000},
		{5, 5000},
		{29, 29000},
		{30, 30000},
		{31, 30000},
		{100, 30000},
	}
	for _, tt := range tests {
		if got := ClaimAmount(tt.streak); got != tt.want {
			t.Errorf("ClaimAmount(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

func TestDailyClaimConsecutiveDays(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	for i := 1; i <= 5; i++ {
		amount, bonus, err := d.Claim(day(i))
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if bonus {
			t.Fatalf("day %d: unexpected bonus", i)
		}
		if want := i * 1000; amount != want {
			t.Errorf("day %d: amount = %d, want %d", i, amount, want)
		}
	}
	if d.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", d.CurrentStreak)
	}
	if d.NextClaimAmount != 6000 {
		t.Errorf("NextClaimAmount = %d, want 6000", d.NextClaimAmount)
	}
}

func TestDailyClaimSameDayRejected(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	if _, _, err := d.Claim(day(1)); err != nil {
		t.Fatal(err)
	}
	_, _, err := d.Claim(day(1).Add(5 * time.Hour))
	if !errors.Is(err, ErrAlreadyClaimedToday) {
		t.Fatalf("err = %v, want ErrAlreadyClaimedToday", err)
	}
	if d.CurrentStreak != 1 {
		t.Errorf("rejected claim changed streak: %d", d.CurrentStreak)
	}
}

func TestDailyClaimNextCalendarDayKeepsStreak(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	// Claim late on day 1, then early on day 2: more than 24h apart by clock
	// time but still consecutive calendar days.
	late := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	early := time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)

	if _, _, err := d.Claim(late); err != nil {
		t.Fatal(err)
	}
	amount, _, err := d.Claim(early)
	if err != nil {
		t.Fatal(err)
	}
	if amount != 2000 {
		t.Errorf("next-day amount = %d, want 2000", amount)
	}
	if d.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", d.CurrentStreak)
	}
}

func TestDailyClaimMissedDayResets(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	for i := 1; i <= 3; i++ {
		if _, _, err := d.Claim(day(i)); err != nil {
			t.Fatal(err)
		}
	}

	// Skip day 4 entirely.
	amount, _, err := d.Claim(day(5))
	if err != nil {
		t.Fatal(err)
	}
	if amount != 1000 {
		t.Errorf("post-gap amount = %d, want 1000", amount)
	}
	if d.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", d.CurrentStreak)
	}
}

func TestDailyClaimReferralBonus(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	// Two referrals is not enough for the bonus.
	d.AddReferral(day(1))
	d.AddReferral(day(1))
	if d.BonusEligible() {
		t.Fatal("two referrals should not qualify")
	}

	d.AddReferral(day(1))
	if !d.BonusEligible() {
		t.Fatal("three referrals should qualify")
	}

	amount, bonus, err := d.Claim(day(1))
	if err != nil {
		t.Fatal(err)
	}
	if !bonus {
		t.Error("expected bonus applied")
	}
	if amount != 2000 {
		t.Errorf("amount = %d, want 2000", amount)
	}
	if d.DailyReferrals != 0 {
		t.Errorf("DailyReferrals not reset: %d", d.DailyReferrals)
	}
}

func TestAddReferralResetsAcrossDays(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))

	d.AddReferral(day(1))
	d.AddReferral(day(1))
	d.AddReferral(day(2))
	if d.DailyReferrals != 1 {
		t.Errorf("DailyReferrals = %d, want 1 after day rollover", d.DailyReferrals)
	}
}

func TestDaysUntilMaxStreak(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))
	if got := d.DaysUntilMaxStreak(); got != 30 {
		t.Errorf("fresh record = %d, want 30", got)
	}

	d.CurrentStreak = 12
	if got := d.DaysUntilMaxStreak(); got != 18 {
		t.Errorf("streak 12 = %d, want 18", got)
	}

	d.CurrentStreak = 42
	if got := d.DaysUntilMaxStreak(); got != 0 {
		t.Errorf("past max = %d, want 0", got)
	}
}

func TestCanClaim(t *testing.T) {
	d := NewDailyPoint(primitive.NewObjectID(), day(1))
	if !d.CanClaim(day(1)) {
		t.Error("fresh record should be claimable")
	}

	if _, _, err := d.Claim(day(1)); err != nil {
		t.Fatal(err)
	}
	if d.CanClaim(day(1).Add(3 * time.Hour)) {
		t.Error("same day should not be claimable")
	}
	if !d.CanClaim(day(2)) {
		t.Error("next day should be claimable")
	}
}
