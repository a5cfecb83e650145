package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStartStopEarning(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &User{EarningTier: TierUser}

	if !u.CanStartEarning() {
		t.Fatal("expected fresh user to be able to start earning")
	}
	if !u.StartEarning(now) {
		t.Fatal("expected StartEarning to succeed")
	}
	if u.StartEarning(now.Add(time.Minute)) {
		t.Error("expected second StartEarning to fail while session open")
	}
	if !u.LastStartTime.Equal(now) {
		t.Errorf("LastStartTime = %v, want %v", u.LastStartTime, now)
	}
	if !u.StopEarning() {
		t.Error("expected StopEarning to succeed")
	}
	if u.StopEarning() {
		t.Error("expected StopEarning on a closed session to fail")
	}
}

func TestCalculateEarnings(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		tier    EarningTier
		elapsed time.Duration
		want    int
	}{
		{"user tier capped", TierUser, 2 * time.Hour, UserTierCap},
		{"user tier under cap", TierUser, 10 * time.Minute, 1800},
		{"monthly one hour", TierMonthlyBooster, time.Hour, 10800},
		{"lifetime one hour", TierLifeTimeBooster, time.Hour, 10800},
		{"monthly 3x one hour", TierMonthly3xBooster, time.Hour, 32400},
		{"lifetime 6x one hour", TierLifeTime6xBooster, time.Hour, 64800},
		{"monthly half hour floors", TierMonthlyBooster, 30 * time.Minute, 5400},
		{"unknown tier earns nothing", EarningTier("Gold"), time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{EarningTier: tt.tier}
			u.StartEarning(start)
			got := u.CalculateEarnings(start.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("CalculateEarnings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateEarningsNoSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u := &User{EarningTier: TierMonthlyBooster}
	if got := u.CalculateEarnings(now); got != 0 {
		t.Errorf("CalculateEarnings without session = %d, want 0", got)
	}

	u.IsEarning = true // no start time recorded
	if got := u.CalculateEarnings(now); got != 0 {
		t.Errorf("CalculateEarnings without start time = %d, want 0", got)
	}
}

func TestClaimSettlesSession(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &User{EarningTier: TierMonthlyBooster, Balance: 500, TotalEarnings: 500}
	u.StartEarning(start)

	claimed := u.Claim(start.Add(time.Hour))
	if claimed != 10800 {
		t.Fatalf("Claim() = %d, want 10800", claimed)
	}
	if u.Balance != 11300 {
		t.Errorf("Balance = %d, want 11300", u.Balance)
	}
	if u.TotalEarnings != 11300 {
		t.Errorf("TotalEarnings = %d, want 11300", u.TotalEarnings)
	}
	if u.IsEarning {
		t.Error("expected session closed after claim")
	}
	if !u.LastStartTime.IsZero() {
		t.Error("expected start time cleared after claim")
	}
}

func TestClaimNothingAccrued(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &User{EarningTier: TierUser, Balance: 100}

	if claimed := u.Claim(now); claimed != 0 {
		t.Errorf("Claim without session = %d, want 0", claimed)
	}
	if u.Balance != 100 {
		t.Errorf("Balance changed on empty claim: %d", u.Balance)
	}
}

func TestSetTierAndExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u := &User{EarningTier: TierUser}
	u.SetTier(TierMonthly3xBooster, 30, now)
	if u.EarningTier != TierMonthly3xBooster {
		t.Fatalf("EarningTier = %q", u.EarningTier)
	}
	want := now.AddDate(0, 0, 30)
	if !u.TierExpiryDate.Equal(want) {
		t.Errorf("TierExpiryDate = %v, want %v", u.TierExpiryDate, want)
	}

	// Not yet expired.
	if u.ApplyTierExpiry(want.Add(-time.Second)) {
		t.Error("tier expired early")
	}

	// Expired: reverts to base tier and stops any open session.
	u.StartEarning(want)
	if !u.ApplyTierExpiry(want) {
		t.Fatal("expected expiry to fire at the expiry instant")
	}
	if u.EarningTier != TierUser {
		t.Errorf("EarningTier after expiry = %q, want %q", u.EarningTier, TierUser)
	}
	if !u.TierExpiryDate.IsZero() {
		t.Error("expected expiry date cleared")
	}
	if u.IsEarning {
		t.Error("expected earning session force-stopped on expiry")
	}
}

func TestSetTierLifetimeClearsExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &User{EarningTier: TierMonthlyBooster, TierExpiryDate: now.AddDate(0, 0, 3)}

	u.SetTier(TierLifeTime6xBooster, 0, now)
	if !u.TierExpiryDate.IsZero() {
		t.Errorf("lifetime tier kept expiry %v", u.TierExpiryDate)
	}
	if u.ApplyTierExpiry(now.AddDate(1, 0, 0)) {
		t.Error("lifetime tier must never expire")
	}
}

func TestLastPromoUse(t *testing.T) {
	promoID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	t1 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(26 * time.Hour)

	u := &User{UsedPromoCodes: []PromoUsage{
		{PromoCode: promoID, UsedAt: t1},
		{PromoCode: otherID, UsedAt: t2.Add(time.Hour)},
		{PromoCode: promoID, UsedAt: t2},
	}}

	last, ok := u.LastPromoUse(promoID)
	if !ok {
		t.Fatal("expected a recorded use")
	}
	if !last.Equal(t2) {
		t.Errorf("LastPromoUse = %v, want %v", last, t2)
	}

	if _, ok := u.LastPromoUse(primitive.NewObjectID()); ok {
		t.Error("expected no use recorded for unknown promo")
	}
}

func TestRemoveStake(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	u := &User{Stakes: []primitive.ObjectID{a, b, c}}

	u.RemoveStake(b)
	if len(u.Stakes) != 2 || u.Stakes[0] != a || u.Stakes[1] != c {
		t.Errorf("Stakes after removal = %v", u.Stakes)
	}

	u.RemoveStake(primitive.NewObjectID())
	if len(u.Stakes) != 2 {
		t.Errorf("removing unknown stake changed the list: %v", u.Stakes)
	}
}
