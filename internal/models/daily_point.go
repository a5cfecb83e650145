package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Daily-claim tuning: each consecutive day is worth another DailyStepAmount,
// capped at DailyMaxAmount (reached at MaxStreakDays).
const (
	DailyStepAmount = 1000
	DailyMaxAmount  = 30000
	MaxStreakDays   = 30
)

// Referring more than this many users in one day doubles that day's claim.
const dailyBonusReferrals = 2

// DailyPoint tracks the daily claim streak for one user. Created lazily on
// the user's first daily interaction.
type DailyPoint struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            primitive.ObjectID `bson:"user" json:"user"`
	CurrentStreak     int                `bson:"currentStreak" json:"currentStreak"`
	LastClaimDate     time.Time          `bson:"lastClaimDate,omitempty" json:"lastClaimDate,omitempty"`
	NextClaimAmount   int                `bson:"nextClaimAmount" json:"nextClaimAmount"`
	DailyReferrals    int                `bson:"dailyReferrals" json:"dailyReferrals"`
	LastReferralReset time.Time          `bson:"lastReferralReset" json:"lastReferralReset"`
}

// NewDailyPoint returns the lazily-created record for a user that has never
// claimed.
func NewDailyPoint(userID primitive.ObjectID, now time.Time) *DailyPoint {
	return &DailyPoint{
		UserID:            userID,
		NextClaimAmount:   DailyStepAmount,
		LastReferralReset: now,
	}
}

// StartOfDay normalizes t to midnight in its own location. All streak
// arithmetic works on these normalized dates.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClaimAmount is the payout for a given streak value.
func ClaimAmount(streak int) int {
	amount := streak * DailyStepAmount
	if amount > DailyMaxAmount {
		return DailyMaxAmount
	}
	return amount
}

// CanClaim reports whether today's claim is still available.
func (d *DailyPoint) CanClaim(now time.Time) bool {
	return d.LastClaimDate.IsZero() || d.LastClaimDate.Before(StartOfDay(now))
}

// Claim performs the daily claim as of now. The streak resets to zero first
// when more than one full day has lapsed since the last claim (claiming on the
// very next calendar day always keeps it), then increments; the payout is
// computed from the incremented streak and doubled when more than
// dailyBonusReferrals referrals landed today. Post-claim the daily referral
// counter resets and NextClaimAmount holds tomorrow's preview.
// Returns ErrAlreadyClaimedToday on a same-day repeat.
func (d *DailyPoint) Claim(now time.Time) (amount int, bonusApplied bool, err error) {
	today := StartOfDay(now)

	if !d.LastClaimDate.IsZero() && d.LastClaimDate.Equal(today) {
		return 0, false, ErrAlreadyClaimedToday
	}
	if d.LastClaimDate.IsZero() || d.LastClaimDate.Before(today.AddDate(0, 0, -1)) {
		d.CurrentStreak = 0
	}

	d.CurrentStreak++
	amount = ClaimAmount(d.CurrentStreak)

	if d.DailyReferrals > dailyBonusReferrals {
		amount *= 2
		bonusApplied = true
	}

	d.LastClaimDate = today
	d.NextClaimAmount = ClaimAmount(d.CurrentStreak + 1)
	d.DailyReferrals = 0
	d.LastReferralReset = today

	return amount, bonusApplied, nil
}

// AddReferral counts a new downstream registration toward today's bonus.
// The counter resets when the last reset happened before today.
func (d *DailyPoint) AddReferral(now time.Time) {
	today := StartOfDay(now)
	if d.LastReferralReset.Before(today) {
		d.DailyReferrals = 1
		d.LastReferralReset = today
	} else {
		d.DailyReferrals++
	}
}

// NextClaimPreview recomputes tomorrow's amount from the streak instead of
// trusting the stored NextClaimAmount.
func (d *DailyPoint) NextClaimPreview() int {
	return ClaimAmount(d.CurrentStreak + 1)
}

// BonusEligible reports whether today's claim would be doubled.
func (d *DailyPoint) BonusEligible() bool {
	return d.DailyReferrals > dailyBonusReferrals
}

// DaysUntilMaxStreak is the number of further consecutive days needed to
// reach the payout cap; zero once the streak is at or past it.
func (d *DailyPoint) DaysUntilMaxStreak() int {
	if d.CurrentStreak >= MaxStreakDays {
		return 0
	}
	return MaxStreakDays - d.CurrentStreak
}
