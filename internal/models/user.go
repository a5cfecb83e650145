package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EarningTier is the booster tier that drives the passive-earning multiplier.
// It is independent from Classification; the two never overwrite each other.
type EarningTier string

const (
	TierUser              EarningTier = "User"
	TierMonthlyBooster    EarningTier = "MonthlyBooster"
	TierLifeTimeBooster   EarningTier = "LifeTimeBooster"
	TierMonthly3xBooster  EarningTier = "Monthly3xBooster"
	TierLifeTime6xBooster EarningTier = "LifeTime6xBooster"
)

// ValidTier reports whether t is one of the known earning tiers.
func ValidTier(t EarningTier) bool {
	switch t {
	case TierUser, TierMonthlyBooster, TierLifeTimeBooster, TierMonthly3xBooster, TierLifeTime6xBooster:
		return true
	}
	return false
}

// Points accrue at BaseEarningRate per hour while an earning session is open.
// The User-tier cap of 3600 is carried over from the original system verbatim,
// including its unit mismatch with the hourly rate.
const (
	BaseEarningRate = 10800
	UserTierCap     = 3600
)

// PromoUsage records a single redemption of a promo code by a user.
type PromoUsage struct {
	PromoCode primitive.ObjectID `bson:"promoCode" json:"promoCode"`
	UsedAt    time.Time          `bson:"usedAt" json:"usedAt"`
}

// User represents a registered account: balance, referral graph position and
// earning-session state. The username doubles as the account's referral code.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	TelegramUserID string               `bson:"telegramUserId" json:"telegramUserId"`
	Username       string               `bson:"username" json:"username"`
	WalletAddress  string               `bson:"walletAddress,omitempty" json:"walletAddress,omitempty"`
	EarningTier    EarningTier          `bson:"earningTier" json:"earningTier"`
	Classification Classification       `bson:"classification" json:"classification"`
	Balance        int                  `bson:"balance" json:"balance"`
	TotalEarnings  int                  `bson:"totalEarnings" json:"totalEarnings"`
	IsEarning      bool                 `bson:"isEarning" json:"isEarning"`
	LastStartTime  time.Time            `bson:"lastStartTime,omitempty" json:"lastStartTime,omitempty"`
	LastClaimTime  time.Time            `bson:"lastClaimTime,omitempty" json:"lastClaimTime,omitempty"`
	TierExpiryDate time.Time            `bson:"tierExpiryDate,omitempty" json:"tierExpiryDate,omitempty"`
	ReferredBy     primitive.ObjectID   `bson:"referredBy,omitempty" json:"referredBy,omitempty"`
	Referrals      []primitive.ObjectID `bson:"referrals" json:"referrals"`
	TasksCompleted []primitive.ObjectID `bson:"tasksCompleted" json:"tasksCompleted"`
	Stakes         []primitive.ObjectID `bson:"stakes" json:"stakes"`
	UsedPromoCodes []PromoUsage         `bson:"usedPromoCodes" json:"usedPromoCodes"`
	LastActive     time.Time            `bson:"lastActive" json:"lastActive"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// StartEarning opens an earning session. Returns false if one is already open.
func (u *User) StartEarning(now time.Time) bool {
	if u.IsEarning {
		return false
	}
	u.IsEarning = true
	u.LastStartTime = now
	return true
}

// StopEarning closes the current earning session, if any.
func (u *User) StopEarning() bool {
	if u.IsEarning {
		u.IsEarning = false
		return true
	}
	return false
}

// CanStartEarning reports whether a new earning session may be opened.
// There is no cooldown; the only condition is that none is open.
func (u *User) CanStartEarning() bool {
	return !u.IsEarning
}

// CalculateEarnings returns the points accrued by the open earning session as
// of now, with the tier multiplier applied and the result floored. Returns 0
// when no session is open or no start time is recorded.
func (u *User) CalculateEarnings(now time.Time) int {
	if !u.IsEarning || u.LastStartTime.IsZero() {
		return 0
	}

	hours := now.Sub(u.LastStartTime).Hours()
	base := BaseEarningRate * hours

	switch u.EarningTier {
	case TierMonthlyBooster, TierLifeTimeBooster:
		return int(base)
	case TierMonthly3xBooster:
		return int(base * 3)
	case TierLifeTime6xBooster:
		return int(base * 6)
	case TierUser:
		earned := int(base)
		if earned > UserTierCap {
			return UserTierCap
		}
		return earned
	default:
		return 0
	}
}

// Claim settles the open earning session: the accrued amount is added to the
// balance, the session is closed and the start time cleared. Returns the
// amount claimed; 0 means there was nothing to claim and no state changed.
func (u *User) Claim(now time.Time) int {
	earnings := u.CalculateEarnings(now)
	if earnings <= 0 {
		return 0
	}
	u.AddEarnings(earnings)
	u.LastClaimTime = now
	u.StopEarning()
	u.LastStartTime = time.Time{}
	return earnings
}

// AddEarnings credits amount to both the spendable balance and the lifetime
// total. TotalEarnings is monotonic; spending flows touch Balance only.
func (u *User) AddEarnings(amount int) {
	u.Balance += amount
	u.TotalEarnings += amount
}

// SetTier assigns an earning tier. A positive duration sets an expiry that
// many days out; lifetime tiers clear any expiry.
func (u *User) SetTier(tier EarningTier, durationInDays int, now time.Time) {
	u.EarningTier = tier
	if durationInDays > 0 {
		u.TierExpiryDate = now.AddDate(0, 0, durationInDays)
	} else if tier == TierLifeTimeBooster || tier == TierLifeTime6xBooster {
		u.TierExpiryDate = time.Time{}
	}
}

// ApplyTierExpiry reverts an expired booster tier to the base tier, clears the
// expiry and force-stops any earning session. Returns true if it fired.
// Callers run this before any earning-dependent operation.
func (u *User) ApplyTierExpiry(now time.Time) bool {
	if u.TierExpiryDate.IsZero() || u.TierExpiryDate.After(now) {
		return false
	}
	u.EarningTier = TierUser
	u.TierExpiryDate = time.Time{}
	u.StopEarning()
	return true
}

// HasCompletedTask reports whether taskID is in the completed set.
func (u *User) HasCompletedTask(taskID primitive.ObjectID) bool {
	for _, id := range u.TasksCompleted {
		if id == taskID {
			return true
		}
	}
	return false
}

// LastPromoUse returns the most recent redemption time of the given promo
// code, if the user has ever redeemed it.
func (u *User) LastPromoUse(promoID primitive.ObjectID) (time.Time, bool) {
	var last time.Time
	found := false
	for _, usage := range u.UsedPromoCodes {
		if usage.PromoCode == promoID && usage.UsedAt.After(last) {
			last = usage.UsedAt
			found = true
		}
	}
	return last, found
}

// RemoveStake drops a stake reference from the active-stake list.
func (u *User) RemoveStake(stakeID primitive.ObjectID) {
	kept := u.Stakes[:0]
	for _, id := range u.Stakes {
		if id != stakeID {
			kept = append(kept, id)
		}
	}
	u.Stakes = kept
}
