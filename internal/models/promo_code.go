package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromoCooldown is the per-user window within which the same code may not be
// redeemed again.
const PromoCooldown = 24 * time.Hour

// PromoCode is a flat point boost redeemable once per cooldown window per
// user. Reward parameters are immutable; usage is tracked on the User.
type PromoCode struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code           string             `bson:"code" json:"code"`
	PointsBoost    int                `bson:"pointsBoost" json:"pointsBoost"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	ExpirationDate time.Time          `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Redeemable checks the code's own gates: active flag and expiry.
func (p *PromoCode) Redeemable(now time.Time) error {
	if !p.IsActive {
		return ErrPromoInactive
	}
	if !p.ExpirationDate.IsZero() && p.ExpirationDate.Before(now) {
		return ErrPromoExpired
	}
	return nil
}

// CheckCooldown enforces the per-user reuse window against the user's most
// recent redemption of this code. On violation it returns a
// PromoCooldownError carrying the whole hours remaining, rounded up.
func (p *PromoCode) CheckCooldown(u *User, now time.Time) error {
	last, ok := u.LastPromoUse(p.ID)
	if !ok {
		return nil
	}
	eligibleAt := last.Add(PromoCooldown)
	if now.Before(eligibleAt) {
		hoursLeft := int(math.Ceil(eligibleAt.Sub(now).Hours()))
		return &PromoCooldownError{HoursLeft: hoursLeft}
	}
	return nil
}

// Apply credits the boost and records the redemption. Callers run Redeemable
// and CheckCooldown (and the optional task gate) first.
func (p *PromoCode) Apply(u *User, now time.Time) int {
	u.Balance += p.PointsBoost
	u.UsedPromoCodes = append(u.UsedPromoCodes, PromoUsage{PromoCode: p.ID, UsedAt: now})
	return p.PointsBoost
}
