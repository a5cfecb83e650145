package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration bonuses. The direct referrer also heads the cascade, so a
// single referral is worth DirectReferralBonus plus the level-1 share.
const (
	JoinBonus           = 30000
	DirectReferralBonus = 15000
	cascadeBase         = 30000
)

// Shares of cascadeBase paid to ancestor levels 1 through 5.
var cascadeShares = []float64{0.20, 0.10, 0.05, 0.025, 0.0125}

// CascadeLevels is the maximum depth of the referral cascade.
var CascadeLevels = len(cascadeShares)

// CascadeBonus is the floored award for a 1-based cascade level;
// 0 outside the cascade depth.
func CascadeBonus(level int) int {
	if level < 1 || level > len(cascadeShares) {
		return 0
	}
	return int(cascadeBase * cascadeShares[level-1])
}

// CascadeStep is one planned award of the referral cascade.
type CascadeStep struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Level  int                `bson:"level" json:"level"`
	Amount int                `bson:"amount" json:"amount"`
}

// ReferralCascade records a planned multi-level referral payout and how far
// it got. The per-level saves are independent single-document writes, so a
// mid-chain failure leaves the cascade partially applied; LevelsApplied is
// the watermark that lets a resume continue without double-awarding.
type ReferralCascade struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NewUserID     primitive.ObjectID `bson:"newUser" json:"newUser"`
	Steps         []CascadeStep      `bson:"steps" json:"steps"`
	LevelsApplied int                `bson:"levelsApplied" json:"levelsApplied"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt   time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Completed reports whether every planned level has been applied.
func (c *ReferralCascade) Completed() bool {
	return c.LevelsApplied >= len(c.Steps)
}
