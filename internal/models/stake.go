package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StakeStatus is the lifecycle state of a stake. A stake is mutable only in
// its status field and only away from StakeActive.
type StakeStatus string

const (
	StakeActive   StakeStatus = "active"
	StakeClaimed  StakeStatus = "claimed"
	StakeUnstaked StakeStatus = "unstaked"
)

// Fixed staking terms: period in days to interest in basis points. Interest
// is computed in basis points so amount*rate is exact integer arithmetic.
var stakePeriodBps = map[int]int{
	3:  300,
	15: 1000,
	45: 3500,
}

// Stake is a fixed-term escrow of points. The amount is deducted from the
// owner's balance at creation and returned, with interest when matured, on
// claim or unstake.
type Stake struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	Amount       int                `bson:"amount" json:"amount"`
	Period       int                `bson:"period" json:"period"`
	InterestRate float64            `bson:"interestRate" json:"interestRate"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Status       StakeStatus        `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewStake builds an active stake for one of the fixed terms.
// Returns ErrInvalidStakePeriod for any other period.
func NewStake(userID primitive.ObjectID, amount, period int, now time.Time) (*Stake, error) {
	bps, ok := stakePeriodBps[period]
	if !ok {
		return nil, ErrInvalidStakePeriod
	}
	return &Stake{
		UserID:       userID,
		Amount:       amount,
		Period:       period,
		InterestRate: float64(bps) / 10000,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, period),
		Status:       StakeActive,
	}, nil
}

// ValidStakePeriod reports whether period is one of the fixed terms.
func ValidStakePeriod(period int) bool {
	_, ok := stakePeriodBps[period]
	return ok
}

// Interest is the full-term interest on the staked amount.
func (s *Stake) Interest() int {
	return s.Amount * stakePeriodBps[s.Period] / 10000
}

// IsMatured reports whether the staking period has ended.
func (s *Stake) IsMatured(now time.Time) bool {
	return !now.Before(s.EndDate)
}

// SettleClaim pays out a matured stake: principal plus interest.
// Fails on a non-active stake or before maturity.
func (s *Stake) SettleClaim(now time.Time) (principal, interest int, err error) {
	if s.Status != StakeActive {
		return 0, 0, ErrStakeNotActive
	}
	if !s.IsMatured(now) {
		return 0, 0, ErrStakeNotMatured
	}
	s.Status = StakeClaimed
	return s.Amount, s.Interest(), nil
}

// SettleUnstake withdraws a stake at any time. A matured stake still pays
// full interest; an early withdrawal returns principal only.
func (s *Stake) SettleUnstake(now time.Time) (principal, interest int, err error) {
	if s.Status != StakeActive {
		return 0, 0, ErrStakeNotActive
	}
	s.Status = StakeUnstaked
	if s.IsMatured(now) {
		return s.Amount, s.Interest(), nil
	}
	return s.Amount, 0, nil
}
