package models

import (
	"errors"
	"fmt"
)

// Business-rule errors surfaced to handlers, which map them to HTTP 400.
// Anything not in this list is treated as not-found or internal.
var (
	ErrAlreadyEarning       = errors.New("user is already earning points")
	ErrCannotStartEarning   = errors.New("user cannot start earning right now")
	ErrNothingToClaim       = errors.New("no points available to claim")
	ErrAlreadyClaimedToday  = errors.New("daily points already claimed today")
	ErrInsufficientBalance  = errors.New("insufficient balance for staking")
	ErrInvalidStakePeriod   = errors.New("invalid staking period")
	ErrStakeNotActive       = errors.New("stake is not active")
	ErrStakeNotMatured      = errors.New("staking period has not ended yet")
	ErrStakeNotOwned        = errors.New("stake does not belong to this user")
	ErrPromoInactive        = errors.New("promo code is not active")
	ErrPromoExpired         = errors.New("promo code has expired")
	ErrPromoExists          = errors.New("promo code already exists")
	ErrTasksIncomplete      = errors.New("all available tasks must be completed before using a promo code")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrWalletInUse          = errors.New("wallet address is already in use")
	ErrWalletNotSet         = errors.New("wallet address not set")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrUserExists           = errors.New("user is already registered")
	ErrInvalidReferralCode  = errors.New("invalid referral code")
	ErrInvalidScore         = errors.New("score must be positive")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)

// PromoCooldownError reports how long until a promo code may be reused.
type PromoCooldownError struct {
	HoursLeft int
}

func (e *PromoCooldownError) Error() string {
	return fmt.Sprintf("you can use this promo code again in %d hours", e.HoursLeft)
}
