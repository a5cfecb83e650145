package services

import (
	"context"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StakeService handles fixed-term staking: escrow, maturity claims and
// early withdrawal.
type StakeService struct {
	userRepo  repositories.UserRepository
	stakeRepo repositories.StakeRepository
}

// NewStakeService creates a new StakeService
func NewStakeService(userRepo repositories.UserRepository, stakeRepo repositories.StakeRepository) *StakeService {
	return &StakeService{
		userRepo:  userRepo,
		stakeRepo: stakeRepo,
	}
}

// StakeSettlement is the payout of a claim or unstake.
type StakeSettlement struct {
	Principal   int `json:"principal"`
	Interest    int `json:"interest"`
	TotalAmount int `json:"totalAmount"`
	NewBalance  int `json:"newBalance"`
}

// Create escrows amount from the user's balance into a new fixed-term stake.
func (s *StakeService) Create(ctx context.Context, telegramUserID string, amount, period int, now time.Time) (*models.Stake, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	if !models.ValidStakePeriod(period) {
		return nil, models.ErrInvalidStakePeriod
	}
	if user.Balance < amount {
		return nil, models.ErrInsufficientBalance
	}

	stake, err := models.NewStake(user.ID, amount, period, now)
	if err != nil {
		return nil, err
	}
	if err := s.stakeRepo.Create(ctx, stake); err != nil {
		return nil, err
	}

	user.Balance -= amount
	user.Stakes = append(user.Stakes, stake.ID)
	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return stake, nil
}

// Claim pays out a matured stake: principal plus full-term interest.
func (s *StakeService) Claim(ctx context.Context, telegramUserID string, stakeID primitive.ObjectID, now time.Time) (*StakeSettlement, error) {
	return s.settle(ctx, telegramUserID, stakeID, func(stake *models.Stake) (int, int, error) {
		return stake.SettleClaim(now)
	})
}

// Unstake withdraws a stake at any time; interest is paid only if matured.
func (s *StakeService) Unstake(ctx context.Context, telegramUserID string, stakeID primitive.ObjectID, now time.Time) (*StakeSettlement, error) {
	return s.settle(ctx, telegramUserID, stakeID, func(stake *models.Stake) (int, int, error) {
		return stake.SettleUnstake(now)
	})
}

// ActiveStakes lists a user's active stakes.
func (s *StakeService) ActiveStakes(ctx context.Context, telegramUserID string) ([]*models.Stake, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	return s.stakeRepo.FindActiveByUserID(ctx, user.ID)
}

// ClaimableStakes lists a user's active stakes whose period has ended.
func (s *StakeService) ClaimableStakes(ctx context.Context, telegramUserID string, now time.Time) ([]*models.Stake, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	return s.stakeRepo.FindClaimableByUserID(ctx, user.ID, now)
}

func (s *StakeService) settle(ctx context.Context, telegramUserID string, stakeID primitive.ObjectID, settleFn func(*models.Stake) (int, int, error)) (*StakeSettlement, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	stake, err := s.stakeRepo.FindByID(ctx, stakeID)
	if err != nil {
		return nil, err
	}
	if stake.UserID != user.ID {
		return nil, models.ErrStakeNotOwned
	}

	principal, interest, err := settleFn(stake)
	if err != nil {
		return nil, err
	}

	total := principal + interest
	user.Balance += total
	user.RemoveStake(stake.ID)
	if err := s.stakeRepo.Update(ctx, stake); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &StakeSettlement{
		Principal:   principal,
		Interest:    interest,
		TotalAmount: total,
		NewBalance:  user.Balance,
	}, nil
}
