package services

import (
	"context"
	"errors"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// DailyPointService handles the daily claim streak.
type DailyPointService struct {
	userRepo       repositories.UserRepository
	dailyPointRepo repositories.DailyPointRepository
}

// NewDailyPointService creates a new DailyPointService
func NewDailyPointService(userRepo repositories.UserRepository, dailyPointRepo repositories.DailyPointRepository) *DailyPointService {
	return &DailyPointService{
		userRepo:       userRepo,
		dailyPointRepo: dailyPointRepo,
	}
}

// DailyClaimResult is the daily-claim response payload.
type DailyClaimResult struct {
	ClaimedAmount   int  `json:"claimedAmount"`
	CurrentStreak   int  `json:"currentStreak"`
	NextClaimAmount int  `json:"nextClaimAmount"`
	NewBalance      int  `json:"newBalance"`
	BonusApplied    bool `json:"bonusApplied"`
}

// DailyStatus is the daily-point status response payload.
type DailyStatus struct {
	CurrentStreak      int       `json:"currentStreak"`
	NextClaimAmount    int       `json:"nextClaimAmount"`
	LastClaimDate      time.Time `json:"lastClaimDate,omitempty"`
	CanClaimToday      bool      `json:"canClaimToday"`
	DailyReferrals     int       `json:"dailyReferrals"`
	BonusEligible      bool      `json:"bonusEligible"`
	DaysUntilMaxStreak int       `json:"daysUntilMaxStreak"`
}

// Claim performs the user's daily claim and credits the payout.
func (s *DailyPointService) Claim(ctx context.Context, telegramUserID string, now time.Time) (*DailyClaimResult, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	dp, created, err := s.findOrNew(ctx, user, now)
	if err != nil {
		return nil, err
	}

	amount, bonusApplied, err := dp.Claim(now)
	if err != nil {
		return nil, err
	}

	user.AddEarnings(amount)
	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if created {
		err = s.dailyPointRepo.Create(ctx, dp)
	} else {
		err = s.dailyPointRepo.Update(ctx, dp)
	}
	if err != nil {
		return nil, err
	}

	return &DailyClaimResult{
		ClaimedAmount:   amount,
		CurrentStreak:   dp.CurrentStreak,
		NextClaimAmount: dp.NextClaimAmount,
		NewBalance:      user.Balance,
		BonusApplied:    bonusApplied,
	}, nil
}

// GetStatus returns the streak status, lazily creating the record on first
// interaction. The next-claim amount is recomputed from the streak rather
// than read back from the stored field.
func (s *DailyPointService) GetStatus(ctx context.Context, telegramUserID string, now time.Time) (*DailyStatus, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	dp, created, err := s.findOrNew(ctx, user, now)
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.dailyPointRepo.Create(ctx, dp); err != nil {
			return nil, err
		}
	}

	return &DailyStatus{
		CurrentStreak:      dp.CurrentStreak,
		NextClaimAmount:    dp.NextClaimPreview(),
		LastClaimDate:      dp.LastClaimDate,
		CanClaimToday:      dp.CanClaim(now),
		DailyReferrals:     dp.DailyReferrals,
		BonusEligible:      dp.BonusEligible(),
		DaysUntilMaxStreak: dp.DaysUntilMaxStreak(),
	}, nil
}

func (s *DailyPointService) findOrNew(ctx context.Context, user *models.User, now time.Time) (*models.DailyPoint, bool, error) {
	dp, err := s.dailyPointRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.NewDailyPoint(user.ID, now), true, nil
		}
		return nil, false, err
	}
	return dp, false, nil
}
