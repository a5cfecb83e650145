package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReferralService applies the registration-time referral rewards: the direct
// referrer bonus and the multi-level cascade up the referral chain.
type ReferralService struct {
	userRepo       repositories.UserRepository
	dailyPointRepo repositories.DailyPointRepository
	cascadeRepo    repositories.ReferralCascadeRepository
}

// NewReferralService creates a new ReferralService
func NewReferralService(
	userRepo repositories.UserRepository,
	dailyPointRepo repositories.DailyPointRepository,
	cascadeRepo repositories.ReferralCascadeRepository,
) *ReferralService {
	return &ReferralService{
		userRepo:       userRepo,
		dailyPointRepo: dailyPointRepo,
		cascadeRepo:    cascadeRepo,
	}
}

// ProcessReferral rewards the chain above a new registration. The direct
// referrer gets the new user appended to its referrals plus the flat bonus;
// ancestor levels 1-5 (the referrer included) get their cascade share. Each
// award is an independent single-document write, so a mid-chain failure
// leaves the cascade partially applied; the persisted watermark makes
// ResumeCascade safe to call afterwards.
func (s *ReferralService) ProcessReferral(ctx context.Context, referrer, newUser *models.User, now time.Time) error {
	referrer.Referrals = append(referrer.Referrals, newUser.ID)
	referrer.AddEarnings(models.DirectReferralBonus)
	if err := s.userRepo.Update(ctx, referrer); err != nil {
		return fmt.Errorf("crediting direct referrer: %w", err)
	}

	// Count toward the referrer's daily-claim bonus. Missing record means the
	// referrer never interacted with daily points; silently skip.
	s.addDailyReferral(ctx, referrer.ID, now)

	cascade, err := s.planCascade(ctx, referrer, newUser.ID)
	if err != nil {
		return err
	}
	if err := s.cascadeRepo.Create(ctx, cascade); err != nil {
		return fmt.Errorf("recording referral cascade: %w", err)
	}

	return s.applyCascade(ctx, cascade)
}

// ResumeCascade re-applies a registration's cascade from its watermark.
// Already-applied levels are skipped, so a retry never double-awards.
func (s *ReferralService) ResumeCascade(ctx context.Context, newUserID primitive.ObjectID) error {
	cascade, err := s.cascadeRepo.FindByNewUserID(ctx, newUserID)
	if err != nil {
		return err
	}
	return s.applyCascade(ctx, cascade)
}

// planCascade walks referredBy pointers upward from the direct referrer,
// assigning cascade levels until the chain ends or the depth is exhausted.
func (s *ReferralService) planCascade(ctx context.Context, referrer *models.User, newUserID primitive.ObjectID) (*models.ReferralCascade, error) {
	cascade := &models.ReferralCascade{NewUserID: newUserID}

	current := referrer
	for level := 1; level <= models.CascadeLevels; level++ {
		cascade.Steps = append(cascade.Steps, models.CascadeStep{
			UserID: current.ID,
			Level:  level,
			Amount: models.CascadeBonus(level),
		})

		if current.ReferredBy.IsZero() {
			break
		}
		parent, err := s.userRepo.FindByID(ctx, current.ReferredBy)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return nil, fmt.Errorf("walking referral chain: %w", err)
		}
		current = parent
	}

	return cascade, nil
}

func (s *ReferralService) applyCascade(ctx context.Context, cascade *models.ReferralCascade) error {
	for i := cascade.LevelsApplied; i < len(cascade.Steps); i++ {
		step := cascade.Steps[i]
		if err := s.userRepo.IncrementEarnings(ctx, step.UserID, step.Amount); err != nil {
			log.Printf("referral cascade for %s stopped at level %d: %v", cascade.NewUserID.Hex(), step.Level, err)
			return fmt.Errorf("applying cascade level %d: %w", step.Level, err)
		}
		cascade.LevelsApplied = i + 1
		if err := s.cascadeRepo.Update(ctx, cascade); err != nil {
			// The award landed but the watermark did not; a resume would
			// double-pay this level, so surface the inconsistency.
			return fmt.Errorf("advancing cascade watermark past level %d: %w", step.Level, err)
		}
	}

	if cascade.Completed() && cascade.CompletedAt.IsZero() {
		cascade.CompletedAt = time.Now()
		if err := s.cascadeRepo.Update(ctx, cascade); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReferralService) addDailyReferral(ctx context.Context, userID primitive.ObjectID, now time.Time) {
	dp, err := s.dailyPointRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("adding daily referral for %s: %v", userID.Hex(), err)
		}
		return
	}
	dp.AddReferral(now)
	if err := s.dailyPointRepo.Update(ctx, dp); err != nil {
		log.Printf("adding daily referral for %s: %v", userID.Hex(), err)
	}
}
