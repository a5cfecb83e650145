package services

import (
	"context"
	"errors"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// PromoService handles promo code creation and redemption.
type PromoService struct {
	userRepo  repositories.UserRepository
	promoRepo repositories.PromoCodeRepository
	taskRepo  repositories.TaskRepository
	// requireTasks gates redemption behind completion of all active tasks.
	requireTasks bool
}

// NewPromoService creates a new PromoService
func NewPromoService(
	userRepo repositories.UserRepository,
	promoRepo repositories.PromoCodeRepository,
	taskRepo repositories.TaskRepository,
	requireTasks bool,
) *PromoService {
	return &PromoService{
		userRepo:     userRepo,
		promoRepo:    promoRepo,
		taskRepo:     taskRepo,
		requireTasks: requireTasks,
	}
}

// PromoResult is the promo redemption response payload.
type PromoResult struct {
	PointsAdded int `json:"pointsAdded"`
	NewBalance  int `json:"newBalance"`
}

// Apply redeems a promo code for a user: the code must be known, active and
// unexpired, outside the per-user 24h reuse window and, when the task gate is
// on, all currently-active tasks must be completed first.
func (s *PromoService) Apply(ctx context.Context, telegramUserID, code string, now time.Time) (*PromoResult, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := promo.Redeemable(now); err != nil {
		return nil, err
	}
	if err := promo.CheckCooldown(user, now); err != nil {
		return nil, err
	}
	if s.requireTasks {
		if err := s.checkTasksCompleted(ctx, user); err != nil {
			return nil, err
		}
	}

	pointsAdded := promo.Apply(user, now)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &PromoResult{
		PointsAdded: pointsAdded,
		NewBalance:  user.Balance,
	}, nil
}

// Create registers a new promo code with a unique code string.
func (s *PromoService) Create(ctx context.Context, promo *models.PromoCode) error {
	_, err := s.promoRepo.FindByCode(ctx, promo.Code)
	if err == nil {
		return models.ErrPromoExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return s.promoRepo.Create(ctx, promo)
}

func (s *PromoService) checkTasksCompleted(ctx context.Context, user *models.User) error {
	active, err := s.taskRepo.FindActive(ctx)
	if err != nil {
		return err
	}
	for _, task := range active {
		if !user.HasCompletedTask(task.ID) {
			return models.ErrTasksIncomplete
		}
	}
	return nil
}
