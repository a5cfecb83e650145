package repositories

import (
	"context"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
	FindByTelegramID(ctx context.Context, telegramUserID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// IncrementEarnings atomically adds amount to both balance and
	// totalEarnings. Used by the referral cascade so each level is a single
	// independent document write.
	IncrementEarnings(ctx context.Context, id primitive.ObjectID, amount int) error
	Count(ctx context.Context) (int64, error)
	// TotalStats aggregates user counts and lifetime points in one query.
	TotalStats(ctx context.Context, dailyCutoff, onlineCutoff time.Time) (*models.TotalStats, error)
	FindWallets(ctx context.Context) ([]*models.WalletEntry, error)
}

// DailyPointRepository defines the interface for daily point data operations
type DailyPointRepository interface {
	Create(ctx context.Context, dp *models.DailyPoint) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DailyPoint, error)
	Update(ctx context.Context, dp *models.DailyPoint) error
}

// StakeRepository defines the interface for stake data operations
type StakeRepository interface {
	Create(ctx context.Context, stake *models.Stake) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Stake, error)
	FindActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Stake, error)
	FindClaimableByUserID(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]*models.Stake, error)
	Update(ctx context.Context, stake *models.Stake) error
}

// PromoCodeRepository defines the interface for promo code data operations
type PromoCodeRepository interface {
	Create(ctx context.Context, promo *models.PromoCode) error
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	CreateMany(ctx context.Context, tasks []*models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Task, error)
	FindActive(ctx context.Context) ([]*models.Task, error)
	FindAll(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// ReferralCascadeRepository defines the interface for cascade watermark records
type ReferralCascadeRepository interface {
	Create(ctx context.Context, cascade *models.ReferralCascade) error
	FindByNewUserID(ctx context.Context, newUserID primitive.ObjectID) (*models.ReferralCascade, error)
	Update(ctx context.Context, cascade *models.ReferralCascade) error
}
