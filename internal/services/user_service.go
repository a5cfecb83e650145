package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"github.com/warthug/points-backend/pkg/telegram"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService handles account registration, earning sessions, wallets and
// the aggregate stats snapshot.
type UserService struct {
	userRepo       repositories.UserRepository
	dailyPointRepo repositories.DailyPointRepository
	referrals      *ReferralService
	notifier       *telegram.Client
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	dailyPointRepo repositories.DailyPointRepository,
	referrals *ReferralService,
	notifier *telegram.Client,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		dailyPointRepo: dailyPointRepo,
		referrals:      referrals,
		notifier:       notifier,
	}
}

// UserDetails is the GET /users/:telegramUserId response.
type UserDetails struct {
	TelegramUserID  string                `json:"telegramUserId"`
	Username        string                `json:"username"`
	EarningTier     models.EarningTier    `json:"earningTier"`
	Classification  models.Classification `json:"classification"`
	Balance         int                   `json:"balance"`
	TotalEarnings   int                   `json:"totalEarnings"`
	CurrentEarnings int                   `json:"currentEarnings"`
	IsEarning       bool                  `json:"isEarning"`
	LastStartTime   time.Time             `json:"lastStartTime,omitempty"`
	LastClaimTime   time.Time             `json:"lastClaimTime,omitempty"`
	TierExpiryDate  time.Time             `json:"tierExpiryDate,omitempty"`
	ReferralCode    string                `json:"referralCode"`
	Referrals       []string              `json:"referrals"`
}

// Register creates a new account, pays the join bonus and, when a valid
// referral code is supplied, runs the referral cascade up the chain.
func (s *UserService) Register(ctx context.Context, telegramUserID, username, referralCode string, now time.Time) (*models.User, error) {
	if _, err := s.userRepo.FindByTelegramID(ctx, telegramUserID); err == nil {
		return nil, models.ErrUserExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, models.ErrUsernameTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	var referrer *models.User
	if referralCode != "" {
		var err error
		referrer, err = s.userRepo.FindByUsername(ctx, referralCode)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, models.ErrInvalidReferralCode
			}
			return nil, err
		}
	}

	user := &models.User{
		TelegramUserID: telegramUserID,
		Username:       username,
		EarningTier:    models.TierUser,
		Classification: models.ClassUser,
		LastActive:     now,
	}
	if referrer != nil {
		user.ReferredBy = referrer.ID
	}
	user.AddEarnings(models.JoinBonus)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if referrer != nil {
		if err := s.referrals.ProcessReferral(ctx, referrer, user, now); err != nil {
			// The new account exists; cascade state is recoverable from its
			// watermark. Log and keep the registration.
			log.Printf("referral rewards for %s: %v", username, err)
		}
	}

	if err := s.dailyPointRepo.Create(ctx, models.NewDailyPoint(user.ID, now)); err != nil {
		log.Printf("creating daily point record for %s: %v", username, err)
	}

	if err := s.notifier.SendMessage(telegramUserID, fmt.Sprintf("Welcome to WarThug, %s! Your join bonus of %d points has been credited.", username, models.JoinBonus)); err != nil {
		log.Printf("welcome message for %s: %v", username, err)
	}

	return user, nil
}

// GetDetails returns account details with live session accrual. Tier expiry
// is applied (and persisted) before computing earnings.
func (s *UserService) GetDetails(ctx context.Context, telegramUserID string, now time.Time) (*UserDetails, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	if user.ApplyTierExpiry(now) {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	referralNames, err := s.referralUsernames(ctx, user)
	if err != nil {
		return nil, err
	}

	return &UserDetails{
		TelegramUserID:  user.TelegramUserID,
		Username:        user.Username,
		EarningTier:     user.EarningTier,
		Classification:  user.Classification,
		Balance:         user.Balance,
		TotalEarnings:   user.TotalEarnings,
		CurrentEarnings: user.CalculateEarnings(now),
		IsEarning:       user.IsEarning,
		LastStartTime:   user.LastStartTime,
		LastClaimTime:   user.LastClaimTime,
		TierExpiryDate:  user.TierExpiryDate,
		ReferralCode:    user.Username,
		Referrals:       referralNames,
	}, nil
}

// GetReferrals lists the usernames of a user's direct referrals.
func (s *UserService) GetReferrals(ctx context.Context, telegramUserID string) ([]string, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	return s.referralUsernames(ctx, user)
}

// StartEarning opens an earning session for the user.
func (s *UserService) StartEarning(ctx context.Context, telegramUserID string, now time.Time) (*models.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	user.ApplyTierExpiry(now)
	if !user.CanStartEarning() {
		return nil, models.ErrAlreadyEarning
	}

	user.StartEarning(now)
	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ClaimResult is the earning-claim response payload.
type ClaimResult struct {
	ClaimedAmount int  `json:"claimedAmount"`
	NewBalance    int  `json:"newBalance"`
	TotalEarnings int  `json:"totalEarnings"`
	IsEarning     bool `json:"isEarning"`
}

// ClaimEarnings settles the open earning session. A zero accrual is a
// rejected operation, not a silent success.
func (s *UserService) ClaimEarnings(ctx context.Context, telegramUserID string, now time.Time) (*ClaimResult, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	user.ApplyTierExpiry(now)
	claimed := user.Claim(now)
	if claimed == 0 {
		return nil, models.ErrNothingToClaim
	}

	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &ClaimResult{
		ClaimedAmount: claimed,
		NewBalance:    user.Balance,
		TotalEarnings: user.TotalEarnings,
		IsEarning:     user.IsEarning,
	}, nil
}

// ClaimHourly is the claim-and-restart combo endpoint: it settles the open
// session, if any, and immediately opens the next one. The first call on a
// fresh account just opens a session and claims nothing.
func (s *UserService) ClaimHourly(ctx context.Context, telegramUserID string, now time.Time) (*ClaimResult, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	user.ApplyTierExpiry(now)
	claimed := user.Claim(now)
	if !user.StartEarning(now) {
		return nil, models.ErrCannotStartEarning
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &ClaimResult{
		ClaimedAmount: claimed,
		NewBalance:    user.Balance,
		TotalEarnings: user.TotalEarnings,
		IsEarning:     user.IsEarning,
	}, nil
}

// PlayGameResult is the play-game response payload.
type PlayGameResult struct {
	NewHighScore    bool `json:"newHighScore"`
	ScoreAdded      int  `json:"scoreAdded"`
	NewBalance      int  `json:"newBalance"`
	PreviousBalance int  `json:"previousBalance"`
}

// PlayGame credits a game score to the balance. Scores are strictly
// positive; totalEarnings must never go down.
func (s *UserService) PlayGame(ctx context.Context, username string, score int, now time.Time) (*PlayGameResult, error) {
	if score <= 0 {
		return nil, models.ErrInvalidScore
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	oldBalance := user.Balance
	user.AddEarnings(score)
	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &PlayGameResult{
		NewHighScore:    user.Balance > oldBalance,
		ScoreAdded:      score,
		NewBalance:      user.Balance,
		PreviousBalance: oldBalance,
	}, nil
}

// SetTier assigns an earning tier, optionally time-limited.
func (s *UserService) SetTier(ctx context.Context, telegramUserID string, tier models.EarningTier, durationInDays int, now time.Time) (*models.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}

	user.SetTier(tier, durationInDays, now)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateWalletAddress sets a user's wallet address, rejecting addresses
// already claimed by another account.
func (s *UserService) UpdateWalletAddress(ctx context.Context, username, walletAddress string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	existing, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if existing != nil && existing.Username != user.Username {
		return models.ErrWalletInUse
	}

	user.WalletAddress = walletAddress
	return s.userRepo.Update(ctx, user)
}

// GetWalletAddress returns a user's wallet address, if set.
func (s *UserService) GetWalletAddress(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user.WalletAddress == "" {
		return "", models.ErrWalletNotSet
	}
	return user.WalletAddress, nil
}

// GetAllWallets lists every user's wallet entry.
func (s *UserService) GetAllWallets(ctx context.Context) ([]*models.WalletEntry, error) {
	return s.userRepo.FindWallets(ctx)
}

// GetTotalStats returns the aggregate snapshot: total users, total points
// mined, daily claimers and hourly-active users.
func (s *UserService) GetTotalStats(ctx context.Context, now time.Time) (*models.TotalStats, error) {
	return s.userRepo.TotalStats(ctx, now.Add(-24*time.Hour), now.Add(-time.Hour))
}

func (s *UserService) referralUsernames(ctx context.Context, user *models.User) ([]string, error) {
	referrals, err := s.userRepo.FindByIDs(ctx, user.Referrals)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(referrals))
	for _, ref := range referrals {
		names = append(names, ref.Username)
	}
	return names, nil
}
