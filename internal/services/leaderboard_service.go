package services

import (
	"context"
	"sort"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
)

// LeaderboardService ranks users by direct-referral count and applies the
// lazy classification promotion. Promotion is the only side effect of a
// leaderboard query, and it is idempotent: re-running a query never awards
// twice.
type LeaderboardService struct {
	userRepo repositories.UserRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(userRepo repositories.UserRepository) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
	}
}

// RankedUser is one leaderboard row.
type RankedUser struct {
	Username       string                `json:"username"`
	Classification models.Classification `json:"classification"`
	ReferralCount  int                   `json:"referralCount"`
	Rank           int                   `json:"rank"`
	PointsAwarded  int                   `json:"pointsAwarded"`
	Balance        int                   `json:"balance"`
	TotalEarnings  int                   `json:"totalEarnings"`
}

// Leaderboard groups ranked users by classification.
type Leaderboard struct {
	Promoters   []*RankedUser `json:"promoters"`
	Influencers []*RankedUser `json:"influencers"`
	Ambassadors []*RankedUser `json:"ambassadors"`
}

// RankResult is the single-user rank response.
type RankResult struct {
	Username       string                `json:"username"`
	ReferralCount  int                   `json:"referralCount"`
	Rank           int                   `json:"rank"`
	Classification models.Classification `json:"classification"`
	PointsAwarded  int                   `json:"pointsAwarded"`
	TotalBalance   int                   `json:"totalBalance"`
	TotalEarnings  int                   `json:"totalEarnings"`
}

// GetLeaderboard returns all classified users grouped by tier, promoting
// any user whose referral count has crossed a threshold since last seen.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) (*Leaderboard, error) {
	ranked, err := s.rankAll(ctx)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{
		Promoters:   []*RankedUser{},
		Influencers: []*RankedUser{},
		Ambassadors: []*RankedUser{},
	}
	for _, row := range ranked {
		switch row.Classification {
		case models.ClassAmbassador:
			board.Ambassadors = append(board.Ambassadors, row)
		case models.ClassInfluencer:
			board.Influencers = append(board.Influencers, row)
		case models.ClassPromoter:
			board.Promoters = append(board.Promoters, row)
		}
	}
	return board, nil
}

// GetAllRanked returns every user with rank and classification applied.
func (s *LeaderboardService) GetAllRanked(ctx context.Context) ([]*RankedUser, error) {
	return s.rankAll(ctx)
}

// GetRank returns one user's rank among all users by referral count.
func (s *LeaderboardService) GetRank(ctx context.Context, username string) (*RankResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	users, err := s.sortedUsers(ctx)
	if err != nil {
		return nil, err
	}

	rank := 0
	for i, u := range users {
		if u.Username == username {
			rank = i + 1
			break
		}
	}

	classification, awarded, err := s.promote(ctx, user)
	if err != nil {
		return nil, err
	}

	return &RankResult{
		Username:       user.Username,
		ReferralCount:  len(user.Referrals),
		Rank:           rank,
		Classification: classification,
		PointsAwarded:  awarded,
		TotalBalance:   user.Balance,
		TotalEarnings:  user.TotalEarnings,
	}, nil
}

func (s *LeaderboardService) rankAll(ctx context.Context) ([]*RankedUser, error) {
	users, err := s.sortedUsers(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]*RankedUser, 0, len(users))
	for i, user := range users {
		classification, awarded, err := s.promote(ctx, user)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, &RankedUser{
			Username:       user.Username,
			Classification: classification,
			ReferralCount:  len(user.Referrals),
			Rank:           i + 1,
			PointsAwarded:  awarded,
			Balance:        user.Balance,
			TotalEarnings:  user.TotalEarnings,
		})
	}
	return ranked, nil
}

func (s *LeaderboardService) sortedUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return len(users[i].Referrals) > len(users[j].Referrals)
	})
	return users, nil
}

// promote applies PromoteIfEligible and persists the user only when a
// transition actually happened.
func (s *LeaderboardService) promote(ctx context.Context, user *models.User) (models.Classification, int, error) {
	classification, awarded := user.PromoteIfEligible()
	if awarded > 0 {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return classification, awarded, err
		}
	}
	return classification, awarded, nil
}
