package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/services"
)

// LeaderboardHandler handles referral ranking HTTP requests
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard handles GET /leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.leaderboardService.GetLeaderboard(c.Request.Context())
	if err != nil {
		handleError(c, err, "No users found")
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// GetAllRanked handles GET /leaderboard/all
func (h *LeaderboardHandler) GetAllRanked(c *gin.Context) {
	ranked, err := h.leaderboardService.GetAllRanked(c.Request.Context())
	if err != nil {
		handleError(c, err, "No users found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": ranked})
}

// GetRank handles GET /leaderboard/rank/:username
func (h *LeaderboardHandler) GetRank(c *gin.Context) {
	rank, err := h.leaderboardService.GetRank(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, rank)
}
