package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/services"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register handles POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
		Username       string `json:"username" binding:"required"`
		ReferralCode   string `json:"referralCode"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID and username are required"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), request.TelegramUserID, request.Username, request.ReferralCode, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetDetails handles GET /users/:telegramUserId
func (h *UserHandler) GetDetails(c *gin.Context) {
	details, err := h.userService.GetDetails(c.Request.Context(), c.Param("telegramUserId"), time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetReferrals handles GET /users/:telegramUserId/referrals
func (h *UserHandler) GetReferrals(c *gin.Context) {
	referrals, err := h.userService.GetReferrals(c.Request.Context(), c.Param("telegramUserId"))
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}

// StartEarning handles POST /users/:telegramUserId/start-earning
func (h *UserHandler) StartEarning(c *gin.Context) {
	user, err := h.userService.StartEarning(c.Request.Context(), c.Param("telegramUserId"), time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Started earning points", "user": user})
}

// ClaimEarnings handles POST /users/:telegramUserId/claim
func (h *UserHandler) ClaimEarnings(c *gin.Context) {
	result, err := h.userService.ClaimEarnings(c.Request.Context(), c.Param("telegramUserId"), time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Points claimed successfully",
		"claimedAmount": result.ClaimedAmount,
		"newBalance":    result.NewBalance,
		"isEarning":     result.IsEarning,
	})
}

// ClaimHourly handles POST /claim-hourly-points
func (h *UserHandler) ClaimHourly(c *gin.Context) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID is required"})
		return
	}

	result, err := h.userService.ClaimHourly(c.Request.Context(), request.TelegramUserID, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Points claimed successfully",
		"claimedAmount": result.ClaimedAmount,
		"newBalance":    result.NewBalance,
		"totalEarnings": result.TotalEarnings,
	})
}

// PlayGame handles POST /play-game
func (h *UserHandler) PlayGame(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Score    int    `json:"score" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	result, err := h.userService.PlayGame(c.Request.Context(), request.Username, request.Score, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Game score added to balance successfully",
		"newHighScore":    result.NewHighScore,
		"scoreAdded":      result.ScoreAdded,
		"newBalance":      result.NewBalance,
		"previousBalance": result.PreviousBalance,
	})
}

// SetTier handles PUT /users/:telegramUserId/tier
func (h *UserHandler) SetTier(c *gin.Context) {
	var request struct {
		Tier           models.EarningTier `json:"tier" binding:"required"`
		DurationInDays int                `json:"durationInDays"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tier is required"})
		return
	}
	if !models.ValidTier(request.Tier) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown earning tier"})
		return
	}

	user, err := h.userService.SetTier(c.Request.Context(), c.Param("telegramUserId"), request.Tier, request.DurationInDays, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User tier updated successfully", "user": user})
}

// UpdateWalletAddress handles PUT /wallet-address
func (h *UserHandler) UpdateWalletAddress(c *gin.Context) {
	var request struct {
		Username      string `json:"username" binding:"required"`
		WalletAddress string `json:"walletAddress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and wallet address are required"})
		return
	}

	err := h.userService.UpdateWalletAddress(c.Request.Context(), request.Username, request.WalletAddress)
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wallet address updated successfully", "walletAddress": request.WalletAddress})
}

// GetWalletAddress handles GET /wallet-address?username=
func (h *UserHandler) GetWalletAddress(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is required"})
		return
	}

	walletAddress, err := h.userService.GetWalletAddress(c.Request.Context(), username)
	if err != nil {
		if err == models.ErrWalletNotSet {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wallet address not set"})
			return
		}
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"walletAddress": walletAddress})
}

// GetAllWallets handles GET /wallets
func (h *UserHandler) GetAllWallets(c *gin.Context) {
	wallets, err := h.userService.GetAllWallets(c.Request.Context())
	if err != nil {
		handleError(c, err, "No users found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": wallets})
}

// GetTotalStats handles GET /stats
func (h *UserHandler) GetTotalStats(c *gin.Context) {
	stats, err := h.userService.GetTotalStats(c.Request.Context(), time.Now())
	if err != nil {
		handleError(c, err, "No users found")
		return
	}

	c.JSON(http.StatusOK, stats)
}
