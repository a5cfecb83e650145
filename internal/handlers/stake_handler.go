package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/warthug/points-backend/internal/services"
)

// StakeHandler handles staking HTTP requests
type StakeHandler struct {
	stakeService *services.StakeService
}

// NewStakeHandler creates a new StakeHandler
func NewStakeHandler(stakeService *services.StakeService) *StakeHandler {
	return &StakeHandler{
		stakeService: stakeService,
	}
}

// Create handles POST /stakes
func (h *StakeHandler) Create(c *gin.Context) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
		Amount         int    `json:"amount" binding:"required,gt=0"`
		Period         int    `json:"period" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID, amount and period are required"})
		return
	}

	stake, err := h.stakeService.Create(c.Request.Context(), request.TelegramUserID, request.Amount, request.Period, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Stake created successfully", "stake": stake})
}

// Claim handles POST /stakes/:id/claim
func (h *StakeHandler) Claim(c *gin.Context) {
	h.settle(c, h.stakeService.Claim, "Stake claimed successfully")
}

// Unstake handles POST /stakes/:id/unstake
func (h *StakeHandler) Unstake(c *gin.Context) {
	h.settle(c, h.stakeService.Unstake, "Unstaked successfully")
}

// GetActive handles GET /stakes/active/:telegramUserId
func (h *StakeHandler) GetActive(c *gin.Context) {
	stakes, err := h.stakeService.ActiveStakes(c.Request.Context(), c.Param("telegramUserId"))
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stakes": stakes})
}

// GetClaimable handles GET /stakes/claimable/:telegramUserId
func (h *StakeHandler) GetClaimable(c *gin.Context) {
	stakes, err := h.stakeService.ClaimableStakes(c.Request.Context(), c.Param("telegramUserId"), time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stakes": stakes})
}

type settleFunc func(ctx context.Context, telegramUserID string, stakeID primitive.ObjectID, now time.Time) (*services.StakeSettlement, error)

func (h *StakeHandler) settle(c *gin.Context, fn settleFunc, message string) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID is required"})
		return
	}

	stakeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stake ID"})
		return
	}

	settlement, err := fn(c.Request.Context(), request.TelegramUserID, stakeID, time.Now())
	if err != nil {
		handleError(c, err, "Stake not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"principal":   settlement.Principal,
		"interest":    settlement.Interest,
		"totalAmount": settlement.TotalAmount,
		"newBalance":  settlement.NewBalance,
	})
}
