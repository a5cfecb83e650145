package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/services"
)

// DailyPointHandler handles daily claim HTTP requests
type DailyPointHandler struct {
	dailyPointService *services.DailyPointService
}

// NewDailyPointHandler creates a new DailyPointHandler
func NewDailyPointHandler(dailyPointService *services.DailyPointService) *DailyPointHandler {
	return &DailyPointHandler{
		dailyPointService: dailyPointService,
	}
}

// Claim handles POST /daily/claim
func (h *DailyPointHandler) Claim(c *gin.Context) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID is required"})
		return
	}

	result, err := h.dailyPointService.Claim(c.Request.Context(), request.TelegramUserID, time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Daily points claimed successfully",
		"claimedAmount":   result.ClaimedAmount,
		"currentStreak":   result.CurrentStreak,
		"nextClaimAmount": result.NextClaimAmount,
		"newBalance":      result.NewBalance,
		"bonusApplied":    result.BonusApplied,
	})
}

// GetStatus handles GET /daily/status/:telegramUserId
func (h *DailyPointHandler) GetStatus(c *gin.Context) {
	status, err := h.dailyPointService.GetStatus(c.Request.Context(), c.Param("telegramUserId"), time.Now())
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, status)
}
