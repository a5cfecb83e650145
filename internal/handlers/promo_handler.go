package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/services"
)

// PromoHandler handles promo code HTTP requests
type PromoHandler struct {
	promoService *services.PromoService
}

// NewPromoHandler creates a new PromoHandler
func NewPromoHandler(promoService *services.PromoService) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
	}
}

// Apply handles POST /promo/apply
func (h *PromoHandler) Apply(c *gin.Context) {
	var request struct {
		TelegramUserID string `json:"telegramUserId" binding:"required"`
		Code           string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Telegram User ID and promo code are required"})
		return
	}

	result, err := h.promoService.Apply(c.Request.Context(), request.TelegramUserID, request.Code, time.Now())
	if err != nil {
		handleError(c, err, "Promo code not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Promo code applied successfully",
		"pointsAdded": result.PointsAdded,
		"newBalance":  result.NewBalance,
	})
}

// Create handles POST /admin/promo
func (h *PromoHandler) Create(c *gin.Context) {
	var request struct {
		Code           string     `json:"code" binding:"required"`
		PointsBoost    int        `json:"pointsBoost" binding:"required,gt=0"`
		ExpirationDate *time.Time `json:"expirationDate"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code and points boost are required"})
		return
	}

	promo := &models.PromoCode{
		Code:        request.Code,
		PointsBoost: request.PointsBoost,
		IsActive:    true,
	}
	if request.ExpirationDate != nil {
		promo.ExpirationDate = *request.ExpirationDate
	}

	if err := h.promoService.Create(c.Request.Context(), promo); err != nil {
		handleError(c, err, "Promo code not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Promo code created successfully", "promoCode": promo})
}
