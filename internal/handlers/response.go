package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// businessErrors are pre-mutation guard failures reported as 400.
var businessErrors = []error{
	models.ErrAlreadyEarning,
	models.ErrCannotStartEarning,
	models.ErrNothingToClaim,
	models.ErrAlreadyClaimedToday,
	models.ErrInsufficientBalance,
	models.ErrInvalidStakePeriod,
	models.ErrStakeNotActive,
	models.ErrStakeNotMatured,
	models.ErrStakeNotOwned,
	models.ErrPromoInactive,
	models.ErrPromoExpired,
	models.ErrPromoExists,
	models.ErrTasksIncomplete,
	models.ErrTaskAlreadyCompleted,
	models.ErrWalletInUse,
	models.ErrUsernameTaken,
	models.ErrUserExists,
	models.ErrInvalidReferralCode,
	models.ErrInvalidScore,
}

// handleError maps service errors to HTTP responses: not-found to 404 with
// the supplied message, business-rule violations to 400 with their own
// message, anything else to 500.
func handleError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}

	var cooldown *models.PromoCooldownError
	if errors.As(err, &cooldown) {
		c.JSON(http.StatusBadRequest, gin.H{"message": cooldown.Error()})
		return
	}

	for _, business := range businessErrors {
		if errors.Is(err, business) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred"})
}
