package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/services"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		if err == models.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		handleError(c, err, "Admin user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
