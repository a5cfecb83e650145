package services

import (
	"context"

	"github.com/warthug/points-backend/internal/config"
	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"github.com/warthug/points-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates admin users for the management endpoints.
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login verifies admin credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	adminUser, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return utils.GenerateJWT(adminUser.ID.Hex(), adminUser.Role, s.cfg)
}

// CreateAdmin registers an admin account with a bcrypt-hashed password.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	adminUser := &models.AdminUser{
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := s.adminRepo.Create(ctx, adminUser); err != nil {
		return nil, err
	}
	return adminUser, nil
}
