// internal/services/auth_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitchworks/apparel-backend/internal/config"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

// AuthService authenticates the single store administrator configured
// through ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
type AuthService struct {
	admin config.AdminConfig
	ttl   int
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // in seconds
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		admin: cfg.Admin,
		ttl:   cfg.JWT.AccessTokenTTL,
	}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if s.admin.PasswordHash == "" || !strings.EqualFold(req.Email, s.admin.Email) {
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(s.admin.PasswordHash, req.Password); err != nil {
		logrus.WithField("email", req.Email).Warn("Failed admin login")
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.admin.Email, utils.RoleAdmin, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.ttl * 3600,
		Email:       s.admin.Email,
		Role:        utils.RoleAdmin,
	}, nil
}
