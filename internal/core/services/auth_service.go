package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/config"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/jwt"
	"kada-admin/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles admin authentication
type AuthService struct {
	adminRepo repositories.AdminRepository
	cfg       *config.Config
	log       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo repositories.AdminRepository, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
		log:       log,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResult holds the signed access token and the admin it belongs to
type LoginResult struct {
	Admin       *models.AdminResponse `json:"admin"`
	AccessToken string                `json:"access_token"`
}

// Login authenticates an admin
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.Invalid("username", MsgFieldsRequired)
	}

	// 1. Find admin by username
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
			return nil, domain.ErrInvalidLogin
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, admin.Password) {
		s.log.Warn("login failed", zap.String("username", username), zap.String("reason", "bad password"))
		return nil, domain.ErrInvalidLogin
	}

	// 3. Sign the session token
	token, err := jwt.GenerateAccessToken(admin.ID, admin.Username, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	s.log.Info("admin logged in", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))
	return &LoginResult{Admin: admin.ToResponse(), AccessToken: token}, nil
}

// Authenticate turns an access token into the identity it carries. The
// admin must still exist, so deleting an account revokes its tokens.
func (s *AuthService) Authenticate(ctx context.Context, token, ip string) (domain.Identity, error) {
	claims, err := jwt.ValidateAccessToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return domain.Identity{}, domain.ErrAuthenticationRequired
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("token of deleted admin refused", zap.Uint("admin_id", claims.AdminID))
			return domain.Identity{}, domain.ErrAuthenticationRequired
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return domain.Identity{AdminID: admin.ID, Username: admin.Username, IPAddress: ip}, nil
}
