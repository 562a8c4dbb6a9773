package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
	"github.com/longhouse/storymap/api/pkg/jwt"
)

// AuthService handles login and token issuance.
type AuthService struct {
	users  *repository.UserRepository
	tokens *jwt.Service
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, tokens *jwt.Service, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies credentials and issues an access token carrying the
// caller's role and community. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so absent accounts cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
			[]byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(jwt.Claims{
		Subject:     user.Email,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CommunityID: user.CommunityID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded",
		"user_id", user.ID,
		"role", user.Role,
		"community_id", user.CommunityID)

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.GetExpiration().Seconds()),
		Identity: model.SessionIdentity{
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
			CommunityID: user.CommunityID,
		},
	}, nil
}
