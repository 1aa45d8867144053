package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// ErrInvalidCredentials is returned when login or token exchange fails for
// reasons the client must not be able to distinguish.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles authentication-related business logic
type Service struct {
	repo   Repository
	tokens TokenService
	config *Config
	logger logger.Logger
}

// NewService creates a new auth service instance
func NewService(repo Repository, tokens TokenService, config *Config, log logger.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, config: config, logger: log}
}

// Register creates a new account and logs it in.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewValidationError("email", "email is already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.repo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.NewValidationError("username", "username is taken")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    string(hash),
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.LogInfo("User registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})
	return s.issueTokens(ctx, user)
}

// Login authenticates by email and password.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges an active refresh token for a new token pair. The used
// token is revoked so each refresh token is single-use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	record, err := s.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !record.Active(timeNow()) {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token for the user.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	record, err := s.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if record.UserID != userID {
		return apperrors.NewAuthorizationError("refresh token does not belong to this user")
	}
	return s.repo.RevokeRefreshToken(ctx, refreshToken)
}

// GetUser returns the public profile for a user id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// UpdateProfile applies profile edits for the authenticated user.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, apperrors.NewValidationError("displayName", "display name cannot be empty")
		}
		user.DisplayName = name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*TokenClaims, error) {
	return s.tokens.ValidateToken(token)
}

func (s *Service) issueTokens(ctx context.Context, user *User) (*LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, expiresAt, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateRefreshToken(ctx, &RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.config.JWT.AccessTokenTTL.Seconds()),
	}, nil
}
