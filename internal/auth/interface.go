package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the account store consumed by the auth service.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	SaveUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context, offset, limit int) ([]User, int64, error)

	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// TokenService handles JWT operations
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(user *User) (string, time.Time, error)
	ValidateToken(token string) (*TokenClaims, error)
}
