package auth

import (
	"context"

	"coworkly/internal/domain"
)

// UserRepository defines the persistence operations the auth flows need.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	SetRefreshToken(ctx context.Context, userID int64, token *string) error
}

// TokenService issues and validates the access/refresh token pair.
type TokenService interface {
	GenerateAccessToken(userID int64, role string) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ValidateRefreshToken(tokenStr string) (int64, error)
}
