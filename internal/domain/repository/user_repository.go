package repository

import (
	"context"
	"errors"

	"contacts-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateRefreshToken overwrites the stored refresh token.
	// An empty token clears it.
	UpdateRefreshToken(ctx context.Context, userID int64, token string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}
