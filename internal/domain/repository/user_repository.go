package repository

import (
	"context"

	"github.com/inkwell-app/inkwell/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
// Lookups return domain.ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
