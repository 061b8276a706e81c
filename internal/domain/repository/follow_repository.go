package repository

import (
	"context"

	"github.com/inkwell-app/inkwell/internal/domain/entity"
)

// FollowRepository defines the interface for follow-edge persistence.
// An edge is keyed by the ordered (author, followed) pair and exists at
// most once; the unique index is the backstop for concurrent creates.
type FollowRepository interface {
	Create(ctx context.Context, f *entity.Follow) error
	Delete(ctx context.Context, authorID, followedID string) error
	Exists(ctx context.Context, authorID, followedID string) (bool, error)

	// Followers returns the users following userID; Following returns
	// the users userID follows. Both are projected to username and
	// email only.
	Followers(ctx context.Context, userID string) ([]entity.User, error)
	Following(ctx context.Context, userID string) ([]entity.User, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)

	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}
