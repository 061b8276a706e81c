package repository

import (
	"context"

	"github.com/inkwell-app/inkwell/internal/domain/entity"
)

// PostWithAuthor is a post row joined with its author's public columns.
// AuthorEmail is carried only so the avatar reference can be derived;
// it must never be returned to callers as-is.
type PostWithAuthor struct {
	Post           entity.Post
	AuthorUsername string
	AuthorEmail    string
}

// PostRepository defines the interface for post persistence.
// Update and Delete operate purely on the post id; ownership is
// enforced by the application layer before either is called.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*PostWithAuthor, error)
	Update(ctx context.Context, id, title, body string) error
	Delete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, authorID string) ([]PostWithAuthor, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]PostWithAuthor, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
