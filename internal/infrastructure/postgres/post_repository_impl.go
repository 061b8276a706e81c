package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	"github.com/inkwell-app/inkwell/internal/domain/repository"
)

const postWithAuthorColumns = `
	p.id, p.title, p.body, p.author_id, p.created_at, u.username, u.email`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.Title, p.Body, p.AuthorID)

	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*repository.PostWithAuthor, error) {
	pw := &repository.PostWithAuthor{}

	row := r.pool.QueryRow(ctx, `
		SELECT`+postWithAuthorColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)

	if err := scanPostWithAuthor(row, pw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return pw, nil
}

// Update changes title and body only. Author and creation timestamp
// are never touched after insert.
func (r *PostRepository) Update(ctx context.Context, id, title, body string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, body = $2
		WHERE id = $3
	`, title, body, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM posts
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]repository.PostWithAuthor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+postWithAuthorColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPostsWithAuthor(rows)
}

func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []string) ([]repository.PostWithAuthor, error) {
	if len(authorIDs) == 0 {
		return []repository.PostWithAuthor{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT`+postWithAuthorColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = ANY($1)
		ORDER BY p.created_at DESC
	`, authorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPostsWithAuthor(rows)
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM posts WHERE author_id = $1
	`, authorID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanPostWithAuthor(row pgx.Row, pw *repository.PostWithAuthor) error {
	return row.Scan(&pw.Post.ID, &pw.Post.Title, &pw.Post.Body, &pw.Post.AuthorID,
		&pw.Post.CreatedAt, &pw.AuthorUsername, &pw.AuthorEmail)
}

func collectPostsWithAuthor(rows pgx.Rows) ([]repository.PostWithAuthor, error) {
	out := []repository.PostWithAuthor{}
	for rows.Next() {
		var pw repository.PostWithAuthor
		if err := scanPostWithAuthor(rows, &pw); err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
