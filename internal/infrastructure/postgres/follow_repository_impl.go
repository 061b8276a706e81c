package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	"github.com/inkwell-app/inkwell/internal/domain/repository"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) Create(ctx context.Context, f *entity.Follow) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO follows (author_id, followed_id)
		VALUES ($1, $2)
		RETURNING created_at
	`, f.AuthorID, f.FollowedID)

	if err := row.Scan(&f.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, authorID, followedID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM follows
		WHERE author_id = $1 AND followed_id = $2
	`, authorID, followedID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, authorID, followedID string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE author_id = $1 AND followed_id = $2
		)
	`, authorID, followedID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.username, u.email
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUserCards(rows)
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.username, u.email
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.author_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUserCards(rows)
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT followed_id FROM follows WHERE author_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE author_id = $1`, userID)
}

func (r *FollowRepository) count(ctx context.Context, query, userID string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collectUserCards(rows pgx.Rows) ([]entity.User, error) {
	out := []entity.User{}
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Username, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
