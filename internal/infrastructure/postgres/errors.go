package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique-constraint
// violation (SQLSTATE 23505). Pre-insert uniqueness checks in the
// application layer are check-then-act; the unique indexes are the
// backstop under concurrent requests and this maps their rejection
// back into the domain error taxonomy.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
