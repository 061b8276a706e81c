package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the plain text, and must not
// leak past the application layer.
//
// Users are immutable after registration: there are no update or
// delete operations on accounts.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}
