package entity

import (
	"time"
)

// Post is a blog entry. AuthorID and CreatedAt are set once on create
// and never change; only Title and Body are editable, and only by the
// author.
type Post struct {
	ID        string
	Title     string
	Body      string
	AuthorID  string
	CreatedAt time.Time
}
