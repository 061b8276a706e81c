package entity

import (
	"time"
)

// Follow is a directed edge: AuthorID follows FollowedID.
// The (AuthorID, FollowedID) pair is unique; existence is binary.
type Follow struct {
	AuthorID   string
	FollowedID string
	CreatedAt  time.Time
}
