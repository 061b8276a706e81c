package mailer

// NewPostJob is queued on every post create and consumed by the
// notification worker, which emails the site owner about fresh
// content.
type NewPostJob struct {
	PostID   string `json:"post_id"`
	Title    string `json:"title"`
	AuthorID string `json:"author_id"`
}
