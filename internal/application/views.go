package application

import (
	"time"

	"github.com/inkwell-app/inkwell/internal/domain/repository"
	"github.com/inkwell-app/inkwell/pkg/helpers"
	"github.com/inkwell-app/inkwell/pkg/sanitize"
)

// PublicProfile is the only user projection the core hands out: id,
// username and the derived avatar reference. Never the password hash,
// never the raw email.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserCard is the follower/following list item.
type UserCard struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PostView is a post joined with its author's public fields.
// BodyHTML is the stored plain-text body run through the markdown
// display filter. IsViewerAuthor is computed against the acting
// identity of the request; it is false for the anonymous viewer.
type PostView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	BodyHTML       string    `json:"body_html"`
	CreatedAt      time.Time `json:"created_at"`
	Author         UserCard  `json:"author"`
	IsViewerAuthor bool      `json:"is_viewer_author"`
}

func toPostView(pw *repository.PostWithAuthor, viewerID string) PostView {
	return PostView{
		ID:        pw.Post.ID,
		Title:     pw.Post.Title,
		Body:      pw.Post.Body,
		BodyHTML:  sanitize.RenderMarkdown(pw.Post.Body),
		CreatedAt: pw.Post.CreatedAt,
		Author: UserCard{
			Username: pw.AuthorUsername,
			Avatar:   helpers.AvatarURL(pw.AuthorEmail),
		},
		IsViewerAuthor: viewerID != "" && pw.Post.AuthorID == viewerID,
	}
}

func toPostViews(pws []repository.PostWithAuthor, viewerID string) []PostView {
	out := make([]PostView, 0, len(pws))
	for i := range pws {
		out = append(out, toPostView(&pws[i], viewerID))
	}
	return out
}
