package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	repo "github.com/inkwell-app/inkwell/internal/domain/repository"
	"github.com/inkwell-app/inkwell/pkg/helpers"
	"github.com/inkwell-app/inkwell/pkg/mailer"
	"github.com/inkwell-app/inkwell/pkg/sanitize"
)

// PostService implements post CRUD with ownership enforcement, search
// and feed aggregation. Elasticsearch indexing and the new-post
// notification are best-effort side effects; the Postgres row is the
// source of truth.
type PostService struct {
	Posts   repo.PostRepository
	Follows repo.FollowRepository
	ES      *elasticsearch.Client
	ESIndex string
	Notify  *helpers.RabbitPublisher
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewPostService(posts repo.PostRepository, follows repo.FollowRepository, es *elasticsearch.Client, esIndex string, notify *helpers.RabbitPublisher, rdb *redis.Client, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Follows: follows, ES: es, ESIndex: esIndex, Notify: notify, Redis: rdb, Logger: logger}
}

// PostInput carries the raw title and body of a create or update.
type PostInput struct {
	Title string
	Body  string
}

// normalize trims and strips all markup from both fields. Validation
// runs against the cleaned values, so a title that is only markup
// counts as empty.
func (in *PostInput) normalize() {
	in.Title = sanitize.Text(strings.TrimSpace(in.Title))
	in.Body = sanitize.Text(strings.TrimSpace(in.Body))
}

func (in *PostInput) validate() []string {
	errs := []string{}
	if in.Title == "" {
		errs = append(errs, "You must provide a title.")
	}
	if in.Body == "" {
		errs = append(errs, "You must provide post content.")
	}
	return errs
}

// Create sanitizes and validates the input, persists the post with an
// immutable author and creation timestamp, then indexes it for search
// and queues the new-post notification.
func (s *PostService) Create(ctx context.Context, in PostInput, authorID string) (string, error) {
	in.normalize()
	if errs := in.validate(); len(errs) > 0 {
		return "", domain.ValidationErrors(errs)
	}

	p := &entity.Post{Title: in.Title, Body: in.Body, AuthorID: authorID}
	if err := s.Posts.Create(ctx, p); err != nil {
		return "", err
	}

	s.indexPost(ctx, p)
	s.invalidateStats(ctx, authorID)

	if s.Notify != nil {
		job := mailer.NewPostJob{PostID: p.ID, Title: p.Title, AuthorID: p.AuthorID}
		if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("notify publish failed")
		}
	}

	return p.ID, nil
}

// FindByID returns the post joined with its author's public view. A
// malformed id reads as not found, same as a missing row.
func (s *PostService) FindByID(ctx context.Context, id, viewerID string) (*PostView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	pw, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toPostView(pw, viewerID)
	return &view, nil
}

// Update re-sanitizes and persists title and body only. A viewer who
// is not the author gets domain.ErrNotFound, indistinguishable from a
// missing post.
func (s *PostService) Update(ctx context.Context, id string, in PostInput, viewerID string) error {
	view, err := s.FindByID(ctx, id, viewerID)
	if err != nil {
		return err
	}
	if !view.IsViewerAuthor {
		return domain.ErrNotFound
	}

	in.normalize()
	if errs := in.validate(); len(errs) > 0 {
		return domain.ValidationErrors(errs)
	}

	if err := s.Posts.Update(ctx, id, in.Title, in.Body); err != nil {
		return err
	}

	pw, err := s.Posts.GetByID(ctx, id)
	if err == nil {
		s.indexPost(ctx, &pw.Post)
	}
	return nil
}

// Delete removes the post when the viewer is its author; anyone else
// gets domain.ErrNotFound.
func (s *PostService) Delete(ctx context.Context, id, viewerID string) error {
	view, err := s.FindByID(ctx, id, viewerID)
	if err != nil {
		return err
	}
	if !view.IsViewerAuthor {
		return domain.ErrNotFound
	}

	if err := s.Posts.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteFromIndex(ctx, id)
	s.invalidateStats(ctx, viewerID)
	return nil
}

// FindByAuthor lists an author's posts newest first.
func (s *PostService) FindByAuthor(ctx context.Context, authorID string) ([]PostView, error) {
	pws, err := s.Posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toPostViews(pws, ""), nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return s.Posts.CountByAuthor(ctx, authorID)
}

// Feed returns the reverse-chronological union of posts from everyone
// userID follows. Following nobody yields an empty slice, not an
// error.
func (s *PostService) Feed(ctx context.Context, userID string) ([]PostView, error) {
	ids, err := s.Follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []PostView{}, nil
	}
	pws, err := s.Posts.ListByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toPostViews(pws, ""), nil
}

type postDoc struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	AuthorAvatar   string    `json:"author_avatar"`
	CreatedAt      time.Time `json:"created_at"`
}

// Search ranks posts by full-text relevance over title and body, with
// creation time as the stable tie-break. An empty term after
// sanitization returns an empty result.
func (s *PostService) Search(ctx context.Context, term string) ([]PostView, error) {
	term = sanitize.Text(strings.TrimSpace(term))
	if term == "" || s.ES == nil || s.ESIndex == "" {
		return []PostView{}, nil
	}

	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  term,
				"fields": []string{"title^2", "body"},
			},
		},
		"sort": []any{
			map[string]any{"_score": "desc"},
			map[string]any{"created_at": "desc"},
		},
		"size": 50,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, errors.New("search failed: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source postDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]PostView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, PostView{
			ID:        d.ID,
			Title:     d.Title,
			Body:      d.Body,
			BodyHTML:  sanitize.RenderMarkdown(d.Body),
			CreatedAt: d.CreatedAt,
			Author:    UserCard{Username: d.AuthorUsername, Avatar: d.AuthorAvatar},
		})
	}
	return out, nil
}

// IndexPost writes the post document into the search index. Failures
// are logged, never surfaced; Postgres stays authoritative.
func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}

	pw, err := s.Posts.GetByID(ctx, p.ID)
	if err != nil {
		return
	}
	doc := postDoc{
		ID:             p.ID,
		Title:          p.Title,
		Body:           p.Body,
		AuthorID:       p.AuthorID,
		AuthorUsername: pw.AuthorUsername,
		AuthorAvatar:   helpers.AvatarURL(pw.AuthorEmail),
		CreatedAt:      pw.Post.CreatedAt,
	}
	b, _ := json.Marshal(doc)

	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *PostService) invalidateStats(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	_ = helpers.RedisDel(ctx, s.Redis, profileStatsKey(userID))
}
