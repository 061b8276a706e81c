package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	"github.com/inkwell-app/inkwell/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the
// Postgres implementations: uuid ids, domain.ErrNotFound for misses,
// domain.ErrDuplicate where a unique index would fire.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakePostRepo struct {
	mu    sync.Mutex
	users *fakeUserRepo
	posts map[string]*entity.Post
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{users: users, posts: map[string]*entity.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) join(p *entity.Post) (*repository.PostWithAuthor, error) {
	author, ok := f.users.users[p.AuthorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &repository.PostWithAuthor{
		Post:           *p,
		AuthorUsername: author.Username,
		AuthorEmail:    author.Email,
	}, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*repository.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.join(p)
}

func (f *fakePostRepo) Update(_ context.Context, id, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Title, p.Body = title, body
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) list(match func(*entity.Post) bool) ([]repository.PostWithAuthor, error) {
	out := []repository.PostWithAuthor{}
	for _, p := range f.posts {
		if !match(p) {
			continue
		}
		pw, err := f.join(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *pw)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Post.CreatedAt.After(out[j].Post.CreatedAt)
	})
	return out, nil
}

func (f *fakePostRepo) ListByAuthor(_ context.Context, authorID string) ([]repository.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(p *entity.Post) bool { return p.AuthorID == authorID })
}

func (f *fakePostRepo) ListByAuthors(_ context.Context, authorIDs []string) ([]repository.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := map[string]bool{}
	for _, id := range authorIDs {
		set[id] = true
	}
	return f.list(func(p *entity.Post) bool { return set[p.AuthorID] })
}

func (f *fakePostRepo) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type edge struct{ author, followed string }

type fakeFollowRepo struct {
	mu    sync.Mutex
	users *fakeUserRepo
	edges map[edge]entity.Follow
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, edges: map[edge]entity.Follow{}}
}

func (f *fakeFollowRepo) Create(_ context.Context, fl *entity.Follow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := edge{fl.AuthorID, fl.FollowedID}
	if _, ok := f.edges[k]; ok {
		return domain.ErrDuplicate
	}
	fl.CreatedAt = time.Now()
	f.edges[k] = *fl
	return nil
}

func (f *fakeFollowRepo) Delete(_ context.Context, authorID, followedID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := edge{authorID, followedID}
	if _, ok := f.edges[k]; !ok {
		return domain.ErrNotFound
	}
	delete(f.edges, k)
	return nil
}

func (f *fakeFollowRepo) Exists(_ context.Context, authorID, followedID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.edges[edge{authorID, followedID}]
	return ok, nil
}

func (f *fakeFollowRepo) project(ids []string) ([]entity.User, error) {
	out := []entity.User{}
	for _, id := range ids {
		u, ok := f.users.users[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		out = append(out, entity.User{Username: u.Username, Email: u.Email})
	}
	return out, nil
}

func (f *fakeFollowRepo) Followers(_ context.Context, userID string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for k := range f.edges {
		if k.followed == userID {
			ids = append(ids, k.author)
		}
	}
	sort.Strings(ids)
	return f.project(ids)
}

func (f *fakeFollowRepo) Following(_ context.Context, userID string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for k := range f.edges {
		if k.author == userID {
			ids = append(ids, k.followed)
		}
	}
	sort.Strings(ids)
	return f.project(ids)
}

func (f *fakeFollowRepo) FollowingIDs(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for k := range f.edges {
		if k.author == userID {
			ids = append(ids, k.followed)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) CountFollowers(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.edges {
		if k.followed == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowRepo) CountFollowing(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.edges {
		if k.author == userID {
			n++
		}
	}
	return n, nil
}

var (
	_ repository.UserRepository   = (*fakeUserRepo)(nil)
	_ repository.PostRepository   = (*fakePostRepo)(nil)
	_ repository.FollowRepository = (*fakeFollowRepo)(nil)
)
