package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

type followFixture struct {
	svc   *FollowService
	users *fakeUserRepo
	posts *fakePostRepo
	alice *entity.User
	bob   *entity.User
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()
	users := newFakeUserRepo()
	posts := newFakePostRepo(users)
	follows := newFakeFollowRepo(users)

	f := &followFixture{
		svc:   &FollowService{Follows: follows, Users: users, Posts: posts},
		users: users,
		posts: posts,
	}
	f.alice = f.addUser(t, "alice", "alice@example.com")
	f.bob = f.addUser(t, "bob", "bob@example.com")
	return f
}

func (f *followFixture) addUser(t *testing.T, username, email string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: email, Password: "hash"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestFollowLifecycle(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()

	t.Run("not following initially", func(t *testing.T) {
		following, err := f.svc.IsFollowing(ctx, f.bob.ID, f.alice.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("follow resolves username case-insensitively", func(t *testing.T) {
		require.NoError(t, f.svc.Follow(ctx, "  BOB ", f.alice.ID))

		following, err := f.svc.IsFollowing(ctx, f.bob.ID, f.alice.ID)
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("following again is a validation error", func(t *testing.T) {
		err := f.svc.Follow(ctx, "bob", f.alice.ID)
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{"You are already following this user."}, []string(v))
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, f.svc.Unfollow(ctx, "bob", f.alice.ID))

		following, err := f.svc.IsFollowing(ctx, f.bob.ID, f.alice.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("unfollowing again is a validation error", func(t *testing.T) {
		err := f.svc.Unfollow(ctx, "bob", f.alice.ID)
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{"You are not following this user."}, []string(v))
	})
}

func TestFollowUnknownTarget(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()

	err := f.svc.Follow(ctx, "ghost", f.alice.ID)
	v, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"You cannot follow a user that does not exist."}, []string(v))

	err = f.svc.Unfollow(ctx, "ghost", f.alice.ID)
	v, ok = domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"You cannot follow a user that does not exist."}, []string(v))
}

func TestFollowSelf(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "alice", f.alice.ID))

	following, err := f.svc.IsFollowing(ctx, f.alice.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestIsFollowingAnonymous(t *testing.T) {
	f := newFollowFixture(t)

	following, err := f.svc.IsFollowing(context.Background(), f.bob.ID, "")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowerAndFollowingLists(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	carol := f.addUser(t, "carol", "carol@example.com")

	require.NoError(t, f.svc.Follow(ctx, "bob", f.alice.ID))
	require.NoError(t, f.svc.Follow(ctx, "bob", carol.ID))
	require.NoError(t, f.svc.Follow(ctx, "carol", f.alice.ID))

	followers, err := f.svc.FollowersOf(ctx, f.bob.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(followers))
	for _, c := range followers {
		names = append(names, c.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "carol"}, names)

	// Cards expose username and avatar only; the avatar is derived
	// from the email, never the email itself.
	for _, c := range followers {
		assert.NotEmpty(t, c.Avatar)
		assert.NotContains(t, c.Avatar, "@")
	}

	following, err := f.svc.FollowingOf(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	avatars := []string{following[0].Avatar, following[1].Avatar}
	assert.Contains(t, avatars, helpers.AvatarURL("bob@example.com"))
	assert.Contains(t, avatars, helpers.AvatarURL("carol@example.com"))

	empty, err := f.svc.FollowersOf(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProfileStats(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	carol := f.addUser(t, "carol", "carol@example.com")

	require.NoError(t, f.svc.Follow(ctx, "bob", f.alice.ID))
	require.NoError(t, f.svc.Follow(ctx, "bob", carol.ID))
	require.NoError(t, f.svc.Follow(ctx, "alice", f.bob.ID))

	for i := 0; i < 3; i++ {
		p := &entity.Post{Title: "t", Body: "b", AuthorID: f.bob.ID, CreatedAt: time.Now()}
		require.NoError(t, f.posts.Create(ctx, p))
	}

	t.Run("visitor who follows", func(t *testing.T) {
		stats, err := f.svc.ProfileStats(ctx, f.bob.ID, f.alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.PostCount)
		assert.EqualValues(t, 2, stats.FollowerCount)
		assert.EqualValues(t, 1, stats.FollowingCount)
		assert.True(t, stats.IsFollowing)
		assert.False(t, stats.IsOwnProfile)
	})

	t.Run("own profile", func(t *testing.T) {
		stats, err := f.svc.ProfileStats(ctx, f.bob.ID, f.bob.ID)
		require.NoError(t, err)
		assert.True(t, stats.IsOwnProfile)
		assert.False(t, stats.IsFollowing)
	})

	t.Run("anonymous visitor", func(t *testing.T) {
		stats, err := f.svc.ProfileStats(ctx, f.bob.ID, "")
		require.NoError(t, err)
		assert.False(t, stats.IsFollowing)
		assert.False(t, stats.IsOwnProfile)
	})
}
