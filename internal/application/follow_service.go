package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	repo "github.com/inkwell-app/inkwell/internal/domain/repository"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

// FollowService implements the follow/unfollow state machine and the
// relationship queries around it. Each (author, followed) pair is
// either absent or present; create and delete are the only
// transitions and each fails when the pair is already in the target
// state.
type FollowService struct {
	Follows repo.FollowRepository
	Users   repo.UserRepository
	Posts   repo.PostRepository
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewFollowService(follows repo.FollowRepository, users repo.UserRepository, posts repo.PostRepository, rdb *redis.Client, logger *logrus.Logger) *FollowService {
	return &FollowService{Follows: follows, Users: users, Posts: posts, Redis: rdb, Logger: logger}
}

// resolve maps a followed username to the target account, appending
// the not-exists message when there is none.
func (s *FollowService) resolve(ctx context.Context, followedUsername string, errs *[]string) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(followedUsername))
	target, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			*errs = append(*errs, "You cannot follow a user that does not exist.")
			return nil, nil
		}
		return nil, err
	}
	return target, nil
}

// Follow creates the edge authorID -> followedUsername. Following a
// missing account or an account already followed is a validation
// error. There is no self-follow guard.
func (s *FollowService) Follow(ctx context.Context, followedUsername, authorID string) error {
	errs := []string{}
	target, err := s.resolve(ctx, followedUsername, &errs)
	if err != nil {
		return err
	}

	if target != nil {
		exists, err := s.Follows.Exists(ctx, authorID, target.ID)
		if err != nil {
			return err
		}
		if exists {
			errs = append(errs, "You are already following this user.")
		}
	}

	if len(errs) > 0 {
		return domain.ValidationErrors(errs)
	}

	f := &entity.Follow{AuthorID: authorID, FollowedID: target.ID}
	if err := s.Follows.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ValidationErrors{"You are already following this user."}
		}
		return err
	}

	s.invalidateStats(ctx, authorID, target.ID)
	return nil
}

// Unfollow removes the edge. Unfollowing a missing account or an
// account not currently followed is a validation error.
func (s *FollowService) Unfollow(ctx context.Context, followedUsername, authorID string) error {
	errs := []string{}
	target, err := s.resolve(ctx, followedUsername, &errs)
	if err != nil {
		return err
	}

	if target != nil {
		exists, err := s.Follows.Exists(ctx, authorID, target.ID)
		if err != nil {
			return err
		}
		if !exists {
			errs = append(errs, "You are not following this user.")
		}
	}

	if len(errs) > 0 {
		return domain.ValidationErrors(errs)
	}

	if err := s.Follows.Delete(ctx, authorID, target.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidationErrors{"You are not following this user."}
		}
		return err
	}

	s.invalidateStats(ctx, authorID, target.ID)
	return nil
}

// IsFollowing reports whether visitorID follows followedID. The
// anonymous visitor follows nobody.
func (s *FollowService) IsFollowing(ctx context.Context, followedID, visitorID string) (bool, error) {
	if visitorID == "" {
		return false, nil
	}
	return s.Follows.Exists(ctx, visitorID, followedID)
}

func (s *FollowService) FollowersOf(ctx context.Context, userID string) ([]UserCard, error) {
	users, err := s.Follows.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserCards(users), nil
}

func (s *FollowService) FollowingOf(ctx context.Context, userID string) ([]UserCard, error) {
	users, err := s.Follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserCards(users), nil
}

func toUserCards(users []entity.User) []UserCard {
	out := make([]UserCard, 0, len(users))
	for _, u := range users {
		out = append(out, UserCard{Username: u.Username, Avatar: helpers.AvatarURL(u.Email)})
	}
	return out
}

func (s *FollowService) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return s.Follows.CountFollowers(ctx, userID)
}

func (s *FollowService) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return s.Follows.CountFollowing(ctx, userID)
}

// ProfileStats is the aggregate shown on every profile screen.
type ProfileStats struct {
	PostCount      int64 `json:"post_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
	IsOwnProfile   bool  `json:"is_own_profile"`
}

type profileCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

func profileStatsKey(userID string) string {
	return "profile:stats:" + userID
}

const profileStatsTTL = 30 * time.Second

// ProfileStats aggregates counts plus the visitor's relationship to
// the profile. Counts are cached briefly in Redis; a failing sub-query
// fails the whole aggregate.
func (s *FollowService) ProfileStats(ctx context.Context, profileID, visitorID string) (*ProfileStats, error) {
	counts, ok := s.cachedCounts(ctx, profileID)
	if !ok {
		var err error
		counts, err = s.loadCounts(ctx, profileID)
		if err != nil {
			return nil, err
		}
		s.storeCounts(ctx, profileID, counts)
	}

	isFollowing, err := s.IsFollowing(ctx, profileID, visitorID)
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		PostCount:      counts.Posts,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
		IsFollowing:    isFollowing,
		IsOwnProfile:   visitorID != "" && visitorID == profileID,
	}, nil
}

func (s *FollowService) loadCounts(ctx context.Context, profileID string) (profileCounts, error) {
	var c profileCounts
	var err error
	if c.Posts, err = s.Posts.CountByAuthor(ctx, profileID); err != nil {
		return c, err
	}
	if c.Followers, err = s.Follows.CountFollowers(ctx, profileID); err != nil {
		return c, err
	}
	if c.Following, err = s.Follows.CountFollowing(ctx, profileID); err != nil {
		return c, err
	}
	return c, nil
}

func (s *FollowService) cachedCounts(ctx context.Context, profileID string) (profileCounts, bool) {
	var c profileCounts
	if s.Redis == nil {
		return c, false
	}
	found, err := helpers.RedisGetJSON(ctx, s.Redis, profileStatsKey(profileID), &c)
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("profile stats cache read failed")
	}
	return c, found && err == nil
}

func (s *FollowService) storeCounts(ctx context.Context, profileID string, c profileCounts) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, profileStatsKey(profileID), c, profileStatsTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("profile stats cache write failed")
	}
}

func (s *FollowService) invalidateStats(ctx context.Context, userIDs ...string) {
	if s.Redis == nil {
		return
	}
	for _, id := range userIDs {
		_ = helpers.RedisDel(ctx, s.Redis, profileStatsKey(id))
	}
}
