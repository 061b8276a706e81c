package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	repo "github.com/inkwell-app/inkwell/internal/domain/repository"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

var (
	alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// fieldValidator backs the email syntax check; request payload
	// shape is validated separately at the HTTP boundary.
	fieldValidator = validator.New()
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 12
	passwordMaxLen = 50
)

// UserService implements account registration, authentication and
// public lookups on top of the user repository.
type UserService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

// RegisterInput carries the raw registration fields. Absent fields
// arrive as empty strings; normalization happens here, not in callers.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (in *RegisterInput) normalize() {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	// Password is left untouched until hashing.
}

func validEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}

// validate runs the synchronous field rules and returns every violated
// rule in order.
func (in *RegisterInput) validate() []string {
	errs := []string{}
	if in.Username == "" {
		errs = append(errs, "You must provide a username.")
	}
	if in.Username != "" && !alphanumeric.MatchString(in.Username) {
		errs = append(errs, "Username can only contain letters and numbers.")
	}
	if !validEmail(in.Email) {
		errs = append(errs, "You must provide a valid email.")
	}
	if in.Password == "" {
		errs = append(errs, "You must provide a password.")
	}
	if len(in.Username) > 0 && len(in.Username) < usernameMinLen {
		errs = append(errs, "Username must be at least 3 characters.")
	}
	if len(in.Username) > usernameMaxLen {
		errs = append(errs, "Username cannot exceed 30 characters.")
	}
	if len(in.Password) > 0 && len(in.Password) < passwordMinLen {
		errs = append(errs, "Password must be at least 12 characters.")
	}
	if len(in.Password) > passwordMaxLen {
		errs = append(errs, "Password cannot exceed 50 characters.")
	}
	return errs
}

func (in *RegisterInput) usernameWellFormed() bool {
	return len(in.Username) >= usernameMinLen && len(in.Username) <= usernameMaxLen &&
		alphanumeric.MatchString(in.Username)
}

// Register normalizes and validates the input, accumulating every rule
// violation, then hashes the password and persists the account. The
// uniqueness checks only run for fields that are otherwise valid.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.normalize()
	errs := in.validate()

	if in.usernameWellFormed() {
		_, err := s.Users.GetByUsername(ctx, in.Username)
		switch {
		case err == nil:
			errs = append(errs, "That username is already taken.")
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}
	if validEmail(in.Email) {
		_, err := s.Users.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			errs = append(errs, "That email is already being used.")
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Username: in.Username, Email: in.Email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		// Check-then-act lost the race; the unique index won.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ValidationErrors{"That username or email is already in use."}
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates username/password and returns the user.
// Both an unknown username and a wrong password collapse into the same
// failure so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// IssueTokens generates an access/refresh pair and records a session
// in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":  u.ID,
			"username": u.Username,
			"avatar":   helpers.AvatarURL(u.Email),
			"sid":      sid,
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: u.ID, Username: u.Username, Avatar: helpers.AvatarURL(u.Email)}
	return resp, pair, nil
}

// Refresh rotates the session id and both tokens when the refresh
// token matches the current Redis session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", domain.ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", domain.ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", domain.ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

// FindByUsername returns the public projection for a username, or
// domain.ErrNotFound.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*PublicProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{ID: u.ID, Username: u.Username, Avatar: helpers.AvatarURL(u.Email)}, nil
}

// UsernameExists is a pre-registration probe. It never errors; any
// store failure reads as "not taken".
func (s *UserService) UsernameExists(ctx context.Context, username string) bool {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return false
	}
	_, err := s.Users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) && s.Logger != nil {
		s.Logger.WithError(err).Warn("username probe failed")
	}
	return err == nil
}

// EmailExists is the email counterpart of UsernameExists.
func (s *UserService) EmailExists(ctx context.Context, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	_, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) && s.Logger != nil {
		s.Logger.WithError(err).Warn("email probe failed")
	}
	return err == nil
}
