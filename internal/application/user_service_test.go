package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/domain/entity"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

func newUserService() (*UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return &UserService{Users: users}, users
}

func mustRegister(t *testing.T, svc *UserService, username, email, password string) *entity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func TestRegisterFieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		want  []string
	}{
		{
			name:  "all fields missing",
			input: RegisterInput{},
			want: []string{
				"You must provide a username.",
				"You must provide a valid email.",
				"You must provide a password.",
			},
		},
		{
			name:  "username with punctuation",
			input: RegisterInput{Username: "bad name!", Email: "a@b.test", Password: "long enough pass"},
			want:  []string{"Username can only contain letters and numbers."},
		},
		{
			name:  "username too short",
			input: RegisterInput{Username: "ab", Email: "a@b.test", Password: "long enough pass"},
			want:  []string{"Username must be at least 3 characters."},
		},
		{
			name:  "username too long",
			input: RegisterInput{Username: strings.Repeat("a", 31), Email: "a@b.test", Password: "long enough pass"},
			want:  []string{"Username cannot exceed 30 characters."},
		},
		{
			name:  "email without domain",
			input: RegisterInput{Username: "writer", Email: "nope", Password: "long enough pass"},
			want:  []string{"You must provide a valid email."},
		},
		{
			name:  "password one short of minimum",
			input: RegisterInput{Username: "writer", Email: "a@b.test", Password: strings.Repeat("p", 11)},
			want:  []string{"Password must be at least 12 characters."},
		},
		{
			name:  "password one past maximum",
			input: RegisterInput{Username: "writer", Email: "a@b.test", Password: strings.Repeat("p", 51)},
			want:  []string{"Password cannot exceed 50 characters."},
		},
		{
			name:  "every rule broken at once, in order",
			input: RegisterInput{Username: "a!", Email: "nope", Password: "short"},
			want: []string{
				"Username can only contain letters and numbers.",
				"You must provide a valid email.",
				"Username must be at least 3 characters.",
				"Password must be at least 12 characters.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserService()
			_, err := svc.Register(context.Background(), tt.input)
			require.Error(t, err)
			v, ok := domain.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, []string(v))
		})
	}
}

func TestRegisterBoundaryLengthsPass(t *testing.T) {
	svc, _ := newUserService()
	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "abc",
		Email:    "min@b.test",
		Password: strings.Repeat("p", 12),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: strings.Repeat("z", 30),
		Email:    "max@b.test",
		Password: strings.Repeat("p", 50),
	})
	assert.NoError(t, err)
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, users := newUserService()
	u := mustRegister(t, svc, "  SoulFul  ", " SOULFUL@Example.COM ", "a perfectly fine password")

	assert.Equal(t, "soulful", u.Username)
	assert.Equal(t, "soulful@example.com", u.Email)
	assert.NotEqual(t, "a perfectly fine password", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "a perfectly fine password"))

	stored, err := users.GetByUsername(context.Background(), "soulful")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _ := newUserService()
	mustRegister(t, svc, "soulful", "soulful@example.com", "a perfectly fine password")

	t.Run("username taken regardless of case", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "SoulFul",
			Email:    "other@example.com",
			Password: "a perfectly fine password",
		})
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{"That username is already taken."}, []string(v))
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "someoneelse",
			Email:    "Soulful@Example.com",
			Password: "a perfectly fine password",
		})
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{"That email is already being used."}, []string(v))
	})

	t.Run("both taken yields both messages", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "soulful",
			Email:    "soulful@example.com",
			Password: "a perfectly fine password",
		})
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []string{
			"That username is already taken.",
			"That email is already being used.",
		}, []string(v))
	})

	t.Run("uniqueness not probed for an ill-formed username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "so!",
			Email:    "fresh@example.com",
			Password: "a perfectly fine password",
		})
		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.NotContains(t, []string(v), "That username is already taken.")
	})
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService()
	mustRegister(t, svc, "soulful", "soulful@example.com", "a perfectly fine password")

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(context.Background(), "  SoulFul ", "a perfectly fine password")
		require.NoError(t, err)
		assert.Equal(t, "soulful", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "soulful", "not the password ever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown username collapses to the same failure", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody", "a perfectly fine password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestFindByUsername(t *testing.T) {
	svc, _ := newUserService()
	u := mustRegister(t, svc, "soulful", "soulful@example.com", "a perfectly fine password")

	p, err := svc.FindByUsername(context.Background(), " SOULFUL ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, "soulful", p.Username)
	assert.Equal(t, helpers.AvatarURL("soulful@example.com"), p.Avatar)

	_, err = svc.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExistenceProbes(t *testing.T) {
	svc, _ := newUserService()
	mustRegister(t, svc, "soulful", "soulful@example.com", "a perfectly fine password")

	ctx := context.Background()
	assert.True(t, svc.UsernameExists(ctx, "SoulFul"))
	assert.False(t, svc.UsernameExists(ctx, "ghost"))
	assert.False(t, svc.UsernameExists(ctx, "  "))

	assert.True(t, svc.EmailExists(ctx, "Soulful@Example.com"))
	assert.False(t, svc.EmailExists(ctx, "ghost@example.com"))
	assert.False(t, svc.EmailExists(ctx, ""))
}
