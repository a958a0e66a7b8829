package auth

import (
	"context"
	"time"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User         *domain.User
	SessionToken string
	ExpiresAt    time.Time
}

// Login verifies local credentials and opens a server-side session.
type Login struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionRepository
	ttl      time.Duration
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, sessions ports.SessionRepository, ttl time.Duration) *Login {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Login{users: users, hasher: hasher, sessions: sessions, ttl: ttl}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	local := (*domain.LocalUser)(nil)
	if user != nil {
		local = user.Local()
	}
	if local == nil || !uc.hasher.Verify(input.Password, local.HashedPassword) {
		return nil, domerrors.ErrInvalidCredentials
	}
	session, raw, err := newSession(ctx, uc.sessions, user.ID, uc.ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, SessionToken: raw, ExpiresAt: session.ExpiresAt}, nil
}
