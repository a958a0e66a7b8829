package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type GithubCallbackInput struct {
	Provider   domain.Provider
	ExternalID domain.ThirdPartyUserID
	Emails     []string
	Owner      *domain.Owner
}

type GithubCallbackResult struct {
	User         *domain.User
	SessionToken string
	ExpiresAt    time.Time
}

// GithubCallback completes an OAuth login: the user row is upserted under the
// provider identity, so a returning user keeps their id while the captured
// profile refreshes, and a session opens either way.
type GithubCallback struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	ttl      time.Duration
}

func NewGithubCallback(users ports.UserRepository, sessions ports.SessionRepository, ttl time.Duration) *GithubCallback {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &GithubCallback{users: users, sessions: sessions, ttl: ttl}
}

func (uc *GithubCallback) Execute(ctx context.Context, input GithubCallbackInput) (*GithubCallbackResult, error) {
	if !input.Provider.Valid() {
		return nil, domerrors.ErrInvalidProvider
	}
	candidate := &domain.User{
		ID: domain.NewUserID(uuid.New()),
		Data: domain.ThirdPartyUser{
			Provider:    input.Provider,
			ExternalID:  input.ExternalID,
			Emails:      input.Emails,
			GithubOwner: input.Owner,
		},
		Role: domain.UserRoleUser,
	}
	user, err := uc.users.InsertGithub(ctx, candidate)
	if err != nil {
		return nil, err
	}
	session, raw, err := newSession(ctx, uc.sessions, user.ID, uc.ttl)
	if err != nil {
		return nil, err
	}
	return &GithubCallbackResult{User: user, SessionToken: raw, ExpiresAt: session.ExpiresAt}, nil
}
