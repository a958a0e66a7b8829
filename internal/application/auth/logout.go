package auth

import (
	"context"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// Logout revokes the session behind a raw cookie token.
type Logout struct {
	sessions ports.SessionRepository
}

func NewLogout(sessions ports.SessionRepository) *Logout {
	return &Logout{sessions: sessions}
}

func (uc *Logout) Execute(ctx context.Context, rawToken string) error {
	session, err := uc.sessions.GetByTokenHash(ctx, HashSessionToken(rawToken))
	if err != nil {
		return err
	}
	if session == nil {
		return domerrors.ErrSessionNotFound
	}
	return uc.sessions.Delete(ctx, session.ID)
}
