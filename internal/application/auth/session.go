package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// DefaultSessionTTL is used when no session lifetime is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// HashSessionToken maps a raw cookie token onto its stored form. Only the
// hash ever touches the database.
func HashSessionToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// newSession mints a session row for the user and returns it with the raw
// token destined for the cookie.
func newSession(ctx context.Context, sessions ports.SessionRepository, userID domain.UserID, ttl time.Duration) (*domain.UserSession, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	now := time.Now()
	session := &domain.UserSession{
		ID:        domain.NewUserSessionID(uuid.New()),
		UserID:    userID,
		TokenHash: HashSessionToken(raw),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}
	return session, raw, nil
}
