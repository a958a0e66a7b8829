package domain

import "time"

// UserSession is a server-side session row. The cookie carries the raw token;
// only its SHA-256 hash is stored.
type UserSession struct {
	ID        UserSessionID
	UserID    UserID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *UserSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
