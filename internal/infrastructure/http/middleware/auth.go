package middleware

import (
	"net/http"
	"time"

	"github.com/him-Tech/web2-backend-sub000/internal/application/auth"
	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
)

// SessionCookieName carries the raw session token.
const SessionCookieName = "funding_session"

// SessionAuthenticator resolves the session cookie into a user. The cookie
// holds the raw token; only its hash is looked up.
type SessionAuthenticator struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
}

func NewSessionAuthenticator(sessions ports.SessionRepository, users ports.UserRepository) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, users: users}
}

// RequireSession rejects requests without a live session and puts the user on
// the context for handlers downstream.
func (a *SessionAuthenticator) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(w, "missing session")
			return
		}
		session, err := a.sessions.GetByTokenHash(r.Context(), auth.HashSessionToken(cookie.Value))
		if err != nil {
			unauthorized(w, "session lookup failed")
			return
		}
		if session == nil || session.Expired(time.Now()) {
			unauthorized(w, "session not found or expired")
			return
		}
		user, err := a.users.GetByID(r.Context(), session.UserID)
		if err != nil || user == nil {
			unauthorized(w, "session user not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
