package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// InviteClaims is the payload carried by a signed invite or verification token.
type InviteClaims struct {
	Purpose string
	Email   string
	Target  string
	Role    string
}

// InviteTokenIssuer signs and parses the opaque tokens used for company and
// repository invites and email verification. Generate returns the token and
// its expiry; Parse rejects bad signatures and expired tokens.
type InviteTokenIssuer interface {
	Generate(claims InviteClaims) (token string, expiresAt time.Time, err error)
	Parse(token string) (*InviteClaims, error)
}
