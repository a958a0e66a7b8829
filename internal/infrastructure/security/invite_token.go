package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

type inviteJWTClaims struct {
	Purpose string `json:"purpose"`
	Email   string `json:"email"`
	Target  string `json:"target,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTInviteIssuer signs invite and verification tokens with HS256. The token
// is self-contained; the database row next to it carries the single-use state.
type JWTInviteIssuer struct {
	secret []byte
	ttl    time.Duration
}

var _ ports.InviteTokenIssuer = (*JWTInviteIssuer)(nil)

func NewJWTInviteIssuer(secret string, ttl time.Duration) *JWTInviteIssuer {
	return &JWTInviteIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTInviteIssuer) Generate(claims ports.InviteClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, inviteJWTClaims{
		Purpose: claims.Purpose,
		Email:   claims.Email,
		Target:  claims.Target,
		Role:    claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *JWTInviteIssuer) Parse(token string) (*ports.InviteClaims, error) {
	var claims inviteJWTClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domerrors.ErrTokenExpired
		}
		return nil, domerrors.ErrTokenNotFound
	}
	if !parsed.Valid {
		return nil, domerrors.ErrTokenNotFound
	}
	return &ports.InviteClaims{
		Purpose: claims.Purpose,
		Email:   claims.Email,
		Target:  claims.Target,
		Role:    claims.Role,
	}, nil
}
