package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

func TestArgon2HashAndVerify(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("wrong password", hash))
	assert.False(t, hasher.Verify("correct horse battery staple", "not-a-hash"))
}

func TestArgon2HashesAreSalted(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())
	h1, err := hasher.Hash("same password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestArgon2ParamsComeFromTheHash(t *testing.T) {
	writer := NewArgon2Hasher(Argon2Params{Memory: 32 * 1024, Iterations: 2, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	hash, err := writer.Hash("pw")
	require.NoError(t, err)

	// A hasher configured with different costs still verifies: the parameters
	// are read back from the PHC string, not from the hasher.
	reader := NewArgon2Hasher(DefaultArgon2Params())
	assert.True(t, reader.Verify("pw", hash))
	assert.False(t, reader.Verify("other", hash))
}

func TestArgon2RejectsMalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())
	for _, encoded := range []string{
		"",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!",
	} {
		assert.False(t, hasher.Verify("pw", encoded), encoded)
	}
}

func TestInviteTokenRoundTrip(t *testing.T) {
	issuer := NewJWTInviteIssuer("test-secret", time.Hour)

	token, expiresAt, err := issuer.Generate(ports.InviteClaims{
		Purpose: "company_invite",
		Email:   "dev@example.com",
		Target:  "9e8b7a6c",
		Role:    "admin",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "company_invite", claims.Purpose)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestInviteTokenRejectsBadSignature(t *testing.T) {
	issuer := NewJWTInviteIssuer("test-secret", time.Hour)
	other := NewJWTInviteIssuer("other-secret", time.Hour)

	token, _, err := other.Generate(ports.InviteClaims{Purpose: "company_invite", Email: "dev@example.com"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenNotFound)
}

func TestInviteTokenRejectsExpired(t *testing.T) {
	issuer := NewJWTInviteIssuer("test-secret", -time.Minute)

	token, _, err := issuer.Generate(ports.InviteClaims{Purpose: "company_invite", Email: "dev@example.com"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenExpired)
}
