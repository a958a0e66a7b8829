package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

const phcVariant = "argon2id"

// Argon2Params tune the key derivation cost and output sizes.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns OWASP-recommended defaults for Argon2id.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// phcHash is the decomposed form of a stored hash. The parameters travel
// inside the PHC string, so Verify never depends on the hasher's current
// configuration and cost changes only affect newly hashed passwords.
type phcHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func (p phcHash) String() string {
	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcVariant, argon2.Version,
		p.params.Memory, p.params.Iterations, p.params.Parallelism,
		b64.EncodeToString(p.salt), b64.EncodeToString(p.key))
}

// derive recomputes the key for password under the stored parameters.
func (p phcHash) derive(password string) []byte {
	return argon2.IDKey([]byte(password), p.salt,
		p.params.Iterations, p.params.Memory, p.params.Parallelism,
		uint32(len(p.key)))
}

func parsePHC(encoded string) (phcHash, error) {
	var h phcHash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != phcVariant {
		return h, domerrors.NewValidationError("hash", "argon2id PHC string", encoded)
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return h, domerrors.NewValidationError("hash", "supported argon2 version", encoded)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&h.params.Memory, &h.params.Iterations, &h.params.Parallelism); err != nil {
		return h, domerrors.NewValidationError("hash", "argon2 parameter block", encoded)
	}
	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return h, domerrors.NewValidationError("hash", "base64 salt", encoded)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return h, domerrors.NewValidationError("hash", "base64 key", encoded)
	}
	h.params.SaltLength = uint32(len(h.salt))
	h.params.KeyLength = uint32(len(h.key))
	return h, nil
}

// Argon2Hasher hashes passwords with Argon2id and stores them in PHC string
// format.
type Argon2Hasher struct {
	params Argon2Params
}

var _ ports.PasswordHasher = (*Argon2Hasher)(nil)

func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	stored := phcHash{
		params: h.params,
		salt:   salt,
		key: argon2.IDKey([]byte(password), salt,
			h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength),
	}
	return stored.String(), nil
}

func (h *Argon2Hasher) Verify(password, encoded string) bool {
	stored, err := parsePHC(encoded)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(stored.key, stored.derive(password)) == 1
}
