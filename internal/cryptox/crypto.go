// Package cryptox holds the credential and session-marker cryptography of the
// client. Secrets are never stored: an argon2id key is derived from the
// secret and a random salt, and only a SHA-256 verifier of that key is kept.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/cropcare/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated credential salt.
const SaltSize = 32

// KDFParams are the argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultKDFParams are used for every stored credential unless overridden.
var DefaultKDFParams = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}

// Credential is the stored form of a secret.
type Credential struct {
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// DeriveKey runs argon2id over secret and salt.
func DeriveKey(secret, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewCredential salts and hashes secret.
func NewCredential(secret []byte, p KDFParams) Credential {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(secret, salt, p)
	defer common.WipeByteArray(key)
	return Credential{Salt: salt, Verifier: MakeVerifier(key)}
}

// Verify reports whether secret matches c. The comparison is constant time.
// A credential without salt or verifier never matches.
func (c Credential) Verify(secret []byte, p KDFParams) bool {
	if len(c.Salt) == 0 || len(c.Verifier) == 0 {
		return false
	}
	key := DeriveKey(secret, c.Salt, p)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(c.Verifier, MakeVerifier(key)) == 1
}

// BurnVerify spends the same work as a real Verify against a random salt and
// always reports false. Login uses it for unknown emails so that both failure
// paths take comparable time.
func BurnVerify(secret []byte, p KDFParams) bool {
	key := DeriveKey(secret, common.GenerateRandByteArray(SaltSize), p)
	common.WipeByteArray(key)
	return false
}
