package credential

import (
	"crypto"
	"encoding/hex"
	"errors"

	// Registers the SHA-256 implementation with the crypto package.
	_ "crypto/sha256"
)

// ErrCryptoUnavailable indicates the digest primitive is not present in
// this build of the binary.
var ErrCryptoUnavailable = errors.New("sha-256 digest primitive unavailable")

// Hasher turns a plaintext password into the digest the backend expects
// on the wire. The plaintext itself is never sent.
type Hasher interface {
	Digest(password string) (string, error)
}

// SHA256Hasher produces an unsalted, deterministic SHA-256 digest,
// encoded as lowercase hex. The backend stores and compares this exact
// value, so no per-call salt or nonce may be added here. This is
// transport obfuscation only; salted hashing at rest is the server's
// job.
type SHA256Hasher struct{}

var _ Hasher = SHA256Hasher{}

// NewSHA256Hasher creates a new SHA256Hasher
func NewSHA256Hasher() SHA256Hasher {
	return SHA256Hasher{}
}

// Digest hashes the given password. The output is always 64 lowercase
// hex characters.
func (SHA256Hasher) Digest(password string) (string, error) {
	if !crypto.SHA256.Available() {
		return "", ErrCryptoUnavailable
	}
	h := crypto.SHA256.New()
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil)), nil
}
