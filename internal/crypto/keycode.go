package crypto

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"veil/internal/domain"
)

// DeriveKeyCode returns a short base58 digest of a public key for users to
// compare out of band. It hashes with SHA-256 and truncates to 10 bytes.
func DeriveKeyCode(pub []byte) domain.KeyCode {
	sum := sha256.Sum256(pub)
	return domain.KeyCode(base58.Encode(sum[:10]))
}

// DeriveIdentityID returns the deterministic relay identifier for a signing
// public key: the base58 form of the first 16 digest bytes. Deriving it
// client-side keeps the id stable across republishes of the same key.
func DeriveIdentityID(pub domain.SigningPublicKey) domain.IdentityID {
	sum := sha256.Sum256(pub.Slice())
	return domain.IdentityID(base58.Encode(sum[:16]))
}
