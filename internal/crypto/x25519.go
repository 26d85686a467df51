package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	"veil/internal/domain"
)

// GenerateEncryptionKeyPair returns a fresh Curve25519 key pair for key
// agreement. The private key is clamped per RFC 7748. Failure to read from
// the system's secure random source is fatal for the caller; there is no
// degraded fallback.
func GenerateEncryptionKeyPair() (priv domain.EncryptionPrivateKey, pub domain.EncryptionPublicKey, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return
	}
	copy(pub[:], pb)
	return
}

// EncryptionKeyPairFromSeed derives a Curve25519 pair from 32 fixed bytes,
// clamped like a random key. Used by restore-from-phrase.
func EncryptionKeyPairFromSeed(seed [32]byte) (domain.EncryptionPrivateKey, domain.EncryptionPublicKey) {
	var priv domain.EncryptionPrivateKey
	var pub domain.EncryptionPublicKey
	copy(priv[:], seed[:])
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		// Only reachable for a low-order point, which clamping rules out.
		panic(err)
	}
	copy(pub[:], pb)
	return priv, pub
}

// Agree computes the X25519 Diffie–Hellman shared secret. It is commutative:
// Agree(aPriv, bPub) equals Agree(bPriv, aPub), which is what lets both ends
// of a handshake arrive at identical session key material.
func Agree(priv domain.EncryptionPrivateKey, pub domain.EncryptionPublicKey) (domain.SessionKeyMaterial, error) {
	var out domain.SessionKeyMaterial
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	return out, nil
}

func clamp(k *domain.EncryptionPrivateKey) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
