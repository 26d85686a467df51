package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"veil/internal/domain"
)

// GenerateSigningKeyPair returns a new Ed25519 signing key pair.
func GenerateSigningKeyPair() (priv domain.SigningPrivateKey, pub domain.SigningPublicKey, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return priv, pub, err
	}
	copy(priv[:], sk)
	copy(pub[:], pk)
	return priv, pub, nil
}

// SigningKeyPairFromSeed derives an Ed25519 pair from a 32-byte seed.
// Used by restore-from-phrase, where the seed comes from the mnemonic.
func SigningKeyPairFromSeed(seed [32]byte) (priv domain.SigningPrivateKey, pub domain.SigningPublicKey) {
	sk := ed25519.NewKeyFromSeed(seed[:])
	copy(priv[:], sk)
	copy(pub[:], sk.Public().(ed25519.PublicKey))
	return priv, pub
}

// Sign signs msg with priv and returns the signature.
func Sign(priv domain.SigningPrivateKey, msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(priv[:]), msg)
}

// Verify verifies sig over msg with pub.
func Verify(pub domain.SigningPublicKey, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
