package crypto

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/chacha20poly1305"

	"veil/internal/domain"
	"veil/internal/util/memzero"
)

// EncryptMessage encrypts one message payload under a contact's session key
// material. The material is normalised to a 256-bit key by hashing, so
// callers may pass raw agreement output or material of any other length.
// A fresh 96-bit nonce is drawn per call.
//
// There is no per-message key rotation: nonce collision probability grows
// with message volume under one session key. Accepted limitation.
func EncryptMessage(plaintext []byte, material []byte) (ciphertext, nonce []byte, err error) {
	key := sha256.Sum256(material)
	defer memzero.Zero(key[:])

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// DecryptMessage reverses EncryptMessage. An AEAD tag mismatch surfaces as
// ErrDecryptionFailed; callers must render such messages as an explicit
// undecryptable placeholder, never crash and never drop them silently.
func DecryptMessage(ciphertext, nonce []byte, material []byte) ([]byte, error) {
	key := sha256.Sum256(material)
	defer memzero.Zero(key[:])

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, domain.ErrDecryptionFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	return plaintext, nil
}
