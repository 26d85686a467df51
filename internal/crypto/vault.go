package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"veil/internal/domain"
	"veil/internal/util/memzero"
)

const (
	// KeyBytes is the size of a derived sealing key.
	KeyBytes = 32
	// SaltBytes is the size of the per-seal KDF salt.
	SaltBytes = 16
	// NonceBytes is the AEAD nonce size.
	NonceBytes = chacha20poly1305.NonceSize

	// Argon2id parameters. Memory-hard so offline passphrase guessing stays
	// expensive.
	argonTime    = 2
	argonMemory  = 64 * 1024
	argonThreads = 1
)

// DeriveKey stretches a passphrase into a 256-bit sealing key with Argon2id.
func DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeyBytes)
}

// Seal encrypts plaintext under a key derived from the passphrase.
//
// Every call draws a fresh salt and nonce, so sealing identical plaintext
// under the same passphrase twice yields distinct triples. The derived key is
// wiped before returning.
func Seal(plaintext []byte, passphrase string) (domain.SealedKeyMaterial, error) {
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return domain.SealedKeyMaterial{}, err
	}
	key := DeriveKey(passphrase, salt)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return domain.SealedKeyMaterial{}, err
	}
	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return domain.SealedKeyMaterial{}, err
	}
	return domain.SealedKeyMaterial{
		CipherText: aead.Seal(nil, nonce, plaintext, nil),
		Nonce:      nonce,
		Salt:       salt,
	}, nil
}

// Open decrypts a sealed triple. A wrong passphrase and a tampered ciphertext
// both surface as ErrAuthenticationFailed; the two cases are deliberately
// indistinguishable so the failure cannot be used as an oracle.
func Open(sealed domain.SealedKeyMaterial, passphrase string) ([]byte, error) {
	if len(sealed.Salt) != SaltBytes || len(sealed.Nonce) != NonceBytes {
		return nil, domain.ErrAuthenticationFailed
	}
	key := DeriveKey(passphrase, sealed.Salt)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, sealed.Nonce, sealed.CipherText, nil)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
