package types

import (
	"encoding/json"
	"fmt"
)

// Fixed-size keys marshal as base64 strings on the wire and in local files,
// matching how the relay records are specified.

func marshalKeyBytes(b []byte) ([]byte, error) { return json.Marshal(b) }

func unmarshalKeyBytes(data []byte, dst []byte, what string) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil // absent key stays zero
	}
	if len(b) != len(dst) {
		return fmt.Errorf("%s must be %d bytes, got %d", what, len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// EncryptionPublicKey is a Curve25519 public key used for key agreement.
type EncryptionPublicKey [32]byte

// Slice returns the key as a []byte.
func (p EncryptionPublicKey) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p EncryptionPublicKey) IsZero() bool { return p == EncryptionPublicKey{} }

// EncryptionPrivateKey is a Curve25519 private key used for key agreement.
type EncryptionPrivateKey [32]byte

// Slice returns the key as a []byte.
func (k EncryptionPrivateKey) Slice() []byte { return k[:] }

// SigningPublicKey is an Ed25519 public key.
type SigningPublicKey [32]byte

// Slice returns the key as a []byte.
func (p SigningPublicKey) Slice() []byte { return p[:] }

// SigningPrivateKey is an Ed25519 private key.
type SigningPrivateKey [64]byte

// Slice returns the key as a []byte.
func (k SigningPrivateKey) Slice() []byte { return k[:] }

// SessionKeyMaterial is the 32-byte shared secret two contacts derive via
// key agreement. Both sides of a contact hold the same value.
type SessionKeyMaterial [32]byte

// Slice returns the material as a []byte.
func (m SessionKeyMaterial) Slice() []byte { return m[:] }

func (p EncryptionPublicKey) MarshalJSON() ([]byte, error) { return marshalKeyBytes(p[:]) }

func (p *EncryptionPublicKey) UnmarshalJSON(data []byte) error {
	return unmarshalKeyBytes(data, p[:], "encryption public key")
}

func (k EncryptionPrivateKey) MarshalJSON() ([]byte, error) { return marshalKeyBytes(k[:]) }

func (k *EncryptionPrivateKey) UnmarshalJSON(data []byte) error {
	return unmarshalKeyBytes(data, k[:], "encryption private key")
}

func (p SigningPublicKey) MarshalJSON() ([]byte, error) { return marshalKeyBytes(p[:]) }

func (p *SigningPublicKey) UnmarshalJSON(data []byte) error {
	return unmarshalKeyBytes(data, p[:], "signing public key")
}

func (k SigningPrivateKey) MarshalJSON() ([]byte, error) { return marshalKeyBytes(k[:]) }

func (k *SigningPrivateKey) UnmarshalJSON(data []byte) error {
	return unmarshalKeyBytes(data, k[:], "signing private key")
}

func (m SessionKeyMaterial) MarshalJSON() ([]byte, error) { return marshalKeyBytes(m[:]) }

func (m *SessionKeyMaterial) UnmarshalJSON(data []byte) error {
	return unmarshalKeyBytes(data, m[:], "session key material")
}
