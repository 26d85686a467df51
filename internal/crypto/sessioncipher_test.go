package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"veil/internal/crypto"
	"veil/internal/domain"
)

func TestEncryptDecryptMessage_RoundTrip(t *testing.T) {
	material := []byte("32-byte session key material....")
	plaintext := []byte("hello over the relay")

	ct, nonce, err := crypto.EncryptMessage(plaintext, material)
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	if len(nonce) != 12 {
		t.Fatalf("nonce is %d bytes, want 12", len(nonce))
	}

	got, err := crypto.DecryptMessage(ct, nonce, material)
	if err != nil {
		t.Fatalf("DecryptMessage: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecryptMessage_WrongKeyFails(t *testing.T) {
	ct, nonce, err := crypto.EncryptMessage([]byte("payload"), []byte("key material A"))
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	_, err = crypto.DecryptMessage(ct, nonce, []byte("key material B"))
	if !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("want ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptMessage_TamperedCiphertextFails(t *testing.T) {
	material := []byte("key material")
	ct, nonce, err := crypto.EncryptMessage([]byte("payload"), material)
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	ct[len(ct)-1] ^= 0x80

	_, err = crypto.DecryptMessage(ct, nonce, material)
	if !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("want ErrDecryptionFailed, got %v", err)
	}
}

func TestEncryptMessage_NormalisesAnyMaterialLength(t *testing.T) {
	for _, material := range [][]byte{
		[]byte("short"),
		bytes.Repeat([]byte{0xAB}, 32),
		bytes.Repeat([]byte{0xCD}, 64),
	} {
		ct, nonce, err := crypto.EncryptMessage([]byte("m"), material)
		if err != nil {
			t.Fatalf("EncryptMessage(%d-byte material): %v", len(material), err)
		}
		if _, err := crypto.DecryptMessage(ct, nonce, material); err != nil {
			t.Fatalf("DecryptMessage(%d-byte material): %v", len(material), err)
		}
	}
}

func TestEncryptMessage_FreshNoncePerCall(t *testing.T) {
	material := []byte("key material")
	_, n1, err := crypto.EncryptMessage([]byte("m"), material)
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	_, n2, err := crypto.EncryptMessage([]byte("m"), material)
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	if bytes.Equal(n1, n2) {
		t.Fatal("two encryptions reused a nonce")
	}
}
