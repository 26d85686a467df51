package crypto_test

import (
	"testing"

	"veil/internal/crypto"
)

func TestAgree_Commutative(t *testing.T) {
	aPriv, aPub, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		t.Fatalf("GenerateEncryptionKeyPair: %v", err)
	}
	bPriv, bPub, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		t.Fatalf("GenerateEncryptionKeyPair: %v", err)
	}

	ab, err := crypto.Agree(aPriv, bPub)
	if err != nil {
		t.Fatalf("Agree(a, B): %v", err)
	}
	ba, err := crypto.Agree(bPriv, aPub)
	if err != nil {
		t.Fatalf("Agree(b, A): %v", err)
	}
	if ab != ba {
		t.Fatal("agreement is not commutative: both sides derived different secrets")
	}
}

func TestGenerateEncryptionKeyPair_Independent(t *testing.T) {
	p1, pub1, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		t.Fatalf("GenerateEncryptionKeyPair: %v", err)
	}
	p2, pub2, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		t.Fatalf("GenerateEncryptionKeyPair: %v", err)
	}
	if p1 == p2 || pub1 == pub2 {
		t.Fatal("successive key pairs are not independent")
	}
}

func TestGenerateSigningKeyPair_SignVerify(t *testing.T) {
	priv, pub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair: %v", err)
	}
	msg := []byte("published identity record")
	sig := crypto.Sign(priv, msg)
	if !crypto.Verify(pub, msg, sig) {
		t.Fatal("signature did not verify")
	}
	if crypto.Verify(pub, []byte("different message"), sig) {
		t.Fatal("signature verified over the wrong message")
	}
}
