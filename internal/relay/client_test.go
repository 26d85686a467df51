package relay_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"veil/internal/crypto"
	"veil/internal/domain"
	"veil/internal/relay"
	"veil/internal/relayserver"
)

func startRelay(t *testing.T) *relay.HTTPClient {
	t.Helper()
	store := relayserver.NewMemoryStore(time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(relayserver.New(store, log, relayserver.Options{
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	return relay.NewHTTP(srv.URL, srv.Client())
}

func newParty(t *testing.T) (domain.Identity, domain.IdentityRecord) {
	t.Helper()
	signingPriv, signingPub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair: %v", err)
	}
	encPriv, encPub, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		t.Fatalf("GenerateEncryptionKeyPair: %v", err)
	}
	id := domain.Identity{
		Alias:          crypto.DeriveAlias(signingPub),
		SigningPub:     signingPub,
		SigningPriv:    signingPriv,
		EncryptionPub:  encPub,
		EncryptionPriv: encPriv,
	}
	rec := domain.IdentityRecord{
		ID:            crypto.DeriveIdentityID(signingPub),
		Alias:         id.Alias,
		SigningPub:    signingPub,
		EncryptionPub: encPub,
	}
	return id, rec
}

func TestClientServer_HandshakeAndMessageFlow(t *testing.T) {
	ctx := context.Background()
	client := startRelay(t)

	aliceID, aliceRec := newParty(t)
	bobID, bobRec := newParty(t)

	if err := client.PublishIdentity(ctx, aliceRec); err != nil {
		t.Fatalf("publish alice: %v", err)
	}
	if err := client.PublishIdentity(ctx, bobRec); err != nil {
		t.Fatalf("publish bob: %v", err)
	}

	// Alias resolution round-trips the published record.
	got, err := client.FetchIdentity(ctx, bobRec.Alias)
	if err != nil {
		t.Fatalf("FetchIdentity: %v", err)
	}
	if got.EncryptionPub != bobRec.EncryptionPub {
		t.Fatal("fetched identity lost its encryption key")
	}

	// Alice knocks on Bob's alias.
	hs, err := client.CreateHandshake(ctx, domain.HandshakeRecord{
		InitiatorID: aliceRec.ID,
		TargetAlias: bobRec.Alias,
	})
	if err != nil {
		t.Fatalf("CreateHandshake: %v", err)
	}

	incoming, err := client.IncomingHandshakes(ctx, bobRec.Alias)
	if err != nil {
		t.Fatalf("IncomingHandshakes: %v", err)
	}
	if len(incoming) != 1 || incoming[0].ID != hs.ID {
		t.Fatalf("incoming = %v, want the created handshake", incoming)
	}

	// Bob accepts with DH-agreed material.
	material, err := crypto.Agree(bobID.EncryptionPriv, aliceRec.EncryptionPub)
	if err != nil {
		t.Fatalf("Agree: %v", err)
	}
	bobContact, err := client.AcceptHandshake(ctx, hs.ID, bobRec.ID, material)
	if err != nil {
		t.Fatalf("AcceptHandshake: %v", err)
	}

	aliceContacts, err := client.Contacts(ctx, aliceRec.ID)
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(aliceContacts) != 1 || aliceContacts[0].SessionKeyMaterial != material {
		t.Fatal("initiator side contact missing or carries different material")
	}

	// Alice verifies commutativity on her side and sends a message.
	aliceMaterial, err := crypto.Agree(aliceID.EncryptionPriv, bobRec.EncryptionPub)
	if err != nil {
		t.Fatalf("Agree: %v", err)
	}
	if aliceMaterial != material {
		t.Fatal("both sides should agree on the same secret")
	}

	ct, nonce, err := crypto.EncryptMessage([]byte("hello bob"), aliceMaterial.Slice())
	if err != nil {
		t.Fatalf("EncryptMessage: %v", err)
	}
	if _, err := client.SendMessage(ctx, domain.MessageRecord{
		SenderID:    aliceRec.ID,
		RecipientID: bobRec.ID,
		ContactID:   aliceContacts[0].ID,
		CipherText:  ct,
		Nonce:       nonce,
	}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	msgs, err := client.FetchMessages(ctx, bobRec.ID, 0)
	if err != nil {
		t.Fatalf("FetchMessages: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	plaintext, err := crypto.DecryptMessage(msgs[0].CipherText, msgs[0].Nonce, bobContact.SessionKeyMaterial.Slice())
	if err != nil {
		t.Fatalf("DecryptMessage: %v", err)
	}
	if string(plaintext) != "hello bob" {
		t.Fatalf("plaintext = %q", plaintext)
	}

	if err := client.AckMessages(ctx, bobRec.ID, 1); err != nil {
		t.Fatalf("AckMessages: %v", err)
	}
	msgs, err = client.FetchMessages(ctx, bobRec.ID, 0)
	if err != nil {
		t.Fatalf("FetchMessages after ack: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("queue should be empty after ack, got %d", len(msgs))
	}
}

func TestClient_ErrorTranslation(t *testing.T) {
	ctx := context.Background()
	client := startRelay(t)

	if _, err := client.FetchIdentity(ctx, "ABCD-EFGH-JKLM"); !errors.Is(err, domain.ErrAliasNotFound) {
		t.Fatalf("want ErrAliasNotFound, got %v", err)
	}
	if _, err := client.GetHandshake(ctx, "missing"); !errors.Is(err, domain.ErrHandshakeNotFound) {
		t.Fatalf("want ErrHandshakeNotFound, got %v", err)
	}

	_, rec := newParty(t)
	if err := client.PublishIdentity(ctx, rec); err != nil {
		t.Fatalf("publish: %v", err)
	}
	var material domain.SessionKeyMaterial
	if _, err := client.AcceptHandshake(ctx, "missing", rec.ID, material); !errors.Is(err, domain.ErrHandshakeNotFound) {
		t.Fatalf("want ErrHandshakeNotFound, got %v", err)
	}
}

func TestClient_UnreachableRelay_StorageUnavailable(t *testing.T) {
	client := relay.NewHTTP("http://127.0.0.1:0", nil)
	_, err := client.FetchIdentity(context.Background(), "ABCD-EFGH-JKLM")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}
