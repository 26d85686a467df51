package message_test

import (
	"bytes"
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
	handshakesvc "veil/internal/services/handshake"
	identitysvc "veil/internal/services/identity"
	messagesvc "veil/internal/services/message"
	"veil/internal/store"
)

const pass = "Sturdy-Passphrase-99!"

type peer struct {
	id       domain.Identity
	messages *messagesvc.Service
}

// newPair brings up a relay, onboards two parties and completes a handshake
// between them, returning both sides ready to message each other.
func newPair(t *testing.T) (alice, bob peer, client *relay.HTTPClient) {
	t.Helper()
	memStore := relayserver.NewMemoryStore(time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(relayserver.New(memStore, log, relayserver.Options{
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	client = relay.NewHTTP(srv.URL, srv.Client())

	ctx := context.Background()
	aliceStore := store.NewIdentityFileStore(t.TempDir())
	bobStore := store.NewIdentityFileStore(t.TempDir())

	aliceID, err := identitysvc.New(aliceStore, client).Generate(ctx, pass)
	if err != nil {
		t.Fatalf("alice Generate: %v", err)
	}
	bobID, err := identitysvc.New(bobStore, client).Generate(ctx, pass)
	if err != nil {
		t.Fatalf("bob Generate: %v", err)
	}

	hs, err := handshakesvc.New(aliceStore, client).Create(ctx, bobID.Alias, 0)
	if err != nil {
		t.Fatalf("Create handshake: %v", err)
	}
	if _, err := handshakesvc.New(bobStore, client).Accept(ctx, pass, hs.ID); err != nil {
		t.Fatalf("Accept handshake: %v", err)
	}

	alice = peer{id: aliceID, messages: messagesvc.New(aliceStore, client)}
	bob = peer{id: bobID, messages: messagesvc.New(bobStore, client)}
	return alice, bob, client
}

func TestSendReceive_RoundTrip(t *testing.T) {
	ctx := context.Background()
	alice, bob, _ := newPair(t)

	want := [][]byte{
		[]byte("hello bob"),
		[]byte("second message"),
	}
	for _, p := range want {
		if err := alice.messages.Send(ctx, bob.id.Alias, p); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	inbox, err := bob.messages.Receive(ctx, 0)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(inbox) != len(want) {
		t.Fatalf("got %d messages, want %d", len(inbox), len(want))
	}
	for i, msg := range inbox {
		if msg.Undecryptable {
			t.Fatalf("message %d flagged undecryptable", i)
		}
		if !bytes.Equal(msg.Plaintext, want[i]) {
			t.Fatalf("message %d = %q, want %q", i, msg.Plaintext, want[i])
		}
		if msg.SenderAlias != alice.id.Alias {
			t.Fatalf("message %d sender alias = %q, want %q", i, msg.SenderAlias, alice.id.Alias)
		}
	}

	// Receiving acks: the queue must be empty afterwards.
	again, err := bob.messages.Receive(ctx, 0)
	if err != nil {
		t.Fatalf("second Receive: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("queue not drained, %d messages remain", len(again))
	}
}

func TestReceive_Limit(t *testing.T) {
	ctx := context.Background()
	alice, bob, _ := newPair(t)

	for i := 0; i < 3; i++ {
		if err := alice.messages.Send(ctx, bob.id.Alias, []byte{'a' + byte(i)}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	first, err := bob.messages.Receive(ctx, 2)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d messages, want 2", len(first))
	}
	rest, err := bob.messages.Receive(ctx, 0)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(rest) != 1 || !bytes.Equal(rest[0].Plaintext, []byte("c")) {
		t.Fatalf("remainder = %+v, want one message %q", rest, "c")
	}
}

func TestReceive_TamperedCiphertextBecomesPlaceholder(t *testing.T) {
	ctx := context.Background()
	alice, bob, client := newPair(t)

	contacts, err := client.Contacts(ctx, crypto.DeriveIdentityID(alice.id.SigningPub))
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}

	// A well-addressed message whose ciphertext never came from the session
	// key. The AEAD tag cannot verify.
	_, err = client.SendMessage(ctx, domain.MessageRecord{
		SenderID:    contacts[0].OwnerID,
		RecipientID: contacts[0].PeerID,
		ContactID:   contacts[0].ID,
		CipherText:  []byte("garbage that is long enough to carry a tag"),
		Nonce:       make([]byte, 12),
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if err := alice.messages.Send(ctx, bob.id.Alias, []byte("intact")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	inbox, err := bob.messages.Receive(ctx, 0)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("got %d messages, want 2", len(inbox))
	}
	if !inbox[0].Undecryptable || string(inbox[0].Plaintext) != messagesvc.UndecryptablePlaceholder {
		t.Fatalf("tampered message = %+v, want the placeholder", inbox[0])
	}
	if inbox[1].Undecryptable || string(inbox[1].Plaintext) != "intact" {
		t.Fatalf("intact message = %+v, want plaintext through", inbox[1])
	}
}

func TestSend_Validation(t *testing.T) {
	ctx := context.Background()
	alice, bob, _ := newPair(t)

	if err := alice.messages.Send(ctx, bob.id.Alias, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty plaintext: want ErrValidation, got %v", err)
	}
	if err := alice.messages.Send(ctx, "not an alias", []byte("hi")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("malformed alias: want ErrValidation, got %v", err)
	}
	// Well-formed alias with no contact behind it.
	if err := alice.messages.Send(ctx, "ABCD-EFGH-JKLM", []byte("hi")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("no contact: want ErrValidation, got %v", err)
	}
}
