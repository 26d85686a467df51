package interfaces

import (
	"context"
	"time"

	domaintypes "veil/internal/domain/types"
)

// IdentityService owns the local identity lifecycle: create once during
// onboarding, replace on rotate or restore, clear on shred.
type IdentityService interface {
	// Generate creates a fresh identity, seals it under the passphrase and
	// publishes the public record to the relay.
	Generate(ctx context.Context, passphrase string) (domaintypes.Identity, error)

	// Load unseals and returns the local identity.
	Load(passphrase string) (domaintypes.Identity, error)

	// Public returns the published record shape without unsealing.
	Public() (domaintypes.IdentityRecord, bool, error)

	// Rotate replaces the identity wholesale with a freshly generated one.
	Rotate(ctx context.Context, passphrase string) (domaintypes.Identity, error)

	// Shred wipes the local identity.
	Shred() error

	// BackupMnemonic returns the 12-word recovery phrase for display.
	BackupMnemonic(passphrase string) ([]string, error)

	// RestoreFromMnemonic derives a brand-new identity from the phrase. It is
	// a replacement, not a recovery: prior contacts and messages stay
	// unreadable.
	RestoreFromMnemonic(ctx context.Context, words []string, passphrase string) (domaintypes.Identity, error)
}

// HandshakeService drives trust establishment with peers.
type HandshakeService interface {
	// Create opens a pending handshake toward the target alias. A zero ttl
	// means the default validity window.
	Create(ctx context.Context, target domaintypes.Alias, ttl time.Duration) (domaintypes.HandshakeRecord, error)

	// Accept performs key agreement and commits the contact pair via the
	// relay's atomic accept. Idempotent for already-accepted handshakes.
	Accept(ctx context.Context, passphrase string, id domaintypes.HandshakeID) (domaintypes.ContactRecord, error)

	// Reject declines a pending handshake. No key material is produced.
	Reject(ctx context.Context, id domaintypes.HandshakeID) error

	// Incoming lists pending handshakes targeting the local identity.
	Incoming(ctx context.Context) ([]domaintypes.HandshakeRecord, error)

	// Contacts lists established contacts.
	Contacts(ctx context.Context) ([]domaintypes.ContactRecord, error)
}

// MessageService encrypts outbound and decrypts inbound messages.
type MessageService interface {
	// Send encrypts plaintext for the contact behind the alias and posts it.
	Send(ctx context.Context, to domaintypes.Alias, plaintext []byte) error

	// Receive fetches queued messages, decrypting each one. Messages that
	// fail authentication come back with the undecryptable placeholder
	// rather than an error.
	Receive(ctx context.Context, limit int) ([]domaintypes.InboxMessage, error)
}
