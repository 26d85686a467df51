package interfaces

import (
	"context"

	domaintypes "veil/internal/domain/types"
)

// RelayClient is how the core talks to the relay, which backs all shared
// records (identities, handshakes, contacts, messages). The relay only ever
// sees public keys, aliases and ciphertext.
type RelayClient interface {
	// PublishIdentity registers or updates the caller's public record.
	PublishIdentity(ctx context.Context, rec domaintypes.IdentityRecord) error

	// FetchIdentity resolves an alias to its published record.
	FetchIdentity(ctx context.Context, alias domaintypes.Alias) (domaintypes.IdentityRecord, error)

	// FetchIdentityByID resolves a published record by its identifier. Used by
	// an acceptor to obtain the initiator's encryption key.
	FetchIdentityByID(ctx context.Context, id domaintypes.IdentityID) (domaintypes.IdentityRecord, error)

	// CreateHandshake stores a new pending handshake; the relay assigns the id
	// and timestamps.
	CreateHandshake(ctx context.Context, rec domaintypes.HandshakeRecord) (domaintypes.HandshakeRecord, error)

	// GetHandshake fetches a handshake by id.
	GetHandshake(ctx context.Context, id domaintypes.HandshakeID) (domaintypes.HandshakeRecord, error)

	// IncomingHandshakes lists pending handshakes targeting the given alias.
	IncomingHandshakes(ctx context.Context, target domaintypes.Alias) ([]domaintypes.HandshakeRecord, error)

	// AcceptHandshake atomically inserts both contact rows with the given
	// session key material and marks the handshake accepted. The relay
	// verifies the caller is the handshake's target. Repeat calls on an
	// already-accepted handshake are no-ops returning the existing contact.
	AcceptHandshake(
		ctx context.Context,
		id domaintypes.HandshakeID,
		caller domaintypes.IdentityID,
		material domaintypes.SessionKeyMaterial,
	) (domaintypes.ContactRecord, error)

	// RejectHandshake transitions a pending handshake to rejected.
	RejectHandshake(ctx context.Context, id domaintypes.HandshakeID, caller domaintypes.IdentityID) error

	// Contacts lists the caller's contact rows.
	Contacts(ctx context.Context, owner domaintypes.IdentityID) ([]domaintypes.ContactRecord, error)

	// SendMessage stores an encrypted message for delivery; the relay assigns
	// the id and timestamps.
	SendMessage(ctx context.Context, rec domaintypes.MessageRecord) (domaintypes.MessageRecord, error)

	// FetchMessages returns up to limit queued messages for the recipient.
	FetchMessages(ctx context.Context, recipient domaintypes.IdentityID, limit int) ([]domaintypes.MessageRecord, error)

	// AckMessages removes the first count queued messages after processing.
	AckMessages(ctx context.Context, recipient domaintypes.IdentityID, count int) error
}
