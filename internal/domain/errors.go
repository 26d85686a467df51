package domain

import "errors"

// Error taxonomy shared across services, stores and the relay boundary.
//
// Authentication and decryption failures are deterministic for a given input
// and must never be retried automatically; storage failures are retryable
// because the sealing and accept operations are idempotent.
var (
	// ErrValidation marks malformed input: a bad alias, an empty passphrase,
	// a message of the wrong shape.
	ErrValidation = errors.New("validation failed")

	// ErrAuthenticationFailed is returned when unsealing fails. A wrong
	// passphrase and a tampered ciphertext are deliberately indistinguishable.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrDecryptionFailed is returned when a message AEAD tag does not verify.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrPeerNotReady means the peer has not published its encryption key yet.
	// The condition clears once the peer publishes; callers may retry.
	ErrPeerNotReady = errors.New("peer has not published an encryption key")

	// ErrAliasNotFound means no identity with that alias is published.
	ErrAliasNotFound = errors.New("alias not found")

	// ErrHandshakeNotFound means the relay has no handshake with that id.
	ErrHandshakeNotFound = errors.New("handshake not found")

	// ErrHandshakeNotPending means the handshake is in a terminal state.
	ErrHandshakeNotPending = errors.New("handshake is not pending")

	// ErrHandshakeExpired means the handshake's validity window has passed.
	ErrHandshakeExpired = errors.New("handshake expired")

	// ErrUnauthorized means the caller is not the party a handshake targets.
	ErrUnauthorized = errors.New("not authorized for this handshake")

	// ErrStorageUnavailable wraps relay transport failures. Retryable.
	ErrStorageUnavailable = errors.New("relay storage unavailable")

	// ErrNoIdentity means no local identity exists yet.
	ErrNoIdentity = errors.New("no identity; run init first")
)
