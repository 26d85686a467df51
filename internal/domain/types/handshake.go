package types

import "time"

// HandshakeStatus is the lifecycle state of a handshake. Pending is the only
// non-terminal state.
type HandshakeStatus string

const (
	HandshakePending  HandshakeStatus = "pending"
	HandshakeAccepted HandshakeStatus = "accepted"
	HandshakeRejected HandshakeStatus = "rejected"
	HandshakeExpired  HandshakeStatus = "expired"
)

// DefaultHandshakeTTL is the validity window applied when the initiator does
// not choose one.
const DefaultHandshakeTTL = time.Hour

// HandshakeRecord is the trust-establishment request stored on the relay.
type HandshakeRecord struct {
	ID          HandshakeID     `json:"id"`
	InitiatorID IdentityID      `json:"initiator_id"`
	TargetAlias Alias           `json:"target_alias"`
	Status      HandshakeStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// Expired reports whether the handshake's validity window has passed at now.
// A Pending record past its ExpiresAt must be treated as unacceptable even
// while its stored status still reads "pending".
func (h HandshakeRecord) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}

// ContactRecord is the mutual trust record produced by an accepted handshake.
// Exactly one exists per (owner, peer) pair per side, and both sides carry
// identical session key material.
type ContactRecord struct {
	ID                 ContactID          `json:"id"`
	OwnerID            IdentityID         `json:"owner_id"`
	PeerID             IdentityID         `json:"peer_id"`
	PeerAlias          Alias              `json:"peer_alias"`
	SessionKeyMaterial SessionKeyMaterial `json:"session_key_material"`
}
