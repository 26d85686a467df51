package domain

import (
	interfaces "veil/internal/domain/interfaces"
	types "veil/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Alias                = types.Alias
	IdentityID           = types.IdentityID
	HandshakeID          = types.HandshakeID
	ContactID            = types.ContactID
	MessageID            = types.MessageID
	KeyCode              = types.KeyCode
	Identity             = types.Identity
	IdentityRecord       = types.IdentityRecord
	SealedKeyMaterial    = types.SealedKeyMaterial
	HandshakeStatus      = types.HandshakeStatus
	HandshakeRecord      = types.HandshakeRecord
	ContactRecord        = types.ContactRecord
	MessageRecord        = types.MessageRecord
	InboxMessage         = types.InboxMessage
	EncryptionPublicKey  = types.EncryptionPublicKey
	EncryptionPrivateKey = types.EncryptionPrivateKey
	SigningPublicKey     = types.SigningPublicKey
	SigningPrivateKey    = types.SigningPrivateKey
	SessionKeyMaterial   = types.SessionKeyMaterial
)

// Handshake status values re-exported for compact use.
const (
	HandshakePending  = types.HandshakePending
	HandshakeAccepted = types.HandshakeAccepted
	HandshakeRejected = types.HandshakeRejected
	HandshakeExpired  = types.HandshakeExpired
)

// DefaultHandshakeTTL mirrors types.DefaultHandshakeTTL.
const DefaultHandshakeTTL = types.DefaultHandshakeTTL

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityStore    = interfaces.IdentityStore
	RelayClient      = interfaces.RelayClient
	IdentityService  = interfaces.IdentityService
	HandshakeService = interfaces.HandshakeService
	MessageService   = interfaces.MessageService
)
