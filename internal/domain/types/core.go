package types

// Alias is the short human-shareable code derived from a signing public key,
// formatted as three dash-separated groups of four symbols (XXXX-XXXX-XXXX).
// It is a discovery label, not a secret.
type Alias string

// String returns the string form of the alias.
func (a Alias) String() string { return string(a) }

// IdentityID identifies a published identity record on the relay.
type IdentityID string

// String returns the string form of the identifier.
func (id IdentityID) String() string { return string(id) }

// HandshakeID identifies a handshake record on the relay.
type HandshakeID string

// String returns the string form of the identifier.
func (id HandshakeID) String() string { return string(id) }

// ContactID identifies a contact record on the relay.
type ContactID string

// String returns the string form of the identifier.
func (id ContactID) String() string { return string(id) }

// MessageID identifies a message record on the relay.
type MessageID string

// String returns the string form of the identifier.
func (id MessageID) String() string { return string(id) }

// KeyCode is a short base58 digest of a public key, shown to users for
// out-of-band verification.
type KeyCode string

// String returns the string form of the key code.
func (c KeyCode) String() string { return string(c) }
