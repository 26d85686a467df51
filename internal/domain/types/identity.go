package types

// Identity is the device-local aggregate: both long-term key pairs plus the
// alias derived from the signing public key.
//
// The private halves only ever exist in the clear inside a running operation;
// at rest they are held as SealedKeyMaterial under the owner's passphrase.
type Identity struct {
	Alias          Alias                `json:"alias"`
	SigningPub     SigningPublicKey     `json:"signing_pub"`
	SigningPriv    SigningPrivateKey    `json:"signing_priv"`
	EncryptionPub  EncryptionPublicKey  `json:"encryption_pub"`
	EncryptionPriv EncryptionPrivateKey `json:"encryption_priv"`

	// RecoverySeed feeds the backup mnemonic. Restoring from that mnemonic
	// produces a new identity, not this one; the seed is kept sealed anyway so
	// the phrase shown to the user stays stable across backup calls.
	RecoverySeed [16]byte `json:"recovery_seed"`
}

// SealedKeyMaterial is one passphrase-sealed secret. Every triple comes from
// exactly one sealing call; salt and nonce are fresh per call even for
// identical plaintext under the same passphrase.
type SealedKeyMaterial struct {
	CipherText []byte `json:"cipher_text"`
	Nonce      []byte `json:"nonce"`
	Salt       []byte `json:"salt"`
}

// IdentityRecord is the public identity shape published to the relay.
// EncryptionPub may be absent until the owner publishes it; peers attempting
// a handshake before then get a PeerNotReady condition.
type IdentityRecord struct {
	ID            IdentityID          `json:"id"`
	Alias         Alias               `json:"alias"`
	SigningPub    SigningPublicKey    `json:"signing_pub"`
	EncryptionPub EncryptionPublicKey `json:"encryption_pub,omitempty"`
	Signature     []byte              `json:"signature,omitempty"`
}
