package types

import "time"

// MessageRecord is the encrypted message shape stored on and relayed by the
// relay. The relay never sees plaintext.
type MessageRecord struct {
	ID          MessageID  `json:"id"`
	SenderID    IdentityID `json:"sender_id"`
	RecipientID IdentityID `json:"recipient_id"`
	ContactID   ContactID  `json:"contact_id"`
	CipherText  []byte     `json:"cipher_text"`
	Nonce       []byte     `json:"nonce"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// InboxMessage is what the message service hands back after fetching and
// decrypting. When decryption fails the message is still delivered with
// Undecryptable set and Plaintext holding a fixed placeholder, never dropped.
type InboxMessage struct {
	ID            MessageID  `json:"id"`
	SenderID      IdentityID `json:"sender_id"`
	SenderAlias   Alias      `json:"sender_alias,omitempty"`
	Plaintext     []byte     `json:"plaintext"`
	Undecryptable bool       `json:"undecryptable,omitempty"`
	SentAt        time.Time  `json:"sent_at"`
}
