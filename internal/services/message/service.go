package message

import (
	"context"
	"fmt"

	"veil/internal/crypto"
	"veil/internal/domain"
)

// UndecryptablePlaceholder is what a message renders as when its AEAD tag
// does not verify. The message is delivered anyway; dropping it silently
// would hide tampering from the user.
const UndecryptablePlaceholder = "[undecryptable message]"

// Service encrypts outbound and decrypts inbound messages over the relay.
// Each call is handed all key material explicitly, so sends and receives for
// different peers can run concurrently with no shared mutable state.
type Service struct {
	store domain.IdentityStore
	relay domain.RelayClient
}

// New constructs a message service over the given store and relay.
func New(store domain.IdentityStore, relay domain.RelayClient) *Service {
	return &Service{store: store, relay: relay}
}

// Send encrypts plaintext under the session key shared with the contact
// behind the alias and posts it to the relay.
func (s *Service) Send(ctx context.Context, to domain.Alias, plaintext []byte) error {
	if err := crypto.ValidateAlias(to); err != nil {
		return err
	}
	if len(plaintext) == 0 {
		return fmt.Errorf("%w: empty message", domain.ErrValidation)
	}

	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoIdentity
	}

	contact, err := s.contactFor(ctx, me.ID, to)
	if err != nil {
		return err
	}

	ct, nonce, err := crypto.EncryptMessage(plaintext, contact.SessionKeyMaterial.Slice())
	if err != nil {
		return err
	}
	_, err = s.relay.SendMessage(ctx, domain.MessageRecord{
		SenderID:    me.ID,
		RecipientID: contact.PeerID,
		ContactID:   contact.ID,
		CipherText:  ct,
		Nonce:       nonce,
	})
	return err
}

// Receive fetches up to limit queued messages, decrypts each against the
// matching contact's session key and acks what it processed. A message that
// fails to decrypt comes back flagged with the placeholder text instead of
// aborting the batch.
func (s *Service) Receive(ctx context.Context, limit int) ([]domain.InboxMessage, error) {
	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoIdentity
	}

	records, err := s.relay.FetchMessages(ctx, me.ID, limit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	contacts, err := s.relay.Contacts(ctx, me.ID)
	if err != nil {
		return nil, err
	}
	byPeer := make(map[domain.IdentityID]domain.ContactRecord, len(contacts))
	for _, c := range contacts {
		byPeer[c.PeerID] = c
	}

	out := make([]domain.InboxMessage, 0, len(records))
	for _, rec := range records {
		msg := domain.InboxMessage{
			ID:       rec.ID,
			SenderID: rec.SenderID,
			SentAt:   rec.CreatedAt,
		}
		contact, known := byPeer[rec.SenderID]
		if known {
			msg.SenderAlias = contact.PeerAlias
		}

		var plaintext []byte
		if known {
			plaintext, err = crypto.DecryptMessage(rec.CipherText, rec.Nonce, contact.SessionKeyMaterial.Slice())
		}
		if !known || err != nil {
			// Unknown sender or tag mismatch: deliver the placeholder.
			msg.Undecryptable = true
			msg.Plaintext = []byte(UndecryptablePlaceholder)
			err = nil
		} else {
			msg.Plaintext = plaintext
		}
		out = append(out, msg)
	}

	if err := s.relay.AckMessages(ctx, me.ID, len(records)); err != nil {
		return nil, err
	}
	return out, nil
}

// contactFor finds the caller's contact row whose peer carries the alias.
func (s *Service) contactFor(ctx context.Context, owner domain.IdentityID, peer domain.Alias) (domain.ContactRecord, error) {
	contacts, err := s.relay.Contacts(ctx, owner)
	if err != nil {
		return domain.ContactRecord{}, err
	}
	for _, c := range contacts {
		if c.PeerAlias == peer {
			return c, nil
		}
	}
	return domain.ContactRecord{}, fmt.Errorf("%w: no contact with %s; complete a handshake first", domain.ErrValidation, peer)
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
