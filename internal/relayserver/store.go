package relayserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"veil/internal/crypto"
	"veil/internal/domain"
)

// MemoryStore holds all relay records. Every mutating operation runs under
// one lock, which is what makes AcceptHandshake's compare-and-swap atomic.
type MemoryStore struct {
	mu sync.Mutex

	identitiesByAlias map[domain.Alias]domain.IdentityRecord
	identitiesByID    map[domain.IdentityID]domain.IdentityRecord
	handshakes        map[domain.HandshakeID]domain.HandshakeRecord
	contacts          map[string]domain.ContactRecord
	messages          map[domain.IdentityID][]domain.MessageRecord

	messageTTL time.Duration
	now        func() time.Time
}

// NewMemoryStore returns an empty store. messageTTL bounds how long queued
// messages survive before the sweep removes them.
func NewMemoryStore(messageTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		identitiesByAlias: make(map[domain.Alias]domain.IdentityRecord),
		identitiesByID:    make(map[domain.IdentityID]domain.IdentityRecord),
		handshakes:        make(map[domain.HandshakeID]domain.HandshakeRecord),
		contacts:          make(map[string]domain.ContactRecord),
		messages:          make(map[domain.IdentityID][]domain.MessageRecord),
		messageTTL:        messageTTL,
		now:               time.Now,
	}
}

// WithClock substitutes the time source. Test hook.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func contactKey(owner, peer domain.IdentityID) string {
	return fmt.Sprintf("%s|%s", owner, peer)
}

// PublishIdentity registers or updates a public identity record. The alias
// must be the one derived from the signing key, and when a signature is
// present it must verify over the record's public material.
func (s *MemoryStore) PublishIdentity(rec domain.IdentityRecord) error {
	if rec.Alias != crypto.DeriveAlias(rec.SigningPub) {
		return fmt.Errorf("%w: alias does not match signing key", domain.ErrValidation)
	}
	if rec.ID != crypto.DeriveIdentityID(rec.SigningPub) {
		return fmt.Errorf("%w: id does not match signing key", domain.ErrValidation)
	}
	if len(rec.Signature) > 0 && !crypto.Verify(rec.SigningPub, identitySigningBytes(rec), rec.Signature) {
		return fmt.Errorf("%w: identity record signature does not verify", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identitiesByAlias[rec.Alias] = rec
	s.identitiesByID[rec.ID] = rec
	return nil
}

// identitySigningBytes is the byte string an identity record signature covers.
func identitySigningBytes(rec domain.IdentityRecord) []byte {
	b := make([]byte, 0, len(rec.Alias)+64)
	b = append(b, rec.Alias...)
	b = append(b, rec.SigningPub.Slice()...)
	b = append(b, rec.EncryptionPub.Slice()...)
	return b
}

// IdentityByAlias resolves an alias.
func (s *MemoryStore) IdentityByAlias(alias domain.Alias) (domain.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.identitiesByAlias[alias]
	if !ok {
		return domain.IdentityRecord{}, domain.ErrAliasNotFound
	}
	return rec, nil
}

// IdentityByID resolves an identity id.
func (s *MemoryStore) IdentityByID(id domain.IdentityID) (domain.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.identitiesByID[id]
	if !ok {
		return domain.IdentityRecord{}, domain.ErrAliasNotFound
	}
	return rec, nil
}

// CreateHandshake stores a new pending handshake toward targetAlias.
func (s *MemoryStore) CreateHandshake(initiator domain.IdentityID, targetAlias domain.Alias, ttl time.Duration) (domain.HandshakeRecord, error) {
	if err := crypto.ValidateAlias(targetAlias); err != nil {
		return domain.HandshakeRecord{}, err
	}
	if ttl <= 0 {
		ttl = domain.DefaultHandshakeTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identitiesByID[initiator]; !ok {
		return domain.HandshakeRecord{}, fmt.Errorf("%w: unknown initiator", domain.ErrValidation)
	}

	now := s.now()
	rec := domain.HandshakeRecord{
		ID:          domain.HandshakeID(uuid.NewString()),
		InitiatorID: initiator,
		TargetAlias: targetAlias,
		Status:      domain.HandshakePending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	s.handshakes[rec.ID] = rec
	return rec, nil
}

// Handshake fetches a handshake by id.
func (s *MemoryStore) Handshake(id domain.HandshakeID) (domain.HandshakeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.handshakes[id]
	if !ok {
		return domain.HandshakeRecord{}, domain.ErrHandshakeNotFound
	}
	return rec, nil
}

// IncomingHandshakes lists still-valid pending handshakes targeting alias,
// oldest first.
func (s *MemoryStore) IncomingHandshakes(target domain.Alias) []domain.HandshakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []domain.HandshakeRecord
	for _, rec := range s.handshakes {
		if rec.TargetAlias == target && rec.Status == domain.HandshakePending && !rec.Expired(now) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// AcceptHandshake is the atomic accept: verify the caller is the target,
// compare-and-swap status from pending, insert both contact rows with the
// same session key material. All three effects happen under the lock or not
// at all; calling again on an accepted handshake returns the caller's
// existing contact row without duplicating anything.
func (s *MemoryStore) AcceptHandshake(
	id domain.HandshakeID,
	caller domain.IdentityID,
	material domain.SessionKeyMaterial,
) (domain.ContactRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.handshakes[id]
	if !ok {
		return domain.ContactRecord{}, domain.ErrHandshakeNotFound
	}
	callerRec, ok := s.identitiesByID[caller]
	if !ok || callerRec.Alias != rec.TargetAlias {
		return domain.ContactRecord{}, domain.ErrUnauthorized
	}

	if rec.Status == domain.HandshakeAccepted {
		existing, ok := s.contacts[contactKey(caller, rec.InitiatorID)]
		if !ok {
			return domain.ContactRecord{}, domain.ErrHandshakeNotPending
		}
		return existing, nil
	}
	if rec.Status != domain.HandshakePending {
		return domain.ContactRecord{}, domain.ErrHandshakeNotPending
	}
	if rec.Expired(s.now()) {
		return domain.ContactRecord{}, domain.ErrHandshakeExpired
	}

	initiatorRec, ok := s.identitiesByID[rec.InitiatorID]
	if !ok {
		return domain.ContactRecord{}, domain.ErrHandshakeNotFound
	}

	acceptorRow := domain.ContactRecord{
		ID:                 domain.ContactID(uuid.NewString()),
		OwnerID:            caller,
		PeerID:             rec.InitiatorID,
		PeerAlias:          initiatorRec.Alias,
		SessionKeyMaterial: material,
	}
	initiatorRow := domain.ContactRecord{
		ID:                 domain.ContactID(uuid.NewString()),
		OwnerID:            rec.InitiatorID,
		PeerID:             caller,
		PeerAlias:          callerRec.Alias,
		SessionKeyMaterial: material,
	}
	s.contacts[contactKey(caller, rec.InitiatorID)] = acceptorRow
	s.contacts[contactKey(rec.InitiatorID, caller)] = initiatorRow

	rec.Status = domain.HandshakeAccepted
	s.handshakes[id] = rec
	return acceptorRow, nil
}

// RejectHandshake transitions pending to rejected. No key material involved.
func (s *MemoryStore) RejectHandshake(id domain.HandshakeID, caller domain.IdentityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.handshakes[id]
	if !ok {
		return domain.ErrHandshakeNotFound
	}
	callerRec, ok := s.identitiesByID[caller]
	if !ok || callerRec.Alias != rec.TargetAlias {
		return domain.ErrUnauthorized
	}
	if rec.Status != domain.HandshakePending {
		return domain.ErrHandshakeNotPending
	}
	if rec.Expired(s.now()) {
		return domain.ErrHandshakeExpired
	}

	rec.Status = domain.HandshakeRejected
	s.handshakes[id] = rec
	return nil
}

// Contacts lists the owner's contact rows.
func (s *MemoryStore) Contacts(owner domain.IdentityID) []domain.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ContactRecord
	for _, c := range s.contacts {
		if c.OwnerID == owner {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeerAlias < out[j].PeerAlias })
	return out
}

// AppendMessage queues an encrypted message for its recipient. The sender
// must hold a contact row for the recipient and name it correctly.
func (s *MemoryStore) AppendMessage(rec domain.MessageRecord) (domain.MessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact, ok := s.contacts[contactKey(rec.SenderID, rec.RecipientID)]
	if !ok || contact.ID != rec.ContactID {
		return domain.MessageRecord{}, fmt.Errorf("%w: no contact between sender and recipient", domain.ErrValidation)
	}

	now := s.now()
	rec.ID = domain.MessageID(uuid.NewString())
	rec.CreatedAt = now
	rec.ExpiresAt = now.Add(s.messageTTL)
	s.messages[rec.RecipientID] = append(s.messages[rec.RecipientID], rec)
	return rec, nil
}

// MessagesFor returns up to limit queued messages for recipient, in arrival
// order. Messages stay queued until acked.
func (s *MemoryStore) MessagesFor(recipient domain.IdentityID, limit int) []domain.MessageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.messages[recipient]
	if limit <= 0 || limit > len(queue) {
		limit = len(queue)
	}
	out := make([]domain.MessageRecord, limit)
	copy(out, queue[:limit])
	return out
}

// AckMessages drops the first count queued messages for recipient.
func (s *MemoryStore) AckMessages(recipient domain.IdentityID, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.messages[recipient]
	if count >= len(queue) {
		delete(s.messages, recipient)
		return
	}
	s.messages[recipient] = queue[count:]
}

// Sweep deletes messages past their expiry and pending handshakes past
// theirs. Returns how many records were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for recipient, queue := range s.messages {
		kept := queue[:0]
		for _, m := range queue {
			if now.After(m.ExpiresAt) {
				removed++
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == 0 {
			delete(s.messages, recipient)
		} else {
			s.messages[recipient] = kept
		}
	}

	for id, h := range s.handshakes {
		if h.Status == domain.HandshakePending && h.Expired(now) {
			delete(s.handshakes, id)
			removed++
		}
	}
	return removed
}
