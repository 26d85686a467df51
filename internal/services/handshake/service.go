package handshake

import (
	"context"
	"time"

	"veil/internal/crypto"
	"veil/internal/domain"
	"veil/internal/util/memzero"
)

// Service drives the handshake state machine from the local side.
//
// The relay owns the records and the atomic accept; this service supplies
// the cryptography around them:
//   - Create targets a peer's alias with a validity window.
//   - Accept unseals our encryption key, runs the key agreement against the
//     initiator's public key and hands the shared secret to the relay's
//     atomic accept.
//   - Reject declines without producing any key material.
type Service struct {
	store domain.IdentityStore
	relay domain.RelayClient
}

// New constructs a handshake service over the given store and relay.
func New(store domain.IdentityStore, relay domain.RelayClient) *Service {
	return &Service{store: store, relay: relay}
}

// Create opens a pending handshake toward target. A zero ttl uses the
// default window. The target's record must resolve first so a typo fails
// here rather than sitting unanswerable.
func (s *Service) Create(ctx context.Context, target domain.Alias, ttl time.Duration) (domain.HandshakeRecord, error) {
	if err := crypto.ValidateAlias(target); err != nil {
		return domain.HandshakeRecord{}, err
	}
	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return domain.HandshakeRecord{}, err
	}
	if !ok {
		return domain.HandshakeRecord{}, domain.ErrNoIdentity
	}
	if _, err := s.relay.FetchIdentity(ctx, target); err != nil {
		return domain.HandshakeRecord{}, err
	}

	if ttl <= 0 {
		ttl = domain.DefaultHandshakeTTL
	}
	rec := domain.HandshakeRecord{
		InitiatorID: me.ID,
		TargetAlias: target,
		ExpiresAt:   time.Now().Add(ttl),
	}
	return s.relay.CreateHandshake(ctx, rec)
}

// Accept performs the acceptor's half of trust establishment.
//
// The shared secret comes from agreement between our encryption private key
// and the initiator's encryption public key; the initiator later derives the
// identical value from its private key and our public key. The relay's
// accept call then writes both contact rows and flips the status in one
// atomic step, so a retried Accept converges on the same contact.
//
// Failure modes: a wrong passphrase surfaces ErrAuthenticationFailed and
// leaves the handshake pending and retriable; an initiator that has not
// published an encryption key surfaces ErrPeerNotReady, also retriable.
func (s *Service) Accept(ctx context.Context, passphrase string, id domain.HandshakeID) (domain.ContactRecord, error) {
	hs, err := s.relay.GetHandshake(ctx, id)
	if err != nil {
		return domain.ContactRecord{}, err
	}
	if hs.Status == domain.HandshakePending && hs.Expired(time.Now()) {
		return domain.ContactRecord{}, domain.ErrHandshakeExpired
	}

	initiator, err := s.relay.FetchIdentityByID(ctx, hs.InitiatorID)
	if err != nil {
		return domain.ContactRecord{}, err
	}
	if initiator.EncryptionPub.IsZero() {
		return domain.ContactRecord{}, domain.ErrPeerNotReady
	}

	// Unseal only for the duration of the agreement.
	me, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return domain.ContactRecord{}, err
	}
	material, err := crypto.Agree(me.EncryptionPriv, initiator.EncryptionPub)
	memzero.Zero(me.EncryptionPriv[:])
	memzero.Zero(me.SigningPriv[:])
	if err != nil {
		return domain.ContactRecord{}, err
	}

	myID := crypto.DeriveIdentityID(me.SigningPub)
	return s.relay.AcceptHandshake(ctx, id, myID, material)
}

// Reject declines a pending handshake. Requires no passphrase: nothing is
// unsealed and no key material exists afterwards.
func (s *Service) Reject(ctx context.Context, id domain.HandshakeID) error {
	hs, err := s.relay.GetHandshake(ctx, id)
	if err != nil {
		return err
	}
	if hs.Status == domain.HandshakePending && hs.Expired(time.Now()) {
		return domain.ErrHandshakeExpired
	}
	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoIdentity
	}
	return s.relay.RejectHandshake(ctx, id, me.ID)
}

// Incoming lists pending handshakes targeting the local alias.
func (s *Service) Incoming(ctx context.Context) ([]domain.HandshakeRecord, error) {
	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoIdentity
	}
	return s.relay.IncomingHandshakes(ctx, me.Alias)
}

// Contacts lists established contacts.
func (s *Service) Contacts(ctx context.Context) ([]domain.ContactRecord, error) {
	me, ok, err := s.store.LoadPublic()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoIdentity
	}
	return s.relay.Contacts(ctx, me.ID)
}

// Compile-time assertion that Service implements domain.HandshakeService.
var _ domain.HandshakeService = (*Service)(nil)
