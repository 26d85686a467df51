package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"unicode"

	"veil/internal/crypto"
	"veil/internal/domain"
)

const minPassphraseLength = 12

// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
var ErrWeakPassphrase = fmt.Errorf(
	"%w: passphrase is too weak (must be at least %d characters and include upper, lower, "+
		"number, and symbol)",
	domain.ErrValidation, minPassphraseLength,
)

// Service manages the local identity lifecycle against a backing store and
// the relay.
//
// The identity contains:
//   - An Ed25519 key pair for signing (it signs the published record; the
//     alias is derived from its public half).
//   - An X25519 key pair for key agreement during handshakes.
//   - A recovery seed feeding the backup mnemonic.
type Service struct {
	store domain.IdentityStore
	relay domain.RelayClient
}

// New returns an identity service backed by the given store and relay.
func New(store domain.IdentityStore, relay domain.RelayClient) *Service {
	return &Service{store: store, relay: relay}
}

// Generate creates a fresh identity, seals it under the passphrase, persists
// it, and publishes the public record. The alias falls out of the signing
// key; there is nothing to choose.
func (s *Service) Generate(ctx context.Context, passphrase string) (domain.Identity, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.Identity{}, ErrWeakPassphrase
	}

	signingPriv, signingPub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		return domain.Identity{}, err
	}
	encPriv, encPub, err := crypto.GenerateEncryptionKeyPair()
	if err != nil {
		return domain.Identity{}, err
	}

	id := domain.Identity{
		Alias:          crypto.DeriveAlias(signingPub),
		SigningPub:     signingPub,
		SigningPriv:    signingPriv,
		EncryptionPub:  encPub,
		EncryptionPriv: encPriv,
	}
	if _, err := rand.Read(id.RecoverySeed[:]); err != nil {
		return domain.Identity{}, err
	}

	return s.commit(ctx, passphrase, id)
}

// commit persists and publishes an identity. Save happens first: a publish
// failure leaves a usable local identity that the next publish call repairs.
func (s *Service) commit(ctx context.Context, passphrase string, id domain.Identity) (domain.Identity, error) {
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, err
	}
	if err := s.relay.PublishIdentity(ctx, publicRecord(id)); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// publicRecord builds the signed public record for an identity.
func publicRecord(id domain.Identity) domain.IdentityRecord {
	rec := domain.IdentityRecord{
		ID:            crypto.DeriveIdentityID(id.SigningPub),
		Alias:         id.Alias,
		SigningPub:    id.SigningPub,
		EncryptionPub: id.EncryptionPub,
	}
	rec.Signature = crypto.Sign(id.SigningPriv, recordSigningBytes(rec))
	return rec
}

// recordSigningBytes mirrors what the relay verifies on publish.
func recordSigningBytes(rec domain.IdentityRecord) []byte {
	b := make([]byte, 0, len(rec.Alias)+64)
	b = append(b, rec.Alias...)
	b = append(b, rec.SigningPub.Slice()...)
	b = append(b, rec.EncryptionPub.Slice()...)
	return b
}

// Load unseals and returns the local identity.
func (s *Service) Load(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// Public returns the local identity's published shape without unsealing.
func (s *Service) Public() (domain.IdentityRecord, bool, error) {
	return s.store.LoadPublic()
}

// Rotate replaces the identity wholesale. The passphrase must open the
// current identity; partial edits are not a thing.
func (s *Service) Rotate(ctx context.Context, passphrase string) (domain.Identity, error) {
	if _, err := s.store.LoadIdentity(passphrase); err != nil {
		return domain.Identity{}, err
	}
	return s.Generate(ctx, passphrase)
}

// Shred wipes the local identity.
func (s *Service) Shred() error {
	return s.store.DeleteIdentity()
}

// BackupMnemonic returns the 12-word phrase for the sealed recovery seed.
func (s *Service) BackupMnemonic(passphrase string) ([]string, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return nil, err
	}
	return crypto.EntropyToMnemonic(id.RecoverySeed), nil
}

// RestoreFromMnemonic derives a replacement identity from the phrase. The
// derivation is deterministic in the phrase but unrelated to whatever
// identity the phrase was displayed for: prior contacts and messages stay
// unreadable. This is identity replacement, not account recovery.
func (s *Service) RestoreFromMnemonic(ctx context.Context, words []string, passphrase string) (domain.Identity, error) {
	if err := crypto.ValidateMnemonic(words); err != nil {
		return domain.Identity{}, err
	}
	if !isSecurePassphrase(passphrase) {
		return domain.Identity{}, ErrWeakPassphrase
	}

	seed := crypto.MnemonicToSeed(words)
	signingPriv, signingPub := crypto.SigningKeyPairFromSeed(seed)

	// The encryption pair is derived from a second hash of the seed so the
	// two keys never share bytes.
	encSeed := sha256.Sum256(append(seed[:], 'e'))
	encPriv, encPub := crypto.EncryptionKeyPairFromSeed(encSeed)

	id := domain.Identity{
		Alias:          crypto.DeriveAlias(signingPub),
		SigningPub:     signingPub,
		SigningPriv:    signingPriv,
		EncryptionPub:  encPub,
		EncryptionPriv: encPriv,
	}
	copy(id.RecoverySeed[:], seed[:16])

	return s.commit(ctx, passphrase, id)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	if len(passphrase) < minPassphraseLength {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
