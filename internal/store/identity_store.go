package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"veil/internal/crypto"
	"veil/internal/domain"
	"veil/internal/util/memzero"
)

const identityFilename = "identity.json"

// identityFile is the on-disk shape. Public material and the alias are plain;
// each private part is its own sealed triple, produced by its own sealing call.
type identityFile struct {
	Alias          domain.Alias             `json:"alias"`
	SigningPub     []byte                   `json:"signing_pub"`
	EncryptionPub  []byte                   `json:"encryption_pub"`
	SealedSigning  domain.SealedKeyMaterial `json:"sealed_signing"`
	SealedEncrypt  domain.SealedKeyMaterial `json:"sealed_encryption"`
	SealedRecovery domain.SealedKeyMaterial `json:"sealed_recovery_seed"`
}

// IdentityFileStore persists the local identity to disk.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir}
}

// SaveIdentity seals the private halves under the passphrase and writes the
// identity file. Replaces any previous identity wholesale.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealedSigning, err := crypto.Seal(id.SigningPriv.Slice(), passphrase)
	if err != nil {
		return err
	}
	sealedEncrypt, err := crypto.Seal(id.EncryptionPriv.Slice(), passphrase)
	if err != nil {
		return err
	}
	sealedRecovery, err := crypto.Seal(id.RecoverySeed[:], passphrase)
	if err != nil {
		return err
	}

	f := identityFile{
		Alias:          id.Alias,
		SigningPub:     id.SigningPub.Slice(),
		EncryptionPub:  id.EncryptionPub.Slice(),
		SealedSigning:  sealedSigning,
		SealedEncrypt:  sealedEncrypt,
		SealedRecovery: sealedRecovery,
	}
	return writeJSON(filepath.Join(s.dir, identityFilename), f, 0o600)
}

// LoadIdentity reads the identity file and unseals the private halves. The
// unsealed values live only in the returned Identity; callers keep them for
// the duration of their immediate use.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f identityFile
	found, err := readJSON(filepath.Join(s.dir, identityFilename), &f)
	if err != nil {
		return domain.Identity{}, err
	}
	if !found {
		return domain.Identity{}, domain.ErrNoIdentity
	}

	signingPriv, err := crypto.Open(f.SealedSigning, passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	defer memzero.Zero(signingPriv)
	encryptPriv, err := crypto.Open(f.SealedEncrypt, passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	defer memzero.Zero(encryptPriv)
	recoverySeed, err := crypto.Open(f.SealedRecovery, passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	defer memzero.Zero(recoverySeed)

	if len(signingPriv) != 64 || len(encryptPriv) != 32 || len(recoverySeed) != 16 {
		return domain.Identity{}, fmt.Errorf("%w: sealed key material has unexpected shape", domain.ErrAuthenticationFailed)
	}

	var id domain.Identity
	id.Alias = f.Alias
	copy(id.SigningPub[:], f.SigningPub)
	copy(id.EncryptionPub[:], f.EncryptionPub)
	copy(id.SigningPriv[:], signingPriv)
	copy(id.EncryptionPriv[:], encryptPriv)
	copy(id.RecoverySeed[:], recoverySeed)
	return id, nil
}

// LoadPublic returns the published record shape without touching sealed data.
func (s *IdentityFileStore) LoadPublic() (domain.IdentityRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f identityFile
	found, err := readJSON(filepath.Join(s.dir, identityFilename), &f)
	if err != nil || !found {
		return domain.IdentityRecord{}, false, err
	}

	var rec domain.IdentityRecord
	rec.Alias = f.Alias
	copy(rec.SigningPub[:], f.SigningPub)
	copy(rec.EncryptionPub[:], f.EncryptionPub)
	rec.ID = crypto.DeriveIdentityID(rec.SigningPub)
	return rec, true, nil
}

// DeleteIdentity overwrites the identity file before removing it.
func (s *IdentityFileStore) DeleteIdentity() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, identityFilename)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	// Best-effort scrub of the old bytes before unlinking.
	if err := os.WriteFile(path, make([]byte, info.Size()), 0o600); err != nil {
		return err
	}
	return os.Remove(path)
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
