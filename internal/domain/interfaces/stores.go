package interfaces

import domaintypes "veil/internal/domain/types"

// IdentityStore persists the local identity. Private key halves are sealed
// under the passphrase before they touch disk; public halves and the alias
// are stored in the clear so they can be read without unsealing.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)

	// LoadPublic returns the public record (alias plus public keys) without
	// requiring the passphrase. ok is false when no identity exists.
	LoadPublic() (rec domaintypes.IdentityRecord, ok bool, err error)

	// DeleteIdentity shreds the stored identity file.
	DeleteIdentity() error
}
