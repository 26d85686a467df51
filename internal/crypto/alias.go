package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"veil/internal/domain"
)

// aliasAlphabet is the 37-symbol set aliases draw from: uppercase letters and
// digits minus the visually ambiguous I, O, 0 and 1, plus five symbol
// characters. 12 symbols over 37 values carries about 62 bits, enough for
// human-initiated pairing; the alias is a discovery label, not a secret.
const aliasAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789#$%&@"

const (
	aliasSymbols   = 12
	aliasGroupSize = 4
	aliasSeparator = '-'
)

// DeriveAlias maps a signing public key to its alias. It is a pure function
// of the key: recomputing always reproduces the same value.
func DeriveAlias(pub domain.SigningPublicKey) domain.Alias {
	sum := sha256.Sum256(pub.Slice())

	var b strings.Builder
	b.Grow(aliasSymbols + aliasSymbols/aliasGroupSize - 1)
	for i := 0; i < aliasSymbols; i++ {
		if i > 0 && i%aliasGroupSize == 0 {
			b.WriteByte(aliasSeparator)
		}
		b.WriteByte(aliasAlphabet[int(sum[i])%len(aliasAlphabet)])
	}
	return domain.Alias(b.String())
}

// ValidateAlias checks the XXXX-XXXX-XXXX shape against the alias alphabet.
// Lowercase input, missing separators and out-of-alphabet symbols are all
// rejected; aliases are matched exactly, never normalised.
func ValidateAlias(a domain.Alias) error {
	s := a.String()
	if len(s) != aliasSymbols+aliasSymbols/aliasGroupSize-1 {
		return fmt.Errorf("%w: alias must be %d characters in XXXX-XXXX-XXXX form", domain.ErrValidation, aliasSymbols+2)
	}
	for i := 0; i < len(s); i++ {
		if (i+1)%(aliasGroupSize+1) == 0 {
			if s[i] != aliasSeparator {
				return fmt.Errorf("%w: alias groups must be separated by %q", domain.ErrValidation, string(aliasSeparator))
			}
			continue
		}
		if strings.IndexByte(aliasAlphabet, s[i]) < 0 {
			return fmt.Errorf("%w: alias contains character outside the alias alphabet", domain.ErrValidation)
		}
	}
	return nil
}
