package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"

	"veil/internal/domain"
)

// The recovery mnemonic is a simplified backup display scheme over the BIP-39
// English wordlist. It is deliberately NOT invertible: MnemonicToSeed derives
// fresh key material from the phrase, it does not reconstruct the entropy that
// produced the words. Restoring therefore replaces the identity rather than
// recovering the old one.

const mnemonicWords = 12

var (
	wordIndexOnce sync.Once
	wordIndex     map[string]int
)

func mnemonicWordIndex() map[string]int {
	wordIndexOnce.Do(func() {
		list := bip39.GetWordList()
		wordIndex = make(map[string]int, len(list))
		for i, w := range list {
			wordIndex[w] = i
		}
	})
	return wordIndex
}

// EntropyToMnemonic maps a 16-byte seed to 12 words. The mapping mixes pairs
// of seed bytes with a checksum byte from SHA-256(seed), so the phrase is a
// stable, reproducible function of the seed.
func EntropyToMnemonic(seed [16]byte) []string {
	list := bip39.GetWordList()
	checksum := sha256.Sum256(seed[:])

	words := make([]string, mnemonicWords)
	for i := 0; i < mnemonicWords; i++ {
		hi := uint16(seed[i])
		lo := uint16(seed[(i+5)%len(seed)])
		idx := ((hi << 3) ^ lo ^ uint16(checksum[0])) % uint16(len(list))
		words[i] = list[idx]
	}
	return words
}

// ValidateMnemonic checks that the phrase is exactly 12 entries, each present
// in the wordlist.
func ValidateMnemonic(words []string) error {
	if len(words) != mnemonicWords {
		return fmt.Errorf("%w: recovery phrase must be exactly %d words", domain.ErrValidation, mnemonicWords)
	}
	index := mnemonicWordIndex()
	for _, w := range words {
		if _, ok := index[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return fmt.Errorf("%w: %q is not a recovery word", domain.ErrValidation, w)
		}
	}
	return nil
}

// MnemonicToSeed hashes the joined phrase twice into 32 bytes of derivation
// material. This is a derivation aid for building a replacement identity, not
// an inverse of EntropyToMnemonic.
func MnemonicToSeed(words []string) [32]byte {
	joined := strings.ToLower(strings.Join(words, " "))
	first := sha256.Sum256([]byte(joined))
	return sha256.Sum256(first[:])
}
