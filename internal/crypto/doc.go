// Package crypto exposes the primitives veil is built on.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman agreement
//     (GenerateEncryptionKeyPair, Agree)
//   - Ed25519 key generation, signing and verification
//     (GenerateSigningKeyPair, Sign, Verify)
//   - Passphrase sealing of private key material with Argon2id and
//     ChaCha20-Poly1305 (Seal, Open)
//   - Deterministic alias derivation from a signing public key
//     (DeriveAlias, ValidateAlias)
//   - The simplified recovery mnemonic (EntropyToMnemonic, ValidateMnemonic,
//     MnemonicToSeed)
//   - Per-message symmetric encryption under a contact's session key
//     (EncryptMessage, DecryptMessage)
//   - Short base58 key codes for out-of-band comparison (DeriveKeyCode)
//
// # Notes
//
// All functions take and return the fixed-size key types defined in
// internal/domain to avoid accidental reallocations. Callers should treat
// returned secrets as sensitive and rely on memzero.Zero when practical to
// reduce lifetime in memory.
package crypto
