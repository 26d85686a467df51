// Package store provides file-based persistence for veil's local state.
//
// Only the identity lives on this device: public halves and the alias in the
// clear, private halves passphrase-sealed. Shared records (handshakes,
// contacts, messages) live on the relay and are reached through
// domain.RelayClient instead. Writes go through a temp-file-then-rename so a
// crash never leaves a half-written identity behind.
package store
