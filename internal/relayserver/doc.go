// Package relayserver is the reference relay: an in-memory store of published
// identities, handshakes, contacts and encrypted messages behind a small HTTP
// API. The relay never holds plaintext or private keys; session key material
// passes through only inside the atomic accept call that both contact rows
// are written by.
//
// The accept transition is the one cross-party operation: it compare-and-swaps
// the handshake status under the store lock so concurrent accept attempts
// converge on exactly one pair of contact rows. A periodic sweep deletes
// messages and pending handshakes past their expiry.
package relayserver
