// Package main runs the veil relay: the untrusted rendezvous that stores
// public identity records, brokers handshakes and queues encrypted messages
// until recipients fetch them.
//
// HTTP API
//
//	POST /identities
//	    Publish a public identity record. The alias and id must derive from
//	    the signing key; a present signature must verify.
//
//	GET /identities/alias/{alias}
//	GET /identities/{id}
//	    Resolve a published record.
//
//	POST /handshakes
//	    Open a pending handshake toward a target alias with a validity window.
//
//	GET /handshakes?target={alias}
//	GET /handshakes/{id}
//	    List incoming pending handshakes, or fetch one by id.
//
//	POST /handshakes/{id}/accept
//	    Atomic accept: verify the caller is the target, flip the status and
//	    write both contact rows in one step. Idempotent once accepted.
//
//	POST /handshakes/{id}/reject
//	    Decline a pending handshake.
//
//	GET /contacts?owner={id}
//	    List the owner's contact rows.
//
//	POST /messages
//	GET /messages?recipient={id}&limit=N
//	POST /messages/ack
//	    Queue, fetch and acknowledge encrypted messages. Messages stay queued
//	    until acked or swept after their TTL.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a stable error code.
//   - Requests are rate limited per client address.
//   - Prometheus metrics are served on /metrics, liveness on /healthz.
//   - A background sweeper removes expired messages and pending handshakes.
//
// The relay never sees plaintext or private keys; it stores only public
// records and ciphertext.
package main
