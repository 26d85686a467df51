// Package commands defines the veil CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init        Create the local identity and publish its public record
//   - whoami      Print your alias and key code
//   - rotate      Replace the identity with a fresh one
//   - pair        Open a handshake toward a peer's alias
//   - handshakes  List incoming pending handshakes
//   - accept      Accept a handshake and establish a contact
//   - reject      Decline a handshake
//   - contacts    List established contacts
//   - send        Encrypt and send a message to a contact
//   - recv        Fetch and decrypt queued messages
//   - backup      Print the recovery phrase
//   - restore     Derive a replacement identity from a recovery phrase
//   - shred       Destroy the local identity
//
// # Implementation
//
// The root command resolves configuration (flags over ~/.veil/config.yaml)
// and builds the dependency graph (store, services, relay client) before any
// subcommand runs, so handlers share one app context.
package commands
