// Package relay implements domain.RelayClient over the relay's HTTP API.
//
// Transport failures surface as domain.ErrStorageUnavailable so callers can
// retry; the relay's error codes are translated back into the same sentinel
// errors the server derived them from.
package relay
