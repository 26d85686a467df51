package app

import (
	"net/http"

	"veil/internal/domain"
	"veil/internal/relay"
	handshakesvc "veil/internal/services/handshake"
	identitysvc "veil/internal/services/identity"
	messagesvc "veil/internal/services/message"
	"veil/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Store      domain.IdentityStore
	Identity   domain.IdentityService
	Handshakes domain.HandshakeService
	Messages   domain.MessageService
	Relay      domain.RelayClient
	HTTP       *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	identityStore := store.NewIdentityFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rc := relay.NewHTTP(cfg.RelayURL, httpClient)

	return &Wire{
		Store:      identityStore,
		Identity:   identitysvc.New(identityStore, rc),
		Handshakes: handshakesvc.New(identityStore, rc),
		Messages:   messagesvc.New(identityStore, rc),
		Relay:      rc,
		HTTP:       httpClient,
	}, nil
}
