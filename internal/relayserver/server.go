package relayserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veil/internal/domain"
)

// Server exposes the relay's HTTP API over a MemoryStore.
type Server struct {
	store   *MemoryStore
	log     *slog.Logger
	metrics *Metrics
	limiter *clientLimiter
	mux     *http.ServeMux
}

// Options tunes a Server.
type Options struct {
	// RateRPS and RateBurst bound requests per client address; zero disables.
	RateRPS   float64
	RateBurst int
	// Registry receives the relay metrics; nil uses the default registry.
	Registry *prometheus.Registry
}

// New builds a Server around store.
func New(store *MemoryStore, log *slog.Logger, opts Options) *Server {
	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	metricsHandler := promhttp.Handler()
	if opts.Registry != nil {
		reg = opts.Registry
		metricsHandler = promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})
	}

	s := &Server{
		store:   store,
		log:     log,
		metrics: NewMetrics(reg),
		limiter: newClientLimiter(opts.RateRPS, opts.RateBurst),
		mux:     http.NewServeMux(),
	}

	s.route("POST /identities", s.handlePublishIdentity)
	s.route("GET /identities/alias/{alias}", s.handleIdentityByAlias)
	s.route("GET /identities/{id}", s.handleIdentityByID)
	s.route("POST /handshakes", s.handleCreateHandshake)
	s.route("GET /handshakes", s.handleIncomingHandshakes)
	s.route("GET /handshakes/{id}", s.handleGetHandshake)
	s.route("POST /handshakes/{id}/accept", s.handleAcceptHandshake)
	s.route("POST /handshakes/{id}/reject", s.handleRejectHandshake)
	s.route("GET /contacts", s.handleContacts)
	s.route("POST /messages", s.handleSendMessage)
	s.route("GET /messages", s.handleFetchMessages)
	s.route("POST /messages/ack", s.handleAckMessages)
	s.mux.Handle("GET /metrics", metricsHandler)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// route wraps a handler with rate limiting, logging and request counting.
func (s *Server) route(pattern string, h func(http.ResponseWriter, *http.Request) (int, error)) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientKey(r), time.Now()) {
			s.metrics.RateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}

		status, err := h(w, r)
		if err != nil {
			status = writeDomainError(w, err)
		}
		s.metrics.Requests.WithLabelValues(pattern, strconv.Itoa(status/100*100)).Inc()
		s.log.Info("request",
			slog.String("route", pattern),
			slog.Int("status", status),
		)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code})
}

// writeDomainError maps the error taxonomy onto HTTP statuses and stable
// error codes the client translates back.
func writeDomainError(w http.ResponseWriter, err error) int {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrAliasNotFound):
		status, code = http.StatusNotFound, "alias_not_found"
	case errors.Is(err, domain.ErrHandshakeNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrHandshakeExpired):
		status, code = http.StatusGone, "expired"
	case errors.Is(err, domain.ErrHandshakeNotPending):
		status, code = http.StatusConflict, "not_pending"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = http.StatusForbidden, "unauthorized"
	case errors.Is(err, domain.ErrPeerNotReady):
		status, code = http.StatusConflict, "peer_not_ready"
	default:
		status, code = http.StatusInternalServerError, "internal"
	}
	writeError(w, status, code)
	return status
}

func writeJSON(w http.ResponseWriter, status int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return status
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.ErrValidation
	}
	return nil
}

// ---------- identities ----------

func (s *Server) handlePublishIdentity(w http.ResponseWriter, r *http.Request) (int, error) {
	var rec domain.IdentityRecord
	if err := decodeBody(r, &rec); err != nil {
		return 0, err
	}
	if err := s.store.PublishIdentity(rec); err != nil {
		return 0, err
	}
	return writeJSON(w, http.StatusOK, rec), nil
}

func (s *Server) handleIdentityByAlias(w http.ResponseWriter, r *http.Request) (int, error) {
	rec, err := s.store.IdentityByAlias(domain.Alias(r.PathValue("alias")))
	if err != nil {
		return 0, err
	}
	return writeJSON(w, http.StatusOK, rec), nil
}

func (s *Server) handleIdentityByID(w http.ResponseWriter, r *http.Request) (int, error) {
	rec, err := s.store.IdentityByID(domain.IdentityID(r.PathValue("id")))
	if err != nil {
		return 0, err
	}
	return writeJSON(w, http.StatusOK, rec), nil
}

// ---------- handshakes ----------

type createHandshakeRequest struct {
	InitiatorID domain.IdentityID `json:"initiator_id"`
	TargetAlias domain.Alias      `json:"target_alias"`
	TTLSeconds  int64             `json:"ttl_seconds,omitempty"`
}

func (s *Server) handleCreateHandshake(w http.ResponseWriter, r *http.Request) (int, error) {
	var req createHandshakeRequest
	if err := decodeBody(r, &req); err != nil {
		return 0, err
	}
	rec, err := s.store.CreateHandshake(req.InitiatorID, req.TargetAlias, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return 0, err
	}
	s.metrics.HandshakesCreated.Inc()
	return writeJSON(w, http.StatusOK, rec), nil
}

func (s *Server) handleGetHandshake(w http.ResponseWriter, r *http.Request) (int, error) {
	rec, err := s.store.Handshake(domain.HandshakeID(r.PathValue("id")))
	if err != nil {
		return 0, err
	}
	return writeJSON(w, http.StatusOK, rec), nil
}

func (s *Server) handleIncomingHandshakes(w http.ResponseWriter, r *http.Request) (int, error) {
	target := domain.Alias(r.URL.Query().Get("target"))
	if target == "" {
		return 0, domain.ErrValidation
	}
	recs := s.store.IncomingHandshakes(target)
	if recs == nil {
		recs = []domain.HandshakeRecord{}
	}
	return writeJSON(w, http.StatusOK, recs), nil
}

type acceptHandshakeRequest struct {
	CallerID           domain.IdentityID         `json:"caller_id"`
	SessionKeyMaterial domain.SessionKeyMaterial `json:"session_key_material"`
}

func (s *Server) handleAcceptHandshake(w http.ResponseWriter, r *http.Request) (int, error) {
	var req acceptHandshakeRequest
	if err := decodeBody(r, &req); err != nil {
		return 0, err
	}
	contact, err := s.store.AcceptHandshake(domain.HandshakeID(r.PathValue("id")), req.CallerID, req.SessionKeyMaterial)
	if err != nil {
		return 0, err
	}
	s.metrics.HandshakesAccepted.Inc()
	return writeJSON(w, http.StatusOK, contact), nil
}

type rejectHandshakeRequest struct {
	CallerID domain.IdentityID `json:"caller_id"`
}

func (s *Server) handleRejectHandshake(w http.ResponseWriter, r *http.Request) (int, error) {
	var req rejectHandshakeRequest
	if err := decodeBody(r, &req); err != nil {
		return 0, err
	}
	if err := s.store.RejectHandshake(domain.HandshakeID(r.PathValue("id")), req.CallerID); err != nil {
		return 0, err
	}
	s.metrics.HandshakesRejected.Inc()
	return writeJSON(w, http.StatusOK, struct{}{}), nil
}

// ---------- contacts ----------

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) (int, error) {
	owner := domain.IdentityID(r.URL.Query().Get("owner"))
	if owner == "" {
		return 0, domain.ErrValidation
	}
	recs := s.store.Contacts(owner)
	if recs == nil {
		recs = []domain.ContactRecord{}
	}
	return writeJSON(w, http.StatusOK, recs), nil
}

// ---------- messages ----------

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) (int, error) {
	var rec domain.MessageRecord
	if err := decodeBody(r, &rec); err != nil {
		return 0, err
	}
	stored, err := s.store.AppendMessage(rec)
	if err != nil {
		return 0, err
	}
	s.metrics.MessagesRelayed.Inc()
	return writeJSON(w, http.StatusOK, stored), nil
}

func (s *Server) handleFetchMessages(w http.ResponseWriter, r *http.Request) (int, error) {
	recipient := domain.IdentityID(r.URL.Query().Get("recipient"))
	if recipient == "" {
		return 0, domain.ErrValidation
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, domain.ErrValidation
		}
		limit = n
	}
	recs := s.store.MessagesFor(recipient, limit)
	if recs == nil {
		recs = []domain.MessageRecord{}
	}
	return writeJSON(w, http.StatusOK, recs), nil
}

type ackMessagesRequest struct {
	RecipientID domain.IdentityID `json:"recipient_id"`
	Count       int               `json:"count"`
}

func (s *Server) handleAckMessages(w http.ResponseWriter, r *http.Request) (int, error) {
	var req ackMessagesRequest
	if err := decodeBody(r, &req); err != nil {
		return 0, err
	}
	if req.Count < 0 {
		return 0, domain.ErrValidation
	}
	s.store.AckMessages(req.RecipientID, req.Count)
	return writeJSON(w, http.StatusOK, struct{}{}), nil
}

// RunSweeper deletes expired records every interval until stop is closed.
func (s *Server) RunSweeper(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				s.metrics.RecordsSwept.Add(float64(n))
				s.log.Info("sweep", slog.Int("removed", n))
			}
		}
	}
}
