package relayserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts relay activity. Counters only carry volumes, never aliases,
// ids or payload sizes tied to a user.
type Metrics struct {
	Requests           *prometheus.CounterVec
	HandshakesCreated  prometheus.Counter
	HandshakesAccepted prometheus.Counter
	HandshakesRejected prometheus.Counter
	MessagesRelayed    prometheus.Counter
	RecordsSwept       prometheus.Counter
	RateLimited        prometheus.Counter
}

// NewMetrics registers the relay's collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "veil_relay_requests_total",
			Help: "HTTP requests handled, by route and status class.",
		}, []string{"route", "status"}),
		HandshakesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_handshakes_created_total",
			Help: "Handshakes created.",
		}),
		HandshakesAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_handshakes_accepted_total",
			Help: "Handshakes accepted.",
		}),
		HandshakesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_handshakes_rejected_total",
			Help: "Handshakes rejected.",
		}),
		MessagesRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_messages_total",
			Help: "Encrypted messages accepted for delivery.",
		}),
		RecordsSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_records_swept_total",
			Help: "Expired records removed by the cleanup sweep.",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "veil_relay_rate_limited_total",
			Help: "Requests refused by the per-client rate limit.",
		}),
	}
}
