package prometheus

import (
	promclient "github.com/prometheus/client_golang/prometheus"
)

const namespace = "linkstore"

// Lookup operations and outcomes used as label values.
const (
	OpResolve = "resolve"
	OpStats   = "stats"

	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	linksCreated    promclient.Counter
	shortenRejected promclient.Counter
	lookups         *promclient.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg promclient.Registerer) *Metrics {
	m := &Metrics{
		linksCreated: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Number of links stored.",
		}),
		shortenRejected: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "shorten_rejected_total",
			Help:      "Number of shorten requests rejected by URL validation.",
		}),
		lookups: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Link lookups by operation and result.",
		}, []string{"operation", "result"}),
	}

	if reg != nil {
		reg.MustRegister(m.linksCreated, m.shortenRejected, m.lookups)
	}
	return m
}

// LinkCreated counts one stored link.
func (m *Metrics) LinkCreated() {
	if m == nil {
		return
	}
	m.linksCreated.Inc()
}

// ShortenRejected counts one create refused by URL validation.
func (m *Metrics) ShortenRejected() {
	if m == nil {
		return
	}
	m.shortenRejected.Inc()
}

// Lookup records one resolve or stats read.
func (m *Metrics) Lookup(operation, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(operation, result).Inc()
}
