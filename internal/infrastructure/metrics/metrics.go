package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "memeswap"

// Outcome labels for provider requests
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector records provider traffic and selection outcomes
type Collector struct {
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	selections       *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is what tests want.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Requests sent to the market-data provider.",
		}, []string{"resource", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of market-data provider requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_selections_total",
			Help:      "Token selections by outcome.",
		}, []string{"outcome"}),
	}

	if reg != nil {
		reg.MustRegister(c.providerRequests, c.providerDuration, c.selections)
	}
	return c
}

// ObserveProviderRequest records one provider call
func (c *Collector) ObserveProviderRequest(resource string, started time.Time, err error) {
	if c == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.providerRequests.WithLabelValues(resource, outcome).Inc()
	c.providerDuration.WithLabelValues(resource).Observe(time.Since(started).Seconds())
}

// ObserveSelection records the outcome of a token selection
func (c *Collector) ObserveSelection(outcome string) {
	if c == nil {
		return
	}
	c.selections.WithLabelValues(outcome).Inc()
}

