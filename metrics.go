package pipes

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and the histogram a Client exposes about the
// running graph. A nil *Metrics is valid and every method on it is a
// no-op, so instrumentation can be wired in only where a host actually
// runs a /metrics endpoint.
type Metrics struct {
	blocksProcessed prometheus.Counter
	blocksSkipped   prometheus.Counter
	framesDropped   prometheus.Counter
	callbackLatency prometheus.Histogram
}

// NewMetrics registers a Metrics set's collectors with reg and returns
// it. Passing prometheus.NewRegistry() isolates the graph's metrics
// from anything else in the host process; passing
// prometheus.DefaultRegisterer shares the host's default registry.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		blocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_processed_total",
			Help:      "Internal processing blocks rendered by the graph.",
		}),
		blocksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_skipped_total",
			Help:      "Internal processing blocks that skipped work because no sink needed output.",
		}),
		framesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Audio callbacks rejected because their frame count did not match the configured buffer size.",
		}),
		callbackLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "callback_latency_seconds",
			Help:      "Wall-clock time spent inside a single audio callback invocation.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16),
		}),
	}
	reg.MustRegister(m.blocksProcessed, m.blocksSkipped, m.framesDropped, m.callbackLatency)
	return m
}

func (m *Metrics) recordProcessed() {
	if m == nil {
		return
	}
	m.blocksProcessed.Inc()
}

func (m *Metrics) recordSkipped() {
	if m == nil {
		return
	}
	m.blocksSkipped.Inc()
}

func (m *Metrics) recordDropped() {
	if m == nil {
		return
	}
	m.framesDropped.Inc()
}

func (m *Metrics) observeCallback(seconds float64) {
	if m == nil {
		return
	}
	m.callbackLatency.Observe(seconds)
}
