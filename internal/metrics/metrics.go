// Package metrics wires the bridge's instrumentation through
// prometheus/client_golang. Scraping is the caller's concern, same as
// the RDP stack itself; this package only constructs and updates the
// registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters and gauges the session bridge updates
// across its capture/encode/transmit pipeline and the printer relay.
type Metrics struct {
	FramesEncoded   *prometheus.CounterVec
	FramesDropped   prometheus.Counter
	EncodeFailures  *prometheus.CounterVec
	PrintjobsActive prometheus.Gauge
}

// New registers and returns the bridge's metrics against reg. Pass
// prometheus.NewRegistry() in tests so that several calls to New in
// one test binary do not register duplicate collectors on the default
// global registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frames_encoded_total",
			Help: "Total image frames successfully encoded, by format.",
		}, []string{"format"}),
		FramesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frames_dropped_total",
			Help: "Total region frames dropped by the rate controller.",
		}),
		EncodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "encode_failures_total",
			Help: "Total encoder failures, by format.",
		}, []string{"format"}),
		PrintjobsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "printjobs_active",
			Help: "Number of printers with a currently open print job.",
		}),
	}

	reg.MustRegister(m.FramesEncoded, m.FramesDropped, m.EncodeFailures, m.PrintjobsActive)
	return m
}
