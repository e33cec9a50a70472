package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "path", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one handled request.
func (m *HTTPMetrics) Observe(method, path string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// CheckoutMetrics counts payment session outcomes.
type CheckoutMetrics struct {
	submits   prometheus.Counter
	redirects prometheus.Counter
	failures  *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout counters on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	submits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_submits_total",
		Help: "Checkout session submissions.",
	})
	redirects := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_redirects_total",
		Help: "Checkout submissions that produced a redirect URL.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout submissions that failed.",
	}, []string{"reason"})
	reg.MustRegister(submits, redirects, failures)
	return &CheckoutMetrics{submits: submits, redirects: redirects, failures: failures}
}

// IncSubmit counts one submission attempt.
func (m *CheckoutMetrics) IncSubmit() {
	if m == nil || m.submits == nil {
		return
	}
	m.submits.Inc()
}

// IncRedirect counts one successful redirect hand-off.
func (m *CheckoutMetrics) IncRedirect() {
	if m == nil || m.redirects == nil {
		return
	}
	m.redirects.Inc()
}

// IncFailure counts one failed submission by reason.
func (m *CheckoutMetrics) IncFailure(reason string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}
