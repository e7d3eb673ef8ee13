// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Upstream metrics
	RPCCallLatency *prometheus.HistogramVec
	RPCRetries     *prometheus.CounterVec
	FetchErrors    *prometheus.CounterVec
	PartialTxs     prometheus.Counter

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	RiskScores       prometheus.Histogram
	ScanAddresses    prometheus.Histogram
	MultiHopNodes    prometheus.Histogram

	// Side effects
	AlertsPublished *prometheus.CounterVec
	AuditErrors     prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "wallet_forensics"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Upstream metrics
		RPCCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "rpc_call_duration_seconds",
			Help:      "Solana RPC call latency including retries",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "status"}),
		RPCRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "rpc_retries_total",
			Help:      "Total number of retried RPC attempts by method",
		}, []string{"method"}),
		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed wallet fetches by error class",
		}, []string{"operation", "class"}),
		PartialTxs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "partial_transactions_total",
			Help:      "Transactions kept with signature data only after detail fetch failed",
		}),

		// Cache metrics
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Fetch cache lookups by kind and result",
		}, []string{"kind", "result"}),

		// Analysis metrics
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "analyses_total",
			Help:      "Total number of analyses by operation and status",
		}, []string{"kind", "status"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "analysis_duration_seconds",
			Help:      "Analysis duration by operation",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"kind"}),
		RiskScores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores",
			Buckets:   []float64{0, 10, 20, 33, 50, 66, 80, 90, 100},
		}),
		ScanAddresses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "scan_addresses",
			Help:      "Number of addresses extracted per document scan",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		MultiHopNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "multihop_nodes",
			Help:      "Number of nodes reached per multi-hop expansion",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 200},
		}),

		// Side effects
		AlertsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "published_total",
			Help:      "Risk alerts published by sink and status",
		}, []string{"sink", "status"}),
		AuditErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "errors_total",
			Help:      "Analysis records that could not be stored",
		}),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordRPCCall records RPC call latency with its outcome.
func RecordRPCCall(method string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.RPCCallLatency.WithLabelValues(method, status).Observe(seconds)
}

// RecordRPCRetry increments the retry counter for method.
func RecordRPCRetry(method string) {
	DefaultMetrics.RPCRetries.WithLabelValues(method).Inc()
}

// RecordFetchError records a failed fetch by error class.
func RecordFetchError(operation, class string) {
	DefaultMetrics.FetchErrors.WithLabelValues(operation, class).Inc()
}

// RecordPartialTransaction counts a transaction degraded to signature data.
func RecordPartialTransaction() {
	DefaultMetrics.PartialTxs.Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	DefaultMetrics.CacheLookups.WithLabelValues(kind, result).Inc()
}

// RecordAnalysis records a completed engine operation.
func RecordAnalysis(kind, status string, durationSeconds float64) {
	DefaultMetrics.AnalysesTotal.WithLabelValues(kind, status).Inc()
	DefaultMetrics.AnalysisDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordRiskScore observes a computed risk score.
func RecordRiskScore(score int) {
	DefaultMetrics.RiskScores.Observe(float64(score))
}

// RecordScan observes the number of addresses found in a document.
func RecordScan(found int) {
	DefaultMetrics.ScanAddresses.Observe(float64(found))
}

// RecordMultiHop observes the number of nodes reached by an expansion.
func RecordMultiHop(nodes int) {
	DefaultMetrics.MultiHopNodes.Observe(float64(nodes))
}

// RecordAlert records an alert publish attempt.
func RecordAlert(sink string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.AlertsPublished.WithLabelValues(sink, status).Inc()
}

// RecordAuditError counts an audit record that failed to persist.
func RecordAuditError() {
	DefaultMetrics.AuditErrors.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
