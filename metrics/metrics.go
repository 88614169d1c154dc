// Package metrics provides Prometheus metrics for the DokuWiki client.
// It tracks RPC call counts, latencies, fault rates, and the benign
// faults the invocation layer recovers into empty results.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "dokuwiki_client"
)

var (
	// RPCRequestsTotal counts RPC calls by command and status
	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rpc_requests_total",
		Help:      "Total number of RPC calls by command and status",
	}, []string{"command", "status"})

	// RPCRequestDuration measures RPC call latency distribution
	RPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "rpc_request_duration_seconds",
		Help:      "RPC call latency distribution by command",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"command"})

	// RPCFaults counts remote faults by fault code
	RPCFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rpc_faults_total",
		Help:      "Remote faults surfaced as errors, by fault code",
	}, []string{"code"})

	// RPCFaultsRecovered counts faults reinterpreted as benign results
	RPCFaultsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rpc_faults_recovered_total",
		Help:      "Faults reinterpreted as empty results or write acknowledgements",
	}, []string{"kind"})

	// AuthFailures counts authentication failures
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// MediaTransferBytes tracks media payload sizes
	MediaTransferBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "media_transfer_bytes",
		Help:      "Media payload size distribution in bytes",
		Buckets:   []float64{1000, 10000, 100000, 1000000, 10000000},
	}, []string{"direction"})
)

// RecordCall records a completed RPC call with its duration and status
func RecordCall(command string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RPCRequestsTotal.WithLabelValues(command, status).Inc()
	RPCRequestDuration.WithLabelValues(command).Observe(duration)
}

// RecordFault records a remote fault that surfaced as an error
func RecordFault(code int) {
	RPCFaults.WithLabelValues(strconv.Itoa(code)).Inc()
}

// RecordRecovered records a fault reinterpreted as a benign result
func RecordRecovered(kind string) {
	RPCFaultsRecovered.WithLabelValues(kind).Inc()
}

// RecordAuthFailure records a rejected authentication attempt
func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}

// RecordTransfer records a media payload size
func RecordTransfer(direction string, bytes int) {
	MediaTransferBytes.WithLabelValues(direction).Observe(float64(bytes))
}
