// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type registry struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	chainCalls   *prometheus.CounterVec
	chainRetries *prometheus.CounterVec
}

var (
	once    sync.Once
	current *registry
)

func get() *registry {
	once.Do(func() {
		current = &registry{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "quoter",
				Name:      "requests_total",
				Help:      "Tool invocations by tool and outcome (ok or the error kind).",
			}, []string{"tool", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "quoter",
				Name:      "request_duration_seconds",
				Help:      "Tool invocation latency.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"tool"}),
			chainCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "quoter",
				Subsystem: "chain",
				Name:      "calls_total",
				Help:      "RPC calls issued to the node by method and outcome.",
			}, []string{"method", "outcome"}),
			chainRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "quoter",
				Subsystem: "chain",
				Name:      "retries_total",
				Help:      "RPC calls retried after a transport failure.",
			}, []string{"method"}),
		}
		prometheus.MustRegister(
			current.requests,
			current.duration,
			current.chainCalls,
			current.chainRetries,
		)
	})
	return current
}

// ObserveRequest records one tool invocation.
func ObserveRequest(tool string, outcome string, elapsed time.Duration) {
	r := get()
	r.requests.WithLabelValues(tool, outcome).Inc()
	r.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveChainCall records one RPC call.
func ObserveChainCall(method string, outcome string) {
	get().chainCalls.WithLabelValues(method, outcome).Inc()
}

// ObserveChainRetry records a retried RPC call.
func ObserveChainRetry(method string) {
	get().chainRetries.WithLabelValues(method).Inc()
}

// Handler serves the default registry in the exposition format.
func Handler() http.Handler {
	get()
	return promhttp.Handler()
}
