// Package metrics exposes a Prometheus-compatible metrics endpoint backed by
// VictoriaMetrics. Components register counters and gauges through the
// package-level helpers and one MetricsServer serves them all on /metrics.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

// MetricsServer serves the process metrics set on a dedicated listener.
type MetricsServer struct {
	appName string
	srv     *http.Server
}

// New creates a metrics server for the given application. An empty address
// disables serving; the returned server's ListenAndServe is then a no-op.
func New(appName, addr string) (*MetricsServer, error) {
	if appName == "" {
		return nil, fmt.Errorf("app name must not be empty")
	}

	s := &MetricsServer{appName: appName}
	if addr == "" {
		return s, nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s, nil
}

// ListenAndServe blocks serving metrics until Shutdown or failure.
func (s *MetricsServer) ListenAndServe() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics listener.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Counter returns the named counter, creating it on first use.
func Counter(name string) *metrics.Counter {
	return metrics.GetOrCreateCounter(name)
}

// Gauge returns the named gauge reading from f, creating it on first use.
func Gauge(name string, f func() float64) *metrics.Gauge {
	return metrics.GetOrCreateGauge(name, f)
}
