package telemetry

import (
	"log/slog"
	"net/http"
)

// StartMetricsServer serves h on addr at /metrics. It blocks until the
// server stops.
func StartMetricsServer(addr string, h http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	slog.Info("Starting metrics server", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
