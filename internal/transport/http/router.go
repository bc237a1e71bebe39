// Package httptransport assembles the public HTTP surface of the engine.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	matchinghandler "lifelink/internal/matching/handler"
	notificationhandler "lifelink/internal/notification/handler"
)

// NewRouter wires every handler plus the operational endpoints.
func NewRouter(matching *matchinghandler.Handler, inbox *notificationhandler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	matching.Register(r)
	inbox.Register(r)

	return r
}
