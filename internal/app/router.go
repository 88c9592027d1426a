// Package app wires configuration, adapters, and services into the HTTP
// surface of the writing-stake service.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/zawlinnphyo/wordstake/internal/adapter/httpserver"
	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{"*"}
	}
	if s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(30 * time.Second))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/v1/words/validate", srv.ValidateWordsHandler())
		wr.Post("/v1/tasks", srv.CreateTaskHandler())
		wr.Post("/v1/tasks/{id}/activate", srv.ActivateTaskHandler())
		wr.Put("/v1/tasks/{id}/days/{day}/content", srv.SaveContentHandler())
		wr.Post("/v1/tasks/{id}/days/{day}/submit", srv.SubmitHandler())
		wr.Post("/v1/refunds", srv.CreateRefundHandler())
	})

	// Read-only endpoints
	r.Get("/v1/tasks/{id}/milestones", srv.MilestonesHandler())
	r.Get("/v1/tasks/{id}/days/{day}/evaluations", srv.EvaluationsHandler())
	r.Get("/v1/refunds/{id}", srv.RefundHandler())
	r.Get("/v1/users/{id}/refund-balance", srv.RefundBalanceHandler())

	// Review queue actions require operator credentials.
	if cfg.AdminEnabled() {
		r.Group(func(ar chi.Router) {
			ar.Use(httpserver.BasicAuth(cfg.AdminUsername, cfg.AdminPasswordHash))
			ar.Post("/v1/admin/refunds/{id}/approve", srv.ApproveRefundHandler())
			ar.Post("/v1/admin/refunds/{id}/reject", srv.RejectRefundHandler())
			ar.Post("/v1/admin/refunds/{id}/complete", srv.CompleteRefundHandler())
		})
	}

	// Health and metrics
	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	return httpserver.SecurityHeaders(r)
}
