// Package api exposes the settlement engine over HTTP.
package api

import (
	"net/http"
	"time"

	"fjacquet/debtsolver/internal/container"
	"fjacquet/debtsolver/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(c *container.Container) http.Handler {
	server := c.GetConfig().Server
	h := &Handlers{
		solver:          c.GetSolver(),
		logger:          c.GetLogger(),
		currency:        c.DefaultCurrency(),
		maxBodyBytes:    server.MaxBodyBytes,
		maxGroupSize:    server.MaxGroupSize,
		maxCombinations: server.MaxCombinations,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/settle", h.Settle)
		r.Post("/balances", h.Balances)
	})

	return r
}

// requestLogger logs one line per request through the application logger.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("Handled request",
				logging.F(logging.FieldMethod, r.Method),
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldStatus, ww.Status()),
				logging.F(logging.FieldRequestID, middleware.GetReqID(r.Context())),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		})
	}
}
