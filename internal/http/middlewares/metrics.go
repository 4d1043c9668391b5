package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comandas/internal/metrics"
)

// WithMetrics registra contadores, latencia y requests en vuelo.
// Usa el patrón de ruta de chi (ej. /admin/employee/{id}) como label para
// mantener baja la cardinalidad; queda disponible después del dispatch.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.IncInflight(r.Method)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			metrics.DecInflight(r.Method)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					path = p
				}
			}
			metrics.ObserveRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
