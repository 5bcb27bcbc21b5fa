package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/otcheredev/hms-console/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Recovery turns a handler panic into a 500 page and a logged stack.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := routePattern(r)
			metrics.Panics.WithLabelValues(route).Inc()
			log.Error().
				Interface("panic", rec).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", route).
				Bytes("stack", debug.Stack()).
				Msg("Handler panicked")

			http.Error(w, "Something went wrong. Please go back and try again.", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// routePattern keeps the metric label set bounded: /admin/doctors/{id}, not /admin/doctors/42
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
