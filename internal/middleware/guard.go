package middleware

import (
	"net/http"

	"github.com/otcheredev/hms-console/internal/metrics"
	"github.com/otcheredev/hms-console/internal/shell"
	"github.com/rs/zerolog/log"
)

// Guard mounts the request's shell on the requested path and sends
// unauthenticated visitors of protected pages back to the home page.
// It must run after Session.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sh, ok := shell.FromContext(r.Context())
		if !ok {
			log.Error().Str("path", r.URL.Path).Msg("Guard used without session middleware")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if target, redirected := sh.Mount(r.URL.Path); redirected {
			metrics.GuardRedirects.Inc()
			log.Debug().Str("path", r.URL.Path).Str("target", target).Msg("Unauthenticated access redirected")
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
