package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-console/internal/cache"
	"github.com/otcheredev/hms-console/internal/session"
	"github.com/otcheredev/hms-console/internal/shell"
	"github.com/rs/zerolog/log"
)

// SessionOptions configures the session cookie
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session restores the browser's session from the cookie-named storage
// namespace and attaches a fresh shell to the request context. A missing
// or malformed cookie starts a new namespace, and a login moves the
// browser to a new one. Each authenticated request restarts the storage ttl.
func Session(c cache.Cache, opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionID(r, opts.CookieName)
			if id == "" {
				id = uuid.NewString()
				setSessionCookie(w, opts, id)
			}

			storage := session.NewCacheStorage(c, id, opts.TTL)
			sh, err := shell.New(r.Context(), id, session.NewStore(storage))
			if err != nil {
				log.Error().Err(err).Str("session_id", id).Msg("Failed to restore session")
				http.Error(w, "Session storage unavailable", http.StatusServiceUnavailable)
				return
			}
			sh.RenewOnLogin(func() (string, *session.Store) {
				fresh := uuid.NewString()
				setSessionCookie(w, opts, fresh)
				return fresh, session.NewStore(session.NewCacheStorage(c, fresh, opts.TTL))
			})
			if sh.Authenticated() {
				if err := storage.Touch(r.Context()); err != nil {
					log.Warn().Err(err).Str("session_id", id).Msg("Failed to extend session")
				}
			}

			next.ServeHTTP(w, r.WithContext(shell.WithShell(r.Context(), sh)))
		})
	}
}

// setSessionCookie replaces any session cookie already set on w
func setSessionCookie(w http.ResponseWriter, opts SessionOptions, id string) {
	prefix := opts.CookieName + "="
	var kept []string
	for _, line := range w.Header().Values("Set-Cookie") {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}
	w.Header().Del("Set-Cookie")
	for _, line := range kept {
		w.Header().Add("Set-Cookie", line)
	}

	// no Expires: the browser drops it when closed
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionID(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		log.Warn().Str("cookie", name).Msg("Ignoring malformed session cookie")
		return ""
	}
	return id.String()
}
