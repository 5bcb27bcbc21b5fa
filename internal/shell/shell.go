// Package shell owns the per-request session state that every page reads.
package shell

import (
	"context"
	"fmt"

	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/session"
	"github.com/rs/zerolog/log"
)

// Shell is the root of a page view: it restores the session, runs the
// access guard and exposes the login/logout mutators.
type Shell struct {
	id      string
	store   *session.Store
	sess    session.Session
	claims  session.Claims
	mounted bool
	renew   Renewer
}

// Renewer issues a fresh session id and returns it with its store
type Renewer func() (id string, store *session.Store)

// New restores the session persisted for id
func New(ctx context.Context, id string, store *session.Store) (*Shell, error) {
	sess, err := store.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	s := &Shell{id: id, store: store, sess: sess}
	s.decodeClaims()
	return s, nil
}

func (s *Shell) ID() string               { return s.id }
func (s *Shell) Session() session.Session { return s.sess }
func (s *Shell) Store() *session.Store    { return s.store }
func (s *Shell) Authenticated() bool      { return s.sess.IsAuthenticated }
func (s *Shell) Role() session.Role       { return s.sess.Role }
func (s *Shell) Token() string            { return s.sess.Token }
func (s *Shell) UserID() int64            { return s.claims.UserID }

// DisplayName is the token subject, falling back to the role name
func (s *Shell) DisplayName() string {
	if s.claims.Subject != "" {
		return s.claims.Subject
	}
	return s.sess.Role.String()
}

// Mount applies the guard the first time it is called. Later calls on the
// same shell are not re-checked.
func (s *Shell) Mount(path string) (target string, redirected bool) {
	if s.mounted {
		return path, false
	}
	s.mounted = true
	return router.Guard(s.sess.IsAuthenticated, path)
}

// RenewOnLogin makes Login move the session to the id fn issues, so an id
// handed out before authentication never carries a login.
func (s *Shell) RenewOnLogin(fn Renewer) {
	s.renew = fn
}

// Login persists the session and returns the landing path
func (s *Shell) Login(ctx context.Context, role session.Role, token string, landing session.Landing) (string, error) {
	id, store := s.id, s.store
	if s.renew != nil {
		id, store = s.renew()
	}

	path, err := store.Login(ctx, role, token, landing)
	if err != nil {
		return "", err
	}

	if id != s.id {
		if _, err := s.store.Logout(ctx); err != nil {
			log.Warn().Err(err).Str("session_id", s.id).Msg("Failed to clear pre-login session")
		}
		s.id, s.store = id, store
	}
	s.sess = session.Session{IsAuthenticated: true, Role: role, Token: token}
	s.decodeClaims()
	return path, nil
}

// Logout clears the session; in-memory state is reset even if storage fails
func (s *Shell) Logout(ctx context.Context) (string, error) {
	s.sess = session.Session{}
	s.claims = session.Claims{}
	return s.store.Logout(ctx)
}

func (s *Shell) decodeClaims() {
	s.claims = session.Claims{}
	if s.sess.Token == "" {
		return
	}
	if c, err := session.DecodeClaims(s.sess.Token); err == nil {
		s.claims = c
	}
}

type contextKey string

const shellKey contextKey = "shell"

// WithShell attaches s to ctx
func WithShell(ctx context.Context, s *Shell) context.Context {
	return context.WithValue(ctx, shellKey, s)
}

// FromContext extracts the shell placed by the session middleware
func FromContext(ctx context.Context) (*Shell, bool) {
	s, ok := ctx.Value(shellKey).(*Shell)
	return s, ok
}
