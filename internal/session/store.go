// Package session persists the console login (flag, role, bearer token) in per-browser storage.
package session

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/router"
)

// Storage keys
const (
	KeyAuthenticated = "isAuthenticated"
	KeyRole          = "userRole"
	KeyToken         = "token"
	keyFlash         = "flash"
)

var loginKeys = []string{KeyAuthenticated, KeyRole, KeyToken}

// Session is the in-memory view of the persisted login
type Session struct {
	IsAuthenticated bool
	Role            Role
	Token           string
}

// Store reads and writes the session fields. It performs no expiry check:
// a stale token is only noticed when the API rejects it.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Login persists the session and returns where to navigate:
// the explicit landing when given, else the role's dashboard, else the root.
func (s *Store) Login(ctx context.Context, role Role, token string, landing Landing) (string, error) {
	fields := [][2]string{
		{KeyAuthenticated, "true"},
		{KeyRole, role.String()},
		{KeyToken, token},
	}
	for _, f := range fields {
		if err := s.storage.Set(ctx, f[0], f[1]); err != nil {
			return "", fmt.Errorf("failed to persist session: %w", err)
		}
	}

	if p := landing.Path(); p != "" {
		return p, nil
	}
	return role.Home(), nil
}

// Logout clears every session field and returns the root path
func (s *Store) Logout(ctx context.Context) (string, error) {
	if err := s.storage.Remove(ctx, loginKeys...); err != nil {
		return router.PathHome, fmt.Errorf("failed to clear session: %w", err)
	}
	return router.PathHome, nil
}

// Restore loads the persisted session
func (s *Store) Restore(ctx context.Context) (Session, error) {
	var sess Session

	flag, _, err := s.storage.Get(ctx, KeyAuthenticated)
	if err != nil {
		return sess, err
	}
	role, _, err := s.storage.Get(ctx, KeyRole)
	if err != nil {
		return sess, err
	}
	token, _, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return sess, err
	}

	sess.IsAuthenticated = flag == "true"
	sess.Role = ParseRole(role)
	sess.Token = token
	return sess, nil
}

// SetFlash queues a banner for the next rendered page, replacing any pending one
func (s *Store) SetFlash(ctx context.Context, msg flash.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode flash: %w", err)
	}
	return s.storage.Set(ctx, keyFlash, string(raw))
}

// PopFlash returns and clears the pending banner
func (s *Store) PopFlash(ctx context.Context) (flash.Message, bool, error) {
	raw, ok, err := s.storage.Get(ctx, keyFlash)
	if err != nil || !ok {
		return flash.Message{}, false, err
	}
	if err := s.storage.Remove(ctx, keyFlash); err != nil {
		return flash.Message{}, false, err
	}

	var msg flash.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return flash.Message{}, false, fmt.Errorf("failed to decode flash: %w", err)
	}
	return msg, true, nil
}
