package services

import (
	"context"
	"time"

	"github.com/otcheredev/hms-console/internal/models"
	"github.com/rs/zerolog/log"
)

// AuditStore persists audit rows
type AuditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
	Find(ctx context.Context, filter models.AuditFilter, limit, offset int) ([]models.AuditLog, error)
}

// Action describes one mutating console request
type Action struct {
	SessionID    string
	Role         string
	Actor        string
	Name         string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	Started      time.Time
	Err          error
}

// AuditService records console actions. A service without a store is
// disabled: Record is a no-op and reads return nothing.
type AuditService struct {
	store AuditStore
}

// NewAuditService creates an audit service; store may be nil
func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Enabled() bool {
	return s != nil && s.store != nil
}

// Record stores a. Storage failures are logged, never returned.
func (s *AuditService) Record(ctx context.Context, a Action) {
	if !s.Enabled() {
		return
	}

	entry := &models.AuditLog{
		SessionID:    a.SessionID,
		Role:         a.Role,
		Actor:        a.Actor,
		Action:       a.Name,
		ResourceType: a.ResourceType,
		ResourceID:   a.ResourceID,
		IPAddress:    a.IPAddress,
		UserAgent:    a.UserAgent,
		Status:       models.AuditSuccess,
	}
	if !a.Started.IsZero() {
		entry.Duration = time.Since(a.Started).Milliseconds()
	}
	if a.Err != nil {
		entry.Status = models.AuditFailure
		entry.ErrorMessage = a.Err.Error()
	}

	if err := s.store.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", a.Name).Msg("Failed to record audit log")
	}
}

// Recent returns the newest matching rows, or nil when auditing is disabled
func (s *AuditService) Recent(ctx context.Context, filter models.AuditFilter, limit int) ([]models.AuditLog, error) {
	if !s.Enabled() {
		return nil, nil
	}
	return s.store.Find(ctx, filter, limit, 0)
}

// ForResource returns the newest rows touching one resource
func (s *AuditService) ForResource(ctx context.Context, resourceType, resourceID string, limit int) ([]models.AuditLog, error) {
	if !s.Enabled() {
		return nil, nil
	}
	return s.store.Find(ctx, models.AuditFilter{ResourceType: resourceType, ResourceID: resourceID}, limit, 0)
}
