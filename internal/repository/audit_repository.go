package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/otcheredev/hms-console/internal/models"
	"gorm.io/gorm"
)

// AuditRepository reads and writes the console's audit trail
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// Find returns matching rows, newest first. A non-positive limit returns all rows.
func (r *AuditRepository) Find(ctx context.Context, filter models.AuditFilter, limit, offset int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := r.find(ctx, filter, limit, offset, &logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *AuditRepository) find(ctx context.Context, filter models.AuditFilter, limit, offset int, dest *[]models.AuditLog) *gorm.DB {
	return r.db.WithContext(ctx).
		Scopes(matching(filter), page(limit, offset)).
		Order("created_at DESC").
		Find(dest)
}

func matching(f models.AuditFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		exact := [][2]string{
			{"role", f.Role},
			{"status", f.Status},
			{"resource_type", f.ResourceType},
			{"resource_id", f.ResourceID},
		}
		for _, c := range exact {
			if c[1] != "" {
				db = db.Where(c[0]+" = ?", c[1])
			}
		}
		if f.Action != "" {
			db = db.Where("action = ? OR action LIKE ?", f.Action, likePrefix(f.Action)+".%")
		}
		return db
	}
}

func page(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix escapes LIKE wildcards in user input
func likePrefix(s string) string {
	return likeEscaper.Replace(s)
}
