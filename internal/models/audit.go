package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit statuses
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditLog records a mutating action a console user sent to the API
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID    string    `gorm:"type:varchar(64);index" json:"session_id"`
	Role         string    `gorm:"type:varchar(20);index" json:"role"`
	Actor        string    `gorm:"type:varchar(255)" json:"actor"`
	Action       string    `gorm:"type:varchar(100);not null;index" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);index" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(255);index" json:"resource_id"`
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent    string    `gorm:"type:text" json:"user_agent"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	Duration     int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "console_audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuditFilter narrows an activity listing. Empty fields match everything;
// Action matches a whole action or its prefix group ("doctor" matches
// "doctor.delete").
type AuditFilter struct {
	Role         string
	Status       string
	Action       string
	ResourceType string
	ResourceID   string
}
