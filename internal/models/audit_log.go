package models

import (
	"time"

	"investmate/internal/uuid"

	"gorm.io/gorm"
)

// AuditLog records a mutation a user made to one of their resources.
type AuditLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string    `gorm:"size:50;not null" json:"action"`
	ResourceType string    `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string    `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string    `gorm:"size:45" json:"ip_address"`
	Changes      string    `gorm:"type:text" json:"changes"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new entries.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	return nil
}
