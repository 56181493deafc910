package models

import (
	"time"

	"investmate/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Clients read shares and prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base contains common columns for all tables. Rows are hard-deleted, so
// there is no DeletedAt column.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
