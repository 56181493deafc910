package models

// User is created on the first successful Google sign-in and never deleted.
type User struct {
	Base
	GoogleID    string       `gorm:"uniqueIndex;not null" json:"google_id"`
	DisplayName string       `json:"display_name"`
	Email       *string      `json:"email"`
	Investments []Investment `gorm:"foreignKey:UserID" json:"-"`
}
