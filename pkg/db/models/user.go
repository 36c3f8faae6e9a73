package models

import (
	"time"

	"github.com/greencycle/ewaste-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	Email        string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Name         string           `gorm:"column:name;not null"`
	Phone        *string          `gorm:"column:phone"`
	Role         enums.UserRole   `gorm:"column:role;type:text;not null;default:USER"`
	Status       enums.UserStatus `gorm:"column:status;type:text;not null;default:ACTIVE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
