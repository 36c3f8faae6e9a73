package models

import (
	"strings"
	"time"

	"github.com/greencycle/ewaste-backend/pkg/enums"
)

// EwasteRequest is the core transactional entity: one submitted device batch
// moving through PENDING -> ... -> COMPLETED. No ordering of transitions is
// enforced; any authorized caller may set any status.
type EwasteRequest struct {
	ID                int64                 `gorm:"primaryKey;autoIncrement"`
	UserID            int64                 `gorm:"column:user_id;not null;index"`
	User              *User                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DeviceType        *string               `gorm:"column:device_type"`
	Brand             string                `gorm:"column:brand"`
	Model             string                `gorm:"column:model"`
	Condition         enums.DeviceCondition `gorm:"column:condition;type:text;not null"`
	Quantity          int                   `gorm:"column:quantity;not null"`
	PickupAddress     string                `gorm:"column:pickup_address;not null"`
	Remarks           string                `gorm:"column:remarks"`
	ImageURLs         string                `gorm:"column:image_urls"`
	Status            enums.RequestStatus   `gorm:"column:status;type:text;not null;default:PENDING;index"`
	RejectionReason   *string               `gorm:"column:rejection_reason"`
	ScheduledPickupAt *time.Time            `gorm:"column:scheduled_pickup_at"`
	PickupPersonID    *int64                `gorm:"column:pickup_person_id;index"`
	PickupPerson      *PickupPerson         `gorm:"foreignKey:PickupPersonID;constraint:OnDelete:SET NULL"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

const imageURLSeparator = ","

// ImageURLList splits the stored comma-joined image references, preserving
// upload order. An empty column yields an empty slice, never [""].
func (r *EwasteRequest) ImageURLList() []string {
	if r == nil || r.ImageURLs == "" {
		return []string{}
	}
	return strings.Split(r.ImageURLs, imageURLSeparator)
}

// JoinImageURLs stores the ordered reference list as a single delimited string.
func JoinImageURLs(urls []string) string {
	return strings.Join(urls, imageURLSeparator)
}
