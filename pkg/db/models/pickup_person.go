package models

import "time"

// PickupPerson is the operator profile attached to a PICKUP_PERSON account.
// Requests reference it through AssignedPickupPersonID.
type PickupPerson struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UserID         int64     `gorm:"column:user_id;not null;uniqueIndex"`
	User           *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ServiceArea    string    `gorm:"column:service_area;not null"`
	VehicleDetails *string   `gorm:"column:vehicle_details"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
