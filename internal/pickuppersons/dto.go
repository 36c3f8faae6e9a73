package pickuppersons

import (
	"time"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
)

// PickupPersonDTO is the admin-facing view of a pickup operator.
type PickupPersonDTO struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	ServiceArea    string    `json:"service_area"`
	VehicleDetails *string   `json:"vehicle_details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(p *models.PickupPerson) *PickupPersonDTO {
	if p == nil {
		return nil
	}
	dto := &PickupPersonDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		ServiceArea:    p.ServiceArea,
		VehicleDetails: p.VehicleDetails,
		CreatedAt:      p.CreatedAt,
	}
	if p.User != nil {
		dto.Name = p.User.Name
		dto.Email = p.User.Email
		dto.Phone = p.User.Phone
	}
	return dto
}
