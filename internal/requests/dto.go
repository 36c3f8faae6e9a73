package requests

import (
	"time"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"github.com/greencycle/ewaste-backend/pkg/enums"
)

// Upload carries one image received from the multipart form.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateInput captures a new disposal request before persistence.
type CreateInput struct {
	RequesterEmail string
	DeviceType     *string
	Brand          string
	Model          string
	Condition      string
	Quantity       int
	PickupAddress  string
	Remarks        string
	Images         []Upload
}

// StatusUpdateInput is the admin decision payload.
type StatusUpdateInput struct {
	Status          string
	RejectionReason *string
}

// ScheduleInput carries the optional schedule fields; both may be absent.
type ScheduleInput struct {
	PickupDate     *string
	PickupPersonID *int64
}

// RequestDTO is the requester-facing view of a request.
type RequestDTO struct {
	ID                 int64                 `json:"id"`
	DeviceType         *string               `json:"device_type,omitempty"`
	Brand              string                `json:"brand,omitempty"`
	Model              string                `json:"model,omitempty"`
	Condition          enums.DeviceCondition `json:"condition"`
	Quantity           int                   `json:"quantity"`
	PickupAddress      string                `json:"pickup_address"`
	Remarks            string                `json:"remarks,omitempty"`
	ImageURLs          []string              `json:"image_urls"`
	Status             enums.RequestStatus   `json:"status"`
	RejectionReason    *string               `json:"rejection_reason,omitempty"`
	ScheduledPickupAt  *time.Time            `json:"scheduled_pickup_at,omitempty"`
	AssignedPersonName *string               `json:"assigned_person_name,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// AdminRequestDTO extends the user view with requester identity for admin and
// operator listings.
type AdminRequestDTO struct {
	RequestDTO
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

func FromModel(r *models.EwasteRequest) *RequestDTO {
	if r == nil {
		return nil
	}
	dto := &RequestDTO{
		ID:                r.ID,
		DeviceType:        r.DeviceType,
		Brand:             r.Brand,
		Model:             r.Model,
		Condition:         r.Condition,
		Quantity:          r.Quantity,
		PickupAddress:     r.PickupAddress,
		Remarks:           r.Remarks,
		ImageURLs:         r.ImageURLList(),
		Status:            r.Status,
		RejectionReason:   r.RejectionReason,
		ScheduledPickupAt: r.ScheduledPickupAt,
		CreatedAt:         r.CreatedAt,
	}
	if r.PickupPerson != nil && r.PickupPerson.User != nil {
		name := r.PickupPerson.User.Name
		dto.AssignedPersonName = &name
	}
	return dto
}

func AdminFromModel(r *models.EwasteRequest) *AdminRequestDTO {
	if r == nil {
		return nil
	}
	dto := &AdminRequestDTO{RequestDTO: *FromModel(r)}
	if r.User != nil {
		dto.RequesterName = r.User.Name
		dto.RequesterEmail = r.User.Email
	}
	return dto
}
