package requests

import (
	"context"
	"io"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for e-waste requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.EwasteRequest) (*models.EwasteRequest, error)
	FindByID(ctx context.Context, id int64) (*models.EwasteRequest, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	ListByUser(ctx context.Context, userID int64) ([]models.EwasteRequest, error)
	ListAll(ctx context.Context) ([]models.EwasteRequest, error)
	ListByPickupPerson(ctx context.Context, pickupPersonID int64) ([]models.EwasteRequest, error)
	CountCompletedByUser(ctx context.Context, userID int64) (int64, error)
}

// UserFinder resolves requester accounts.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// PickupPersonFinder resolves pickup operators for assignment.
type PickupPersonFinder interface {
	FindByID(ctx context.Context, id int64) (*models.PickupPerson, error)
}

// ImageStore persists uploaded request photos and returns their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, data io.Reader) (string, error)
}

// ApprovalMailer notifies requesters when their request is approved.
type ApprovalMailer interface {
	SendApprovalEmail(ctx context.Context, to, name string, requestID int64, deviceType string) error
}
