package requests

import (
	"context"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a requests repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.EwasteRequest) (*models.EwasteRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.EwasteRequest, error) {
	var request models.EwasteRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("PickupPerson.User").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.EwasteRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]models.EwasteRequest, error) {
	var out []models.EwasteRequest
	if err := r.db.WithContext(ctx).
		Preload("PickupPerson.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.EwasteRequest, error) {
	var out []models.EwasteRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("PickupPerson.User").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) CountCompletedByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.EwasteRequest{}).
		Where("user_id = ? AND status = ?", userID, enums.RequestStatusCompleted).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *repository) ListByPickupPerson(ctx context.Context, pickupPersonID int64) ([]models.EwasteRequest, error) {
	var out []models.EwasteRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("pickup_person_id = ?", pickupPersonID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
