package pickuppersons

import (
	"context"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes pickup person persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pickup persons repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repo bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a pickup person row tied to an existing user.
func (r *Repository) Create(ctx context.Context, person *models.PickupPerson) (*models.PickupPerson, error) {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

// FindByID loads a pickup person with their account preloaded.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.PickupPerson, error) {
	var person models.PickupPerson
	if err := r.db.WithContext(ctx).Preload("User").First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// FindByUserID resolves the pickup person record for an account.
func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*models.PickupPerson, error) {
	var person models.PickupPerson
	if err := r.db.WithContext(ctx).Preload("User").First(&person, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// List returns all pickup persons with accounts preloaded, newest first.
func (r *Repository) List(ctx context.Context) ([]models.PickupPerson, error) {
	var out []models.PickupPerson
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of registered pickup persons.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.PickupPerson{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
