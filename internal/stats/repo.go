package stats

import (
	"context"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"gorm.io/gorm"
)

// UnknownDeviceType replaces NULL device types in grouped counts so the
// result map never carries a null key.
const UnknownDeviceType = "Unknown"

// Repository runs the GROUP BY queries behind the dashboards.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stats repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GlobalStatusCounts groups all requests by status.
func (r *Repository) GlobalStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.statusCounts(ctx, r.db.WithContext(ctx).Model(&models.EwasteRequest{}))
}

// UserStatusCounts groups one requester's requests by status.
func (r *Repository) UserStatusCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	return r.statusCounts(ctx, r.db.WithContext(ctx).
		Model(&models.EwasteRequest{}).
		Where("user_id = ?", userID))
}

func (r *Repository) statusCounts(ctx context.Context, query *gorm.DB) (map[string]int64, error) {
	rows, err := query.
		Select("status, COUNT(*) AS count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

// GlobalDeviceTypeCounts groups all requests by device type, mapping NULL to
// UnknownDeviceType.
func (r *Repository) GlobalDeviceTypeCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&models.EwasteRequest{}).
		Select("device_type, COUNT(*) AS count").
		Group("device_type").
		Rows()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := map[string]int64{}
	for rows.Next() {
		var deviceType *string
		var count int64
		if err := rows.Scan(&deviceType, &count); err != nil {
			return nil, err
		}
		key := UnknownDeviceType
		if deviceType != nil && *deviceType != "" {
			key = *deviceType
		}
		out[key] += count
	}
	return out, rows.Err()
}

// TotalRequests counts every request in the store.
func (r *Repository) TotalRequests(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.EwasteRequest{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
