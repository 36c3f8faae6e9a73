package stats

import (
	"context"
	"testing"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS ewaste_requests (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  device_type TEXT,
  brand TEXT NOT NULL DEFAULT '',
  model TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  pickup_address TEXT NOT NULL DEFAULT '',
  remarks TEXT NOT NULL DEFAULT '',
  image_urls TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING',
  rejection_reason TEXT,
  scheduled_pickup_at DATETIME,
  pickup_person_id INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedRequest(t *testing.T, db *gorm.DB, userID int64, deviceType *string, status enums.RequestStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.EwasteRequest{
		UserID:     userID,
		DeviceType: deviceType,
		Condition:  enums.DeviceConditionWorking,
		Quantity:   1,
		Status:     status,
	}).Error)
}

func strPtr(s string) *string { return &s }

func TestGlobalStatusCounts(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRequest(t, db, 1, strPtr("Laptop"), enums.RequestStatusPending)
	seedRequest(t, db, 1, strPtr("Laptop"), enums.RequestStatusPending)
	seedRequest(t, db, 2, strPtr("Phone"), enums.RequestStatusCompleted)

	counts, err := repo.GlobalStatusCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts["PENDING"])
	assert.EqualValues(t, 1, counts["COMPLETED"])
	assert.NotContains(t, counts, "REJECTED")
}

func TestDeviceTypeCountsNormalizesNull(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRequest(t, db, 1, strPtr("Laptop"), enums.RequestStatusPending)
	seedRequest(t, db, 1, nil, enums.RequestStatusPending)
	seedRequest(t, db, 2, nil, enums.RequestStatusCompleted)

	counts, err := repo.GlobalDeviceTypeCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["Laptop"])
	assert.EqualValues(t, 2, counts[UnknownDeviceType])
	for key := range counts {
		assert.NotEmpty(t, key, "null/empty device types must be folded into Unknown")
	}
}

func TestUserStatusCountsScopedToUser(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRequest(t, db, 1, strPtr("Laptop"), enums.RequestStatusPending)
	seedRequest(t, db, 1, strPtr("Phone"), enums.RequestStatusApproved)
	seedRequest(t, db, 2, strPtr("Phone"), enums.RequestStatusApproved)

	counts, err := repo.UserStatusCounts(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["PENDING"])
	assert.EqualValues(t, 1, counts["APPROVED"])

	total, err := repo.TotalRequests(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}
