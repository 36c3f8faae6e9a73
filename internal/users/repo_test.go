package users

import (
	"context"
	"testing"

	"github.com/greencycle/ewaste-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL DEFAULT 'USER',
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestCreateAndFindUser(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "resident@example.com",
		PasswordHash: "hash",
		Name:         "Priya Sharma",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, enums.UserRoleUser, created.Role)
	assert.Equal(t, enums.UserStatusActive, created.Status)

	byEmail, err := repo.FindByEmail(ctx, "resident@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", byID.Name)
}

func TestFindByEmailMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateDuplicateEmailFails(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h", Name: "A"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h", Name: "B"})
	assert.Error(t, err)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "resident@example.com",
		PasswordHash: "hash",
		Name:         "Priya",
	})
	require.NoError(t, err)

	newName := "Priya Sharma"
	updated, err := repo.Update(ctx, created.ID, UserUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", updated.Name)
	assert.Equal(t, "resident@example.com", updated.Email)
	assert.Equal(t, enums.UserRoleUser, updated.Role)

	role := enums.UserRoleAdmin
	status := enums.UserStatusDisabled
	updated, err = repo.Update(ctx, created.ID, UserUpdate{Role: &role, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, updated.Role)
	assert.Equal(t, enums.UserStatusDisabled, updated.Status)
	assert.Equal(t, "Priya Sharma", updated.Name)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "u@example.com", PasswordHash: "h", Name: "U"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.UserStatusDisabled))
	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.UserStatusDisabled, found.Status)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListAndCount(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := repo.Create(ctx, CreateUserDTO{Email: email, PasswordHash: "h", Name: email})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
