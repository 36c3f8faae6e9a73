package admin

import (
	"context"
	"testing"

	"github.com/greencycle/ewaste-backend/internal/pickuppersons"
	"github.com/greencycle/ewaste-backend/internal/users"
	"github.com/greencycle/ewaste-backend/pkg/config"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func setupAdminService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
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
);`, `
CREATE TABLE IF NOT EXISTS pickup_persons (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL UNIQUE,
  service_area TEXT NOT NULL,
  vehicle_details TEXT,
  created_at DATETIME
);`}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	svc, err := NewService(
		users.NewRepository(db),
		pickuppersons.NewRepository(db),
		gormTxRunner{db: db},
		config.PasswordConfig{},
	)
	require.NoError(t, err)
	return svc, db
}

func TestRegisterPickupPerson(t *testing.T) {
	svc, db := setupAdminService(t)
	ctx := context.Background()

	van := "Tata Ace, KA-01-1234"
	created, err := svc.RegisterPickupPerson(ctx, RegisterPickupPersonInput{
		Name:           "Ravi Kumar",
		Email:          "Driver@Example.com",
		Password:       "pickup-secret-1",
		ServiceArea:    "South Zone",
		VehicleDetails: &van,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", created.Name)
	assert.Equal(t, "driver@example.com", created.Email)
	assert.Equal(t, "South Zone", created.ServiceArea)

	account, err := users.NewRepository(db).FindByEmail(ctx, "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRolePickupPerson, account.Role)

	ok, err := security.VerifyPassword("pickup-secret-1", account.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterPickupPersonDuplicateEmail(t *testing.T) {
	svc, _ := setupAdminService(t)
	ctx := context.Background()

	input := RegisterPickupPersonInput{
		Name:        "Ravi",
		Email:       "driver@example.com",
		Password:    "pickup-secret-1",
		ServiceArea: "South Zone",
	}
	_, err := svc.RegisterPickupPerson(ctx, input)
	require.NoError(t, err)

	_, err = svc.RegisterPickupPerson(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestListPickupPersonsAndUsers(t *testing.T) {
	svc, _ := setupAdminService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.RegisterPickupPerson(ctx, RegisterPickupPersonInput{
			Name:        "Operator " + email,
			Email:       email,
			Password:    "pickup-secret-1",
			ServiceArea: "Zone",
		})
		require.NoError(t, err)
	}

	persons, err := svc.ListPickupPersons(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 2)

	accounts, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestUpdateUserPartialFields(t *testing.T) {
	svc, db := setupAdminService(t)
	ctx := context.Background()

	account, err := users.NewRepository(db).Create(ctx, users.CreateUserDTO{
		Email:        "resident@example.com",
		PasswordHash: "h",
		Name:         "Priya",
	})
	require.NoError(t, err)

	newName := "Priya Sharma"
	updated, err := svc.UpdateUser(ctx, account.ID, UpdateUserInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", updated.Name)
	assert.Equal(t, "resident@example.com", updated.Email)

	badRole := "OVERLORD"
	_, err = svc.UpdateUser(ctx, account.ID, UpdateUserInput{Role: &badRole})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := setupAdminService(t)

	name := "Ghost"
	_, err := svc.UpdateUser(context.Background(), 404, UpdateUserInput{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateUserStatus(t *testing.T) {
	svc, db := setupAdminService(t)
	ctx := context.Background()

	account, err := users.NewRepository(db).Create(ctx, users.CreateUserDTO{
		Email:        "resident@example.com",
		PasswordHash: "h",
		Name:         "Priya",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUserStatus(ctx, account.ID, UpdateUserStatusInput{Status: "DISABLED"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserStatusDisabled, updated.Status)

	_, err = svc.UpdateUserStatus(ctx, account.ID, UpdateUserStatusInput{Status: "SUSPENDED"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteUser(t *testing.T) {
	svc, db := setupAdminService(t)
	ctx := context.Background()

	account, err := users.NewRepository(db).Create(ctx, users.CreateUserDTO{
		Email:        "resident@example.com",
		PasswordHash: "h",
		Name:         "Priya",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, account.ID))

	err = svc.DeleteUser(ctx, account.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
