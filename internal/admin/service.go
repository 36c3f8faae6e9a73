package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/greencycle/ewaste-backend/internal/pickuppersons"
	"github.com/greencycle/ewaste-backend/internal/users"
	"github.com/greencycle/ewaste-backend/pkg/config"
	pkgdb "github.com/greencycle/ewaste-backend/pkg/db"
	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/security"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes admin account management.
type Service interface {
	RegisterPickupPerson(ctx context.Context, input RegisterPickupPersonInput) (*RegisteredPickupPerson, error)
	ListPickupPersons(ctx context.Context) ([]pickuppersons.PickupPersonDTO, error)
	ListUsers(ctx context.Context) ([]users.UserDTO, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*users.UserDTO, error)
	UpdateUserStatus(ctx context.Context, id int64, input UpdateUserStatusInput) (*users.UserDTO, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	users    *users.Repository
	persons  *pickuppersons.Repository
	tx       txRunner
	password config.PasswordConfig
}

// NewService wires the admin service.
func NewService(userStore *users.Repository, personStore *pickuppersons.Repository, tx txRunner, password config.PasswordConfig) (Service, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store required")
	}
	if personStore == nil {
		return nil, fmt.Errorf("pickup person store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{users: userStore, persons: personStore, tx: tx, password: password}, nil
}

// RegisterPickupPerson creates the account and operator profile atomically.
func (s *service) RegisterPickupPerson(ctx context.Context, input RegisterPickupPersonInput) (*RegisteredPickupPerson, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing email")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.PickupPerson
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		account, err := s.users.WithTx(tx).Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			Name:         input.Name,
			Phone:        input.Phone,
			Role:         enums.UserRolePickupPerson,
		})
		if err != nil {
			// Same race as self-registration: a duplicate can land between
			// the email lookup and this insert.
			if pkgdb.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create operator account")
		}

		person, err := s.persons.WithTx(tx).Create(ctx, &models.PickupPerson{
			UserID:         account.ID,
			ServiceArea:    input.ServiceArea,
			VehicleDetails: input.VehicleDetails,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pickup person")
		}
		person.User = account
		created = person
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pickuppersons.FromModel(created), nil
}

func (s *service) ListPickupPersons(ctx context.Context) ([]pickuppersons.PickupPersonDTO, error) {
	rows, err := s.persons.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pickup persons")
	}
	out := make([]pickuppersons.PickupPersonDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *pickuppersons.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	rows, err := s.users.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

// UpdateUser applies only the supplied fields.
func (s *service) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*users.UserDTO, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	update := users.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		update.Role = &role
	}
	if input.Status != nil {
		status, err := enums.ParseUserStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		update.Status = &status
	}

	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return users.FromModel(updated), nil
}

func (s *service) UpdateUserStatus(ctx context.Context, id int64, input UpdateUserStatusInput) (*users.UserDTO, error) {
	status, err := enums.ParseUserStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}

	updated, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return users.FromModel(updated), nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}
