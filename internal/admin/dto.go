package admin

import (
	"github.com/greencycle/ewaste-backend/internal/pickuppersons"
)

// RegisterPickupPersonInput is the admin payload for onboarding an operator.
type RegisterPickupPersonInput struct {
	Name           string  `json:"name" validate:"required,max=120"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8,max=128"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	ServiceArea    string  `json:"service_area" validate:"required,max=160"`
	VehicleDetails *string `json:"vehicle_details,omitempty" validate:"omitempty,max=160"`
}

// UpdateUserInput carries the optional account fields; absent fields are left
// untouched.
type UpdateUserInput struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateUserStatusInput toggles the account status.
type UpdateUserStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// RegisteredPickupPerson is returned after onboarding.
type RegisteredPickupPerson = pickuppersons.PickupPersonDTO
