package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/MSTC-DAU/mstc/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).IsValid()
}

// NewUser contains information needed to provision a User at first login.
type NewUser struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

func (nu *NewUser) Validate() error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	return core.Validate.Struct(nu)
}

// UpdateRoleRequest is the admin role-change payload.
type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required,role"`
}

func (ur *UpdateRoleRequest) Validate() error { return core.Validate.Struct(ur) }
