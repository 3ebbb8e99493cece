package main

import (
	"context"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
)

// promote sets a user's role directly, bypassing the API's permission checks.
// This is how the first convener is bootstrapped.
func (cli *commandLine) promote(email string, role user.Role) error {
	if !role.IsValid() {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: "invalid role"})
	}

	ctx := context.Background()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: core.CleanString(email, true /* lower */)})
	if err != nil {
		return err
	}
	if _, err := cli.usrRepo.UpdateUserRole(ctx, usr.ID, role, false); err != nil {
		return err
	}
	logger.Printf("%s is now %s\n", usr.Email, role)
	return nil
}
