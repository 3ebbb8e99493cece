package user

import (
	"context"
	"errors"
	"sort"

	"github.com/MSTC-DAU/mstc/core"
)

var (
	// errors
	ErrNotFound         = errors.New("user not found")
	ErrEmailExists      = errors.New("a user with this email already exists")
	ErrPermissionDenied = errors.New("only the convener or deputy convener can manage users")
	ErrLastAdmin        = errors.New("you cannot demote yourself, transfer power to someone else first")
	ErrSelfDeletion     = errors.New("you cannot delete your own account here")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		QueryUsersByRole(ctx context.Context, roles ...Role) ([]User, error)
		// UpdateUserRole sets the user's role. With guardLastAdmin, the count
		// of admin-role holders is checked and the update refused with
		// ErrLastAdmin in the same transaction when it would drop to zero.
		UpdateUserRole(ctx context.Context, id string, role Role, guardLastAdmin bool) (User, error)
		// DeleteUser removes the user row; sessions and accounts cascade.
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
		reval  core.Revalidator
	}
)

func NewService(repo Repository, logger core.Logger, reval core.Revalidator) *Service {
	return &Service{repo: repo, logger: logger, reval: reval}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	usr := User{
		Email: nu.Email,
		Name:  nu.Name,
		Image: nu.Image,
		Role:  RoleStudent,
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

// UpdateRole changes the target's role. The actor must currently hold an
// admin role; a self-demotion is refused while the actor is the last admin
// standing.
func (svc *Service) UpdateRole(ctx context.Context, actor User, targetID string, newRole Role) (User, error) {
	if !newRole.IsValid() {
		return User{}, core.NewValidationError(nil, core.FieldError{Field: "role", Error: "invalid role"})
	}
	if !actor.IsAdmin() {
		return User{}, ErrPermissionDenied
	}

	guard := targetID == actor.ID && !newRole.IsAdmin()
	usr, err := svc.repo.UpdateUserRole(ctx, targetID, newRole, guard)
	if err != nil {
		return User{}, err
	}

	svc.reval.Revalidate("/admin/users", "/team")
	return usr, nil
}

// Remove deletes the target user; sessions cascade. Self-deletion is refused.
func (svc *Service) Remove(ctx context.Context, actor User, targetID string) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if targetID == actor.ID {
		return ErrSelfDeletion
	}
	if err := svc.repo.DeleteUser(ctx, targetID); err != nil {
		return err
	}
	svc.reval.Revalidate("/admin/users")
	return nil
}

// TeamPage groups the non-student users for the public team page: core team
// (convener first) sorted by role seniority, plain members sorted by name.
func (svc *Service) TeamPage(ctx context.Context) (TeamPage, error) {
	users, err := svc.repo.QueryUsersByRole(ctx, RoleMember, RoleCoreMember, RoleDeputyConvener, RoleConvener)
	if err != nil {
		return TeamPage{}, err
	}

	page := TeamPage{CoreTeam: make([]User, 0, len(users)), Members: make([]User, 0, len(users))}
	for _, u := range users {
		if u.Role == RoleMember {
			page.Members = append(page.Members, u)
		} else {
			page.CoreTeam = append(page.CoreTeam, u)
		}
	}
	sort.SliceStable(page.CoreTeam, func(i, j int) bool {
		return RolePriority(page.CoreTeam[i].Role) > RolePriority(page.CoreTeam[j].Role)
	})
	sort.SliceStable(page.Members, func(i, j int) bool {
		return page.Members[i].Name < page.Members[j].Name
	})
	return page, nil
}
