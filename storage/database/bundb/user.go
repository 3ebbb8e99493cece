package bunrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/user"
)

type userRepo struct {
	db *bun.DB
}

var _ user.Repository = (*userRepo)(nil)

func NewUserRepository(db *bun.DB) user.Repository {
	return &userRepo{db: db}
}

func (repo *userRepo) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := boxUser(usr)
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return row.unbox(), nil
}

func (repo *userRepo) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var row dbUser
	q := repo.db.NewSelect().Model(&row)
	switch {
	case filter.ID != "":
		q = q.Where("u.id = ?", filter.ID)
	case filter.Email != "":
		q = q.Where("lower(u.email) = lower(?)", filter.Email)
	default:
		return user.User{}, user.ErrNotFound
	}
	if err := q.Scan(ctx); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound)
	}
	return row.unbox(), nil
}

func (repo *userRepo) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []dbUser
	err := repo.db.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return unboxUsers(rows), nil
}

func (repo *userRepo) QueryUsersByRole(ctx context.Context, roles ...user.Role) ([]user.User, error) {
	var rows []dbUser
	err := repo.db.NewSelect().
		Model(&rows).
		Where("u.role IN (?)", bun.In(roles)).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users by role")
	}
	return unboxUsers(rows), nil
}

// UpdateUserRole updates the role. With guardLastAdmin, the surviving admin
// count is checked inside the same transaction so a concurrent demotion
// cannot leave the club without a convener.
func (repo *userRepo) UpdateUserRole(ctx context.Context, id string, role user.Role, guardLastAdmin bool) (user.User, error) {
	var row dbUser
	err := repo.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if guardLastAdmin {
			n, err := tx.NewSelect().
				Model((*dbUser)(nil)).
				Where("u.role IN (?)", bun.In(user.AdminRoles)).
				Where("u.id != ?", id).
				Count(ctx)
			if err != nil {
				return errors.Wrap(err, "counting remaining admins")
			}
			if n == 0 {
				return user.ErrLastAdmin
			}
		}

		res, err := tx.NewUpdate().
			Model(&row).
			Set("role = ?", role).
			Where("id = ?", id).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "updating user role")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return user.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return row.unbox(), nil
}

func (repo *userRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := repo.db.NewDelete().
		Model((*dbUser)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func unboxUsers(rows []dbUser) []user.User {
	users := make([]user.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].unbox())
	}
	return users
}
