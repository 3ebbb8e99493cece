package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/MSTC-DAU/mstc/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.users))
	for _, u := range repo.db.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, u := range repo.db.users {
		if strings.EqualFold(u.Email, usr.Email) {
			return user.User{}, user.ErrEmailExists
		}
	}
	usr.ID = newPK()
	usr.CreatedAt = now()
	repo.db.users[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.users[filter.ID]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	for _, usr := range repo.db.users {
		if strings.EqualFold(usr.Email, filter.Email) {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) QueryUsersByRole(ctx context.Context, roles ...user.Role) ([]user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := make([]user.User, 0)
	for _, usr := range repo.query() {
		for _, role := range roles {
			if usr.Role == role {
				users = append(users, usr)
				break
			}
		}
	}
	return users, nil
}

func (repo *userRepository) UpdateUserRole(ctx context.Context, id string, role user.Role, guardLastAdmin bool) (user.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	usr, ok := repo.db.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if guardLastAdmin {
		admins := 0
		for _, u := range repo.db.users {
			if u.ID != id && u.Role.IsAdmin() {
				admins++
			}
		}
		if admins == 0 {
			return user.User{}, user.ErrLastAdmin
		}
	}
	usr.Role = role
	return *usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(repo.db.users, id)
	return nil
}
