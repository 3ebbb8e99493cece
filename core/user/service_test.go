package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/storage/database/inmem"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()
	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	return user.NewService(repo, testLogger{}, core.NopRevalidator{}), repo
}

func mustCreate(t *testing.T, repo user.Repository, email, name string, role user.Role) user.User {
	t.Helper()
	usr, err := repo.CreateUser(context.Background(), user.User{Email: email, Name: name, Role: role})
	require.NoError(t, err)
	return usr
}

func TestServiceCreateDefaultsToStudent(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Email: "Alice@Example.Com ", Name: " Alice "})
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.Equal(t, "alice@example.com", usr.Email)
	assert.Equal(t, "Alice", usr.Name)

	_, err = svc.Create(ctx, user.NewUser{Email: "alice@example.com", Name: "Alice Again"})
	assert.Equal(t, user.ErrEmailExists, err)
}

func TestServiceUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin actor refused", func(t *testing.T) {
		svc, repo := setup(t)
		member := mustCreate(t, repo, "m@x.com", "Member", user.RoleMember)
		target := mustCreate(t, repo, "t@x.com", "Target", user.RoleStudent)

		_, err := svc.UpdateRole(ctx, member, target.ID, user.RoleMember)
		assert.Equal(t, user.ErrPermissionDenied, err)
	})

	t.Run("invalid role refused", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)

		_, err := svc.UpdateRole(ctx, admin, admin.ID, "emperor")
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("self-demotion of last admin refused", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)

		_, err := svc.UpdateRole(ctx, admin, admin.ID, user.RoleMember)
		assert.Equal(t, user.ErrLastAdmin, err)

		// still the convener
		got, err := repo.GetUser(ctx, user.GetFilter{ID: admin.ID})
		require.NoError(t, err)
		assert.Equal(t, user.RoleConvener, got.Role)
	})

	t.Run("self-demotion allowed with another admin standing", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)
		mustCreate(t, repo, "d@x.com", "Deputy", user.RoleDeputyConvener)

		got, err := svc.UpdateRole(ctx, admin, admin.ID, user.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, user.RoleMember, got.Role)
	})

	t.Run("self-promotion within admin roles allowed", func(t *testing.T) {
		svc, repo := setup(t)
		deputy := mustCreate(t, repo, "d@x.com", "Deputy", user.RoleDeputyConvener)

		got, err := svc.UpdateRole(ctx, deputy, deputy.ID, user.RoleConvener)
		require.NoError(t, err)
		assert.Equal(t, user.RoleConvener, got.Role)
	})

	t.Run("admin promotes a student", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)
		target := mustCreate(t, repo, "t@x.com", "Target", user.RoleStudent)

		got, err := svc.UpdateRole(ctx, admin, target.ID, user.RoleCoreMember)
		require.NoError(t, err)
		assert.Equal(t, user.RoleCoreMember, got.Role)
	})
}

func TestServiceRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("self-deletion refused", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)

		assert.Equal(t, user.ErrSelfDeletion, svc.Remove(ctx, admin, admin.ID))
	})

	t.Run("non-admin refused", func(t *testing.T) {
		svc, repo := setup(t)
		student := mustCreate(t, repo, "s@x.com", "Student", user.RoleStudent)
		target := mustCreate(t, repo, "t@x.com", "Target", user.RoleStudent)

		assert.Equal(t, user.ErrPermissionDenied, svc.Remove(ctx, student, target.ID))
	})

	t.Run("admin deletes another user", func(t *testing.T) {
		svc, repo := setup(t)
		admin := mustCreate(t, repo, "a@x.com", "Admin", user.RoleConvener)
		target := mustCreate(t, repo, "t@x.com", "Target", user.RoleStudent)

		require.NoError(t, svc.Remove(ctx, admin, target.ID))
		_, err := repo.GetUser(ctx, user.GetFilter{ID: target.ID})
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestServiceTeamPage(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	mustCreate(t, repo, "student@x.com", "Sam Student", user.RoleStudent)
	mustCreate(t, repo, "zoe@x.com", "Zoe", user.RoleMember)
	mustCreate(t, repo, "amy@x.com", "Amy", user.RoleMember)
	mustCreate(t, repo, "core@x.com", "Cora", user.RoleCoreMember)
	mustCreate(t, repo, "deputy@x.com", "Dev", user.RoleDeputyConvener)
	mustCreate(t, repo, "conv@x.com", "Cleo", user.RoleConvener)

	page, err := svc.TeamPage(ctx)
	require.NoError(t, err)

	// core team by seniority, convener first; students never appear
	require.Len(t, page.CoreTeam, 3)
	assert.Equal(t, user.RoleConvener, page.CoreTeam[0].Role)
	assert.Equal(t, user.RoleDeputyConvener, page.CoreTeam[1].Role)
	assert.Equal(t, user.RoleCoreMember, page.CoreTeam[2].Role)

	// members alphabetical
	require.Len(t, page.Members, 2)
	assert.Equal(t, "Amy", page.Members[0].Name)
	assert.Equal(t, "Zoe", page.Members[1].Name)
}
