package setting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/storage/database/inmem"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

var (
	admin   = user.User{ID: "admin-1", Email: "admin@x.com", Role: user.RoleConvener}
	student = user.User{ID: "student-1", Email: "s@x.com", Role: user.RoleStudent}
)

func setup(t *testing.T) *setting.Service {
	t.Helper()
	return setting.NewService(inmemdb.NewSettingRepository(inmemdb.NewDB()), testLogger{}, core.NopRevalidator{})
}

func TestServiceGetDegrades(t *testing.T) {
	svc := setup(t)
	assert.Equal(t, "", svc.Get(context.Background(), "missing"))
}

func TestServiceUpdate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	t.Run("non-admin refused", func(t *testing.T) {
		_, err := svc.Update(ctx, student, "k", "v", "")
		assert.Equal(t, user.ErrPermissionDenied, err)
	})

	t.Run("key required", func(t *testing.T) {
		_, err := svc.Update(ctx, admin, "  ", "v", "")
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("insert then update by key", func(t *testing.T) {
		s, err := svc.Update(ctx, admin, " Team_Photo_URL ", "https://x.com/a.jpg", "header image")
		require.NoError(t, err)
		assert.Equal(t, setting.KeyTeamPhotoURL, s.Key)
		assert.Equal(t, "https://x.com/a.jpg", svc.Get(ctx, setting.KeyTeamPhotoURL))

		_, err = svc.Update(ctx, admin, setting.KeyTeamPhotoURL, "https://x.com/b.jpg", "")
		require.NoError(t, err)
		assert.Equal(t, "https://x.com/b.jpg", svc.Get(ctx, setting.KeyTeamPhotoURL))

		all, err := svc.QueryAll(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("listing requires admin", func(t *testing.T) {
		_, err := svc.QueryAll(ctx, student)
		assert.Equal(t, user.ErrPermissionDenied, err)
	})
}
