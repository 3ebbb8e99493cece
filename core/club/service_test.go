package club_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/club"
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

func setup(t *testing.T) *club.Service {
	t.Helper()
	return club.NewService(inmemdb.NewClubRepository(inmemdb.NewDB()), testLogger{}, core.NopRevalidator{})
}

func TestServiceMentors(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	t.Run("non-admin refused", func(t *testing.T) {
		_, err := svc.AddMentor(ctx, student, club.NewMentor{Name: "Maya", Role: "Web Mentor"})
		assert.Equal(t, user.ErrPermissionDenied, err)
		assert.Equal(t, user.ErrPermissionDenied, svc.DeleteMentor(ctx, student, "any"))
	})

	t.Run("name and role required", func(t *testing.T) {
		_, err := svc.AddMentor(ctx, admin, club.NewMentor{Name: "  ", Role: "Web Mentor"})
		var vErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &vErrs)
	})

	t.Run("add, list, delete", func(t *testing.T) {
		m, err := svc.AddMentor(ctx, admin, club.NewMentor{Name: "Maya", Role: "Web Mentor", GithubID: "maya"})
		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)

		mentors := svc.Mentors(ctx)
		require.Len(t, mentors, 1)
		assert.Equal(t, "Maya", mentors[0].Name)

		require.NoError(t, svc.DeleteMentor(ctx, admin, m.ID))
		assert.Empty(t, svc.Mentors(ctx))
	})
}

func TestServiceHeaderPhoto(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	t.Run("none set", func(t *testing.T) {
		_, err := svc.HeaderPhoto(ctx)
		assert.Equal(t, club.ErrNoHeaderPhoto, err)
	})

	t.Run("non-admin refused", func(t *testing.T) {
		_, err := svc.SetHeaderPhoto(ctx, student, "https://x.com/p.jpg")
		assert.Equal(t, user.ErrPermissionDenied, err)
	})

	t.Run("url required", func(t *testing.T) {
		_, err := svc.SetHeaderPhoto(ctx, admin, "  ")
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("setting a new header replaces the old one", func(t *testing.T) {
		first, err := svc.SetHeaderPhoto(ctx, admin, "https://x.com/first.jpg")
		require.NoError(t, err)
		assert.True(t, first.IsHeader)

		second, err := svc.SetHeaderPhoto(ctx, admin, "https://x.com/second.jpg")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := svc.HeaderPhoto(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://x.com/second.jpg", got.URL)
	})

	t.Run("remove clears the header", func(t *testing.T) {
		require.NoError(t, svc.RemoveHeaderPhoto(ctx, admin))
		_, err := svc.HeaderPhoto(ctx)
		assert.Equal(t, club.ErrNoHeaderPhoto, err)
	})
}

func TestServiceLegacyNotes(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	assert.NotNil(t, svc.LegacyNotes(ctx))

	_, err := svc.AddLegacyNote(ctx, student, club.NewLegacyNote{UserID: "u1", Content: "great year"})
	assert.Equal(t, user.ErrPermissionDenied, err)

	_, err = svc.AddLegacyNote(ctx, admin, club.NewLegacyNote{UserID: "u1", Content: "  "})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)

	note, err := svc.AddLegacyNote(ctx, admin, club.NewLegacyNote{UserID: "u1", Content: "great year", Tenure: "2023-24"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)

	notes := svc.LegacyNotes(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "great year", notes[0].Content)
}
