package event_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/event"
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
	admin   = user.User{ID: "admin-1", Email: "admin@x.com", Name: "Admin", Role: user.RoleConvener}
	student = user.User{ID: "student-1", Email: "alice@example.com", Name: "Alice", Role: user.RoleStudent}
)

func setup(t *testing.T) (*event.Service, *inmemdb.DB) {
	t.Helper()
	db := inmemdb.NewDB()
	svc := event.NewService(inmemdb.NewEventRepository(db), testLogger{}, core.NopRevalidator{})
	return svc, db
}

func mustEvent(t *testing.T, svc *event.Service, slug string, typ event.Type) event.Event {
	t.Helper()
	ev, err := svc.Create(context.Background(), admin, event.NewEvent{Slug: slug, Title: slug, Type: typ})
	require.NoError(t, err)
	return ev
}

func TestServiceCreate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, student, event.NewEvent{Slug: "x", Title: "X", Type: event.TypeHackathon})
	assert.Equal(t, user.ErrPermissionDenied, err)

	ev, err := svc.Create(ctx, admin, event.NewEvent{Slug: " Winter-Of-Code ", Title: "Winter of Code", Type: event.TypeMentorship})
	require.NoError(t, err)
	assert.Equal(t, "winter-of-code", ev.Slug)
	assert.Equal(t, event.StatusUpcoming, ev.Status)
}

func TestServiceLiveEvent(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.LiveEvent(ctx)
	assert.Equal(t, event.ErrNotFound, err)

	ev := mustEvent(t, svc, "woc", event.TypeMentorship)
	_, err = svc.SetStatus(ctx, admin, ev.ID, event.StatusLive)
	require.NoError(t, err)

	live, err := svc.LiveEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, live.ID)
}

func TestServiceRegister(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "woc", event.TypeMentorship)

	reg, err := svc.Register(ctx, student, ev.ID, event.NewRegistration{
		DomainPriorities: []string{" Web Development ", "", "Machine Learning"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Web Development", "Machine Learning"}, reg.DomainPriorities)
	assert.Equal(t, "pending", reg.Status)
	assert.Empty(t, reg.AssignedDomain)

	_, err = svc.Register(ctx, student, ev.ID, event.NewRegistration{})
	assert.Equal(t, event.ErrAlreadyRegistered, err)
}

func TestServiceAssignDomain(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "woc", event.TypeMentorship)
	reg, err := svc.Register(ctx, student, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	t.Run("non-admin refused", func(t *testing.T) {
		assert.Equal(t, user.ErrPermissionDenied, svc.AssignDomain(ctx, student, reg.ID, "Web"))
	})

	t.Run("empty domain refused", func(t *testing.T) {
		err := svc.AssignDomain(ctx, admin, reg.ID, "  ")
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown registration", func(t *testing.T) {
		assert.Equal(t, event.ErrRegistrationNotFound, svc.AssignDomain(ctx, admin, "nope", "Web"))
	})

	t.Run("assignment and overwrite", func(t *testing.T) {
		require.NoError(t, svc.AssignDomain(ctx, admin, reg.ID, "Web"))
		got, err := svc.RegistrationFor(ctx, student.ID, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, "Web", got.AssignedDomain)

		require.NoError(t, svc.AssignDomain(ctx, admin, reg.ID, "App"))
		got, err = svc.RegistrationFor(ctx, student.ID, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, "App", got.AssignedDomain)
	})
}

func TestServiceBulkAssignDomain(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "woc", event.TypeMentorship)
	reg, err := svc.Register(ctx, student, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	t.Run("no domain selected", func(t *testing.T) {
		_, err := svc.BulkAssignDomain(ctx, admin, ev.ID, "", []string{reg.ID})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "please select a domain", vErr.Fields[0].Error)
	})

	t.Run("no valid targets", func(t *testing.T) {
		_, err := svc.BulkAssignDomain(ctx, admin, ev.ID, "Web", nil)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "no valid users to assign", vErr.Fields[0].Error)
	})

	t.Run("assigns and reports count", func(t *testing.T) {
		n, err := svc.BulkAssignDomain(ctx, admin, ev.ID, "Web", []string{reg.ID, "ghost"})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestServicePreviewRoster(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "woc", event.TypeMentorship)

	// registrant with a user row so emails can match
	usrRepo := inmemdb.NewUserRepository(db)
	usr, err := usrRepo.CreateUser(ctx, user.User{Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	actor := usr
	_, err = svc.Register(ctx, actor, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	csv := "name,email\nAlice, Alice@Example.Com \nGhost,ghost@example.com\n"
	preview, err := svc.PreviewRoster(ctx, admin, ev.ID, "roster.csv", []byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Matched)
	assert.Equal(t, 1, preview.Unmatched)

	// preview committed nothing
	reg, err := svc.RegistrationFor(ctx, actor.ID, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, reg.AssignedDomain)
}

func TestServiceTeams(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "hack", event.TypeHackathon)

	_, err := svc.Register(ctx, student, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	team, err := svc.CreateTeam(ctx, student, ev.ID, " The Gophers ")
	require.NoError(t, err)
	assert.Equal(t, "The Gophers", team.Name)
	assert.Len(t, team.JoinCode, 8)
	assert.Equal(t, strings.ToUpper(team.JoinCode), team.JoinCode)

	// the creator's registration is attached
	reg, err := svc.RegistrationFor(ctx, student.ID, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, reg.TeamID)

	// another registrant joins by code, case-insensitively
	bob := user.User{ID: "bob-1", Email: "bob@x.com", Name: "Bob"}
	_, err = svc.Register(ctx, bob, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	joined, err := svc.JoinTeam(ctx, bob, ev.ID, " "+team.JoinCode+" ")
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)

	_, err = svc.JoinTeam(ctx, bob, ev.ID, "NOPE1234")
	assert.Equal(t, event.ErrTeamNotFound, err)
}

func TestServiceRemoveRegistration(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	ev := mustEvent(t, svc, "woc", event.TypeMentorship)
	reg, err := svc.Register(ctx, student, ev.ID, event.NewRegistration{})
	require.NoError(t, err)

	assert.Equal(t, user.ErrPermissionDenied, svc.RemoveRegistration(ctx, student, reg.ID))

	require.NoError(t, svc.RemoveRegistration(ctx, admin, reg.ID))
	_, err = svc.RegistrationFor(ctx, student.ID, ev.ID)
	assert.Equal(t, event.ErrRegistrationNotFound, err)
}
