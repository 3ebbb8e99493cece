package event

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
)

var (
	// errors
	ErrNotFound             = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("you are already registered for this event")
	ErrTeamNotFound         = errors.New("no team found for this join code")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, ev Event) (Event, error)
		GetEvent(ctx context.Context, filter GetFilter) (Event, error)
		QueryEvents(ctx context.Context, statuses ...Status) ([]Event, error)
		UpdateEventStatus(ctx context.Context, id string, status Status) (Event, error)

		CreateRegistration(ctx context.Context, reg Registration) (Registration, error)
		GetRegistration(ctx context.Context, userID, eventID string) (Registration, error)
		// QueryRegistrants returns the event's registrations joined with user
		// name and email, for the admin participant list and roster matching.
		QueryRegistrants(ctx context.Context, eventID string) ([]Registrant, error)
		// AssignDomain sets assigned_domain on every given registration in one
		// batch statement and reports the number of rows updated.
		AssignDomain(ctx context.Context, domain string, registrationIDs []string) (int, error)
		// DeleteRegistration removes the registration; its checkpoints cascade.
		DeleteRegistration(ctx context.Context, id string) error

		CreateTeam(ctx context.Context, team Team) (Team, error)
		GetTeamByJoinCode(ctx context.Context, eventID, joinCode string) (Team, error)
		SetRegistrationTeam(ctx context.Context, registrationID, teamID string) error

		CreateAward(ctx context.Context, a Award) (Award, error)
		QueryAwards(ctx context.Context, eventID string) ([]Award, error)
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

func (svc *Service) GetBySlug(ctx context.Context, slug string) (Event, error) {
	return svc.repo.GetEvent(ctx, GetFilter{Slug: core.CleanString(slug, true /* lower */)})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEvent(ctx, GetFilter{ID: id})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryEvents(ctx)
}

// LiveEvent returns the current live event, or ErrNotFound if none is live.
func (svc *Service) LiveEvent(ctx context.Context) (Event, error) {
	events, err := svc.repo.QueryEvents(ctx, StatusLive)
	if err != nil {
		return Event{}, err
	}
	if len(events) == 0 {
		return Event{}, ErrNotFound
	}
	return events[0], nil
}

func (svc *Service) Create(ctx context.Context, actor user.User, ne NewEvent) (Event, error) {
	if !actor.IsAdmin() {
		return Event{}, user.ErrPermissionDenied
	}
	if err := ne.Validate(); err != nil {
		return Event{}, err
	}
	ev := Event{
		Slug:        ne.Slug,
		Title:       ne.Title,
		Type:        ne.Type,
		Status:      StatusUpcoming,
		Description: ne.Description,
		Theme:       ne.Theme,
		Config:      ne.Config,
	}
	ev, err := svc.repo.CreateEvent(ctx, ev)
	if err != nil {
		return Event{}, err
	}
	svc.reval.Revalidate("/events", "/admin/events")
	return ev, nil
}

// SetStatus moves the event through its upcoming -> live -> past lifecycle.
func (svc *Service) SetStatus(ctx context.Context, actor user.User, eventID string, status Status) (Event, error) {
	if !actor.IsAdmin() {
		return Event{}, user.ErrPermissionDenied
	}
	if !status.IsValid() {
		return Event{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid event status"})
	}
	ev, err := svc.repo.UpdateEventStatus(ctx, eventID, status)
	if err != nil {
		return Event{}, err
	}
	svc.reval.Revalidate("/events", "/dashboard", "/admin/events/"+ev.Slug)
	return ev, nil
}

// Register signs the actor up for the event, carrying their ranked domain
// preferences. One registration per (user, event).
func (svc *Service) Register(ctx context.Context, actor user.User, eventID string, nr NewRegistration) (Registration, error) {
	if err := nr.Validate(); err != nil {
		return Registration{}, err
	}
	reg := Registration{
		UserID:           actor.ID,
		EventID:          eventID,
		Status:           "pending",
		DomainPriorities: nr.DomainPriorities,
		CustomAnswers:    nr.CustomAnswers,
	}
	reg, err := svc.repo.CreateRegistration(ctx, reg)
	if err != nil {
		return Registration{}, err
	}
	svc.reval.Revalidate("/dashboard")
	return reg, nil
}

func (svc *Service) RegistrationFor(ctx context.Context, userID, eventID string) (Registration, error) {
	return svc.repo.GetRegistration(ctx, userID, eventID)
}

func (svc *Service) Registrants(ctx context.Context, actor user.User, eventID string) ([]Registrant, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrPermissionDenied
	}
	return svc.repo.QueryRegistrants(ctx, eventID)
}

// PreviewRoster parses an uploaded spreadsheet and matches its email column
// against the event's registrations, without writing anything.
func (svc *Service) PreviewRoster(ctx context.Context, actor user.User, eventID, filename string, data []byte) (RosterPreview, error) {
	if !actor.IsAdmin() {
		return RosterPreview{}, user.ErrPermissionDenied
	}
	emails, err := ParseRosterEmails(filename, data)
	if err != nil {
		return RosterPreview{}, err
	}
	regs, err := svc.repo.QueryRegistrants(ctx, eventID)
	if err != nil {
		return RosterPreview{}, err
	}
	return MatchRoster(emails, regs), nil
}

// AssignDomain assigns a single registration to a domain. Re-assignment overwrites.
func (svc *Service) AssignDomain(ctx context.Context, actor user.User, registrationID, domain string) error {
	if !actor.IsAdmin() {
		return user.ErrPermissionDenied
	}
	domain = core.CleanString(domain)
	if domain == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "domain", Error: "please select a domain"})
	}
	n, err := svc.repo.AssignDomain(ctx, domain, []string{registrationID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRegistrationNotFound
	}
	svc.reval.Revalidate("/admin/events")
	return nil
}

// BulkAssignDomain assigns the same domain to every given registration in one
// batch. It refuses to run with no domain selected or no valid targets.
func (svc *Service) BulkAssignDomain(ctx context.Context, actor user.User, eventID, domain string, registrationIDs []string) (int, error) {
	if !actor.IsAdmin() {
		return 0, user.ErrPermissionDenied
	}
	domain = core.CleanString(domain)
	if domain == "" {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "domain", Error: "please select a domain"})
	}
	if len(registrationIDs) == 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "registration_ids", Error: "no valid users to assign"})
	}

	n, err := svc.repo.AssignDomain(ctx, domain, registrationIDs)
	if err != nil {
		return 0, err
	}
	svc.logger.Info("bulk domain assignment", map[string]interface{}{
		"event": eventID, "domain": domain, "assigned": n,
	})
	svc.reval.Revalidate("/admin/events")
	return n, nil
}

// RemoveRegistration deletes a participant's registration and, by cascade,
// their checkpoints.
func (svc *Service) RemoveRegistration(ctx context.Context, actor user.User, registrationID string) error {
	if !actor.IsAdmin() {
		return user.ErrPermissionDenied
	}
	if err := svc.repo.DeleteRegistration(ctx, registrationID); err != nil {
		return err
	}
	svc.reval.Revalidate("/admin/events")
	return nil
}

// CreateTeam creates a team for the event with a fresh join code and attaches
// the actor's registration to it.
func (svc *Service) CreateTeam(ctx context.Context, actor user.User, eventID, name string) (Team, error) {
	name = core.CleanString(name)
	if name == "" {
		return Team{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: "team name is required"})
	}
	reg, err := svc.repo.GetRegistration(ctx, actor.ID, eventID)
	if err != nil {
		return Team{}, err
	}

	team := Team{
		EventID:   eventID,
		Name:      name,
		JoinCode:  newJoinCode(),
		CreatedBy: actor.ID,
	}
	team, err = svc.repo.CreateTeam(ctx, team)
	if err != nil {
		return Team{}, err
	}
	if err := svc.repo.SetRegistrationTeam(ctx, reg.ID, team.ID); err != nil {
		return Team{}, err
	}
	return team, nil
}

// JoinTeam attaches the actor's registration to the team matching the join code.
func (svc *Service) JoinTeam(ctx context.Context, actor user.User, eventID, joinCode string) (Team, error) {
	reg, err := svc.repo.GetRegistration(ctx, actor.ID, eventID)
	if err != nil {
		return Team{}, err
	}
	team, err := svc.repo.GetTeamByJoinCode(ctx, eventID, strings.ToUpper(core.CleanString(joinCode)))
	if err != nil {
		return Team{}, err
	}
	if err := svc.repo.SetRegistrationTeam(ctx, reg.ID, team.ID); err != nil {
		return Team{}, err
	}
	return team, nil
}

func (svc *Service) AddAward(ctx context.Context, actor user.User, eventID string, na NewAward) (Award, error) {
	if !actor.IsAdmin() {
		return Award{}, user.ErrPermissionDenied
	}
	if err := na.Validate(); err != nil {
		return Award{}, err
	}
	if _, err := svc.repo.GetEvent(ctx, GetFilter{ID: eventID}); err != nil {
		return Award{}, err
	}
	award, err := svc.repo.CreateAward(ctx, Award{
		EventID:     eventID,
		TeamID:      na.TeamID,
		UserID:      na.UserID,
		Title:       na.Title,
		Rank:        na.Rank,
		Description: na.Description,
		Category:    na.Category,
	})
	if err != nil {
		return Award{}, err
	}
	svc.reval.Revalidate("/events/" + eventID)
	return award, nil
}

func (svc *Service) Awards(ctx context.Context, eventID string) ([]Award, error) {
	return svc.repo.QueryAwards(ctx, eventID)
}

func newJoinCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
