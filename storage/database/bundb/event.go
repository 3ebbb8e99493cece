package bunrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/event"
)

type eventRepo struct {
	db *bun.DB
}

var _ event.Repository = (*eventRepo)(nil)

func NewEventRepository(db *bun.DB) event.Repository {
	return &eventRepo{db: db}
}

func (repo *eventRepo) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	row := boxEvent(ev)
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return event.Event{}, errors.Wrap(err, "creating event")
	}
	return row.unbox(), nil
}

func (repo *eventRepo) GetEvent(ctx context.Context, filter event.GetFilter) (event.Event, error) {
	var row dbEvent
	q := repo.db.NewSelect().Model(&row)
	switch {
	case filter.ID != "":
		q = q.Where("e.id = ?", filter.ID)
	case filter.Slug != "":
		q = q.Where("e.slug = ?", filter.Slug)
	default:
		return event.Event{}, event.ErrNotFound
	}
	if err := q.Scan(ctx); err != nil {
		return event.Event{}, trapNoRowsErr(err, event.ErrNotFound)
	}
	return row.unbox(), nil
}

func (repo *eventRepo) QueryEvents(ctx context.Context, statuses ...event.Status) ([]event.Event, error) {
	var rows []dbEvent
	q := repo.db.NewSelect().Model(&rows).Order("created_at DESC")
	if len(statuses) > 0 {
		q = q.Where("e.status IN (?)", bun.In(statuses))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]event.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].unbox())
	}
	return events, nil
}

func (repo *eventRepo) UpdateEventStatus(ctx context.Context, id string, status event.Status) (event.Event, error) {
	var row dbEvent
	res, err := repo.db.NewUpdate().
		Model(&row).
		Set("status = ?", status).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return row.unbox(), nil
}

func (repo *eventRepo) CreateRegistration(ctx context.Context, reg event.Registration) (event.Registration, error) {
	row := boxRegistration(reg)
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return event.Registration{}, event.ErrAlreadyRegistered
		}
		return event.Registration{}, errors.Wrap(err, "creating registration")
	}
	return row.unbox(), nil
}

func (repo *eventRepo) GetRegistration(ctx context.Context, userID, eventID string) (event.Registration, error) {
	var row dbRegistration
	err := repo.db.NewSelect().
		Model(&row).
		Where("r.user_id = ?", userID).
		Where("r.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		return event.Registration{}, trapNoRowsErr(err, event.ErrRegistrationNotFound)
	}
	return row.unbox(), nil
}

func (repo *eventRepo) QueryRegistrants(ctx context.Context, eventID string) ([]event.Registrant, error) {
	var rows []dbRegistration
	err := repo.db.NewSelect().
		Model(&rows).
		Relation("User").
		Where("r.event_id = ?", eventID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying registrants")
	}

	registrants := make([]event.Registrant, 0, len(rows))
	for i := range rows {
		registrant := event.Registrant{Registration: rows[i].unbox()}
		if rows[i].User != nil {
			registrant.UserName = rows[i].User.Name
			registrant.UserEmail = rows[i].User.Email
		}
		registrants = append(registrants, registrant)
	}
	return registrants, nil
}

func (repo *eventRepo) AssignDomain(ctx context.Context, domain string, registrationIDs []string) (int, error) {
	res, err := repo.db.NewUpdate().
		Model((*dbRegistration)(nil)).
		Set("assigned_domain = ?", domain).
		Where("id IN (?)", bun.In(registrationIDs)).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "assigning domain")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (repo *eventRepo) DeleteRegistration(ctx context.Context, id string) error {
	res, err := repo.db.NewDelete().
		Model((*dbRegistration)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deleting registration")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.ErrRegistrationNotFound
	}
	return nil
}

func (repo *eventRepo) CreateTeam(ctx context.Context, team event.Team) (event.Team, error) {
	row := dbTeam{
		EventID:   team.EventID,
		Name:      team.Name,
		JoinCode:  team.JoinCode,
		CreatedBy: team.CreatedBy,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return event.Team{}, errors.Wrap(err, "creating team")
	}
	return row.unbox(), nil
}

func (repo *eventRepo) GetTeamByJoinCode(ctx context.Context, eventID, joinCode string) (event.Team, error) {
	var row dbTeam
	err := repo.db.NewSelect().
		Model(&row).
		Where("t.event_id = ?", eventID).
		Where("t.join_code = ?", joinCode).
		Scan(ctx)
	if err != nil {
		return event.Team{}, trapNoRowsErr(err, event.ErrTeamNotFound)
	}
	return row.unbox(), nil
}

func (repo *eventRepo) SetRegistrationTeam(ctx context.Context, registrationID, teamID string) error {
	res, err := repo.db.NewUpdate().
		Model((*dbRegistration)(nil)).
		Set("team_id = ?", teamID).
		Where("id = ?", registrationID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "attaching registration to team")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.ErrRegistrationNotFound
	}
	return nil
}

func (repo *eventRepo) CreateAward(ctx context.Context, a event.Award) (event.Award, error) {
	row := dbAward{
		EventID:     a.EventID,
		TeamID:      a.TeamID,
		UserID:      a.UserID,
		Title:       a.Title,
		Rank:        a.Rank,
		Description: a.Description,
		Category:    a.Category,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return event.Award{}, errors.Wrap(err, "creating award")
	}
	return row.unbox(), nil
}

func (repo *eventRepo) QueryAwards(ctx context.Context, eventID string) ([]event.Award, error) {
	var rows []dbAward
	err := repo.db.NewSelect().
		Model(&rows).
		Where("aw.event_id = ?", eventID).
		Order("rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying awards")
	}
	awards := make([]event.Award, 0, len(rows))
	for i := range rows {
		awards = append(awards, rows[i].unbox())
	}
	return awards, nil
}
