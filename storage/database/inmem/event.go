package inmemdb

import (
	"context"
	"sort"

	"github.com/MSTC-DAU/mstc/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ev.ID = newPK()
	ev.CreatedAt = now()
	repo.db.events[ev.ID] = &ev
	return ev, nil
}

func (repo *eventRepository) GetEvent(ctx context.Context, filter event.GetFilter) (event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.ID != "" {
		if ev, ok := repo.db.events[filter.ID]; ok {
			return *ev, nil
		}
		return event.Event{}, event.ErrNotFound
	}
	for _, ev := range repo.db.events {
		if ev.Slug == filter.Slug {
			return *ev, nil
		}
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) QueryEvents(ctx context.Context, statuses ...event.Status) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]event.Event, 0, len(repo.db.events))
	for _, ev := range repo.db.events {
		if len(statuses) == 0 {
			events = append(events, *ev)
			continue
		}
		for _, status := range statuses {
			if ev.Status == status {
				events = append(events, *ev)
				break
			}
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return events, nil
}

func (repo *eventRepository) UpdateEventStatus(ctx context.Context, id string, status event.Status) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ev, ok := repo.db.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	ev.Status = status
	return *ev, nil
}

func (repo *eventRepository) CreateRegistration(ctx context.Context, reg event.Registration) (event.Registration, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, r := range repo.db.registrations {
		if r.UserID == reg.UserID && r.EventID == reg.EventID {
			return event.Registration{}, event.ErrAlreadyRegistered
		}
	}
	reg.ID = newPK()
	reg.CreatedAt = now()
	repo.db.registrations[reg.ID] = &reg
	return reg, nil
}

func (repo *eventRepository) GetRegistration(ctx context.Context, userID, eventID string) (event.Registration, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, reg := range repo.db.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			return *reg, nil
		}
	}
	return event.Registration{}, event.ErrRegistrationNotFound
}

func (repo *eventRepository) QueryRegistrants(ctx context.Context, eventID string) ([]event.Registrant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	registrants := make([]event.Registrant, 0)
	for _, reg := range repo.db.registrations {
		if reg.EventID != eventID {
			continue
		}
		registrant := event.Registrant{Registration: *reg}
		if usr, ok := repo.db.users[reg.UserID]; ok {
			registrant.UserName = usr.Name
			registrant.UserEmail = usr.Email
		}
		registrants = append(registrants, registrant)
	}
	sort.Slice(registrants, func(i, j int) bool {
		return registrants[i].CreatedAt.Before(registrants[j].CreatedAt)
	})
	return registrants, nil
}

func (repo *eventRepository) AssignDomain(ctx context.Context, domain string, registrationIDs []string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n := 0
	for _, id := range registrationIDs {
		if reg, ok := repo.db.registrations[id]; ok {
			reg.AssignedDomain = domain
			n++
		}
	}
	return n, nil
}

func (repo *eventRepository) DeleteRegistration(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.registrations[id]; !ok {
		return event.ErrRegistrationNotFound
	}
	delete(repo.db.registrations, id)
	for cpID, cp := range repo.db.checkpoints {
		if cp.RegistrationID == id {
			delete(repo.db.checkpoints, cpID)
		}
	}
	return nil
}

func (repo *eventRepository) CreateTeam(ctx context.Context, team event.Team) (event.Team, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	team.ID = newPK()
	team.CreatedAt = now()
	repo.db.teams[team.ID] = &team
	return team, nil
}

func (repo *eventRepository) GetTeamByJoinCode(ctx context.Context, eventID, joinCode string) (event.Team, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, team := range repo.db.teams {
		if team.EventID == eventID && team.JoinCode == joinCode {
			return *team, nil
		}
	}
	return event.Team{}, event.ErrTeamNotFound
}

func (repo *eventRepository) SetRegistrationTeam(ctx context.Context, registrationID, teamID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	reg, ok := repo.db.registrations[registrationID]
	if !ok {
		return event.ErrRegistrationNotFound
	}
	reg.TeamID = teamID
	return nil
}

func (repo *eventRepository) CreateAward(ctx context.Context, a event.Award) (event.Award, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a.ID = newPK()
	a.CreatedAt = now()
	repo.db.awards[a.ID] = &a
	return a, nil
}

func (repo *eventRepository) QueryAwards(ctx context.Context, eventID string) ([]event.Award, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	awards := make([]event.Award, 0)
	for _, award := range repo.db.awards {
		if award.EventID == eventID {
			awards = append(awards, *award)
		}
	}
	sort.Slice(awards, func(i, j int) bool { return awards[i].Rank < awards[j].Rank })
	return awards, nil
}
