package inmemdb

import (
	"context"
	"sort"

	"github.com/MSTC-DAU/mstc/core/roadmap"
)

type roadmapRepository struct {
	db *DB
}

var _ roadmap.Repository = (*roadmapRepository)(nil)

func NewRoadmapRepository(db *DB) roadmap.Repository {
	return &roadmapRepository{db: db}
}

func (repo *roadmapRepository) CreateRoadmap(ctx context.Context, rm roadmap.Roadmap) (roadmap.Roadmap, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rm.ID = newPK()
	rm.CreatedAt = now()
	repo.db.roadmaps[rm.ID] = &rm
	return rm, nil
}

func (repo *roadmapRepository) GetRoadmap(ctx context.Context, eventID, domain string) (roadmap.Roadmap, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, rm := range repo.db.roadmaps {
		if rm.EventID != eventID {
			continue
		}
		if domain == "" || rm.Domain == domain {
			return *rm, nil
		}
	}
	return roadmap.Roadmap{}, roadmap.ErrNotFound
}

func (repo *roadmapRepository) QueryRoadmaps(ctx context.Context) ([]roadmap.Roadmap, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	roadmaps := make([]roadmap.Roadmap, 0, len(repo.db.roadmaps))
	for _, rm := range repo.db.roadmaps {
		roadmaps = append(roadmaps, *rm)
	}
	sort.Slice(roadmaps, func(i, j int) bool { return roadmaps[i].CreatedAt.After(roadmaps[j].CreatedAt) })
	return roadmaps, nil
}

func (repo *roadmapRepository) CreateCheckpoint(ctx context.Context, cp roadmap.Checkpoint) (roadmap.Checkpoint, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp.ID = newPK()
	cp.CreatedAt = now()
	repo.db.checkpoints[cp.ID] = &cp
	return cp, nil
}

func (repo *roadmapRepository) QueryCheckpoints(ctx context.Context, registrationID string) ([]roadmap.Checkpoint, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cps := make([]roadmap.Checkpoint, 0)
	for _, cp := range repo.db.checkpoints {
		if cp.RegistrationID == registrationID {
			cps = append(cps, *cp)
		}
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i].CreatedAt.Before(cps[j].CreatedAt) })
	return cps, nil
}

func (repo *roadmapRepository) UpdateCheckpointReview(ctx context.Context, id, feedback string, approved *bool) (roadmap.ReviewedCheckpoint, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp, ok := repo.db.checkpoints[id]
	if !ok {
		return roadmap.ReviewedCheckpoint{}, roadmap.ErrCheckpointNotFound
	}
	cp.MentorFeedback = feedback
	cp.IsApproved = approved

	rc := roadmap.ReviewedCheckpoint{Checkpoint: *cp}
	if reg, ok := repo.db.registrations[cp.RegistrationID]; ok {
		if usr, ok := repo.db.users[reg.UserID]; ok {
			rc.ParticipantName = usr.Name
			rc.ParticipantEmail = usr.Email
		}
		if ev, ok := repo.db.events[reg.EventID]; ok {
			rc.EventTitle = ev.Title
		}
	}
	return rc, nil
}
