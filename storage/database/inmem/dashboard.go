package inmemdb

import (
	"context"
	"sort"

	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/roadmap"
)

type dashboardRepository struct {
	db *DB
}

var _ dashboard.Repository = (*dashboardRepository)(nil)

func NewDashboardRepository(db *DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (repo *dashboardRepository) CountRegistrations(ctx context.Context, userID string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := 0
	for _, reg := range repo.db.registrations {
		if reg.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (repo *dashboardRepository) CountCheckpoints(ctx context.Context, userID string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := 0
	for _, cp := range repo.db.checkpoints {
		if reg, ok := repo.db.registrations[cp.RegistrationID]; ok && reg.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (repo *dashboardRepository) QueryRecentCheckpoints(ctx context.Context, userID string, limit int) ([]dashboard.RecentCheckpoint, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cps := make([]roadmap.Checkpoint, 0)
	for _, cp := range repo.db.checkpoints {
		if reg, ok := repo.db.registrations[cp.RegistrationID]; ok && reg.UserID == userID {
			cps = append(cps, *cp)
		}
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i].CreatedAt.After(cps[j].CreatedAt) })
	if len(cps) > limit {
		cps = cps[:limit]
	}

	recent := make([]dashboard.RecentCheckpoint, 0, len(cps))
	for i := range cps {
		cp := cps[i]
		rc := dashboard.RecentCheckpoint{
			ID:         cp.ID,
			WeekNumber: cp.WeekNumber,
			Status:     cp.Status(),
			CreatedAt:  cp.CreatedAt,
		}
		if reg, ok := repo.db.registrations[cp.RegistrationID]; ok {
			if ev, ok := repo.db.events[reg.EventID]; ok {
				rc.EventTitle = ev.Title
				rc.EventSlug = ev.Slug
			}
		}
		recent = append(recent, rc)
	}
	return recent, nil
}
