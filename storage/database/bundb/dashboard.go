package bunrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/roadmap"
)

type dashboardRepo struct {
	db *bun.DB
}

var _ dashboard.Repository = (*dashboardRepo)(nil)

func NewDashboardRepository(db *bun.DB) dashboard.Repository {
	return &dashboardRepo{db: db}
}

func (repo *dashboardRepo) CountRegistrations(ctx context.Context, userID string) (int, error) {
	n, err := repo.db.NewSelect().
		Model((*dbRegistration)(nil)).
		Where("r.user_id = ?", userID).
		Count(ctx)
	return n, errors.Wrap(err, "counting registrations")
}

func (repo *dashboardRepo) CountCheckpoints(ctx context.Context, userID string) (int, error) {
	n, err := repo.db.NewSelect().
		Model((*dbCheckpoint)(nil)).
		Join("JOIN registrations AS r ON r.id = cp.registration_id").
		Where("r.user_id = ?", userID).
		Count(ctx)
	return n, errors.Wrap(err, "counting checkpoints")
}

func (repo *dashboardRepo) QueryRecentCheckpoints(ctx context.Context, userID string, limit int) ([]dashboard.RecentCheckpoint, error) {
	var rows []struct {
		ID         string    `bun:"id"`
		WeekNumber int       `bun:"week_number"`
		IsApproved *bool     `bun:"is_approved"`
		CreatedAt  time.Time `bun:"created_at"`
		EventTitle string    `bun:"event_title"`
		EventSlug  string    `bun:"event_slug"`
	}
	err := repo.db.NewSelect().
		TableExpr("checkpoints AS cp").
		Join("JOIN registrations AS r ON r.id = cp.registration_id").
		Join("JOIN events AS e ON e.id = r.event_id").
		ColumnExpr("cp.id, cp.week_number, cp.is_approved, cp.created_at").
		ColumnExpr("e.title AS event_title, e.slug AS event_slug").
		Where("r.user_id = ?", userID).
		OrderExpr("cp.created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent checkpoints")
	}

	recent := make([]dashboard.RecentCheckpoint, 0, len(rows))
	for _, row := range rows {
		cp := roadmap.Checkpoint{IsApproved: row.IsApproved}
		recent = append(recent, dashboard.RecentCheckpoint{
			ID:         row.ID,
			WeekNumber: row.WeekNumber,
			Status:     cp.Status(),
			EventTitle: row.EventTitle,
			EventSlug:  row.EventSlug,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return recent, nil
}
