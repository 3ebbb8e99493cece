package dashboard

import (
	"context"
	"time"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/user"
)

// RecentCheckpoint is one row of the dashboard's recent-activity feed:
// a checkpoint joined with its event.
type RecentCheckpoint struct {
	ID         string             `json:"id"`
	WeekNumber int                `json:"week_number"`
	Status     roadmap.WeekStatus `json:"status"`
	EventTitle string             `json:"event_title"`
	EventSlug  string             `json:"event_slug"`
	CreatedAt  time.Time          `json:"created_at"` // UTC
}

// Overview is the typed dashboard projection.
type Overview struct {
	XPPoints         int                `json:"xp_points"`
	ActiveEvents     int                `json:"active_events"`
	TotalSubmissions int                `json:"total_submissions"`
	Recent           []RecentCheckpoint `json:"recent"`
	LiveEvent        *event.Event       `json:"live_event,omitempty"`
}

const recentLimit = 3

type (
	Repository interface {
		CountRegistrations(ctx context.Context, userID string) (int, error)
		CountCheckpoints(ctx context.Context, userID string) (int, error)
		// QueryRecentCheckpoints returns the user's newest checkpoints across
		// all registrations, joined with their events, newest first.
		QueryRecentCheckpoints(ctx context.Context, userID string, limit int) ([]RecentCheckpoint, error)
	}

	// EventDirectory is the slice of the event service the dashboard needs.
	EventDirectory interface {
		LiveEvent(ctx context.Context) (event.Event, error)
	}

	Service struct {
		repo   Repository
		events EventDirectory
		logger core.Logger
	}
)

func NewService(repo Repository, events EventDirectory, logger core.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// Overview aggregates the viewer's stats. Individual read failures degrade to
// zero values with a warning; the dashboard never hard-fails.
func (svc *Service) Overview(ctx context.Context, actor user.User) Overview {
	ov := Overview{XPPoints: actor.XPPoints, Recent: []RecentCheckpoint{}}

	if n, err := svc.repo.CountRegistrations(ctx, actor.ID); err != nil {
		svc.logger.Warn("counting registrations", err, actor)
	} else {
		ov.ActiveEvents = n
	}

	if n, err := svc.repo.CountCheckpoints(ctx, actor.ID); err != nil {
		svc.logger.Warn("counting checkpoints", err, actor)
	} else {
		ov.TotalSubmissions = n
	}

	if recent, err := svc.repo.QueryRecentCheckpoints(ctx, actor.ID, recentLimit); err != nil {
		svc.logger.Warn("querying recent checkpoints", err, actor)
	} else if recent != nil {
		ov.Recent = recent
	}

	if live, err := svc.events.LiveEvent(ctx); err == nil {
		ov.LiveEvent = &live
	} else if err != event.ErrNotFound {
		svc.logger.Warn("querying live event", err)
	}

	return ov
}
