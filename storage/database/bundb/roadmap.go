package bunrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/roadmap"
)

type roadmapRepo struct {
	db *bun.DB
}

var _ roadmap.Repository = (*roadmapRepo)(nil)

func NewRoadmapRepository(db *bun.DB) roadmap.Repository {
	return &roadmapRepo{db: db}
}

func (repo *roadmapRepo) CreateRoadmap(ctx context.Context, rm roadmap.Roadmap) (roadmap.Roadmap, error) {
	row := dbRoadmap{
		EventID: rm.EventID,
		Domain:  rm.Domain,
		Content: rm.Weeks,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return roadmap.Roadmap{}, errors.Wrap(err, "creating roadmap")
	}
	return row.unbox(), nil
}

func (repo *roadmapRepo) GetRoadmap(ctx context.Context, eventID, domain string) (roadmap.Roadmap, error) {
	var row dbRoadmap
	q := repo.db.NewSelect().Model(&row).Where("rm.event_id = ?", eventID)
	if domain != "" {
		q = q.Where("rm.domain = ?", domain)
	}
	if err := q.Order("created_at DESC").Limit(1).Scan(ctx); err != nil {
		return roadmap.Roadmap{}, trapNoRowsErr(err, roadmap.ErrNotFound)
	}
	return row.unbox(), nil
}

func (repo *roadmapRepo) QueryRoadmaps(ctx context.Context) ([]roadmap.Roadmap, error) {
	var rows []dbRoadmap
	err := repo.db.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying roadmaps")
	}
	roadmaps := make([]roadmap.Roadmap, 0, len(rows))
	for i := range rows {
		roadmaps = append(roadmaps, rows[i].unbox())
	}
	return roadmaps, nil
}

func (repo *roadmapRepo) CreateCheckpoint(ctx context.Context, cp roadmap.Checkpoint) (roadmap.Checkpoint, error) {
	row := dbCheckpoint{
		RegistrationID:    cp.RegistrationID,
		WeekNumber:        cp.WeekNumber,
		SubmissionContent: cp.SubmissionContent,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return roadmap.Checkpoint{}, errors.Wrap(err, "creating checkpoint")
	}
	return row.unbox(), nil
}

func (repo *roadmapRepo) QueryCheckpoints(ctx context.Context, registrationID string) ([]roadmap.Checkpoint, error) {
	var rows []dbCheckpoint
	err := repo.db.NewSelect().
		Model(&rows).
		Where("cp.registration_id = ?", registrationID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying checkpoints")
	}
	cps := make([]roadmap.Checkpoint, 0, len(rows))
	for i := range rows {
		cps = append(cps, rows[i].unbox())
	}
	return cps, nil
}

func (repo *roadmapRepo) UpdateCheckpointReview(ctx context.Context, id, feedback string, approved *bool) (roadmap.ReviewedCheckpoint, error) {
	var row dbCheckpoint
	res, err := repo.db.NewUpdate().
		Model(&row).
		Set("mentor_feedback = ?", feedback).
		Set("is_approved = ?", approved).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return roadmap.ReviewedCheckpoint{}, errors.Wrap(err, "updating checkpoint review")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roadmap.ReviewedCheckpoint{}, roadmap.ErrCheckpointNotFound
	}

	rc := roadmap.ReviewedCheckpoint{Checkpoint: row.unbox()}
	var joined struct {
		Name       string `bun:"name"`
		Email      string `bun:"email"`
		EventTitle string `bun:"event_title"`
	}
	err = repo.db.NewSelect().
		TableExpr("registrations AS r").
		Join(`JOIN "user" AS u ON u.id = r.user_id`).
		Join("JOIN events AS e ON e.id = r.event_id").
		ColumnExpr("u.name, u.email, e.title AS event_title").
		Where("r.id = ?", row.RegistrationID).
		Scan(ctx, &joined)
	if err != nil {
		return roadmap.ReviewedCheckpoint{}, errors.Wrap(err, "joining checkpoint participant")
	}
	rc.ParticipantName = joined.Name
	rc.ParticipantEmail = joined.Email
	rc.EventTitle = joined.EventTitle
	return rc, nil
}
