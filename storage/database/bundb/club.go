package bunrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/club"
)

type clubRepo struct {
	db *bun.DB
}

var _ club.Repository = (*clubRepo)(nil)

func NewClubRepository(db *bun.DB) club.Repository {
	return &clubRepo{db: db}
}

func (repo *clubRepo) CreateMentor(ctx context.Context, m club.Mentor) (club.Mentor, error) {
	row := dbMentor{
		Name:       m.Name,
		Role:       m.Role,
		Image:      m.Image,
		LinkedinID: m.LinkedinID,
		GithubID:   m.GithubID,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return club.Mentor{}, errors.Wrap(err, "creating mentor")
	}
	return row.unbox(), nil
}

func (repo *clubRepo) QueryMentors(ctx context.Context) ([]club.Mentor, error) {
	var rows []dbMentor
	err := repo.db.NewSelect().Model(&rows).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying mentors")
	}
	mentors := make([]club.Mentor, 0, len(rows))
	for i := range rows {
		mentors = append(mentors, rows[i].unbox())
	}
	return mentors, nil
}

func (repo *clubRepo) DeleteMentor(ctx context.Context, id string) error {
	res, err := repo.db.NewDelete().
		Model((*dbMentor)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deleting mentor")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return club.ErrMentorNotFound
	}
	return nil
}

// SetHeaderPhoto clears every header flag and inserts the new header row in
// one transaction so at most one photo ever carries the flag.
func (repo *clubRepo) SetHeaderPhoto(ctx context.Context, photo club.TeamPhoto) (club.TeamPhoto, error) {
	row := dbTeamPhoto{
		URL:         photo.URL,
		Description: photo.Description,
		IsHeader:    true,
	}
	err := repo.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*dbTeamPhoto)(nil)).
			Set("is_header = false").
			Where("is_header = true").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "unsetting header photos")
		}
		_, err = tx.NewInsert().Model(&row).Returning("*").Exec(ctx)
		return errors.Wrap(err, "inserting header photo")
	})
	if err != nil {
		return club.TeamPhoto{}, err
	}
	return row.unbox(), nil
}

func (repo *clubRepo) GetHeaderPhoto(ctx context.Context) (club.TeamPhoto, error) {
	var row dbTeamPhoto
	err := repo.db.NewSelect().
		Model(&row).
		Where("tp.is_header = true").
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return club.TeamPhoto{}, trapNoRowsErr(err, club.ErrNoHeaderPhoto)
	}
	return row.unbox(), nil
}

func (repo *clubRepo) UnsetHeaderPhotos(ctx context.Context) error {
	_, err := repo.db.NewUpdate().
		Model((*dbTeamPhoto)(nil)).
		Set("is_header = false").
		Where("is_header = true").
		Exec(ctx)
	return errors.Wrap(err, "unsetting header photos")
}

func (repo *clubRepo) CreateLegacyNote(ctx context.Context, n club.LegacyNote) (club.LegacyNote, error) {
	row := dbLegacyNote{
		UserID:  n.UserID,
		Content: n.Content,
		Role:    n.Role,
		Tenure:  n.Tenure,
	}
	if _, err := repo.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return club.LegacyNote{}, errors.Wrap(err, "creating legacy note")
	}
	return row.unbox(), nil
}

func (repo *clubRepo) QueryLegacyNotes(ctx context.Context) ([]club.LegacyNote, error) {
	var rows []dbLegacyNote
	err := repo.db.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying legacy notes")
	}
	notes := make([]club.LegacyNote, 0, len(rows))
	for i := range rows {
		notes = append(notes, rows[i].unbox())
	}
	return notes, nil
}
