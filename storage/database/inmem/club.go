package inmemdb

import (
	"context"
	"sort"

	"github.com/MSTC-DAU/mstc/core/club"
)

type clubRepository struct {
	db *DB
}

var _ club.Repository = (*clubRepository)(nil)

func NewClubRepository(db *DB) club.Repository {
	return &clubRepository{db: db}
}

func (repo *clubRepository) CreateMentor(ctx context.Context, m club.Mentor) (club.Mentor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	m.ID = newPK()
	m.CreatedAt = now()
	repo.db.mentors[m.ID] = &m
	return m, nil
}

func (repo *clubRepository) QueryMentors(ctx context.Context) ([]club.Mentor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	mentors := make([]club.Mentor, 0, len(repo.db.mentors))
	for _, m := range repo.db.mentors {
		mentors = append(mentors, *m)
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].CreatedAt.Before(mentors[j].CreatedAt) })
	return mentors, nil
}

func (repo *clubRepository) DeleteMentor(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.mentors[id]; !ok {
		return club.ErrMentorNotFound
	}
	delete(repo.db.mentors, id)
	return nil
}

func (repo *clubRepository) SetHeaderPhoto(ctx context.Context, photo club.TeamPhoto) (club.TeamPhoto, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, p := range repo.db.photos {
		p.IsHeader = false
	}
	photo.ID = newPK()
	photo.IsHeader = true
	photo.CreatedAt = now()
	repo.db.photos[photo.ID] = &photo
	return photo, nil
}

func (repo *clubRepository) GetHeaderPhoto(ctx context.Context) (club.TeamPhoto, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.db.photos {
		if p.IsHeader {
			return *p, nil
		}
	}
	return club.TeamPhoto{}, club.ErrNoHeaderPhoto
}

func (repo *clubRepository) UnsetHeaderPhotos(ctx context.Context) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, p := range repo.db.photos {
		p.IsHeader = false
	}
	return nil
}

func (repo *clubRepository) CreateLegacyNote(ctx context.Context, n club.LegacyNote) (club.LegacyNote, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n.ID = newPK()
	n.CreatedAt = now()
	repo.db.notes[n.ID] = &n
	return n, nil
}

func (repo *clubRepository) QueryLegacyNotes(ctx context.Context) ([]club.LegacyNote, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notes := make([]club.LegacyNote, 0, len(repo.db.notes))
	for _, note := range repo.db.notes {
		notes = append(notes, *note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}
