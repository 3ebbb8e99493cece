package club

import (
	"context"

	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
)

var (
	// errors
	ErrMentorNotFound = errors.New("mentor not found")
	ErrNoHeaderPhoto  = errors.New("no header photo set")
)

type (
	Repository interface {
		CreateMentor(ctx context.Context, m Mentor) (Mentor, error)
		QueryMentors(ctx context.Context) ([]Mentor, error)
		DeleteMentor(ctx context.Context, id string) error

		// SetHeaderPhoto unsets every existing header flag and inserts the new
		// header row in a single transaction.
		SetHeaderPhoto(ctx context.Context, photo TeamPhoto) (TeamPhoto, error)
		GetHeaderPhoto(ctx context.Context) (TeamPhoto, error)
		UnsetHeaderPhotos(ctx context.Context) error

		CreateLegacyNote(ctx context.Context, n LegacyNote) (LegacyNote, error)
		QueryLegacyNotes(ctx context.Context) ([]LegacyNote, error)
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

func (svc *Service) AddMentor(ctx context.Context, actor user.User, nm NewMentor) (Mentor, error) {
	if !actor.IsAdmin() {
		return Mentor{}, user.ErrPermissionDenied
	}
	if err := nm.Validate(); err != nil {
		return Mentor{}, err
	}
	m, err := svc.repo.CreateMentor(ctx, Mentor{
		Name:       nm.Name,
		Role:       nm.Role,
		Image:      nm.Image,
		LinkedinID: nm.LinkedinID,
		GithubID:   nm.GithubID,
	})
	if err != nil {
		return Mentor{}, err
	}
	svc.reval.Revalidate("/team", "/admin/team")
	return m, nil
}

func (svc *Service) DeleteMentor(ctx context.Context, actor user.User, id string) error {
	if !actor.IsAdmin() {
		return user.ErrPermissionDenied
	}
	if err := svc.repo.DeleteMentor(ctx, id); err != nil {
		return err
	}
	svc.reval.Revalidate("/team", "/admin/team")
	return nil
}

// Mentors is public; a failed read degrades to an empty list with a warning.
func (svc *Service) Mentors(ctx context.Context) []Mentor {
	mentors, err := svc.repo.QueryMentors(ctx)
	if err != nil {
		svc.logger.Warn("querying mentors", err)
		return []Mentor{}
	}
	return mentors
}

// SetHeaderPhoto designates url as the single featured team photo. The
// repository clears all other header flags in the same transaction.
func (svc *Service) SetHeaderPhoto(ctx context.Context, actor user.User, url string) (TeamPhoto, error) {
	if !actor.IsAdmin() {
		return TeamPhoto{}, user.ErrPermissionDenied
	}
	url = core.CleanString(url)
	if url == "" {
		return TeamPhoto{}, core.NewValidationError(nil, core.FieldError{Field: "url", Error: "url is required"})
	}
	photo, err := svc.repo.SetHeaderPhoto(ctx, TeamPhoto{
		URL:         url,
		Description: "Team Header Photo",
		IsHeader:    true,
	})
	if err != nil {
		return TeamPhoto{}, err
	}
	svc.reval.Revalidate("/team", "/admin/team")
	return photo, nil
}

func (svc *Service) RemoveHeaderPhoto(ctx context.Context, actor user.User) error {
	if !actor.IsAdmin() {
		return user.ErrPermissionDenied
	}
	if err := svc.repo.UnsetHeaderPhotos(ctx); err != nil {
		return err
	}
	svc.reval.Revalidate("/team", "/admin/team")
	return nil
}

func (svc *Service) HeaderPhoto(ctx context.Context) (TeamPhoto, error) {
	return svc.repo.GetHeaderPhoto(ctx)
}

func (svc *Service) AddLegacyNote(ctx context.Context, actor user.User, nn NewLegacyNote) (LegacyNote, error) {
	if !actor.IsAdmin() {
		return LegacyNote{}, user.ErrPermissionDenied
	}
	if err := nn.Validate(); err != nil {
		return LegacyNote{}, err
	}
	note, err := svc.repo.CreateLegacyNote(ctx, LegacyNote{
		UserID:  nn.UserID,
		Content: nn.Content,
		Role:    nn.Role,
		Tenure:  nn.Tenure,
	})
	if err != nil {
		return LegacyNote{}, err
	}
	svc.reval.Revalidate("/team")
	return note, nil
}

// LegacyNotes is public; a failed read degrades to an empty list.
func (svc *Service) LegacyNotes(ctx context.Context) []LegacyNote {
	notes, err := svc.repo.QueryLegacyNotes(ctx)
	if err != nil {
		svc.logger.Warn("querying legacy notes", err)
		return []LegacyNote{}
	}
	return notes
}
