package setting

import (
	"context"

	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
)

// Well-known setting keys.
const KeyTeamPhotoURL = "team_photo_url"

var ErrNotFound = errors.New("setting not found")

// SystemSetting is one key/value configuration row.
type SystemSetting struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type (
	Repository interface {
		GetSetting(ctx context.Context, key string) (SystemSetting, error)
		QueryAllSettings(ctx context.Context) ([]SystemSetting, error)
		// UpsertSetting inserts or updates by key.
		UpsertSetting(ctx context.Context, s SystemSetting) (SystemSetting, error)
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

// Get is public; a missing key or failed read degrades to an empty value.
func (svc *Service) Get(ctx context.Context, key string) string {
	s, err := svc.repo.GetSetting(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			svc.logger.Warn("fetching setting "+key, err)
		}
		return ""
	}
	return s.Value
}

func (svc *Service) QueryAll(ctx context.Context, actor user.User) ([]SystemSetting, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrPermissionDenied
	}
	return svc.repo.QueryAllSettings(ctx)
}

// Update upserts the setting and marks its consumer pages stale.
func (svc *Service) Update(ctx context.Context, actor user.User, key, value, description string) (SystemSetting, error) {
	if !actor.IsAdmin() {
		return SystemSetting{}, user.ErrPermissionDenied
	}
	key = core.CleanString(key, true /* lower */)
	if key == "" {
		return SystemSetting{}, core.NewValidationError(nil, core.FieldError{Field: "key", Error: "key is required"})
	}
	s, err := svc.repo.UpsertSetting(ctx, SystemSetting{Key: key, Value: value, Description: description})
	if err != nil {
		return SystemSetting{}, err
	}
	svc.reval.Revalidate("/team", "/admin/settings")
	return s, nil
}
