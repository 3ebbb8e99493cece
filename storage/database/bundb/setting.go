package bunrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/setting"
)

type settingRepo struct {
	db *bun.DB
}

var _ setting.Repository = (*settingRepo)(nil)

func NewSettingRepository(db *bun.DB) setting.Repository {
	return &settingRepo{db: db}
}

func (repo *settingRepo) GetSetting(ctx context.Context, key string) (setting.SystemSetting, error) {
	var row dbSetting
	err := repo.db.NewSelect().Model(&row).Where("ss.key = ?", key).Scan(ctx)
	if err != nil {
		return setting.SystemSetting{}, trapNoRowsErr(err, setting.ErrNotFound)
	}
	return row.unbox(), nil
}

func (repo *settingRepo) QueryAllSettings(ctx context.Context) ([]setting.SystemSetting, error) {
	var rows []dbSetting
	err := repo.db.NewSelect().Model(&rows).Order("key ASC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying settings")
	}
	settings := make([]setting.SystemSetting, 0, len(rows))
	for i := range rows {
		settings = append(settings, rows[i].unbox())
	}
	return settings, nil
}

func (repo *settingRepo) UpsertSetting(ctx context.Context, s setting.SystemSetting) (setting.SystemSetting, error) {
	row := dbSetting{Key: s.Key, Value: s.Value, Description: s.Description}
	_, err := repo.db.NewInsert().
		Model(&row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("description = EXCLUDED.description").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return setting.SystemSetting{}, errors.Wrap(err, "upserting setting")
	}
	return row.unbox(), nil
}
