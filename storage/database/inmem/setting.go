package inmemdb

import (
	"context"
	"sort"

	"github.com/MSTC-DAU/mstc/core/setting"
)

type settingRepository struct {
	db *DB
}

var _ setting.Repository = (*settingRepository)(nil)

func NewSettingRepository(db *DB) setting.Repository {
	return &settingRepository{db: db}
}

func (repo *settingRepository) GetSetting(ctx context.Context, key string) (setting.SystemSetting, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.settings[key]; ok {
		return *s, nil
	}
	return setting.SystemSetting{}, setting.ErrNotFound
}

func (repo *settingRepository) QueryAllSettings(ctx context.Context) ([]setting.SystemSetting, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	settings := make([]setting.SystemSetting, 0, len(repo.db.settings))
	for _, s := range repo.db.settings {
		settings = append(settings, *s)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (repo *settingRepository) UpsertSetting(ctx context.Context, s setting.SystemSetting) (setting.SystemSetting, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.settings[s.Key] = &s
	return s, nil
}
