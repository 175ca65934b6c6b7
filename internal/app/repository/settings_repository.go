package repository

import (
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.Settings, error)
	Save(settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*model.Settings, error) {
	logger.Debug("Loading settings row from database", map[string]interface{}{
		"id": model.SettingsRowID,
	})

	var settings model.Settings
	err := r.db.First(&settings, model.SettingsRowID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load settings row from database", err, nil)
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(settings *model.Settings) error {
	settings.ID = model.SettingsRowID

	logger.Debug("Saving settings row to database", map[string]interface{}{
		"id": settings.ID,
	})

	if err := r.db.Save(settings).Error; err != nil {
		logger.Error("Failed to save settings row to database", err, nil)
		return err
	}
	return nil
}
