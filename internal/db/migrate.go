package db

import (
	"fmt"
	"os"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/cart"
	appLogger "github.com/tmoreau/boutique-backend/pkg/logger"
	"github.com/tmoreau/boutique-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	appLogger.Info("Running database migrations", nil)

	err := DB.AutoMigrate(
		&model.Settings{},
		&model.Order{},
		&model.Page{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedSettings(DB); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	appLogger.Info("Database migrations completed successfully", nil)
	return nil
}

// seedSettings ensures the singleton settings row exists.
func seedSettings(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Settings{}).Where("id = ?", model.SettingsRowID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := model.Settings{
		ID:       model.SettingsRowID,
		ShopName: "Ma Boutique",
	}
	for _, svc := range cart.Services {
		settings.SetScheduleList(svc, nil)
	}

	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		hash, err := util.HashPassword(password)
		if err != nil {
			return err
		}
		settings.AdminPassword = hash
	}

	if err := tx.Create(&settings).Error; err != nil {
		return err
	}

	appLogger.Info("Seeded default settings row", map[string]interface{}{
		"id": model.SettingsRowID,
	})
	return nil
}
