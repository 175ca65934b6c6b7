package db

import (
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = testDB.AutoMigrate(
		&model.Settings{},
		&model.Order{},
		&model.Page{},
	)
	if err != nil {
		return nil, err
	}

	return testDB, nil
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(testDB *gorm.DB) {
	sqlDB, err := testDB.DB()
	if err == nil {
		sqlDB.Close()
	}
}
