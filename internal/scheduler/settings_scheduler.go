package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/pkg/logger"
)

// SettingsScheduler keeps the settings cache warm so the storefront rarely
// hits the database for the configuration row.
type SettingsScheduler struct {
	cron            *cron.Cron
	settingsService service.SettingsService
}

func NewSettingsScheduler(settingsService service.SettingsService) *SettingsScheduler {
	return &SettingsScheduler{
		cron:            cron.New(),
		settingsService: settingsService,
	}
}

// Start warms the cache immediately, then every 10 minutes.
func (s *SettingsScheduler) Start() error {
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.settingsService.WarmCache(ctx)
		logger.Debug("Settings cache warmed", nil)
	}

	_, err := s.cron.AddFunc("*/10 * * * *", warm)
	if err != nil {
		logger.Error("Failed to add cron job for settings cache warm-up", err)
		return err
	}

	warm()
	s.cron.Start()
	logger.Info("Settings scheduler started successfully (every 10 minutes)", nil)

	return nil
}

// Stop halts the scheduler.
func (s *SettingsScheduler) Stop() {
	logger.Info("Stopping settings scheduler...", nil)
	s.cron.Stop()
	logger.Info("Settings scheduler stopped", nil)
}
