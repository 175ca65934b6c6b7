package service

import (
	"errors"

	"github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"github.com/tmoreau/boutique-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotConfigured = errors.New("admin password not configured")
)

type AuthService interface {
	Login(password string) (string, error)
}

type authService struct {
	settingsRepo repository.SettingsRepository
	jwtConfig    *config.JWTConfig
}

func NewAuthService(settingsRepo repository.SettingsRepository, jwtConfig *config.JWTConfig) AuthService {
	return &authService{
		settingsRepo: settingsRepo,
		jwtConfig:    jwtConfig,
	}
}

// Login checks the admin password against the stored hash and issues a
// session token. The hash is read straight from the repository so it never
// transits the cache.
func (s *authService) Login(password string) (string, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		logger.Error("Failed to load settings for admin login", err, nil)
		return "", err
	}
	if settings == nil || settings.AdminPassword == "" {
		logger.Warn("Admin login attempted without a configured password", nil)
		return "", ErrAdminNotConfigured
	}

	if !util.VerifyPassword(settings.AdminPassword, password) {
		logger.Warn("Admin login failed", nil)
		return "", ErrInvalidCredentials
	}

	token, err := util.GenerateAdminToken(s.jwtConfig.Secret, s.jwtConfig.TokenExpiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err, nil)
		return "", err
	}

	logger.Info("Admin login succeeded", nil)
	return token, nil
}
