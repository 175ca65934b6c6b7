package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"github.com/tmoreau/boutique-backend/pkg/redis"
	"github.com/tmoreau/boutique-backend/pkg/util"
)

const settingsCacheTTL = 10 * time.Minute

// SettingsUpdate carries a partial settings edit. Nil fields are left
// untouched, so concurrent editors only overwrite what they actually
// changed.
type SettingsUpdate struct {
	ShopName           *string   `json:"shop_name"`
	ShopTitle          *string   `json:"shop_title"`
	AdminPassword      *string   `json:"admin_password"`
	BackgroundImage    *string   `json:"background_image"`
	BackgroundOpacity  *int      `json:"background_opacity"`
	BackgroundBlur     *int      `json:"background_blur"`
	ThemeColor         *string   `json:"theme_color"`
	ContactInfo        *string   `json:"contact_info"`
	InfoContent        *string   `json:"info_content"`
	ContactContent     *string   `json:"contact_content"`
	ShopDescription    *string   `json:"shop_description"`
	LoadingEnabled     *bool     `json:"loading_enabled"`
	LoadingDuration    *int      `json:"loading_duration"`
	WhatsAppLink       *string   `json:"whatsapp_link"`
	WhatsAppNumber     *string   `json:"whatsapp_number"`
	ScrollingText      *string   `json:"scrolling_text"`
	WhatsAppLivraison  *string   `json:"whatsapp_livraison"`
	WhatsAppEnvoi      *string   `json:"whatsapp_envoi"`
	WhatsAppMeetup     *string   `json:"whatsapp_meetup"`
	LivraisonSchedules *[]string `json:"livraison_schedules"`
	MeetupSchedules    *[]string `json:"meetup_schedules"`
	EnvoiSchedules     *[]string `json:"envoi_schedules"`
}

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, update *SettingsUpdate) (*model.Settings, error)
	InvalidateCache(ctx context.Context)
	WarmCache(ctx context.Context)
	Contacts(ctx context.Context) (checkout.Contacts, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	cacheEnabled bool
}

func NewSettingsService(settingsRepo repository.SettingsRepository, cacheEnabled bool) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		cacheEnabled: cacheEnabled,
	}
}

// Get returns the settings row, served from cache when possible. A missing
// row yields an in-memory record populated with defaults, never an error.
func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	if s.cacheEnabled {
		if cached, err := redis.GetCachedSettings(ctx); err == nil && cached != nil {
			var settings model.Settings
			if err := json.Unmarshal(cached, &settings); err == nil {
				return &settings, nil
			}
			logger.Warn("Discarding unreadable settings cache entry", nil)
		}
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		logger.Error("Failed to load settings", err, nil)
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings()
	}

	s.cache(ctx, settings)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, update *SettingsUpdate) (*model.Settings, error) {
	logger.Info("Updating settings", nil)

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings()
	}

	if update.AdminPassword != nil && *update.AdminPassword != "" {
		hash, err := util.HashPassword(*update.AdminPassword)
		if err != nil {
			logger.Error("Failed to hash admin password", err, nil)
			return nil, err
		}
		update.AdminPassword = &hash
	}

	applyUpdate(settings, update)

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}

	// Cache invalidation is best-effort. A stale entry expires on its
	// own within the TTL.
	s.InvalidateCache(ctx)

	logger.Info("Settings updated successfully", map[string]interface{}{
		"id": settings.ID,
	})
	return settings, nil
}

func (s *settingsService) InvalidateCache(ctx context.Context) {
	if !s.cacheEnabled {
		return
	}
	if err := redis.InvalidateSettings(ctx); err != nil {
		logger.Warn("Settings cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// WarmCache refreshes the cached settings payload from the database.
func (s *settingsService) WarmCache(ctx context.Context) {
	if !s.cacheEnabled {
		return
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		logger.Warn("Settings cache warm-up skipped", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if settings == nil {
		settings = defaultSettings()
	}
	s.cache(ctx, settings)
}

// Contacts resolves the current per-service contact identifiers.
func (s *settingsService) Contacts(ctx context.Context) (checkout.Contacts, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return checkout.Contacts{}, err
	}
	return checkout.Contacts{
		Primary:   settings.PrimaryContact(),
		Livraison: settings.WhatsAppLivraison,
		Envoi:     settings.WhatsAppEnvoi,
		Meetup:    settings.WhatsAppMeetup,
	}, nil
}

func (s *settingsService) cache(ctx context.Context, settings *model.Settings) {
	if !s.cacheEnabled {
		return
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := redis.CacheSettings(ctx, payload, settingsCacheTTL); err != nil {
		logger.Warn("Failed to cache settings", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func defaultSettings() *model.Settings {
	settings := &model.Settings{
		ID:                model.SettingsRowID,
		ShopName:          "Ma Boutique",
		ShopTitle:         "Ma Boutique",
		BackgroundOpacity: 20,
		BackgroundBlur:    5,
		ThemeColor:        "glow",
		LoadingEnabled:    true,
		LoadingDuration:   3000,
	}
	for _, svc := range cart.Services {
		settings.SetScheduleList(svc, nil)
	}
	return settings
}

func applyUpdate(settings *model.Settings, update *SettingsUpdate) {
	if update.ShopName != nil {
		settings.ShopName = *update.ShopName
	}
	if update.ShopTitle != nil {
		settings.ShopTitle = *update.ShopTitle
	}
	if update.AdminPassword != nil && *update.AdminPassword != "" {
		settings.AdminPassword = *update.AdminPassword
	}
	if update.BackgroundImage != nil {
		settings.BackgroundImage = *update.BackgroundImage
	}
	if update.BackgroundOpacity != nil {
		settings.BackgroundOpacity = *update.BackgroundOpacity
	}
	if update.BackgroundBlur != nil {
		settings.BackgroundBlur = *update.BackgroundBlur
	}
	if update.ThemeColor != nil {
		settings.ThemeColor = *update.ThemeColor
	}
	if update.ContactInfo != nil {
		settings.ContactInfo = *update.ContactInfo
	}
	if update.InfoContent != nil {
		settings.InfoContent = *update.InfoContent
	}
	if update.ContactContent != nil {
		settings.ContactContent = *update.ContactContent
	}
	if update.ShopDescription != nil {
		settings.ShopDescription = *update.ShopDescription
	}
	if update.LoadingEnabled != nil {
		settings.LoadingEnabled = *update.LoadingEnabled
	}
	if update.LoadingDuration != nil {
		settings.LoadingDuration = *update.LoadingDuration
	}
	if update.WhatsAppLink != nil {
		settings.WhatsAppLink = *update.WhatsAppLink
	}
	if update.WhatsAppNumber != nil {
		settings.WhatsAppNumber = *update.WhatsAppNumber
	}
	if update.ScrollingText != nil {
		settings.ScrollingText = *update.ScrollingText
	}
	if update.WhatsAppLivraison != nil {
		settings.WhatsAppLivraison = *update.WhatsAppLivraison
	}
	if update.WhatsAppEnvoi != nil {
		settings.WhatsAppEnvoi = *update.WhatsAppEnvoi
	}
	if update.WhatsAppMeetup != nil {
		settings.WhatsAppMeetup = *update.WhatsAppMeetup
	}
	if update.LivraisonSchedules != nil {
		settings.SetScheduleList(cart.ServiceLivraison, *update.LivraisonSchedules)
	}
	if update.MeetupSchedules != nil {
		settings.SetScheduleList(cart.ServiceMeetup, *update.MeetupSchedules)
	}
	if update.EnvoiSchedules != nil {
		settings.SetScheduleList(cart.ServiceEnvoi, *update.EnvoiSchedules)
	}
}
