package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

// SettingsResponse is the canonical external shape: snake_case keys, every
// field populated, schedule lists decoded into arrays. The admin password
// hash never leaves the server.
type SettingsResponse struct {
	ID                 uint     `json:"id"`
	ShopName           string   `json:"shop_name"`
	ShopTitle          string   `json:"shop_title"`
	BackgroundImage    string   `json:"background_image"`
	BackgroundOpacity  int      `json:"background_opacity"`
	BackgroundBlur     int      `json:"background_blur"`
	ThemeColor         string   `json:"theme_color"`
	ContactInfo        string   `json:"contact_info"`
	InfoContent        string   `json:"info_content"`
	ContactContent     string   `json:"contact_content"`
	ShopDescription    string   `json:"shop_description"`
	LoadingEnabled     bool     `json:"loading_enabled"`
	LoadingDuration    int      `json:"loading_duration"`
	WhatsAppLink       string   `json:"whatsapp_link"`
	WhatsAppNumber     string   `json:"whatsapp_number"`
	ScrollingText      string   `json:"scrolling_text"`
	WhatsAppLivraison  string   `json:"whatsapp_livraison"`
	WhatsAppEnvoi      string   `json:"whatsapp_envoi"`
	WhatsAppMeetup     string   `json:"whatsapp_meetup"`
	LivraisonSchedules []string `json:"livraison_schedules"`
	MeetupSchedules    []string `json:"meetup_schedules"`
	EnvoiSchedules     []string `json:"envoi_schedules"`
	HasAdminPassword   bool     `json:"has_admin_password"`
}

func settingsResponse(settings *model.Settings) SettingsResponse {
	return SettingsResponse{
		ID:                 settings.ID,
		ShopName:           settings.ShopName,
		ShopTitle:          settings.ShopTitle,
		BackgroundImage:    settings.BackgroundImage,
		BackgroundOpacity:  settings.BackgroundOpacity,
		BackgroundBlur:     settings.BackgroundBlur,
		ThemeColor:         settings.ThemeColor,
		ContactInfo:        settings.ContactInfo,
		InfoContent:        settings.InfoContent,
		ContactContent:     settings.ContactContent,
		ShopDescription:    settings.ShopDescription,
		LoadingEnabled:     settings.LoadingEnabled,
		LoadingDuration:    settings.LoadingDuration,
		WhatsAppLink:       settings.WhatsAppLink,
		WhatsAppNumber:     settings.WhatsAppNumber,
		ScrollingText:      settings.ScrollingText,
		WhatsAppLivraison:  settings.WhatsAppLivraison,
		WhatsAppEnvoi:      settings.WhatsAppEnvoi,
		WhatsAppMeetup:     settings.WhatsAppMeetup,
		LivraisonSchedules: settings.ScheduleList(cart.ServiceLivraison),
		MeetupSchedules:    settings.ScheduleList(cart.ServiceMeetup),
		EnvoiSchedules:     settings.ScheduleList(cart.ServiceEnvoi),
		HasAdminPassword:   settings.AdminPassword != "",
	}
}

// camelToSnake turns camelCase keys into snake_case so both casings are
// accepted on the way in. Keys already in snake_case pass through.
func camelToSnake(key string) string {
	if strings.Contains(key, "_") {
		return strings.ToLower(key)
	}
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeSettingsBody rewrites the payload's top-level keys to
// snake_case before decoding into the update struct.
func normalizeSettingsBody(body []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	normalized := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		normalized[camelToSnake(key)] = value
	}
	return json.Marshal(normalized)
}

// GetSettings returns the settings record with defaults applied
// GET /api/v1/settings
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.Get(c.Request.Context())
	if err != nil {
		log.Error("Failed to load settings", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, settingsResponse(settings))
}

// UpdateSettings merges a partial edit into the settings record. PUT and
// POST are aliases.
// PUT /api/v1/settings
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	normalized, err := normalizeSettingsBody(body)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	var update service.SettingsUpdate
	if err := json.Unmarshal(normalized, &update); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	settings, err := ctrl.settingsService.Update(c.Request.Context(), &update)
	if err != nil {
		log.Error("Failed to save settings", err, nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.SettingsSaveFailed, "La sauvegarde des paramètres a échoué")
		return
	}

	log.Info("Settings saved", map[string]interface{}{
		"id": settings.ID,
	})
	c.JSON(http.StatusOK, settingsResponse(settings))
}

// InvalidateCache drops the cached settings payload. Always answers 200:
// a failed invalidation only delays freshness until the TTL.
// POST /api/v1/cache/invalidate
func (ctrl *SettingsController) InvalidateCache(c *gin.Context) {
	ctrl.settingsService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
