package model

import (
	"encoding/json"
	"time"

	"github.com/tmoreau/boutique-backend/internal/cart"
)

// SettingsRowID is the fixed primary key of the single settings record.
const SettingsRowID uint = 1

// Settings is the one-row configuration governing store branding, contact
// identifiers and the selectable time-slot lists. The three schedule lists
// are stored as serialized JSON text, one column per service.
type Settings struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	ShopName          string `gorm:"default:'Ma Boutique'" json:"shop_name"`
	ShopTitle         string `gorm:"default:'Ma Boutique'" json:"shop_title"`
	AdminPassword     string `json:"-"`
	BackgroundImage   string `json:"background_image"`
	BackgroundOpacity int    `gorm:"default:20" json:"background_opacity"`
	BackgroundBlur    int    `gorm:"default:5" json:"background_blur"`
	ThemeColor        string `gorm:"default:'glow'" json:"theme_color"`
	ContactInfo       string `json:"contact_info"`
	InfoContent       string `json:"info_content"`
	ContactContent    string `json:"contact_content"`
	ShopDescription   string `json:"shop_description"`
	LoadingEnabled    bool   `gorm:"default:true" json:"loading_enabled"`
	LoadingDuration   int    `gorm:"default:3000" json:"loading_duration"`
	WhatsAppLink      string `gorm:"column:whatsapp_link" json:"whatsapp_link"`
	WhatsAppNumber    string `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	ScrollingText     string `json:"scrolling_text"`

	// Per-service contact overrides; empty means "use the primary link".
	WhatsAppLivraison string `gorm:"column:whatsapp_livraison" json:"whatsapp_livraison"`
	WhatsAppEnvoi     string `gorm:"column:whatsapp_envoi" json:"whatsapp_envoi"`
	WhatsAppMeetup    string `gorm:"column:whatsapp_meetup" json:"whatsapp_meetup"`

	LivraisonSchedules string `json:"livraison_schedules_raw"`
	MeetupSchedules    string `json:"meetup_schedules_raw"`
	EnvoiSchedules     string `json:"envoi_schedules_raw"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// DefaultSchedules is the single source of the hardcoded fallback slot
// lists, keyed by service. A stored list that is empty or unreadable is
// replaced by its entry here, so the storefront never sees an empty list.
var DefaultSchedules = map[cart.Service][]string{
	cart.ServiceLivraison: {
		"Matin (9h-12h)",
		"Après-midi (14h-17h)",
		"Soirée (17h-20h)",
		"Flexible (à convenir)",
	},
	cart.ServiceMeetup: {
		"Lundi au Vendredi (9h-18h)",
		"Weekend (10h-17h)",
		"Soirée en semaine (18h-21h)",
		"Flexible (à convenir)",
	},
	cart.ServiceEnvoi: {
		"Envoi sous 24h",
		"Envoi sous 48h",
		"Envoi express",
		"Délai à convenir",
	},
}

func (s *Settings) rawScheduleColumn(service cart.Service) *string {
	switch service {
	case cart.ServiceLivraison:
		return &s.LivraisonSchedules
	case cart.ServiceMeetup:
		return &s.MeetupSchedules
	case cart.ServiceEnvoi:
		return &s.EnvoiSchedules
	}
	return nil
}

// ScheduleList decodes the stored slot list for a service, falling back to
// the defaults when the column is empty, unreadable or decodes to nothing.
func (s *Settings) ScheduleList(service cart.Service) []string {
	column := s.rawScheduleColumn(service)
	if column == nil {
		return nil
	}
	if *column != "" {
		var list []string
		if err := json.Unmarshal([]byte(*column), &list); err == nil && len(list) > 0 {
			return list
		}
	}
	return DefaultSchedules[service]
}

// SetScheduleList serializes a slot list into the service's column. A nil
// or empty list stores the defaults, keeping the invariant in the data too.
func (s *Settings) SetScheduleList(service cart.Service, list []string) {
	column := s.rawScheduleColumn(service)
	if column == nil {
		return
	}
	if len(list) == 0 {
		list = DefaultSchedules[service]
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	*column = string(data)
}

// PrimaryContact resolves the primary order link: the dedicated column
// first, the generic contact field second.
func (s *Settings) PrimaryContact() string {
	if s.WhatsAppLink != "" {
		return s.WhatsAppLink
	}
	return s.ContactInfo
}
