package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/pkg/util"
)

var (
	// ErrNoContact is returned when neither a per-service override nor the
	// primary contact link is configured.
	ErrNoContact = errors.New("no contact identifier configured")
)

// Contacts holds the configured contact identifiers: one optional override
// per service plus the primary fallback.
type Contacts struct {
	Primary   string
	Livraison string
	Envoi     string
	Meetup    string
}

// ForService resolves the identifier to dispatch to: the service override
// when configured and non-empty, the primary link otherwise.
func (c Contacts) ForService(service cart.Service) string {
	var override string
	switch service {
	case cart.ServiceLivraison:
		override = c.Livraison
	case cart.ServiceEnvoi:
		override = c.Envoi
	case cart.ServiceMeetup:
		override = c.Meetup
	}
	if strings.TrimSpace(override) != "" {
		return override
	}
	return c.Primary
}

// Outcome is what a dispatch hands back to the storefront. Exactly one of
// the two shapes is populated: a deep link to open, or a message to copy
// with the raw configured link as a fallback button.
type Outcome struct {
	Channel     string `json:"channel"`
	Message     string `json:"message"`
	Link        string `json:"link,omitempty"`
	RawLink     string `json:"raw_link,omitempty"`
	CopyMessage bool   `json:"copy_message"`
}

// Handoff turns cart lines into an order message and routes it to a
// contact identifier. Implementations are stateless; the channel is picked
// by configuration at startup.
type Handoff interface {
	Compose(items []cart.Item) string
	Dispatch(identifier, message string) (Outcome, error)
}

// WhatsAppHandoff dispatches through a wa.me-style deep link carrying the
// percent-encoded message, so the buyer only has to press send.
type WhatsAppHandoff struct {
	Composer Composer
	BaseURL  string
}

func (h WhatsAppHandoff) Compose(items []cart.Item) string {
	return h.Composer.Compose(items)
}

func (h WhatsAppHandoff) Dispatch(identifier, message string) (Outcome, error) {
	number := util.CleanPhoneNumber(identifier)
	if number == "" {
		return Outcome{}, ErrNoContact
	}

	// QueryEscape encodes spaces as '+', which chat apps take literally;
	// the deep link needs %20.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	link := fmt.Sprintf("%s/%s?text=%s", strings.TrimRight(h.BaseURL, "/"), number, encoded)

	return Outcome{
		Channel: "whatsapp",
		Message: message,
		Link:    link,
	}, nil
}

// ManualHandoff serves deployments without a deep-link channel: the buyer
// copies the message and opens the configured link as-is, untouched by any
// number cleaning.
type ManualHandoff struct {
	Composer Composer
}

func (h ManualHandoff) Compose(items []cart.Item) string {
	return h.Composer.Compose(items)
}

func (h ManualHandoff) Dispatch(identifier, message string) (Outcome, error) {
	if strings.TrimSpace(identifier) == "" {
		return Outcome{}, ErrNoContact
	}
	return Outcome{
		Channel:     "manual",
		Message:     message,
		RawLink:     identifier,
		CopyMessage: true,
	}, nil
}

// NewHandoff picks the channel implementation by configured name; unknown
// names fall back to the WhatsApp channel.
func NewHandoff(channel, linkBaseURL, shopName string) Handoff {
	composer := Composer{ShopName: shopName}
	if channel == "manual" {
		return ManualHandoff{Composer: composer}
	}
	return WhatsAppHandoff{Composer: composer, BaseURL: linkBaseURL}
}
