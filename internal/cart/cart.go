package cart

// Service is the fulfillment method chosen for a cart line.
type Service string

const (
	ServiceLivraison Service = "livraison"
	ServiceEnvoi     Service = "envoi"
	ServiceMeetup    Service = "meetup"
)

// Services lists the selectable fulfillment methods in display order.
var Services = []Service{ServiceLivraison, ServiceEnvoi, ServiceMeetup}

func (s Service) Valid() bool {
	switch s {
	case ServiceLivraison, ServiceEnvoi, ServiceMeetup:
		return true
	}
	return false
}

// RequiresSchedule reports whether a chosen service needs a time slot.
// Every current service does; the check keeps the gating logic in one place.
func (s Service) RequiresSchedule() bool {
	return s.Valid()
}

// Label returns the full French display name of the service.
func (s Service) Label() string {
	switch s {
	case ServiceLivraison:
		return "Livraison à domicile"
	case ServiceEnvoi:
		return "Envoi postal"
	case ServiceMeetup:
		return "Point de rencontre"
	}
	return string(s)
}

// ShortLabel returns the compact name used in subtotal lines.
func (s Service) ShortLabel() string {
	switch s {
	case ServiceLivraison:
		return "Livraison"
	case ServiceEnvoi:
		return "Envoi"
	case ServiceMeetup:
		return "Meetup"
	}
	return string(s)
}

// Icon returns the emoji the storefront shows next to the service.
func (s Service) Icon() string {
	switch s {
	case ServiceLivraison:
		return "🚚"
	case ServiceEnvoi:
		return "📦"
	case ServiceMeetup:
		return "📍"
	}
	return ""
}

// Item is one cart line, uniquely keyed by (ProductID, Weight).
type Item struct {
	ProductID     uint    `json:"product_id"`
	Weight        string  `json:"weight"`
	ProductName   string  `json:"product_name"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      int     `json:"discount"`
	Service       Service `json:"service,omitempty"`
	Schedule      string  `json:"schedule,omitempty"`
}

// LineTotal returns price times quantity for this line.
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart holds the buyer's line items plus the wizard position. Items keep
// insertion order, which is also display order. A cart has a single logical
// writer (the owning session), so none of these methods lock.
type Cart struct {
	Items []Item `json:"items"`
	Open  bool   `json:"open"`
	Step  Step   `json:"step"`
}

// New returns an empty cart parked on the first wizard step.
func New() *Cart {
	return &Cart{Step: StepCart}
}

func (c *Cart) find(productID uint, weight string) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Weight == weight {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem appends a line, or bumps the quantity when the same product
// variant is already present. Quantities below one are treated as one.
func (c *Cart) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if existing := c.find(item.ProductID, item.Weight); existing != nil {
		existing.Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets a line's quantity, removing the line when the new
// quantity drops to zero or below. Missing lines are a no-op.
func (c *Cart) UpdateQuantity(productID uint, weight string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, weight)
		return
	}
	if item := c.find(productID, weight); item != nil {
		item.Quantity = quantity
	}
}

// RemoveItem deletes a line. Idempotent; missing keys are a no-op.
func (c *Cart) RemoveItem(productID uint, weight string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Weight == weight {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.normalize()
}

// Clear empties the cart, closes it and resets the wizard.
func (c *Cart) Clear() {
	c.Items = nil
	c.Open = false
	c.Step = StepCart
}

// UpdateService records the fulfillment method for a line. Only the three
// known literals are accepted.
func (c *Cart) UpdateService(productID uint, weight string, service Service) error {
	if !service.Valid() {
		return ErrInvalidService
	}
	if item := c.find(productID, weight); item != nil {
		item.Service = service
	}
	return nil
}

// UpdateSchedule records the time slot for a line. Free text is accepted:
// slots picked from the configured lists and custom entries are stored alike.
func (c *Cart) UpdateSchedule(productID uint, weight, schedule string) {
	if item := c.find(productID, weight); item != nil {
		item.Schedule = schedule
	}
}

// TotalPrice sums price times quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// TotalQuantity sums the quantities of all lines.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemsNeedingService returns the lines without a chosen fulfillment method.
func (c *Cart) ItemsNeedingService() []Item {
	var items []Item
	for _, item := range c.Items {
		if !item.Service.Valid() {
			items = append(items, item)
		}
	}
	return items
}

// ItemsNeedingSchedule returns the lines whose service requires a time slot
// that has not been chosen yet.
func (c *Cart) ItemsNeedingSchedule() []Item {
	var items []Item
	for _, item := range c.Items {
		if item.Service.RequiresSchedule() && item.Schedule == "" {
			items = append(items, item)
		}
	}
	return items
}

// ItemsForService returns the lines assigned to the given service.
func (c *Cart) ItemsForService(service Service) []Item {
	var items []Item
	for _, item := range c.Items {
		if item.Service == service {
			items = append(items, item)
		}
	}
	return items
}

// ServicesInUse returns the distinct services of the cart, ordered by first
// appearance among the lines.
func (c *Cart) ServicesInUse() []Service {
	var services []Service
	seen := make(map[Service]bool)
	for _, item := range c.Items {
		if item.Service.Valid() && !seen[item.Service] {
			seen[item.Service] = true
			services = append(services, item.Service)
		}
	}
	return services
}

// ReadyForOrder reports whether the cart can be handed off: non-empty, every
// line has a service and every schedule-requiring line has a slot.
func (c *Cart) ReadyForOrder() bool {
	return !c.IsEmpty() &&
		len(c.ItemsNeedingService()) == 0 &&
		len(c.ItemsNeedingSchedule()) == 0
}
