package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/pkg/logger"
)

// OrderNotifier pushes a freshly recorded order to whoever is listening,
// typically the admin websocket feed. Implementations must not block.
type OrderNotifier interface {
	NotifyOrderCreated(order *model.Order)
}

type CheckoutService interface {
	Cart(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, item cart.Item) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uint, weight string, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uint, weight string) (*cart.Cart, error)
	UpdateService(ctx context.Context, sessionID string, productID uint, weight string, service string) (*cart.Cart, error)
	UpdateSchedule(ctx context.Context, sessionID string, productID uint, weight string, schedule string) (*cart.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	Advance(ctx context.Context, sessionID string) (*cart.Cart, error)
	Back(ctx context.Context, sessionID string, target cart.Step) (*cart.Cart, error)
	Dispatch(ctx context.Context, sessionID string, service cart.Service) (*checkout.Outcome, error)
}

// ErrServiceNotInCart is returned when a single-service dispatch names a
// service no cart line uses.
var ErrServiceNotInCart = errors.New("service not present in cart")

type checkoutService struct {
	store       cart.Store
	settingsSvc SettingsService
	orderRepo   repository.OrderRepository
	handoff     checkout.Handoff
	notifier    OrderNotifier
}

func NewCheckoutService(
	store cart.Store,
	settingsSvc SettingsService,
	orderRepo repository.OrderRepository,
	handoff checkout.Handoff,
	notifier OrderNotifier,
) CheckoutService {
	return &checkoutService{
		store:       store,
		settingsSvc: settingsSvc,
		orderRepo:   orderRepo,
		handoff:     handoff,
		notifier:    notifier,
	}
}

func (s *checkoutService) Cart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *checkoutService) AddItem(ctx context.Context, sessionID string, item cart.Item) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.AddItem(item)
		logger.Info("Item added to cart", map[string]interface{}{
			"session_id": sessionID,
			"product_id": item.ProductID,
			"weight":     item.Weight,
		})
		return nil
	})
}

func (s *checkoutService) UpdateQuantity(ctx context.Context, sessionID string, productID uint, weight string, quantity int) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.UpdateQuantity(productID, weight, quantity)
		return nil
	})
}

func (s *checkoutService) RemoveItem(ctx context.Context, sessionID string, productID uint, weight string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.RemoveItem(productID, weight)
		return nil
	})
}

func (s *checkoutService) UpdateService(ctx context.Context, sessionID string, productID uint, weight string, service string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.UpdateService(productID, weight, cart.Service(service))
	})
}

func (s *checkoutService) UpdateSchedule(ctx context.Context, sessionID string, productID uint, weight string, schedule string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.UpdateSchedule(productID, weight, schedule)
		return nil
	})
}

func (s *checkoutService) ClearCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

func (s *checkoutService) Advance(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Advance()
	})
}

func (s *checkoutService) Back(ctx context.Context, sessionID string, target cart.Step) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Back(target)
	})
}

// Dispatch composes the order message, resolves the destination contact and
// hands the order off. An explicit service restricts the message to that
// service's lines; otherwise the whole cart goes out. On success the cart
// is cleared and an order row is recorded for the operator.
func (s *checkoutService) Dispatch(ctx context.Context, sessionID string, service cart.Service) (*checkout.Outcome, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}
	if len(c.ItemsNeedingService()) > 0 {
		return nil, cart.ErrServiceRequired
	}
	if len(c.ItemsNeedingSchedule()) > 0 {
		return nil, cart.ErrScheduleRequired
	}

	contacts, err := s.settingsSvc.Contacts(ctx)
	if err != nil {
		return nil, err
	}

	items := c.Items
	services := c.ServicesInUse()
	if service != "" {
		items = c.ItemsForService(service)
		if len(items) == 0 {
			return nil, ErrServiceNotInCart
		}
		services = []cart.Service{service}
	}

	identifier := contacts.Primary
	if len(services) == 1 {
		identifier = contacts.ForService(services[0])
	}

	message := s.handoff.Compose(items)
	outcome, err := s.handoff.Dispatch(identifier, message)
	if err != nil {
		logger.Warn("Order dispatch blocked", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.recordOrder(items, services, outcome)

	c.Clear()
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logger.Error("Failed to clear cart after dispatch", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}

	logger.Info("Order dispatched", map[string]interface{}{
		"session_id": sessionID,
		"channel":    outcome.Channel,
		"services":   len(services),
	})
	return &outcome, nil
}

func (s *checkoutService) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *checkoutService) recordOrder(items []cart.Item, services []cart.Service, outcome checkout.Outcome) {
	snapshot, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to serialize order snapshot", err, nil)
		return
	}

	names := make([]string, len(services))
	for i, svc := range services {
		names[i] = string(svc)
	}

	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}

	order := &model.Order{
		Service:     strings.Join(names, ","),
		Channel:     outcome.Channel,
		Contact:     outcome.RawLink,
		Items:       string(snapshot),
		TotalAmount: total,
	}
	if order.Contact == "" {
		order.Contact = outcome.Link
	}

	if err := s.orderRepo.Create(order); err != nil {
		// The handoff already happened; losing the trace row is logged
		// but does not fail the dispatch.
		logger.Error("Failed to record dispatched order", err, nil)
		return
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderCreated(order)
	}
}
