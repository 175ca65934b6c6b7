package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/internal/db"
	"gorm.io/gorm"
)

// memoryStore keeps carts in a map, standing in for redis.
type memoryStore struct {
	carts map[string]*cart.Cart
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string]*cart.Cart)}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	if c, ok := m.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	m.carts[sessionID] = c
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type notifierRecorder struct {
	orders []*model.Order
}

func (n *notifierRecorder) NotifyOrderCreated(order *model.Order) {
	n.orders = append(n.orders, order)
}

func setupCheckoutTest(t *testing.T) (*gorm.DB, CheckoutService, repository.OrderRepository, *notifierRecorder) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	settingsRepo := repository.NewSettingsRepository(testDB)
	settingsSvc := NewSettingsService(settingsRepo, false)

	_, err = settingsSvc.Update(context.Background(), &SettingsUpdate{
		WhatsAppLink: strPtr("+33 6 11 11 11 11"),
	})
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(testDB)
	notifier := &notifierRecorder{}
	handoff := checkout.NewHandoff("whatsapp", "https://wa.me", "Ma Boutique")

	svc := NewCheckoutService(newMemoryStore(), settingsSvc, orderRepo, handoff, notifier)
	return testDB, svc, orderRepo, notifier
}

func checkoutItem(id uint, weight string, qty int, price float64) cart.Item {
	return cart.Item{
		ProductID:   id,
		Weight:      weight,
		ProductName: "Produit",
		Quantity:    qty,
		Price:       price,
	}
}

func TestCheckoutService_CartLifecycle(t *testing.T) {
	testDB, svc, _, _ := setupCheckoutTest(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()
	session := cart.NewSessionID()

	c, err := svc.AddItem(ctx, session, checkoutItem(1, "250g", 2, 9))
	require.NoError(t, err)
	assert.Equal(t, 2, c.TotalQuantity())

	// Same product and weight merges into the existing line.
	c, err = svc.AddItem(ctx, session, checkoutItem(1, "250g", 1, 9))
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.TotalQuantity())

	c, err = svc.UpdateQuantity(ctx, session, 1, "250g", 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckoutService_AdvanceGating(t *testing.T) {
	testDB, svc, _, _ := setupCheckoutTest(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()
	session := cart.NewSessionID()

	_, err := svc.Advance(ctx, session)
	assert.ErrorIs(t, err, cart.ErrEmptyCart)

	_, err = svc.AddItem(ctx, session, checkoutItem(1, "250g", 1, 9))
	require.NoError(t, err)

	c, err := svc.Advance(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, cart.StepService, c.Step)

	_, err = svc.Advance(ctx, session)
	assert.ErrorIs(t, err, cart.ErrServiceRequired)

	c, err = svc.UpdateService(ctx, session, 1, "250g", "envoi")
	require.NoError(t, err)

	c, err = svc.Advance(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, cart.StepSchedule, c.Step)

	_, err = svc.Advance(ctx, session)
	assert.ErrorIs(t, err, cart.ErrScheduleRequired)

	c, err = svc.UpdateSchedule(ctx, session, 1, "250g", "Envoi sous 24h")
	require.NoError(t, err)

	c, err = svc.Advance(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, cart.StepReview, c.Step)
}

func TestCheckoutService_DispatchRecordsAndClears(t *testing.T) {
	testDB, svc, orderRepo, notifier := setupCheckoutTest(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()
	session := cart.NewSessionID()

	_, err := svc.AddItem(ctx, session, checkoutItem(1, "250g", 2, 9))
	require.NoError(t, err)
	_, err = svc.UpdateService(ctx, session, 1, "250g", "livraison")
	require.NoError(t, err)
	_, err = svc.UpdateSchedule(ctx, session, 1, "250g", "Matin (9h-12h)")
	require.NoError(t, err)

	outcome, err := svc.Dispatch(ctx, session, "")
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", outcome.Channel)
	assert.Contains(t, outcome.Link, "https://wa.me/+33611111111?text=")

	c, err := svc.Cart(ctx, session)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, cart.StepCart, c.Step)

	orders, total, err := orderRepo.FindAll("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "livraison", orders[0].Service)
	assert.Equal(t, 18.0, orders[0].TotalAmount)

	require.Len(t, notifier.orders, 1)
	assert.Equal(t, orders[0].ID, notifier.orders[0].ID)
}

func TestCheckoutService_DispatchRequiresCompleteCart(t *testing.T) {
	testDB, svc, _, _ := setupCheckoutTest(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()
	session := cart.NewSessionID()

	_, err := svc.Dispatch(ctx, session, "")
	assert.ErrorIs(t, err, cart.ErrEmptyCart)

	_, err = svc.AddItem(ctx, session, checkoutItem(1, "250g", 1, 9))
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session, "")
	assert.ErrorIs(t, err, cart.ErrServiceRequired)

	_, err = svc.UpdateService(ctx, session, 1, "250g", "meetup")
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session, "")
	assert.ErrorIs(t, err, cart.ErrScheduleRequired)
}

func TestCheckoutService_DispatchSingleService(t *testing.T) {
	testDB, svc, orderRepo, _ := setupCheckoutTest(t)
	defer db.CleanupTestDB(testDB)

	ctx := context.Background()
	session := cart.NewSessionID()

	_, err := svc.AddItem(ctx, session, checkoutItem(1, "250g", 1, 9))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, session, checkoutItem(2, "500g", 1, 15))
	require.NoError(t, err)
	_, err = svc.UpdateService(ctx, session, 1, "250g", "envoi")
	require.NoError(t, err)
	_, err = svc.UpdateService(ctx, session, 2, "500g", "envoi")
	require.NoError(t, err)
	_, err = svc.UpdateSchedule(ctx, session, 1, "250g", "Envoi sous 24h")
	require.NoError(t, err)
	_, err = svc.UpdateSchedule(ctx, session, 2, "500g", "Envoi sous 48h")
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session, "livraison")
	assert.ErrorIs(t, err, ErrServiceNotInCart)

	outcome, err := svc.Dispatch(ctx, session, "envoi")
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", outcome.Channel)

	orders, _, err := orderRepo.FindAll("", 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "envoi", orders[0].Service)
	assert.Equal(t, 24.0, orders[0].TotalAmount)
}

func TestCheckoutService_DispatchWithoutContact(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	settingsSvc := NewSettingsService(repository.NewSettingsRepository(testDB), false)
	orderRepo := repository.NewOrderRepository(testDB)
	handoff := checkout.NewHandoff("whatsapp", "https://wa.me", "Ma Boutique")
	svc := NewCheckoutService(newMemoryStore(), settingsSvc, orderRepo, handoff, nil)

	ctx := context.Background()
	session := cart.NewSessionID()

	_, err = svc.AddItem(ctx, session, checkoutItem(1, "250g", 1, 9))
	require.NoError(t, err)
	_, err = svc.UpdateService(ctx, session, 1, "250g", "envoi")
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session, "")
	assert.ErrorIs(t, err, checkout.ErrNoContact)

	// The blocked dispatch leaves the cart untouched.
	c, err := svc.Cart(ctx, session)
	require.NoError(t, err)
	assert.False(t, c.IsEmpty())
}
