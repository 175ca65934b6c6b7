package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/internal/db"
	"gorm.io/gorm"
)

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

func setupCheckoutRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(testDB), false)
	link := "+33611111111"
	_, err = settingsSvc.Update(context.Background(), &service.SettingsUpdate{WhatsAppLink: &link})
	require.NoError(t, err)

	handoff := checkout.NewHandoff("whatsapp", "https://wa.me", "Ma Boutique")
	checkoutSvc := service.NewCheckoutService(
		newMemoryStore(),
		settingsSvc,
		repository.NewOrderRepository(testDB),
		handoff,
		nil,
	)

	cartCtrl := NewCartController(checkoutSvc)
	checkoutCtrl := NewCheckoutController(checkoutSvc)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.GET("/cart", cartCtrl.GetCart)
		v1.POST("/cart/items", cartCtrl.AddItem)
		v1.PUT("/cart/items", cartCtrl.UpdateItem)
		v1.DELETE("/cart/items", cartCtrl.RemoveItem)
		v1.DELETE("/cart", cartCtrl.ClearCart)
		v1.POST("/checkout/advance", checkoutCtrl.Advance)
		v1.POST("/checkout/back", checkoutCtrl.Back)
		v1.POST("/checkout/dispatch", checkoutCtrl.Dispatch)
	}
	return r, testDB
}

func doJSON(router *gin.Engine, method, path, sessionID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartController_SessionIssuedWhenAbsent(t *testing.T) {
	router, testDB := setupCheckoutRouter(t)
	defer db.CleanupTestDB(testDB)

	w := doJSON(router, http.MethodGet, "/api/v1/cart", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(SessionHeader))
}

func TestCartController_AddAndMerge(t *testing.T) {
	router, testDB := setupCheckoutRouter(t)
	defer db.CleanupTestDB(testDB)

	session := cart.NewSessionID()
	item := `{"product_id":1,"weight":"250g","product_name":"Miel","quantity":2,"price":9}`

	w := doJSON(router, http.MethodPost, "/api/v1/cart/items", session, item)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/cart/items", session, item)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []cart.Item `json:"items"`
		Count int         `json:"count"`
		Total float64     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, 36.0, resp.Total)
}

func TestCheckoutController_WizardFlow(t *testing.T) {
	router, testDB := setupCheckoutRouter(t)
	defer db.CleanupTestDB(testDB)

	session := cart.NewSessionID()

	// Advancing an empty cart is a conflict.
	w := doJSON(router, http.MethodPost, "/api/v1/checkout/advance", session, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	item := `{"product_id":1,"weight":"250g","product_name":"Miel","quantity":2,"price":9}`
	w = doJSON(router, http.MethodPost, "/api/v1/cart/items", session, item)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/checkout/advance", session, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Blocked until every line has a service.
	w = doJSON(router, http.MethodPost, "/api/v1/checkout/advance", session, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/cart/items", session, `{"product_id":1,"weight":"250g","service":"envoi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/checkout/advance", session, "")
	require.Equal(t, http.StatusOK, w.Code)

	var state struct {
		Step  cart.Step `json:"step"`
		Ready bool      `json:"ready"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, cart.StepSchedule, state.Step)

	w = doJSON(router, http.MethodPut, "/api/v1/cart/items", session, `{"product_id":1,"weight":"250g","schedule":"Envoi sous 24h"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/checkout/advance", session, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, cart.StepReview, state.Step)
	assert.True(t, state.Ready)

	w = doJSON(router, http.MethodPost, "/api/v1/checkout/dispatch", session, "")
	require.Equal(t, http.StatusOK, w.Code)

	var outcome checkout.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, "whatsapp", outcome.Channel)
	assert.Contains(t, outcome.Link, "https://wa.me/+33611111111?text=")

	// Dispatch cleared the cart and reset the wizard.
	w = doJSON(router, http.MethodGet, "/api/v1/cart", session, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, cart.StepCart, state.Step)
}

func TestCartController_UnknownServiceRejected(t *testing.T) {
	router, testDB := setupCheckoutRouter(t)
	defer db.CleanupTestDB(testDB)

	session := cart.NewSessionID()
	item := `{"product_id":1,"weight":"250g","quantity":1,"price":9}`
	w := doJSON(router, http.MethodPost, "/api/v1/cart/items", session, item)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/cart/items", session, `{"product_id":1,"weight":"250g","service":"drone"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
