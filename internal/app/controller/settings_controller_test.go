package controller

import (
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
	"github.com/tmoreau/boutique-backend/internal/db"
	"gorm.io/gorm"
)

func setupSettingsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(testDB), false)
	ctrl := NewSettingsController(settingsSvc)

	r := gin.New()
	r.GET("/api/v1/settings", ctrl.GetSettings)
	r.PUT("/api/v1/settings", ctrl.UpdateSettings)
	r.POST("/api/v1/settings", ctrl.UpdateSettings)
	return r, testDB
}

func TestSettingsController_GetDefaults(t *testing.T) {
	router, testDB := setupSettingsRouter(t)
	defer db.CleanupTestDB(testDB)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ma Boutique", resp.ShopName)
	assert.Len(t, resp.LivraisonSchedules, 4)
	assert.Equal(t, "Matin (9h-12h)", resp.LivraisonSchedules[0])
	assert.Len(t, resp.EnvoiSchedules, 4)
	assert.False(t, resp.HasAdminPassword)
}

func TestSettingsController_UpdateAcceptsCamelCase(t *testing.T) {
	router, testDB := setupSettingsRouter(t)
	defer db.CleanupTestDB(testDB)

	body := `{"shopName":"Chez Nous","whatsappLink":"+33600000000","livraisonSchedules":["Lundi matin"]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chez Nous", resp.ShopName)
	assert.Equal(t, "+33600000000", resp.WhatsAppLink)
	assert.Equal(t, []string{"Lundi matin"}, resp.LivraisonSchedules)
}

func TestSettingsController_PostAliasAndMerge(t *testing.T) {
	router, testDB := setupSettingsRouter(t)
	defer db.CleanupTestDB(testDB)

	first := `{"shop_name":"Première"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(first))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	second := `{"scrollingText":"Bienvenue"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(second))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Première", resp.ShopName)
	assert.Equal(t, "Bienvenue", resp.ScrollingText)
}

func TestSettingsController_UpdateRejectsMalformedBody(t *testing.T) {
	router, testDB := setupSettingsRouter(t)
	defer db.CleanupTestDB(testDB)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
