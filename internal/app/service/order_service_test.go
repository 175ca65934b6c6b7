package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*gorm.DB, OrderService, repository.OrderRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := repository.NewOrderRepository(testDB)
	return testDB, NewOrderService(repo), repo
}

func TestOrderService_ListOrders(t *testing.T) {
	testDB, svc, repo := setupOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.Order{Service: "livraison", TotalAmount: float64(i + 1)}))
	}

	orders, total, err := svc.ListOrders("", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)

	// Out-of-range values fall back to sane pagination.
	orders, _, err = svc.ListOrders("", 0, -5)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	testDB, svc, repo := setupOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{Service: "meetup", TotalAmount: 14}
	require.NoError(t, repo.Create(order))

	updated, err := svc.UpdateStatus(order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = svc.UpdateStatus(9999, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ExportXLSX(t *testing.T) {
	testDB, svc, repo := setupOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Order{
		Service:     "livraison",
		Channel:     "whatsapp",
		Contact:     "+33600000000",
		Items:       `[{"product_id":1,"quantity":2}]`,
		TotalAmount: 18,
	}))

	data, err := svc.ExportXLSX()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Service", rows[0][2])
	assert.Equal(t, "livraison", rows[1][2])
}
