package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	ListOrders(status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error)
	ExportXLSX() ([]byte, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.orderRepo.FindAll(status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	switch status {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusCancelled:
	default:
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// ExportXLSX renders every order into a single-sheet workbook for offline
// bookkeeping.
func (s *orderService) ExportXLSX() ([]byte, error) {
	orders, _, err := s.orderRepo.FindAll("", 10000, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"ID", "Date", "Service", "Canal", "Contact", "Total", "Statut", "Articles"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.Service,
			order.Channel,
			order.Contact,
			fmt.Sprintf("%.2f", order.TotalAmount),
			string(order.Status),
			order.Items,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write orders workbook", err, nil)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
	return buf.Bytes(), nil
}
