package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders returns recorded orders, newest first
// GET /api/v1/admin/orders?status=&page=&limit=
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := model.OrderStatus(c.Query("status"))

	orders, total, err := ctrl.orderService.ListOrders(status, page, limit)
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// UpdateStatus changes an order's status
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identifiant de commande invalide")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Statut requis")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(uint(id), model.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			errors.NotFound(c, errors.OrderNotFound, "Commande introuvable")
		case service.ErrInvalidOrderStatus:
			errors.BadRequest(c, errors.OrderInvalidStatus, "Statut de commande invalide")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// Export streams every order as an XLSX workbook
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.orderService.ExportXLSX()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		errors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("commandes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
