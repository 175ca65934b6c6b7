package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

// SessionHeader carries the opaque cart session ID. A missing header gets
// a fresh session, echoed back on every response.
const SessionHeader = "X-Cart-Session"

type CartController struct {
	checkoutService service.CheckoutService
}

func NewCartController(checkoutService service.CheckoutService) *CartController {
	return &CartController{
		checkoutService: checkoutService,
	}
}

type AddItemRequest struct {
	ProductID     uint    `json:"product_id" binding:"required"`
	Weight        string  `json:"weight"`
	ProductName   string  `json:"product_name"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	OriginalPrice float64 `json:"original_price"`
	Discount      int     `json:"discount"`
}

type UpdateItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Weight    string  `json:"weight"`
	Quantity  *int    `json:"quantity"`
	Service   *string `json:"service"`
	Schedule  *string `json:"schedule"`
}

type RemoveItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Weight    string `json:"weight"`
}

// session resolves the cart session ID, minting one when the header is
// absent, and echoes it back.
func session(c *gin.Context) string {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		id = cart.NewSessionID()
	}
	c.Header(SessionHeader, id)
	return id
}

func cartResponse(c *gin.Context, crt *cart.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"items":            crt.Items,
		"open":             crt.Open,
		"step":             crt.Step,
		"total":            crt.TotalPrice(),
		"count":            crt.TotalQuantity(),
		"services":         crt.ServicesInUse(),
		"missing_service":  len(crt.ItemsNeedingService()),
		"missing_schedule": len(crt.ItemsNeedingSchedule()),
		"ready":            crt.ReadyForOrder(),
	})
}

// GetCart returns the session's cart state
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	crt, err := ctrl.checkoutService.Cart(c.Request.Context(), session(c))
	if err != nil {
		log.Error("Failed to load cart", err, nil)
		errors.InternalError(c, "")
		return
	}
	cartResponse(c, crt)
}

// AddItem adds a product line to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	item := cart.Item{
		ProductID:     req.ProductID,
		Weight:        req.Weight,
		ProductName:   req.ProductName,
		Image:         req.Image,
		Quantity:      req.Quantity,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
	}

	crt, err := ctrl.checkoutService.AddItem(c.Request.Context(), session(c), item)
	if err != nil {
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}
	cartResponse(c, crt)
}

// UpdateItem updates quantity, service or schedule of a cart line
// PUT /api/v1/cart/items
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	ctx := c.Request.Context()
	sessionID := session(c)

	var crt *cart.Cart
	var err error
	switch {
	case req.Quantity != nil:
		crt, err = ctrl.checkoutService.UpdateQuantity(ctx, sessionID, req.ProductID, req.Weight, *req.Quantity)
	case req.Service != nil:
		crt, err = ctrl.checkoutService.UpdateService(ctx, sessionID, req.ProductID, req.Weight, *req.Service)
	case req.Schedule != nil:
		crt, err = ctrl.checkoutService.UpdateSchedule(ctx, sessionID, req.ProductID, req.Weight, *req.Schedule)
	default:
		errors.BadRequest(c, errors.ValidationRequired, "Aucune modification fournie")
		return
	}

	if err != nil {
		if err == cart.ErrInvalidService {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Service inconnu")
			return
		}
		log.Error("Failed to update cart line", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}
	cartResponse(c, crt)
}

// RemoveItem removes a cart line
// DELETE /api/v1/cart/items
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	crt, err := ctrl.checkoutService.RemoveItem(c.Request.Context(), session(c), req.ProductID, req.Weight)
	if err != nil {
		log.Error("Failed to remove cart line", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}
	cartResponse(c, crt)
}

// ClearCart empties the cart and resets the wizard
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	crt, err := ctrl.checkoutService.ClearCart(c.Request.Context(), session(c))
	if err != nil {
		log.Error("Failed to clear cart", err, nil)
		errors.InternalError(c, "")
		return
	}
	cartResponse(c, crt)
}
