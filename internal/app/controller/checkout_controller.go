package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type BackRequest struct {
	Target string `json:"target"`
}

type DispatchRequest struct {
	Service string `json:"service"`
}

// checkoutError maps wizard sentinels to stable codes. Blocked transitions
// are 409: the request was well-formed, the cart just is not there yet.
func checkoutError(c *gin.Context, err error) {
	switch err {
	case cart.ErrEmptyCart:
		errors.Conflict(c, errors.CartEmpty, "Votre panier est vide")
	case cart.ErrServiceRequired:
		errors.Conflict(c, errors.CheckoutServiceRequired, "Choisissez un service pour chaque article")
	case cart.ErrScheduleRequired:
		errors.Conflict(c, errors.CheckoutScheduleRequired, "Choisissez un horaire pour chaque article")
	case cart.ErrInvalidStep:
		errors.Conflict(c, errors.CheckoutInvalidStep, "Navigation impossible depuis cette étape")
	case checkout.ErrNoContact:
		errors.Conflict(c, errors.CheckoutNoContact, "Aucun contact configuré pour la commande")
	case service.ErrServiceNotInCart:
		errors.BadRequest(c, errors.CheckoutNotReady, "Ce service n'est pas utilisé dans le panier")
	default:
		errors.InternalError(c, "")
	}
}

// Advance moves the wizard one step forward
// POST /api/v1/checkout/advance
func (ctrl *CheckoutController) Advance(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	crt, err := ctrl.checkoutService.Advance(c.Request.Context(), session(c))
	if err != nil {
		log.Warn("Wizard advance blocked", map[string]interface{}{
			"error": err.Error(),
		})
		checkoutError(c, err)
		return
	}
	cartResponse(c, crt)
}

// Back moves the wizard backwards, to the previous step or an explicit
// earlier target
// POST /api/v1/checkout/back
func (ctrl *CheckoutController) Back(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BackRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	crt, err := ctrl.checkoutService.Back(c.Request.Context(), session(c), cart.Step(req.Target))
	if err != nil {
		log.Warn("Wizard back navigation blocked", map[string]interface{}{
			"target": req.Target,
			"error":  err.Error(),
		})
		checkoutError(c, err)
		return
	}
	cartResponse(c, crt)
}

// Dispatch hands the order off to the configured channel
// POST /api/v1/checkout/dispatch
func (ctrl *CheckoutController) Dispatch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	outcome, err := ctrl.checkoutService.Dispatch(c.Request.Context(), session(c), cart.Service(req.Service))
	if err != nil {
		log.Warn("Order dispatch failed", map[string]interface{}{
			"service": req.Service,
			"error":   err.Error(),
		})
		checkoutError(c, err)
		return
	}

	log.Info("Order dispatched", map[string]interface{}{
		"channel": outcome.Channel,
	})
	c.JSON(http.StatusOK, outcome)
}
