package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the admin password for a session token
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Mot de passe requis")
		return
	}

	token, err := ctrl.authService.Login(req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials, service.ErrAdminNotConfigured:
			log.Warn("Admin login rejected", nil)
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Mot de passe incorrect")
		default:
			log.Error("Admin login failed", err, nil)
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
