package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type PageController struct {
	pageService service.PageService
}

func NewPageController(pageService service.PageService) *PageController {
	return &PageController{
		pageService: pageService,
	}
}

// ListPages returns the active content pages
// GET /api/v1/pages
func (ctrl *PageController) ListPages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pages, err := ctrl.pageService.ListPages()
	if err != nil {
		log.Error("Failed to list pages", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage returns one active page by slug
// GET /api/v1/pages/:slug
func (ctrl *PageController) GetPage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	page, err := ctrl.pageService.GetPage(slug)
	if err != nil {
		if err == service.ErrPageNotFound {
			errors.NotFound(c, errors.PageNotFound, "Page introuvable")
			return
		}
		log.Error("Failed to load page", err, map[string]interface{}{
			"slug": slug,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, page)
}
