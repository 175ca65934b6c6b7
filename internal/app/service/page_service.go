package service

import (
	"errors"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not found")

// PageService serves the static content pages the storefront renders
// (info, contact). Pages are created by the seed tool and edited in place.
type PageService interface {
	ListPages() ([]model.Page, error)
	GetPage(slug string) (*model.Page, error)
}

type pageService struct {
	pageRepo repository.PageRepository
}

func NewPageService(pageRepo repository.PageRepository) PageService {
	return &pageService{pageRepo: pageRepo}
}

func (s *pageService) ListPages() ([]model.Page, error) {
	return s.pageRepo.FindAllActive()
}

// GetPage returns the active page with the given slug. Inactive pages are
// hidden from the storefront and answered as missing.
func (s *pageService) GetPage(slug string) (*model.Page, error) {
	page, err := s.pageRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	if !page.IsActive {
		return nil, ErrPageNotFound
	}
	return page, nil
}
