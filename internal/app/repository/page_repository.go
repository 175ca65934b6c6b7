package repository

import (
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"gorm.io/gorm"
)

type PageRepository interface {
	FindBySlug(slug string) (*model.Page, error)
	FindAllActive() ([]model.Page, error)
	Save(page *model.Page) error
}

type pageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) FindBySlug(slug string) (*model.Page, error) {
	var page model.Page
	err := r.db.Where("slug = ?", slug).First(&page).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find page by slug in database", err, map[string]interface{}{
				"slug": slug,
			})
		}
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) FindAllActive() ([]model.Page, error) {
	var pages []model.Page
	err := r.db.Where("is_active = ?", true).Order("slug ASC").Find(&pages).Error
	if err != nil {
		logger.Error("Failed to list active pages in database", err, nil)
		return nil, err
	}
	return pages, nil
}

func (r *pageRepository) Save(page *model.Page) error {
	logger.Debug("Saving page to database", map[string]interface{}{
		"slug": page.Slug,
	})

	if err := r.db.Save(page).Error; err != nil {
		logger.Error("Failed to save page to database", err, map[string]interface{}{
			"slug": page.Slug,
		})
		return err
	}
	return nil
}
