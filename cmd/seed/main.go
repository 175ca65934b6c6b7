package main

import (
	"fmt"
	"log"

	"github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/db"
	"gorm.io/gorm"
)

// Seeds the settings row and the static info/contact pages. Safe to run
// repeatedly: existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	pageRepo := repository.NewPageRepository(db.GetDB())

	pages := []model.Page{
		{
			Slug:     "info",
			Title:    "Informations",
			Content:  "Bienvenue dans notre boutique. Retrouvez ici toutes les informations pratiques.",
			IsActive: true,
		},
		{
			Slug:     "contact",
			Title:    "Contact",
			Content:  "Contactez-nous via le lien de commande configuré dans les paramètres.",
			IsActive: true,
		},
	}

	created := 0
	for _, page := range pages {
		existing, err := pageRepo.FindBySlug(page.Slug)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatal("Failed to check page:", err)
		}
		if existing != nil {
			fmt.Printf("Page %q already exists, skipping\n", page.Slug)
			continue
		}
		if err := pageRepo.Save(&page); err != nil {
			log.Fatal("Failed to seed page:", err)
		}
		created++
	}

	fmt.Printf("Seed completed: %d page(s) created\n", created)
}
