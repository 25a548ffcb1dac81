package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tablefront/internal/models"
)

// Seed populates the database with initial development data: one active
// storefront theme with a default home-page section layout. No-op if any
// theme already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM themes").Scan(&count); err != nil {
		return fmt.Errorf("seed check themes: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	cfg := models.ThemeConfig{
		Colors: models.ThemeColors{
			Primary:    "#3b82f6",
			Secondary:  "#1e40af",
			Accent:     "#0ea5e9",
			Background: "#ffffff",
			Text:       "#1f2937",
			Border:     "#e5e7eb",
			Shadow:     "#000000",
		},
		Typography: models.Typography{
			FontFamily:   "Inter",
			BaseFontSize: 16,
			BorderRadius: 8,
			LineHeight:   1.5,
		},
		Identity: models.Identity{
			SiteTitle: "My Restaurant",
		},
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("seed marshal config: %w", err)
	}

	var themeID uuid.UUID
	err = db.QueryRow(`
		INSERT INTO themes (name, slug, config, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id
	`, "Modern", "modern", cfgJSON).Scan(&themeID)
	if err != nil {
		return fmt.Errorf("seed insert theme: %w", err)
	}

	sections := []struct {
		sectionType string
		title       string
		subtitle    string
	}{
		{models.SectionHero, "Welcome to My Restaurant", "Fresh food, made daily"},
		{models.SectionFeaturedItems, "Our Favorites", "The dishes our guests love most"},
		{models.SectionWhyChooseUs, "Why Choose Us", ""},
		{models.SectionCTA, "Order Online", "Pickup and delivery available"},
	}

	for i, s := range sections {
		_, err := db.Exec(`
			INSERT INTO homepage_sections (theme_id, section_type, display_order, title, subtitle)
			VALUES ($1, $2, $3, $4, $5)
		`, themeID, s.sectionType, i+1, s.title, s.subtitle)
		if err != nil {
			return fmt.Errorf("seed insert section %s: %w", s.sectionType, err)
		}
	}

	slog.Info("database seeded with default theme",
		"theme", "Modern",
		"sections", len(sections),
	)

	return nil
}
