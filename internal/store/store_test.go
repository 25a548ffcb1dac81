// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"tablefront/internal/database"
	"tablefront/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with the same defaults as internal/config.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "tablefront")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "tablefront")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanThemes removes test themes (and their sections, via cascade) by
// slug. Call in t.Cleanup().
func cleanThemes(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM themes WHERE slug = $1", slug)
	}
}

// validConfig returns a theme config that passes validation, for store
// tests that need one to persist.
func validConfig() models.ThemeConfig {
	return models.ThemeConfig{
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
		Identity: models.Identity{SiteTitle: "Test Restaurant"},
	}
}

// createTestTheme inserts a theme for section tests and registers cleanup.
func createTestTheme(t *testing.T, db *sql.DB) *models.Theme {
	t.Helper()

	slug := "test-theme-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanThemes(t, db, slug) })

	theme, err := NewThemeStore(db).Create(&models.Theme{
		Name:   "Section Test Theme",
		Slug:   slug,
		Config: validConfig(),
	})
	if err != nil {
		t.Fatalf("create test theme: %v", err)
	}
	return theme
}
