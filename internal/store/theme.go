package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tablefront/internal/models"
)

// ErrThemeNotFound is returned by write operations targeting a theme that
// does not exist.
var ErrThemeNotFound = errors.New("theme not found")

// ErrThemeActive is returned when deleting the active theme. The active
// theme must be swapped out before it can be removed.
var ErrThemeActive = errors.New("theme is active")

// ThemeStore handles all theme database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `id, name, slug, config, is_active, created_at, updated_at`

// scanTheme scans a theme row, decoding the JSONB config column.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.Theme, error) {
	var t models.Theme
	var cfg []byte
	err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &cfg, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &t.Config); err != nil {
			return nil, fmt.Errorf("decode theme config: %w", err)
		}
	}
	return &t, nil
}

// List returns all themes ordered by creation date descending.
func (s *ThemeStore) List() ([]models.Theme, error) {
	rows, err := s.db.Query(`
		SELECT ` + themeColumns + `
		FROM themes
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var items []models.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a theme by its UUID. Returns nil if not found.
func (s *ThemeStore) FindByID(id uuid.UUID) (*models.Theme, error) {
	row := s.db.QueryRow(`SELECT `+themeColumns+` FROM themes WHERE id = $1`, id)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// FindBySlug retrieves a theme by its slug. Returns nil if not found.
func (s *ThemeStore) FindBySlug(slug string) (*models.Theme, error) {
	row := s.db.QueryRow(`SELECT `+themeColumns+` FROM themes WHERE slug = $1`, slug)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by slug: %w", err)
	}
	return t, nil
}

// FindActive returns the currently active theme, or nil if none is active.
func (s *ThemeStore) FindActive() (*models.Theme, error) {
	row := s.db.QueryRow(`SELECT ` + themeColumns + ` FROM themes WHERE is_active = TRUE LIMIT 1`)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active theme: %w", err)
	}
	return t, nil
}

// Create inserts a new theme and returns it with the generated ID.
// The caller is responsible for validating the config first; this store
// persists whatever it is given.
func (s *ThemeStore) Create(t *models.Theme) (*models.Theme, error) {
	cfg, err := json.Marshal(t.Config)
	if err != nil {
		return nil, fmt.Errorf("encode theme config: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO themes (name, slug, config)
		VALUES ($1, $2, $3)
		RETURNING `+themeColumns,
		t.Name, t.Slug, cfg,
	)
	created, err := scanTheme(row)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return created, nil
}

// Update replaces a theme's name and full config.
func (s *ThemeStore) Update(id uuid.UUID, name string, config models.ThemeConfig) error {
	cfg, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode theme config: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE themes SET name = $1, config = $2, updated_at = NOW()
		WHERE id = $3
	`, name, cfg, id)
	if err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrThemeNotFound
	}
	return nil
}

// Activate sets a theme as active and deactivates all others.
// Uses a transaction to ensure atomicity.
func (s *ThemeStore) Activate(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Deactivate all themes.
	if _, err := tx.Exec(`UPDATE themes SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("deactivate themes: %w", err)
	}

	// Activate the target theme.
	result, err := tx.Exec(`UPDATE themes SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activate theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrThemeNotFound
	}

	return tx.Commit()
}

// Delete removes a theme and, via cascade, its sections. Cannot delete the
// active theme.
func (s *ThemeStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM themes WHERE id = $1 AND is_active = FALSE`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var active bool
		err := s.db.QueryRow(`SELECT is_active FROM themes WHERE id = $1`, id).Scan(&active)
		if err == sql.ErrNoRows {
			return ErrThemeNotFound
		}
		if err != nil {
			return fmt.Errorf("delete theme: %w", err)
		}
		return ErrThemeActive
	}
	return nil
}
