package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tablefront/internal/models"
)

// Structural errors rejected before any mutation takes place.
var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrPositionOutOfRange = errors.New("target position out of range")
)

// SectionStore maintains each theme's ordered, visibility-tagged home-page
// sections. Position and visibility are independent axes: toggling
// visibility never moves a section, and reordering never hides one.
//
// Sections are never hard-deleted here; SoftDelete marks a section
// invisible so editors can restore it. Concurrent editors of the same
// theme resolve as last-write-wins.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, theme_id, section_type, display_order, is_visible,
	title, subtitle, description, content, created_at, updated_at`

// scanSection scans a section row. The content column is nullable JSONB.
func scanSection(scanner interface{ Scan(...any) error }) (*models.Section, error) {
	var s models.Section
	var content sql.NullString
	err := scanner.Scan(
		&s.ID, &s.ThemeID, &s.SectionType, &s.DisplayOrder, &s.IsVisible,
		&s.Title, &s.Subtitle, &s.Description, &content, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if content.Valid {
		s.Content = []byte(content.String)
	}
	return &s, nil
}

// List returns all of a theme's sections, hidden ones included, sorted
// ascending by display order. Filtering to visible sections is the
// renderer's job so editors still see hidden sections.
func (s *SectionStore) List(themeID uuid.UUID) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT `+sectionColumns+`
		FROM homepage_sections
		WHERE theme_id = $1
		ORDER BY display_order ASC
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var items []models.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		items = append(items, *sec)
	}
	return items, rows.Err()
}

// FindByID retrieves a section by its UUID. Returns nil if not found.
func (s *SectionStore) FindByID(id uuid.UUID) (*models.Section, error) {
	row := s.db.QueryRow(`SELECT `+sectionColumns+` FROM homepage_sections WHERE id = $1`, id)
	sec, err := scanSection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// Create inserts a new section at the end of the theme's ordering, using
// the next free display order value.
func (s *SectionStore) Create(sec *models.Section) (*models.Section, error) {
	var displayOrder int
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(display_order), 0) + 1
		FROM homepage_sections
		WHERE theme_id = $1
	`, sec.ThemeID).Scan(&displayOrder)
	if err != nil {
		return nil, fmt.Errorf("next display order: %w", err)
	}

	var content any
	if sec.Content != nil {
		content = string(sec.Content)
	}

	row := s.db.QueryRow(`
		INSERT INTO homepage_sections
			(theme_id, section_type, display_order, is_visible, title, subtitle, description, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+sectionColumns,
		sec.ThemeID, sec.SectionType, displayOrder, sec.IsVisible,
		sec.Title, sec.Subtitle, sec.Description, content,
	)
	created, err := scanSection(row)
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return created, nil
}

// ToggleVisibility sets a section's visibility flag. The set is idempotent
// and never touches display order.
func (s *SectionStore) ToggleVisibility(id uuid.UUID, visible bool) error {
	result, err := s.db.Exec(`
		UPDATE homepage_sections SET is_visible = $1, updated_at = NOW()
		WHERE id = $2
	`, visible, id)
	if err != nil {
		return fmt.Errorf("toggle section visibility: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// UpdateContent applies a partial patch to a section's display fields.
// Nil patch fields leave the stored value untouched. Display order and
// visibility are never modified here.
func (s *SectionStore) UpdateContent(id uuid.UUID, patch models.SectionPatch) error {
	var content any
	if patch.Content != nil {
		content = string(patch.Content)
	}

	result, err := s.db.Exec(`
		UPDATE homepage_sections SET
			title = COALESCE($1::text, title),
			subtitle = COALESCE($2::text, subtitle),
			description = COALESCE($3::text, description),
			content = COALESCE($4::jsonb, content),
			updated_at = NOW()
		WHERE id = $5
	`, patch.Title, patch.Subtitle, patch.Description, content, id)
	if err != nil {
		return fmt.Errorf("update section content: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Reorder moves a section to targetPosition (a 0-based index into the
// theme's ordered list) and renumbers every section in the theme to its
// new 1-based index. The full permutation is recomputed on every move
// rather than shifting a range: the invariant "display orders are exactly
// 1..N" then holds by construction, with no collision or gap cases.
//
// Validation happens before any mutation, and the whole order map is
// written inside one transaction — a reader never observes a partially
// renumbered theme, and on any failure the prior ordering stays intact.
func (s *SectionStore) Reorder(themeID, sectionID uuid.UUID, targetPosition int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids, err := lockSectionOrder(tx, themeID)
	if err != nil {
		return err
	}

	found := false
	for _, id := range ids {
		if id == sectionID {
			found = true
			break
		}
	}
	if !found {
		return ErrSectionNotFound
	}
	if targetPosition < 0 || targetPosition >= len(ids) {
		return ErrPositionOutOfRange
	}

	// Remove the section and reinsert it at the target index.
	without := make([]uuid.UUID, 0, len(ids)-1)
	for _, id := range ids {
		if id != sectionID {
			without = append(without, id)
		}
	}
	reordered := make([]uuid.UUID, 0, len(ids))
	reordered = append(reordered, without[:targetPosition]...)
	reordered = append(reordered, sectionID)
	reordered = append(reordered, without[targetPosition:]...)

	for i, id := range reordered {
		if _, err := tx.Exec(`
			UPDATE homepage_sections SET display_order = $1, updated_at = NOW()
			WHERE id = $2
		`, i+1, id); err != nil {
			return fmt.Errorf("renumber section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

// SoftDelete hides a section. There is no hard-delete path for sections;
// undoing a delete is re-toggling visibility.
func (s *SectionStore) SoftDelete(id uuid.UUID) error {
	return s.ToggleVisibility(id, false)
}

// lockSectionOrder reads a theme's section IDs in display order, locking
// the rows for the duration of the transaction.
func lockSectionOrder(tx *sql.Tx, themeID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(`
		SELECT id FROM homepage_sections
		WHERE theme_id = $1
		ORDER BY display_order ASC
		FOR UPDATE
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("lock sections: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan section id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
