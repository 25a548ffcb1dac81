// Package preview assembles the data contract consumed by the storefront
// preview renderer: the validated palette and typography of a theme plus
// its visible sections in ascending display order. The renderer owns all
// markup; this package only guarantees the payload shape.
package preview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tablefront/internal/cache"
	"tablefront/internal/models"
	"tablefront/internal/store"
)

// Payload is the complete input a renderer needs for one theme's page.
type Payload struct {
	ThemeID    uuid.UUID          `json:"theme_id"`
	Name       string             `json:"name"`
	Palette    models.ThemeColors `json:"palette"`
	Typography models.Typography  `json:"typography"`
	Identity   models.Identity    `json:"identity"`
	CustomCSS  string             `json:"custom_css,omitempty"`
	Sections   []models.Section   `json:"sections"`
}

// Builder assembles preview payloads from the stores, caching the encoded
// result in Valkey.
type Builder struct {
	themes   *store.ThemeStore
	sections *store.SectionStore
	cache    *cache.PreviewCache
}

// NewBuilder creates a preview builder.
func NewBuilder(themes *store.ThemeStore, sections *store.SectionStore, previewCache *cache.PreviewCache) *Builder {
	return &Builder{themes: themes, sections: sections, cache: previewCache}
}

// Build returns the encoded preview payload for a theme, serving from
// cache when possible. Hidden sections are filtered out here: the preview
// is the reader path, and only the editor listing shows hidden sections.
// Returns store.ErrThemeNotFound for an unknown theme.
func (b *Builder) Build(ctx context.Context, themeID uuid.UUID) ([]byte, error) {
	if cached, ok := b.cache.Get(ctx, themeID); ok {
		return cached, nil
	}

	theme, err := b.themes.FindByID(themeID)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, store.ErrThemeNotFound
	}

	sections, err := b.sections.List(themeID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Section, 0, len(sections))
	for _, s := range sections {
		if s.IsVisible {
			visible = append(visible, s)
		}
	}

	payload := Payload{
		ThemeID:    theme.ID,
		Name:       theme.Name,
		Palette:    theme.Config.Colors,
		Typography: theme.Config.Typography,
		Identity:   theme.Config.Identity,
		CustomCSS:  theme.Config.CustomCSS,
		Sections:   visible,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode preview payload: %w", err)
	}

	b.cache.Set(ctx, themeID, encoded)
	return encoded, nil
}

// Invalidate drops a theme's cached preview. Call after any theme or
// section mutation.
func (b *Builder) Invalidate(ctx context.Context, themeID uuid.UUID) {
	b.cache.Invalidate(ctx, themeID)
}
