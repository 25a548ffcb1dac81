package models

import (
	"time"

	"github.com/google/uuid"
)

// ThemeColors is the named color palette of a storefront theme. Every field
// is a hex color string (#RGB, #RRGGBB, or #RRGGBBAA).
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
	Shadow     string `json:"shadow"`
}

// Typography holds font and sizing settings for a theme.
type Typography struct {
	FontFamily   string  `json:"font_family"`
	BaseFontSize int     `json:"base_font_size"`
	BorderRadius int     `json:"border_radius"`
	LineHeight   float64 `json:"line_height"`
}

// Identity holds the storefront's public identity fields.
type Identity struct {
	SiteTitle  string `json:"site_title"`
	LogoURL    string `json:"logo_url,omitempty"`
	FaviconURL string `json:"favicon_url,omitempty"`
}

// ThemeConfig is the complete visual configuration of one restaurant's
// storefront, persisted as JSONB. A config is only persistable when the
// validation engine reports zero errors across every sub-object.
type ThemeConfig struct {
	Colors           ThemeColors               `json:"colors"`
	Typography       Typography                `json:"typography"`
	Identity         Identity                  `json:"identity"`
	CustomCSS        string                    `json:"custom_css,omitempty"`
	ComponentConfigs map[string]map[string]any `json:"component_configs,omitempty"`
}

// Theme is a stored storefront theme. At most one theme is active at a time.
type Theme struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Config    ThemeConfig `json:"config"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateThemeRequest is the payload for creating a theme. All sub-objects
// are required and validated as a whole; nothing is persisted unless the
// entire request is valid.
type CreateThemeRequest struct {
	Name             string                    `json:"name"`
	Slug             string                    `json:"slug,omitempty"`
	Colors           ThemeColors               `json:"colors"`
	Typography       Typography                `json:"typography"`
	Identity         Identity                  `json:"identity"`
	CustomCSS        string                    `json:"custom_css,omitempty"`
	ComponentConfigs map[string]map[string]any `json:"component_configs,omitempty"`
}

// UpdateThemeRequest is a partial theme update. Absent fields are left
// untouched; present fields are validated with the same rules as create.
type UpdateThemeRequest struct {
	Name             string                    `json:"name,omitempty"`
	Colors           *ThemeColors              `json:"colors,omitempty"`
	Typography       *Typography               `json:"typography,omitempty"`
	Identity         *Identity                 `json:"identity,omitempty"`
	CustomCSS        *string                   `json:"custom_css,omitempty"`
	ComponentConfigs map[string]map[string]any `json:"component_configs,omitempty"`
}

// Apply merges the update request into an existing config, returning the
// merged result. Only fields present in the request are replaced.
func (r *UpdateThemeRequest) Apply(cfg ThemeConfig) ThemeConfig {
	if r.Colors != nil {
		cfg.Colors = *r.Colors
	}
	if r.Typography != nil {
		cfg.Typography = *r.Typography
	}
	if r.Identity != nil {
		cfg.Identity = *r.Identity
	}
	if r.CustomCSS != nil {
		cfg.CustomCSS = *r.CustomCSS
	}
	if r.ComponentConfigs != nil {
		cfg.ComponentConfigs = r.ComponentConfigs
	}
	return cfg
}
