package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section types rendered on a storefront home page.
const (
	SectionHero          = "hero"
	SectionFeaturedItems = "featured_items"
	SectionWhyChooseUs   = "why_choose_us"
	SectionInfoCards     = "info_cards"
	SectionCTA           = "cta"
	SectionTestimonials  = "testimonials"
)

// Section is one content block on a theme's home page. Position
// (DisplayOrder) and visibility are orthogonal: hiding a section never
// changes its order. Sections are never hard-deleted; "removed" sections
// are simply marked invisible so editors can restore them.
//
// Within one theme the display_order values always form the contiguous
// permutation 1..N after any ordering mutation.
type Section struct {
	ID           uuid.UUID       `json:"id"`
	ThemeID      uuid.UUID       `json:"theme_id"`
	SectionType  string          `json:"section_type"`
	DisplayOrder int             `json:"display_order"`
	IsVisible    bool            `json:"is_visible"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	Description  string          `json:"description"`
	Content      json.RawMessage `json:"content,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SectionPatch is a partial update of a section's display fields.
// Nil fields are left untouched. Order and visibility are never part of
// a content patch; they have dedicated operations.
type SectionPatch struct {
	Title       *string         `json:"title,omitempty"`
	Subtitle    *string         `json:"subtitle,omitempty"`
	Description *string         `json:"description,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}
