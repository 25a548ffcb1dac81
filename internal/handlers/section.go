package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tablefront/internal/models"
	"tablefront/internal/preview"
	"tablefront/internal/store"
	"tablefront/internal/validation"
)

// Sections groups the home page section handlers and their dependencies.
type Sections struct {
	sections *store.SectionStore
	themes   *store.ThemeStore
	preview  *preview.Builder
}

// NewSections creates the section handler group.
func NewSections(sectionStore *store.SectionStore, themeStore *store.ThemeStore, previewBuilder *preview.Builder) *Sections {
	return &Sections{sections: sectionStore, themes: themeStore, preview: previewBuilder}
}

// themeID parses and verifies the {themeID} URL parameter, answering the
// error response itself when the theme is missing.
func (h *Sections) themeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return uuid.Nil, false
	}

	theme, err := h.themes.FindByID(id)
	if err != nil {
		slog.Error("find theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load theme")
		return uuid.Nil, false
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "theme not found")
		return uuid.Nil, false
	}
	return id, true
}

// List returns a theme's sections in display order, hidden ones included.
// This is the editor view; the preview endpoint filters visibility.
func (h *Sections) List(w http.ResponseWriter, r *http.Request) {
	themeID, ok := h.themeID(w, r)
	if !ok {
		return
	}

	sections, err := h.sections.List(themeID)
	if err != nil {
		slog.Error("list sections", "theme_id", themeID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list sections")
		return
	}
	if sections == nil {
		sections = []models.Section{}
	}
	respondJSON(w, http.StatusOK, sections)
}

// createSectionRequest is the payload for adding a section to a theme.
type createSectionRequest struct {
	SectionType string          `json:"section_type"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Description string          `json:"description"`
	IsVisible   *bool           `json:"is_visible,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}

// Create appends a section at the end of a theme's ordering.
func (h *Sections) Create(w http.ResponseWriter, r *http.Request) {
	themeID, ok := h.themeID(w, r)
	if !ok {
		return
	}

	var req createSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := validation.ValidateSectionCreate(validation.SectionInput{
		SectionType: req.SectionType,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
	})
	if !result.IsValid {
		respondValidation(w, result)
		return
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	created, err := h.sections.Create(&models.Section{
		ThemeID:     themeID,
		SectionType: req.SectionType,
		IsVisible:   visible,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		slog.Error("create section", "theme_id", themeID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create section")
		return
	}
	h.preview.Invalidate(r.Context(), themeID)

	slog.Info("section created", "theme_id", themeID, "section_id", created.ID, "type", created.SectionType)
	respondJSON(w, http.StatusCreated, created)
}

// reorderRequest moves one section to a zero-based target position within
// its theme's ordering.
type reorderRequest struct {
	SectionID uuid.UUID `json:"section_id"`
	Position  int       `json:"position"`
}

// Reorder validates the move first and applies it only when valid; a
// rejected move leaves the ordering untouched. Orders are renumbered to
// the contiguous 1..N inside one transaction.
func (h *Sections) Reorder(w http.ResponseWriter, r *http.Request) {
	themeID, ok := h.themeID(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch err := h.sections.Reorder(themeID, req.SectionID, req.Position); err {
	case nil:
	case store.ErrSectionNotFound:
		respondError(w, http.StatusNotFound, "section not found in this theme")
		return
	case store.ErrPositionOutOfRange:
		respondError(w, http.StatusBadRequest, "target position is out of range")
		return
	default:
		slog.Error("reorder section", "theme_id", themeID, "section_id", req.SectionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to reorder section")
		return
	}
	h.preview.Invalidate(r.Context(), themeID)

	sections, err := h.sections.List(themeID)
	if err != nil {
		slog.Error("list sections", "theme_id", themeID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list sections")
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

// loadSection resolves the {sectionID} URL parameter to a stored section.
func (h *Sections) loadSection(w http.ResponseWriter, r *http.Request) (*models.Section, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sectionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid section id")
		return nil, false
	}

	section, err := h.sections.FindByID(id)
	if err != nil {
		slog.Error("find section", "section_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return nil, false
	}
	if section == nil {
		respondError(w, http.StatusNotFound, "section not found")
		return nil, false
	}
	return section, true
}

// UpdateContent patches a section's text and content fields. Order and
// visibility have their own operations and are never touched here.
func (h *Sections) UpdateContent(w http.ResponseWriter, r *http.Request) {
	section, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	var patch models.SectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := validation.SectionInput{}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		in.Subtitle = *patch.Subtitle
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if result := validation.ValidateSectionPatch(in); !result.IsValid {
		respondValidation(w, result)
		return
	}

	if err := h.sections.UpdateContent(section.ID, patch); err != nil {
		if err == store.ErrSectionNotFound {
			respondError(w, http.StatusNotFound, "section not found")
			return
		}
		slog.Error("update section", "section_id", section.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update section")
		return
	}
	h.preview.Invalidate(r.Context(), section.ThemeID)

	updated, err := h.sections.FindByID(section.ID)
	if err != nil || updated == nil {
		slog.Error("reload section", "section_id", section.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// visibilityRequest toggles whether a section renders on the storefront.
type visibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

// SetVisibility shows or hides a section without touching its position.
func (h *Sections) SetVisibility(w http.ResponseWriter, r *http.Request) {
	section, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.sections.ToggleVisibility(section.ID, req.IsVisible); err != nil {
		if err == store.ErrSectionNotFound {
			respondError(w, http.StatusNotFound, "section not found")
			return
		}
		slog.Error("toggle section visibility", "section_id", section.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update section")
		return
	}
	h.preview.Invalidate(r.Context(), section.ThemeID)

	w.WriteHeader(http.StatusNoContent)
}

// Delete soft-deletes a section by hiding it. The row and its position
// survive so the section can be restored later.
func (h *Sections) Delete(w http.ResponseWriter, r *http.Request) {
	section, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	if err := h.sections.SoftDelete(section.ID); err != nil {
		if err == store.ErrSectionNotFound {
			respondError(w, http.StatusNotFound, "section not found")
			return
		}
		slog.Error("soft delete section", "section_id", section.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete section")
		return
	}
	h.preview.Invalidate(r.Context(), section.ThemeID)

	w.WriteHeader(http.StatusNoContent)
}
