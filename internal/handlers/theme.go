package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tablefront/internal/colors"
	"tablefront/internal/models"
	"tablefront/internal/preview"
	"tablefront/internal/slug"
	"tablefront/internal/store"
	"tablefront/internal/validation"
)

// Themes groups the theme API handlers and their dependencies.
type Themes struct {
	store   *store.ThemeStore
	preview *preview.Builder
}

// NewThemes creates the theme handler group.
func NewThemes(themeStore *store.ThemeStore, previewBuilder *preview.Builder) *Themes {
	return &Themes{store: themeStore, preview: previewBuilder}
}

// List returns every theme, newest first.
func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.store.List()
	if err != nil {
		slog.Error("list themes", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list themes")
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	respondJSON(w, http.StatusOK, themes)
}

// Get returns one theme by UUID.
func (h *Themes) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return
	}

	theme, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "theme not found")
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

// GetBySlug returns one theme by its slug.
func (h *Themes) GetBySlug(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find theme by slug", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "theme not found")
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

// Active returns the currently active theme.
func (h *Themes) Active(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.FindActive()
	if err != nil {
		slog.Error("find active theme", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load active theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "no active theme")
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

// Create validates a full theme config and persists it when every check
// passes. Nothing is stored on a failed validation.
func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if result := validation.ValidateCreate(&req); !result.IsValid {
		respondValidation(w, result)
		return
	}

	themeSlug := req.Slug
	if themeSlug == "" {
		themeSlug = slug.Generate(req.Name)
	}
	if existing, err := h.store.FindBySlug(themeSlug); err != nil {
		slog.Error("check slug", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create theme")
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "a theme with this slug already exists")
		return
	}

	created, err := h.store.Create(&models.Theme{
		Name: req.Name,
		Slug: themeSlug,
		Config: models.ThemeConfig{
			Colors:           req.Colors,
			Typography:       req.Typography,
			Identity:         req.Identity,
			CustomCSS:        req.CustomCSS,
			ComponentConfigs: req.ComponentConfigs,
		},
	})
	if err != nil {
		slog.Error("create theme", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create theme")
		return
	}

	slog.Info("theme created", "theme_id", created.ID, "slug", created.Slug)
	respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial theme update. Present fields are validated with
// the create rules; the merged config is written as a whole. Last write
// wins between concurrent editors.
func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return
	}

	var req models.UpdateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if result := validation.ValidateUpdate(&req); !result.IsValid {
		respondValidation(w, result)
		return
	}

	theme, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "theme not found")
		return
	}

	name := theme.Name
	if req.Name != "" {
		name = req.Name
	}
	merged := req.Apply(theme.Config)

	if err := h.store.Update(id, name, merged); err != nil {
		if err == store.ErrThemeNotFound {
			respondError(w, http.StatusNotFound, "theme not found")
			return
		}
		slog.Error("update theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update theme")
		return
	}
	h.preview.Invalidate(r.Context(), id)

	updated, err := h.store.FindByID(id)
	if err != nil || updated == nil {
		slog.Error("reload theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Activate makes a theme the single active one.
func (h *Themes) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return
	}

	if err := h.store.Activate(id); err != nil {
		if err == store.ErrThemeNotFound {
			respondError(w, http.StatusNotFound, "theme not found")
			return
		}
		slog.Error("activate theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to activate theme")
		return
	}

	slog.Info("theme activated", "theme_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an inactive theme and its sections.
func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return
	}

	switch err := h.store.Delete(id); err {
	case nil:
		h.preview.Invalidate(r.Context(), id)
		w.WriteHeader(http.StatusNoContent)
	case store.ErrThemeNotFound:
		respondError(w, http.StatusNotFound, "theme not found")
	case store.ErrThemeActive:
		respondError(w, http.StatusConflict, "cannot delete the active theme")
	default:
		slog.Error("delete theme", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete theme")
	}
}

// Validate is the dry-run endpoint: it runs the full validation pipeline
// over a create payload and always answers 200 with the result, valid or
// not. Nothing is persisted.
func (h *Themes) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	respondJSON(w, http.StatusOK, validation.ValidateCreate(&req))
}

// contrastRequest is a pair of hex colors to check for WCAG AA contrast.
type contrastRequest struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// contrastResponse reports the computed ratio and whether it clears the
// 4.5:1 normal-text threshold. Unparseable colors fail closed with a zero
// ratio.
type contrastResponse struct {
	Ratio    float64 `json:"ratio"`
	PassesAA bool    `json:"passes_aa"`
}

// Contrast is the advisory contrast check used by the theme editor. It
// never blocks saving a theme.
func (h *Themes) Contrast(w http.ResponseWriter, r *http.Request) {
	var req contrastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fg, errF := colors.ParseHex(req.Foreground)
	bg, errB := colors.ParseHex(req.Background)
	if errF != nil || errB != nil {
		respondJSON(w, http.StatusOK, contrastResponse{Ratio: 0, PassesAA: false})
		return
	}

	ratio := colors.ContrastRatio(fg, bg)
	respondJSON(w, http.StatusOK, contrastResponse{
		Ratio:    ratio,
		PassesAA: validation.ValidateColorContrast(req.Foreground, req.Background),
	})
}
