package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tablefront/internal/preview"
	"tablefront/internal/store"
)

// Preview serves the assembled renderer payload for a theme.
type Preview struct {
	builder *preview.Builder
}

// NewPreview creates the preview handler.
func NewPreview(builder *preview.Builder) *Preview {
	return &Preview{builder: builder}
}

// Get returns the preview payload for one theme: palette, typography,
// identity, and the visible sections in display order. Served from Valkey
// when cached.
func (h *Preview) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid theme id")
		return
	}

	payload, err := h.builder.Build(r.Context(), id)
	if err == store.ErrThemeNotFound {
		respondError(w, http.StatusNotFound, "theme not found")
		return
	}
	if err != nil {
		slog.Error("build preview", "theme_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build preview")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
