package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"tablefront/internal/cache"
	"tablefront/internal/database"
	"tablefront/internal/models"
	"tablefront/internal/preview"
	"tablefront/internal/store"
	"tablefront/internal/validation"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testRouter wires the full handler stack against local Postgres with the
// preview cache disabled. Skips if the database is unavailable. Rows
// created by tests carry the hx- slug prefix and are removed afterwards.
func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("POSTGRES_USER", "tablefront"),
		envOr("POSTGRES_PASSWORD", "changeme"),
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_DB", "tablefront"))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: Postgres not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Exec(`DELETE FROM themes WHERE slug LIKE 'hx-%'`)
		db.Close()
	})

	themeStore := store.NewThemeStore(db)
	sectionStore := store.NewSectionStore(db)
	builder := preview.NewBuilder(themeStore, sectionStore, cache.NewPreviewCache(nil, 0))

	themes := NewThemes(themeStore, builder)
	sections := NewSections(sectionStore, themeStore, builder)
	previewH := NewPreview(builder)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", themes.List)
		r.Get("/themes/active", themes.Active)
		r.Get("/themes/slug/{slug}", themes.GetBySlug)
		r.Get("/themes/{themeID}", themes.Get)
		r.Get("/themes/{themeID}/sections", sections.List)
		r.Get("/themes/{themeID}/preview", previewH.Get)
		r.Post("/themes", themes.Create)
		r.Post("/themes/validate", themes.Validate)
		r.Post("/themes/contrast", themes.Contrast)
		r.Put("/themes/{themeID}", themes.Update)
		r.Post("/themes/{themeID}/activate", themes.Activate)
		r.Delete("/themes/{themeID}", themes.Delete)
		r.Post("/themes/{themeID}/sections", sections.Create)
		r.Post("/themes/{themeID}/sections/reorder", sections.Reorder)
		r.Patch("/sections/{sectionID}", sections.UpdateContent)
		r.Put("/sections/{sectionID}/visibility", sections.SetVisibility)
		r.Delete("/sections/{sectionID}", sections.Delete)
	})
	return r
}

// doJSON performs one request against the router and returns the recorder.
func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

// validThemePayload is a create request that passes every validation rule.
func validThemePayload(name string) models.CreateThemeRequest {
	return models.CreateThemeRequest{
		Name: name,
		Slug: "hx-" + uuid.NewString()[:8],
		Colors: models.ThemeColors{
			Primary:    "#3b82f6",
			Secondary:  "#64748b",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Text:       "#1e293b",
			Border:     "#e2e8f0",
			Shadow:     "#0f172a",
		},
		Typography: models.Typography{
			FontFamily:   "Inter",
			BaseFontSize: 16,
			BorderRadius: 8,
			LineHeight:   1.5,
		},
		Identity: models.Identity{
			SiteTitle: "Test Cafe",
		},
	}
}

func createTheme(t *testing.T, r http.Handler, name string) models.Theme {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/themes", validThemePayload(name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create theme: got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[models.Theme](t, rec)
}

func TestThemeCreateAndFetch(t *testing.T) {
	r := testRouter(t)

	created := createTheme(t, r, "Bistro")

	rec := doJSON(t, r, http.MethodGet, "/api/themes/"+created.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get theme: got %d", rec.Code)
	}
	got := decode[models.Theme](t, rec)
	if got.Name != "Bistro" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Config.Colors.Primary != "#3b82f6" {
		t.Errorf("primary color: got %q", got.Config.Colors.Primary)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/themes/slug/"+created.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get by slug: got %d", rec.Code)
	}
}

func TestThemeCreateInvalidRejectedWhole(t *testing.T) {
	r := testRouter(t)

	payload := validThemePayload("Broken")
	payload.Colors.Primary = "#gggggg"
	payload.Typography.FontFamily = "Wingdings"

	rec := doJSON(t, r, http.MethodPost, "/api/themes", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422: %s", rec.Code, rec.Body.String())
	}

	result := decode[validation.ValidationResult](t, rec)
	if result.IsValid {
		t.Error("result should be invalid")
	}
	if len(result.Errors) < 2 {
		t.Errorf("expected both errors reported, got %v", result.Errors)
	}

	// Nothing was persisted.
	rec = doJSON(t, r, http.MethodGet, "/api/themes/slug/"+payload.Slug, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("invalid theme must not persist: got %d", rec.Code)
	}
}

func TestThemeCreateDuplicateSlug(t *testing.T) {
	r := testRouter(t)

	payload := validThemePayload("First")
	if rec := doJSON(t, r, http.MethodPost, "/api/themes", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", rec.Code)
	}
	payload.Name = "Second"
	if rec := doJSON(t, r, http.MethodPost, "/api/themes", payload); rec.Code != http.StatusConflict {
		t.Errorf("duplicate slug: got %d, want 409", rec.Code)
	}
}

func TestThemeValidateDryRun(t *testing.T) {
	r := testRouter(t)

	payload := validThemePayload("DryRun")
	rec := doJSON(t, r, http.MethodPost, "/api/themes/validate", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if result := decode[validation.ValidationResult](t, rec); !result.IsValid {
		t.Errorf("expected valid result: %v", result.Errors)
	}

	// Dry run never persists.
	rec = doJSON(t, r, http.MethodGet, "/api/themes/slug/"+payload.Slug, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("dry run persisted a theme: got %d", rec.Code)
	}

	payload.CustomCSS = `@import url("http://evil.example/x.css");`
	rec = doJSON(t, r, http.MethodPost, "/api/themes/validate", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if result := decode[validation.ValidationResult](t, rec); result.IsValid {
		t.Error("dangerous CSS should fail validation")
	}
}

func TestContrastEndpoint(t *testing.T) {
	r := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/themes/contrast",
		map[string]string{"foreground": "#000000", "background": "#ffffff"})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	res := decode[contrastResponse](t, rec)
	if !res.PassesAA {
		t.Error("black on white must pass AA")
	}
	if res.Ratio < 20.9 || res.Ratio > 21.1 {
		t.Errorf("ratio: got %v, want ~21", res.Ratio)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/themes/contrast",
		map[string]string{"foreground": "not-a-color", "background": "#ffffff"})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if res := decode[contrastResponse](t, rec); res.PassesAA {
		t.Error("unparseable color must fail closed")
	}
}

func TestThemeUpdatePartial(t *testing.T) {
	r := testRouter(t)

	created := createTheme(t, r, "Original")

	update := map[string]any{
		"colors": map[string]string{
			"primary":    "#111111",
			"secondary":  "#64748b",
			"accent":     "#f59e0b",
			"background": "#ffffff",
			"text":       "#1e293b",
			"border":     "#e2e8f0",
			"shadow":     "#0f172a",
		},
	}
	rec := doJSON(t, r, http.MethodPut, "/api/themes/"+created.ID.String(), update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d: %s", rec.Code, rec.Body.String())
	}

	got := decode[models.Theme](t, rec)
	if got.Name != "Original" {
		t.Errorf("name should be untouched: got %q", got.Name)
	}
	if got.Config.Colors.Primary != "#111111" {
		t.Errorf("primary: got %q", got.Config.Colors.Primary)
	}
	if got.Config.Typography.FontFamily != "Inter" {
		t.Errorf("typography should be untouched: got %q", got.Config.Typography.FontFamily)
	}
}

func TestThemeUpdateInvalidColor(t *testing.T) {
	r := testRouter(t)

	created := createTheme(t, r, "Guarded")

	update := map[string]any{
		"colors": map[string]string{"primary": "#zz0000"},
	}
	rec := doJSON(t, r, http.MethodPut, "/api/themes/"+created.ID.String(), update)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422", rec.Code)
	}

	// The stored theme is unchanged.
	rec = doJSON(t, r, http.MethodGet, "/api/themes/"+created.ID.String(), nil)
	got := decode[models.Theme](t, rec)
	if got.Config.Colors.Primary != "#3b82f6" {
		t.Errorf("rejected update must not persist: got %q", got.Config.Colors.Primary)
	}
}

func TestThemeActivateAndDelete(t *testing.T) {
	r := testRouter(t)

	first := createTheme(t, r, "Keep")
	second := createTheme(t, r, "Drop")

	rec := doJSON(t, r, http.MethodPost, "/api/themes/"+first.ID.String()+"/activate", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("activate: got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/themes/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get active: got %d", rec.Code)
	}
	if got := decode[models.Theme](t, rec); got.ID != first.ID {
		t.Errorf("active theme: got %s, want %s", got.ID, first.ID)
	}

	// The active theme refuses deletion.
	rec = doJSON(t, r, http.MethodDelete, "/api/themes/"+first.ID.String(), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete active: got %d, want 409", rec.Code)
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/themes/"+second.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete inactive: got %d, want 204", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/themes/"+second.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted theme still present: got %d", rec.Code)
	}
}

func TestThemeGetUnknown(t *testing.T) {
	r := testRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/themes/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/themes/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}
