// Package validation is the rule engine guarding all theme customization
// input: colors, typography, identity fields, free-form CSS, and
// per-component configuration. Every check reports through ValidationResult
// instead of returning an error, so a client always sees the complete list
// of problems in one round trip.
//
// All functions are pure and safe for concurrent use. The font allow-list
// and the CSS/SQL denylists are immutable package-level data built once at
// init.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field limits.
const (
	maxNameLen  = 100
	maxTitleLen = 255
	maxCSSSize  = 50 * 1024
)

// Error codes. Stable strings that clients branch on.
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeRequired              = "REQUIRED"
	CodeNameTooLong           = "NAME_TOO_LONG"
	CodeTitleTooLong          = "TITLE_TOO_LONG"
	CodeColorsRequired        = "COLORS_REQUIRED"
	CodeColorRequired         = "COLOR_REQUIRED"
	CodeInvalidHexColor       = "INVALID_HEX_COLOR"
	CodeInvalidHexChars       = "INVALID_HEX_CHARS"
	CodeTypographyRequired    = "TYPOGRAPHY_REQUIRED"
	CodeFontRequired          = "FONT_REQUIRED"
	CodeFontNotAllowed        = "FONT_NOT_ALLOWED"
	CodeOutOfRange            = "OUT_OF_RANGE"
	CodeIdentityRequired      = "IDENTITY_REQUIRED"
	CodeInvalidURLProtocol    = "INVALID_URL_PROTOCOL"
	CodeInvalidURLFormat      = "INVALID_URL_FORMAT"
	CodeDangerousURL          = "DANGEROUS_URL"
	CodeCSSTooLarge           = "CSS_TOO_LARGE"
	CodeDangerousCSS          = "DANGEROUS_CSS"
	CodeSQLInjectionDetected  = "SQL_INJECTION_DETECTED"
	CodeComponentTypeRequired = "COMPONENT_TYPE_REQUIRED"
	CodeInvalidLayout         = "INVALID_LAYOUT"
	CodeInvalidMaxItems       = "INVALID_MAX_ITEMS"
	CodeSlugRequired          = "SLUG_REQUIRED"
	CodeInvalidSlugFormat     = "INVALID_SLUG_FORMAT"
	CodeSlugTooLong           = "SLUG_TOO_LONG"
)

// ValidationError is one user-correctable problem with a submitted field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult aggregates every error found in a request, in discovery
// order. Duplicate errors for the same field are permitted: a too-long name
// that also trips the injection screen yields two entries.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors"`
}

// add appends errors to the result and flips IsValid when any are present.
func (r *ValidationResult) add(errs ...ValidationError) {
	if len(errs) == 0 {
		return
	}
	r.IsValid = false
	r.Errors = append(r.Errors, errs...)
}

// Fonts a theme may use. Exact, case-sensitive match; anything not listed
// is rejected so font names can be emitted into CSS without escaping.
var allowedFonts = map[string]bool{
	"Inter":            true,
	"Roboto":           true,
	"Open Sans":        true,
	"Lato":             true,
	"Montserrat":       true,
	"Raleway":          true,
	"Playfair Display": true,
	"Poppins":          true,
	"Nunito":           true,
	"Source Sans Pro":  true,
	"Ubuntu":           true,
	"Lora":             true,
	"Merriweather":     true,
	"Georgia":          true,
	"Times New Roman":  true,
	"Arial":            true,
	"Helvetica":        true,
	"Verdana":          true,
	"Courier New":      true,
	"Comic Sans MS":    true,
}

// CSS tokens that can load external resources or execute script in legacy
// engines. Each match produces its own DANGEROUS_CSS error.
var dangerousCSSPatterns = []string{
	"@import",
	"behavior:",
	"expression(",
	"-moz-binding",
	"javascript:",
	"vbscript:",
}

// Heuristic SQL-injection screen, checked in order with first-match wins.
// This is defense in depth over parameterized queries at the persistence
// layer, not a substitute for them.
var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(DROP|DELETE|INSERT|UPDATE|SELECT|EXEC|EXECUTE|UNION|ALTER)\s`),
	regexp.MustCompile(`(?i)(;|--|\*/|/\*|xp_|sp_)`),
	regexp.MustCompile(`(?i)('|")\s*(OR|AND)\s*('|")?.*=.*`),
}

// urlShape is a permissive scheme://non-empty-host/anything check. Stricter
// parsing is left to the clients that fetch the URL.
var urlShape = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

var slugShape = regexp.MustCompile(`^[a-z0-9-]+$`)

// validateRequired reports a REQUIRED error when the value is blank after
// trimming.
func validateRequired(value, field, label string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{
			Field:   field,
			Message: label + " is required",
			Code:    CodeRequired,
		}}
	}
	return nil
}

// validateHexColor checks a hex color string: optional '#', then exactly
// 3, 6, or 8 hex digits. Length is checked before the character set, so a
// garbled over-long value reports only the length error.
func validateHexColor(value, field string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   field,
			Message: "Color value is required",
			Code:    CodeColorRequired,
		}}
	}

	color := strings.TrimPrefix(value, "#")

	if len(color) != 3 && len(color) != 6 && len(color) != 8 {
		return []ValidationError{{
			Field:   field,
			Message: "Color must be in hex format (#RGB, #RRGGBB, or #RRGGBBAA)",
			Code:    CodeInvalidHexColor,
		}}
	}

	for _, c := range color {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return []ValidationError{{
				Field:   field,
				Message: "Color must contain only hexadecimal characters (0-9, a-f, A-F)",
				Code:    CodeInvalidHexChars,
			}}
		}
	}

	return nil
}

// validateURL checks that a URL uses http(s), matches a permissive URL
// shape, and carries no script-injection scheme anywhere in the string.
// The substring scan is deliberately redundant with the protocol check.
func validateURL(value, field string) []ValidationError {
	if value == "" {
		return nil
	}

	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return []ValidationError{{
			Field:   field,
			Message: "URL must start with http:// or https://",
			Code:    CodeInvalidURLProtocol,
		}}
	}

	if !urlShape.MatchString(value) {
		return []ValidationError{{
			Field:   field,
			Message: "Invalid URL format",
			Code:    CodeInvalidURLFormat,
		}}
	}

	lower := strings.ToLower(value)
	if strings.Contains(lower, "javascript:") || strings.Contains(lower, "data:") {
		return []ValidationError{{
			Field:   field,
			Message: "URL contains potentially dangerous content",
			Code:    CodeDangerousURL,
		}}
	}

	return nil
}

// validateFontFamily checks the font against the allow-list. Matching is
// exact and case-sensitive; "helvetica" and "Helvetica " both fail.
func validateFontFamily(value, field string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   field,
			Message: "Font family is required",
			Code:    CodeFontRequired,
		}}
	}

	if !allowedFonts[value] {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("Font %q is not in the allowed list", value),
			Code:    CodeFontNotAllowed,
		}}
	}

	return nil
}

// validateIntRange checks an integer against an inclusive range.
func validateIntRange(value, min, max int, field, label string) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d", label, min, max),
			Code:    CodeOutOfRange,
		}}
	}
	return nil
}

// validateFloatRange checks a float against an inclusive range.
func validateFloatRange(value, min, max float64, field, label string) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %.1f and %.1f", label, min, max),
			Code:    CodeOutOfRange,
		}}
	}
	return nil
}

// ValidateAgainstSQLInjection screens a value against the injection
// denylist. It stops at the first matching pattern and reports exactly one
// error, even when several patterns would match.
func ValidateAgainstSQLInjection(value, field string) []ValidationError {
	for _, pattern := range sqlInjectionPatterns {
		if pattern.MatchString(value) {
			return []ValidationError{{
				Field:   field,
				Message: "Input contains potentially dangerous SQL patterns",
				Code:    CodeSQLInjectionDetected,
			}}
		}
	}
	return nil
}

// ValidateSlug checks a theme slug: lowercase alphanumerics and hyphens,
// at most 100 characters.
func ValidateSlug(slug string) []ValidationError {
	if slug == "" {
		return []ValidationError{{
			Field:   "slug",
			Message: "Theme slug is required",
			Code:    CodeSlugRequired,
		}}
	}

	var errs []ValidationError
	if !slugShape.MatchString(slug) {
		errs = append(errs, ValidationError{
			Field:   "slug",
			Message: "Slug must contain only lowercase letters, numbers, and hyphens",
			Code:    CodeInvalidSlugFormat,
		})
	}
	if utf8.RuneCountInString(slug) > 100 {
		errs = append(errs, ValidationError{
			Field:   "slug",
			Message: "Slug must not exceed 100 characters",
			Code:    CodeSlugTooLong,
		})
	}
	return errs
}
