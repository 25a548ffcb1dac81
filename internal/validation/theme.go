package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"tablefront/internal/colors"
	"tablefront/internal/models"
)

// ValidateCreate runs every sub-validator over a theme create request and
// aggregates all errors. A nil request is a single error and short-circuits.
func ValidateCreate(req *models.CreateThemeRequest) ValidationResult {
	result := ValidationResult{IsValid: true}

	if req == nil {
		result.add(ValidationError{
			Field:   "request",
			Message: "Request cannot be nil",
			Code:    CodeInvalidRequest,
		})
		return result
	}

	result.add(validateRequired(req.Name, "name", "Theme name")...)
	if utf8.RuneCountInString(req.Name) > maxNameLen {
		result.add(ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Theme name must not exceed %d characters", maxNameLen),
			Code:    CodeNameTooLong,
		})
	}
	result.add(ValidateAgainstSQLInjection(req.Name, "name")...)

	if req.Slug != "" {
		result.add(ValidateSlug(req.Slug)...)
	}

	result.add(ValidateColors(&req.Colors)...)
	result.add(ValidateTypography(&req.Typography)...)
	result.add(ValidateIdentity(&req.Identity)...)
	result.add(ValidateCustomCSS(req.CustomCSS)...)
	result.add(validateComponentConfigs(req.ComponentConfigs)...)

	return result
}

// ValidateUpdate validates a partial theme update. Every field is optional;
// absent fields are skipped and present fields use the same rules as
// create. A nil request is a single error and short-circuits.
func ValidateUpdate(req *models.UpdateThemeRequest) ValidationResult {
	result := ValidationResult{IsValid: true}

	if req == nil {
		result.add(ValidationError{
			Field:   "request",
			Message: "Request cannot be nil",
			Code:    CodeInvalidRequest,
		})
		return result
	}

	if req.Name != "" {
		if utf8.RuneCountInString(req.Name) > maxNameLen {
			result.add(ValidationError{
				Field:   "name",
				Message: fmt.Sprintf("Theme name must not exceed %d characters", maxNameLen),
				Code:    CodeNameTooLong,
			})
		}
		result.add(ValidateAgainstSQLInjection(req.Name, "name")...)
	}

	if req.Colors != nil {
		result.add(ValidateColors(req.Colors)...)
	}
	if req.Typography != nil {
		result.add(ValidateTypography(req.Typography)...)
	}
	if req.Identity != nil {
		result.add(ValidateIdentity(req.Identity)...)
	}
	if req.CustomCSS != nil {
		result.add(ValidateCustomCSS(*req.CustomCSS)...)
	}
	result.add(validateComponentConfigs(req.ComponentConfigs)...)

	return result
}

// ValidateColors checks each of the seven named palette fields with the hex
// validator. One bad field never blocks validation of the others, and the
// fields are visited in declaration order so error order is deterministic.
func ValidateColors(c *models.ThemeColors) []ValidationError {
	if c == nil {
		return []ValidationError{{
			Field:   "colors",
			Message: "Colors configuration is required",
			Code:    CodeColorsRequired,
		}}
	}

	fields := []struct {
		name  string
		value string
	}{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"accent", c.Accent},
		{"background", c.Background},
		{"text", c.Text},
		{"border", c.Border},
		{"shadow", c.Shadow},
	}

	var errs []ValidationError
	for _, f := range fields {
		errs = append(errs, validateHexColor(f.value, "colors."+f.name)...)
	}
	return errs
}

// ValidateTypography checks the font allow-list and the numeric ranges:
// base font size 10-24, border radius 0-50, line height 1.0-3.0, all
// inclusive.
func ValidateTypography(t *models.Typography) []ValidationError {
	if t == nil {
		return []ValidationError{{
			Field:   "typography",
			Message: "Typography settings are required",
			Code:    CodeTypographyRequired,
		}}
	}

	var errs []ValidationError
	errs = append(errs, validateFontFamily(t.FontFamily, "typography.fontFamily")...)
	errs = append(errs, validateIntRange(t.BaseFontSize, 10, 24, "typography.baseFontSize", "Base font size")...)
	errs = append(errs, validateIntRange(t.BorderRadius, 0, 50, "typography.borderRadius", "Border radius")...)
	errs = append(errs, validateFloatRange(t.LineHeight, 1.0, 3.0, "typography.lineHeight", "Line height")...)
	return errs
}

// ValidateIdentity checks the site title (required, at most 255 characters)
// and the optional logo and favicon URLs.
func ValidateIdentity(id *models.Identity) []ValidationError {
	if id == nil {
		return []ValidationError{{
			Field:   "identity",
			Message: "Identity settings are required",
			Code:    CodeIdentityRequired,
		}}
	}

	var errs []ValidationError
	errs = append(errs, validateRequired(id.SiteTitle, "identity.siteTitle", "Site title")...)
	if utf8.RuneCountInString(id.SiteTitle) > maxTitleLen {
		errs = append(errs, ValidationError{
			Field:   "identity.siteTitle",
			Message: fmt.Sprintf("Site title must not exceed %d characters", maxTitleLen),
			Code:    CodeTitleTooLong,
		})
	}
	errs = append(errs, validateURL(id.LogoURL, "identity.logoUrl")...)
	errs = append(errs, validateURL(id.FaviconURL, "identity.faviconUrl")...)
	return errs
}

// ValidateCustomCSS checks the size limit (50 KB) and scans the lower-cased
// CSS for every denylisted token. Each matching token produces its own
// error; empty CSS is valid since the feature is optional.
func ValidateCustomCSS(css string) []ValidationError {
	if css == "" {
		return nil
	}

	var errs []ValidationError
	if len(css) > maxCSSSize {
		errs = append(errs, ValidationError{
			Field:   "customCSS",
			Message: fmt.Sprintf("Custom CSS must not exceed %d KB", maxCSSSize/1024),
			Code:    CodeCSSTooLarge,
		})
	}

	cssLower := strings.ToLower(css)
	for _, pattern := range dangerousCSSPatterns {
		if strings.Contains(cssLower, pattern) {
			errs = append(errs, ValidationError{
				Field:   "customCSS",
				Message: fmt.Sprintf("Dangerous CSS pattern %q is not allowed", pattern),
				Code:    CodeDangerousCSS,
			})
		}
	}

	return errs
}

// validateComponentConfigs validates each entry of a component config map,
// visiting component types in sorted order for deterministic error order.
func validateComponentConfigs(configs map[string]map[string]any) []ValidationError {
	if len(configs) == 0 {
		return nil
	}

	types := make([]string, 0, len(configs))
	for t := range configs {
		types = append(types, t)
	}
	sort.Strings(types)

	var errs []ValidationError
	for _, t := range types {
		errs = append(errs, ValidateComponentConfig(t, configs[t])...)
	}
	return errs
}

// ValidateColorContrast reports whether two hex colors meet the WCAG AA
// contrast threshold of 4.5:1 for normal text. If either color fails to
// parse the check fails closed and returns false.
func ValidateColorContrast(foreground, background string) bool {
	fg, err := colors.ParseHex(foreground)
	if err != nil {
		return false
	}
	bg, err := colors.ParseHex(background)
	if err != nil {
		return false
	}
	return colors.ContrastRatio(fg, bg) >= 4.5
}
