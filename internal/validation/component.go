package validation

// componentValidators dispatches per-component-type config validation.
// Types without an entry — including unrecognized ones — are accepted
// without errors. That is a deliberate choice: the set of component types
// grows with the storefront renderer, and rejecting unknown types here
// would block theme saves every time the renderer ships a new section.
// Adding validation for a new type is one registration in this map.
var componentValidators = map[string]func(map[string]any) []ValidationError{
	"hero":         validateHeroConfig,
	"products":     validateProductsConfig,
	"testimonials": validateTestimonialsConfig,
	"cta":          validateCTAConfig,
}

// ValidateComponentConfig validates a single component's configuration by
// its type. An empty type is a required-field error and short-circuits the
// dispatch.
func ValidateComponentConfig(componentType string, config map[string]any) []ValidationError {
	if componentType == "" {
		return []ValidationError{{
			Field:   "componentType",
			Message: "Component type is required",
			Code:    CodeComponentTypeRequired,
		}}
	}

	validate, ok := componentValidators[componentType]
	if !ok {
		return nil
	}
	return validate(config)
}

// validateHeroConfig checks the hero section's optional background image
// URL and overlay color.
func validateHeroConfig(config map[string]any) []ValidationError {
	if config == nil {
		return nil
	}

	var errs []ValidationError
	if bgImage, ok := config["backgroundImage"].(string); ok && bgImage != "" {
		errs = append(errs, validateURL(bgImage, "components.hero.backgroundImage")...)
	}
	if overlay, ok := config["overlayColor"].(string); ok && overlay != "" {
		errs = append(errs, validateHexColor(overlay, "components.hero.overlayColor")...)
	}
	return errs
}

// validateProductsConfig checks the product grid layout, which must be
// exactly "2", "3", or "4" columns.
func validateProductsConfig(config map[string]any) []ValidationError {
	if config == nil {
		return nil
	}

	var errs []ValidationError
	if layout, ok := config["layout"].(string); ok {
		if layout != "2" && layout != "3" && layout != "4" {
			errs = append(errs, ValidationError{
				Field:   "components.products.layout",
				Message: "Layout must be 2, 3, or 4 columns",
				Code:    CodeInvalidLayout,
			})
		}
	}
	return errs
}

// validateTestimonialsConfig checks maxItems, which must be between 1 and
// 20. JSON-decoded numbers arrive as float64; ints are accepted for
// callers constructing configs in Go.
func validateTestimonialsConfig(config map[string]any) []ValidationError {
	if config == nil {
		return nil
	}

	var maxItems float64
	switch v := config["maxItems"].(type) {
	case float64:
		maxItems = v
	case int:
		maxItems = float64(v)
	default:
		return nil
	}

	if maxItems < 1 || maxItems > 20 {
		return []ValidationError{{
			Field:   "components.testimonials.maxItems",
			Message: "Max items must be between 1 and 20",
			Code:    CodeInvalidMaxItems,
		}}
	}
	return nil
}

// validateCTAConfig checks the call-to-action button's optional color.
func validateCTAConfig(config map[string]any) []ValidationError {
	if config == nil {
		return nil
	}

	var errs []ValidationError
	if btnColor, ok := config["buttonColor"].(string); ok && btnColor != "" {
		errs = append(errs, validateHexColor(btnColor, "components.cta.buttonColor")...)
	}
	return errs
}
