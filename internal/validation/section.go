package validation

import "unicode/utf8"

// SectionInput carries the user-editable fields of a section create or
// content patch.
type SectionInput struct {
	SectionType string
	Title       string
	Subtitle    string
	Description string
}

// ValidateSectionCreate checks a new section's fields. Section types are
// open-ended like component types; only presence is enforced, so the
// storefront can grow new section kinds without an engine release.
func ValidateSectionCreate(in SectionInput) ValidationResult {
	result := ValidationResult{IsValid: true}

	result.add(validateRequired(in.SectionType, "sectionType", "Section type")...)
	result.add(validateSectionText(in)...)

	return result
}

// ValidateSectionPatch checks the text fields of a content patch.
func ValidateSectionPatch(in SectionInput) ValidationResult {
	result := ValidationResult{IsValid: true}
	result.add(validateSectionText(in)...)
	return result
}

func validateSectionText(in SectionInput) []ValidationError {
	var errs []ValidationError

	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		errs = append(errs, ValidationError{
			Field:   "title",
			Message: "Title must be at most 255 characters",
			Code:    CodeTitleTooLong,
		})
	}
	errs = append(errs, ValidateAgainstSQLInjection(in.Title, "title")...)
	errs = append(errs, ValidateAgainstSQLInjection(in.Subtitle, "subtitle")...)
	errs = append(errs, ValidateAgainstSQLInjection(in.Description, "description")...)

	return errs
}
