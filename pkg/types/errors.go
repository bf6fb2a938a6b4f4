package types

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeValidation tags invalid local input.
	TextCodeValidation = "VALIDATION"
	// TextCodeInvalidTheme tags a theme outside the enumerated set.
	TextCodeInvalidTheme = "INVALID_THEME"
	// TextCodeGenerationFailed tags a failed call to the completion service.
	TextCodeGenerationFailed = "GENERATION_FAILED"
)

// CategoryGeneration groups failures of the external text generation service.
var CategoryGeneration = goerrors.CategoryExternal.Extend("generation")

// NewValidationError builds a field-level validation error. The profile is
// never modified when one of these is returned.
func NewValidationError(field, message string, value any) *goerrors.Error {
	return goerrors.NewValidation("linkbio: invalid input", goerrors.FieldError{
		Field:   field,
		Message: message,
		Value:   value,
	}).WithCode(goerrors.CodeBadRequest).WithTextCode(TextCodeValidation)
}

// NewGenerationFailure wraps a transport or service level failure of the
// completion service.
func NewGenerationFailure(source error) error {
	if source == nil {
		return nil
	}
	err := goerrors.Wrap(source, CategoryGeneration, "linkbio: text generation failed")
	err.Category = CategoryGeneration
	if err.Source == nil {
		err.Source = source
	}
	return err.WithTextCode(TextCodeGenerationFailed)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return goerrors.IsValidation(err)
}

// IsGenerationFailure reports whether err originated from the completion service.
func IsGenerationFailure(err error) bool {
	return goerrors.HasCategory(err, CategoryGeneration)
}

var (
	// ErrProfileNotFound indicates the repository has not been seeded.
	ErrProfileNotFound = errors.New("linkbio: profile not found")
	// ErrLinkNotFound indicates no link matches the supplied id.
	ErrLinkNotFound = errors.New("linkbio: link not found")
	// ErrTipHandleMissing indicates the profile has no tip handle configured.
	ErrTipHandleMissing = errors.New("linkbio: tip handle not configured")
	// ErrMissingProfileRepository occurs when profile commands lack a storage backend.
	ErrMissingProfileRepository = errors.New("linkbio: missing profile repository")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("linkbio: missing activity repository")
	// ErrMissingTextGenerator occurs when the editor lacks a generation client.
	ErrMissingTextGenerator = errors.New("linkbio: missing text generator")
	// ErrMissingCompletionService occurs when the generation client lacks a backend.
	ErrMissingCompletionService = errors.New("linkbio: missing completion service")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("linkbio: service not ready")
)
