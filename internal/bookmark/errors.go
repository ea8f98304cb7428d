package bookmark

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField matches any *MissingFieldError via errors.Is.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidURL is returned when url is not an http(s) URI with a host.
	ErrInvalidURL = errors.New("Invalid data")

	// ErrInvalidRating is returned when rating is not an integer between 0 and 5.
	ErrInvalidRating = errors.New("'rating' must be a number between 0 and 5")

	// ErrEmptyPatch is returned when an update carries no usable field.
	ErrEmptyPatch = errors.New("Request body must contain either 'title', 'url', 'description', or 'rating'")
)

// MissingFieldError names the required field absent from a create payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("'%s' is required", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// IsValidation reports whether err is a caller error produced by the validator.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrEmptyPatch)
}
