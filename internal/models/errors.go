package models

import "errors"

// Error kinds shared across the scheduling core. Domain packages wrap these
// with fmt.Errorf("...: %w", ...) so callers can classify any failure with
// errors.Is regardless of which layer raised it. The API boundary maps
// ErrEntityNotFound to 404 and the rest to 400.
var (
	// ErrInvalidOperation covers malformed schedule requests and detected
	// scheduling conflicts
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrBusinessRule covers illegal status transitions and the participant
	// capacity limit
	ErrBusinessRule = errors.New("business rule violation")

	// ErrEntityNotFound covers unknown or soft-deleted entities
	ErrEntityNotFound = errors.New("entity not found")

	// ErrValidation covers malformed search-filter values
	ErrValidation = errors.New("validation failed")
)
