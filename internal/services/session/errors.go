package session

import (
	"fmt"

	"github.com/mindvale/clinic/internal/models"
)

// Define errors
var (
	ErrNilInput          = fmt.Errorf("%w: input cannot be nil", models.ErrInvalidOperation)
	ErrMissingSessionID  = fmt.Errorf("%w: session id is required", models.ErrInvalidOperation)
	ErrTherapistNotFound = fmt.Errorf("therapist: %w", models.ErrEntityNotFound)
)
