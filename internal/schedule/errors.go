package schedule

import (
	"fmt"

	"github.com/mindvale/clinic/internal/models"
)

// MaxParticipants is the hard cap on patients per session
const MaxParticipants = 5

// Validation errors. Each wraps one of the models error kinds so callers
// can classify with errors.Is at any layer.
var (
	ErrNilRequest           = fmt.Errorf("%w: schedule request cannot be nil", models.ErrInvalidOperation)
	ErrMissingTherapist     = fmt.Errorf("%w: therapist id is required", models.ErrInvalidOperation)
	ErrMissingStartTime     = fmt.Errorf("%w: start time is required", models.ErrInvalidOperation)
	ErrMissingEndTime       = fmt.Errorf("%w: end time is required", models.ErrInvalidOperation)
	ErrStartNotBeforeEnd    = fmt.Errorf("%w: start time must be before end time", models.ErrInvalidOperation)
	ErrScheduleConflict     = fmt.Errorf("%w: schedule conflict", models.ErrInvalidOperation)
	ErrInvalidInitialStatus = fmt.Errorf("%w: a new session can only start as PENDING", models.ErrInvalidOperation)
	ErrTooManyParticipants  = fmt.Errorf("%w: a session allows at most %d patients", models.ErrBusinessRule, MaxParticipants)
)
