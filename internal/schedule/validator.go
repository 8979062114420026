// Package schedule holds the pure decision rules of the scheduling engine:
// schedule legality, the temporal-conflict predicate, the status state
// machine, the participant capacity rule and search-filter parsing. No
// function in this package performs I/O.
package schedule

import (
	"fmt"
	"time"

	"github.com/mindvale/clinic/internal/models"
)

// ScheduleRequest is a candidate time slot for a therapist
type ScheduleRequest struct {
	TherapistID string
	StartTime   time.Time
	EndTime     time.Time
}

// transitions is the legal-successor table of the session state machine.
// COMPLETED is terminal.
var transitions = map[models.SessionStatus][]models.SessionStatus{
	models.SessionStatusPending:     {models.SessionStatusScheduled, models.SessionStatusCancelled},
	models.SessionStatusScheduled:   {models.SessionStatusCompleted, models.SessionStatusCancelled, models.SessionStatusRescheduled},
	models.SessionStatusCancelled:   {models.SessionStatusRescheduled},
	models.SessionStatusCompleted:   {},
	models.SessionStatusRescheduled: {models.SessionStatusScheduled, models.SessionStatusCompleted},
}

// Validator implements the scheduling decision rules
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSchedule checks that a candidate slot is well-formed: all fields
// present and start strictly before end
func (v *Validator) ValidateSchedule(req *ScheduleRequest) error {
	if req == nil {
		return ErrNilRequest
	}

	if req.TherapistID == "" {
		return ErrMissingTherapist
	}

	if req.StartTime.IsZero() {
		return ErrMissingStartTime
	}

	if req.EndTime.IsZero() {
		return ErrMissingEndTime
	}

	if !req.StartTime.Before(req.EndTime) {
		return ErrStartNotBeforeEnd
	}

	return nil
}

// CheckConflicts reports ErrScheduleConflict when the candidate slot
// overlaps an existing session that still occupies the therapist's
// calendar. Intervals are half-open: two sessions overlap when
// existing.start < candidate.end && candidate.start < existing.end, so
// back-to-back sessions do not conflict. excludeID skips the session being
// rescheduled so it does not conflict with itself.
func (v *Validator) CheckConflicts(req *ScheduleRequest, existing []*models.Session, excludeID string) error {
	for _, s := range existing {
		if s == nil || s.ID == excludeID {
			continue
		}

		if s.TherapistID != req.TherapistID {
			continue
		}

		if !s.Status.OccupiesCalendar() || s.DeletedAt != nil {
			continue
		}

		if s.StartTime.Before(req.EndTime) && req.StartTime.Before(s.EndTime) {
			return ErrScheduleConflict
		}
	}

	return nil
}

// ValidateStatusTransition checks that next is a legal successor of current
func (v *Validator) ValidateStatusTransition(current, next models.SessionStatus) error {
	for _, allowed := range transitions[current] {
		if next == allowed {
			return nil
		}
	}

	return fmt.Errorf("%w: illegal status transition %s -> %s", models.ErrBusinessRule, current, next)
}

// ValidateParticipantLimit checks the distinct-participant cap. An empty
// roster is legal.
func (v *Validator) ValidateParticipantLimit(patientIDs []string) error {
	if len(NormalizeParticipants(patientIDs)) > MaxParticipants {
		return ErrTooManyParticipants
	}

	return nil
}

// NormalizeParticipants de-duplicates a roster, preserving first-seen order.
// Rosters are sets: the same patient listed twice attends once.
func NormalizeParticipants(patientIDs []string) []string {
	seen := make(map[string]struct{}, len(patientIDs))
	normalized := make([]string, 0, len(patientIDs))

	for _, id := range patientIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}

	return normalized
}
