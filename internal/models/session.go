package models

import (
	"time"
)

// SessionStatus represents the current state of a therapy session
type SessionStatus string

const (
	// SessionStatusPending indicates a session was requested but not yet confirmed
	SessionStatusPending SessionStatus = "PENDING"

	// SessionStatusScheduled indicates a session is confirmed on the calendar
	SessionStatusScheduled SessionStatus = "SCHEDULED"

	// SessionStatusCancelled indicates a session was called off
	SessionStatusCancelled SessionStatus = "CANCELLED"

	// SessionStatusCompleted indicates a session took place; terminal
	SessionStatusCompleted SessionStatus = "COMPLETED"

	// SessionStatusRescheduled indicates a session was moved to a new slot
	SessionStatusRescheduled SessionStatus = "RESCHEDULED"
)

// IsValid reports whether s is a member of the status enum
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusPending, SessionStatusScheduled, SessionStatusCancelled,
		SessionStatusCompleted, SessionStatusRescheduled:
		return true
	}
	return false
}

// OccupiesCalendar reports whether a session in this status blocks its
// therapist's time slot. Cancelled, completed and rescheduled sessions
// vacate the calendar and never conflict with new bookings.
func (s SessionStatus) OccupiesCalendar() bool {
	return s == SessionStatusPending || s == SessionStatusScheduled
}

// Session represents a therapy appointment between one therapist and up to
// five patients
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// TherapistID is the therapist who owns the time slot
	TherapistID string

	// StartTime is when the session begins
	StartTime time.Time

	// EndTime is when the session ends; always after StartTime
	EndTime time.Time

	// Status is the current state of the session
	Status SessionStatus

	// Notes is free-form text attached to the session
	Notes string

	// PatientIDs contains the patients attending the session
	PatientIDs []string

	// PaymentID links the session to its payment record, when one exists.
	// Maintained by the payments subsystem, not by this core.
	PaymentID string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time

	// CancelledAt is when the session was cancelled, if it was
	CancelledAt *time.Time

	// DeletedAt is when the session was soft-deleted, if it was
	DeletedAt *time.Time
}
