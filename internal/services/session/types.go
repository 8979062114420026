package session

import (
	"time"

	"github.com/mindvale/clinic/internal/models"
	"github.com/mindvale/clinic/internal/schedule"
)

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}

type SearchSessionsInput struct {
	Filters *schedule.SearchFilters
}

type SearchSessionsOutput struct {
	Sessions []*models.Session
}

type ScheduleSessionInput struct {
	TherapistID string
	StartTime   time.Time
	EndTime     time.Time

	// Status optionally sets the initial status; empty defaults to PENDING
	// and any other value is rejected
	Status models.SessionStatus

	Notes      string
	PatientIDs []string
}

type ScheduleSessionOutput struct {
	Session *models.Session
}

type UpdateScheduleInput struct {
	SessionID string
	StartTime time.Time
	EndTime   time.Time
}

type UpdateScheduleOutput struct {
	Session *models.Session
}

type UpdateStatusInput struct {
	SessionID string
	Status    models.SessionStatus
}

type UpdateStatusOutput struct {
	Session *models.Session
}

type UpdatePatientsInput struct {
	SessionID  string
	PatientIDs []string
}

type UpdatePatientsOutput struct {
	Session *models.Session
}

type SoftDeleteSessionInput struct {
	SessionID string
}
