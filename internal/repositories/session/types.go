package session

import (
	"time"

	"github.com/mindvale/clinic/internal/models"
	"github.com/mindvale/clinic/internal/schedule"
)

type GetSessionInput struct {
	SessionID string
}

type SearchSessionsInput struct {
	Query *schedule.SearchQuery
}

type FindConflictsInput struct {
	TherapistID string
	StartTime   time.Time
	EndTime     time.Time

	// ExcludeSessionID skips the session being rescheduled
	ExcludeSessionID string
}

type CreateSessionInput struct {
	Session *models.Session
}

type UpdateSessionInput struct {
	Session *models.Session
}

type SoftDeleteSessionInput struct {
	SessionID string
}
