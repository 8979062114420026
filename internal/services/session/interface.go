package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/mindvale/clinic/internal/services/session Service

import "context"

// Service defines the scheduling use cases exposed to the API layer
type Service interface {
	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// SearchSessions retrieves sessions matching caller-supplied filters
	SearchSessions(ctx context.Context, input *SearchSessionsInput) (*SearchSessionsOutput, error)

	// ScheduleSession books a new session
	ScheduleSession(ctx context.Context, input *ScheduleSessionInput) (*ScheduleSessionOutput, error)

	// UpdateSchedule moves a session to a new time slot
	UpdateSchedule(ctx context.Context, input *UpdateScheduleInput) (*UpdateScheduleOutput, error)

	// UpdateStatus advances a session through its state machine
	UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error)

	// UpdatePatients replaces a session's roster
	UpdatePatients(ctx context.Context, input *UpdatePatientsInput) (*UpdatePatientsOutput, error)

	// SoftDeleteSession marks a session deleted
	SoftDeleteSession(ctx context.Context, input *SoftDeleteSessionInput) error
}
