package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/mindvale/clinic/internal/repositories/session Repository

import (
	"context"

	"github.com/mindvale/clinic/internal/models"
)

// Repository defines the interface for therapy session persistence
type Repository interface {
	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// SearchSessions retrieves sessions matching a validated query
	SearchSessions(ctx context.Context, input *SearchSessionsInput) ([]*models.Session, error)

	// FindConflicts retrieves calendar-occupying sessions overlapping a
	// candidate slot on the same therapist
	FindConflicts(ctx context.Context, input *FindConflictsInput) ([]*models.Session, error)

	// CreateSession persists a new session, assigning its ID and timestamps
	CreateSession(ctx context.Context, input *CreateSessionInput) (*models.Session, error)

	// UpdateSession persists a mutated session
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error)

	// SoftDeleteSession marks a session deleted without removing the record
	SoftDeleteSession(ctx context.Context, input *SoftDeleteSessionInput) error
}
