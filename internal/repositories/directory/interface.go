// Package directory looks up the clinic's people records. The scheduling
// core only needs existence checks: profile CRUD lives elsewhere.
package directory

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/mindvale/clinic/internal/repositories/directory Repository

import "context"

// Repository defines the interface for therapist and patient lookups
type Repository interface {
	// TherapistExists reports whether a therapist is on record
	TherapistExists(ctx context.Context, therapistID string) (bool, error)

	// PatientExists reports whether a patient is on record
	PatientExists(ctx context.Context, patientID string) (bool, error)
}
