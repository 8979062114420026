package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Config holds configuration for the SQLite directory repository
type Config struct {
	// DB is the durable store handle
	DB *sql.DB
}

// sqliteRepository implements the Repository interface over SQLite
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed directory repository
func NewSQLite(cfg *Config) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

// TherapistExists reports whether a therapist is on record
func (r *sqliteRepository) TherapistExists(ctx context.Context, therapistID string) (bool, error) {
	if therapistID == "" {
		return false, nil
	}

	return r.exists(ctx, "SELECT COUNT(1) FROM therapists WHERE id = ?", therapistID)
}

// PatientExists reports whether a patient is on record
func (r *sqliteRepository) PatientExists(ctx context.Context, patientID string) (bool, error) {
	if patientID == "" {
		return false, nil
	}

	return r.exists(ctx, "SELECT COUNT(1) FROM patients WHERE id = ?", patientID)
}

func (r *sqliteRepository) exists(ctx context.Context, querySQL, id string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, querySQL, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query directory: %w", err)
	}

	return count > 0, nil
}
