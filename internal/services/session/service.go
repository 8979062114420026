// Package session orchestrates the scheduling engine: every use case runs
// the pure validator to completion before the first repository mutation,
// and typed errors from either collaborator propagate untranslated to the
// API boundary.
package session

import (
	"context"
	"errors"

	"github.com/mindvale/clinic/internal/common/clock"
	"github.com/mindvale/clinic/internal/models"
	directoryRepo "github.com/mindvale/clinic/internal/repositories/directory"
	sessionRepo "github.com/mindvale/clinic/internal/repositories/session"
	"github.com/mindvale/clinic/internal/schedule"
)

// Config holds configuration for the session service
type Config struct {
	// SessionRepo persists sessions
	SessionRepo sessionRepo.Repository

	// Directory looks up therapists and patients
	Directory directoryRepo.Repository

	// Clock provides timestamps; defaults to the system clock
	Clock clock.Clock
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	directory   directoryRepo.Repository
	validator   *schedule.Validator
	clock       clock.Clock
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.Directory == nil {
		return nil, errors.New("directory repository cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		directory:   cfg.Directory,
		validator:   schedule.NewValidator(),
		clock:       clk,
	}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: session}, nil
}

// SearchSessions validates caller-supplied filters and runs the search
func (s *service) SearchSessions(ctx context.Context, input *SearchSessionsInput) (*SearchSessionsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	query, err := s.validator.ValidateSearchFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.SearchSessions(ctx, &sessionRepo.SearchSessionsInput{
		Query: query,
	})
	if err != nil {
		return nil, err
	}

	return &SearchSessionsOutput{Sessions: sessions}, nil
}

// ScheduleSession books a new session. Validation, the therapist lookup
// and the conflict check all complete before the create; the repository
// re-checks the slot inside its write transaction, so concurrent bookings
// cannot slip past this pre-check.
func (s *service) ScheduleSession(ctx context.Context, input *ScheduleSessionInput) (*ScheduleSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	request := &schedule.ScheduleRequest{
		TherapistID: input.TherapistID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if err := s.validator.ValidateSchedule(request); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.SessionStatusPending
	}
	if status != models.SessionStatusPending {
		return nil, schedule.ErrInvalidInitialStatus
	}

	patientIDs := schedule.NormalizeParticipants(input.PatientIDs)
	if err := s.validator.ValidateParticipantLimit(patientIDs); err != nil {
		return nil, err
	}

	exists, err := s.directory.TherapistExists(ctx, input.TherapistID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTherapistNotFound
	}

	if err := s.checkSlotFree(ctx, request, ""); err != nil {
		return nil, err
	}

	created, err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: &models.Session{
			TherapistID: input.TherapistID,
			StartTime:   input.StartTime.UTC(),
			EndTime:     input.EndTime.UTC(),
			Status:      status,
			Notes:       input.Notes,
			PatientIDs:  patientIDs,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ScheduleSessionOutput{Session: created}, nil
}

// UpdateSchedule moves a session to a new time slot
func (s *service) UpdateSchedule(ctx context.Context, input *UpdateScheduleInput) (*UpdateScheduleOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.fetch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	request := &schedule.ScheduleRequest{
		TherapistID: session.TherapistID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if err := s.validator.ValidateSchedule(request); err != nil {
		return nil, err
	}

	if err := s.checkSlotFree(ctx, request, session.ID); err != nil {
		return nil, err
	}

	session.StartTime = input.StartTime.UTC()
	session.EndTime = input.EndTime.UTC()

	updated, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Session: session,
	})
	if err != nil {
		return nil, err
	}

	return &UpdateScheduleOutput{Session: updated}, nil
}

// UpdateStatus advances a session through its state machine, stamping
// CancelledAt on the way into CANCELLED
func (s *service) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.fetch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateStatusTransition(session.Status, input.Status); err != nil {
		return nil, err
	}

	session.Status = input.Status
	if input.Status == models.SessionStatusCancelled {
		now := s.clock.Now().UTC()
		session.CancelledAt = &now
	}

	updated, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Session: session,
	})
	if err != nil {
		return nil, err
	}

	return &UpdateStatusOutput{Session: updated}, nil
}

// UpdatePatients replaces a session's roster
func (s *service) UpdatePatients(ctx context.Context, input *UpdatePatientsInput) (*UpdatePatientsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.fetch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	patientIDs := schedule.NormalizeParticipants(input.PatientIDs)
	if err := s.validator.ValidateParticipantLimit(patientIDs); err != nil {
		return nil, err
	}

	session.PatientIDs = patientIDs

	updated, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Session: session,
	})
	if err != nil {
		return nil, err
	}

	return &UpdatePatientsOutput{Session: updated}, nil
}

// SoftDeleteSession marks a session deleted
func (s *service) SoftDeleteSession(ctx context.Context, input *SoftDeleteSessionInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.SessionID == "" {
		return ErrMissingSessionID
	}

	return s.sessionRepo.SoftDeleteSession(ctx, &sessionRepo.SoftDeleteSessionInput{
		SessionID: input.SessionID,
	})
}

func (s *service) fetch(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	return s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
}

// checkSlotFree runs the conflict predicate against the sessions currently
// occupying the therapist's calendar
func (s *service) checkSlotFree(ctx context.Context, request *schedule.ScheduleRequest, excludeID string) error {
	conflicts, err := s.sessionRepo.FindConflicts(ctx, &sessionRepo.FindConflictsInput{
		TherapistID:      request.TherapistID,
		StartTime:        request.StartTime,
		EndTime:          request.EndTime,
		ExcludeSessionID: excludeID,
	})
	if err != nil {
		return err
	}

	return s.validator.CheckConflicts(request, conflicts, excludeID)
}
