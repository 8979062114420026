package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/mindvale/clinic/internal/models"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
	validator *Validator
	slotStart time.Time
	slotEnd   time.Time
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = NewValidator()
	s.slotStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s.slotEnd = time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) request() *ScheduleRequest {
	return &ScheduleRequest{
		TherapistID: "therapist-1",
		StartTime:   s.slotStart,
		EndTime:     s.slotEnd,
	}
}

func (s *ValidatorTestSuite) existing(id, therapistID string, status models.SessionStatus, start, end time.Time) *models.Session {
	return &models.Session{
		ID:          id,
		TherapistID: therapistID,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	}
}

func (s *ValidatorTestSuite) TestValidateScheduleOK() {
	s.NoError(s.validator.ValidateSchedule(s.request()))
}

func (s *ValidatorTestSuite) TestValidateScheduleMissingFields() {
	req := s.request()
	req.TherapistID = ""
	s.ErrorIs(s.validator.ValidateSchedule(req), ErrMissingTherapist)

	req = s.request()
	req.StartTime = time.Time{}
	s.ErrorIs(s.validator.ValidateSchedule(req), ErrMissingStartTime)

	req = s.request()
	req.EndTime = time.Time{}
	s.ErrorIs(s.validator.ValidateSchedule(req), ErrMissingEndTime)

	s.ErrorIs(s.validator.ValidateSchedule(nil), ErrNilRequest)
}

func (s *ValidatorTestSuite) TestValidateScheduleStartNotBeforeEnd() {
	req := s.request()
	req.EndTime = req.StartTime
	err := s.validator.ValidateSchedule(req)
	s.ErrorIs(err, ErrStartNotBeforeEnd)
	s.ErrorIs(err, models.ErrInvalidOperation)

	req = s.request()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime
	s.ErrorIs(s.validator.ValidateSchedule(req), ErrStartNotBeforeEnd)
}

func (s *ValidatorTestSuite) TestCheckConflictsOverlap() {
	existing := []*models.Session{
		s.existing("a", "therapist-1", models.SessionStatusScheduled,
			s.slotStart.Add(30*time.Minute), s.slotEnd.Add(30*time.Minute)),
	}

	err := s.validator.CheckConflicts(s.request(), existing, "")
	s.ErrorIs(err, ErrScheduleConflict)
	s.ErrorIs(err, models.ErrInvalidOperation)
}

func (s *ValidatorTestSuite) TestCheckConflictsDifferentTherapist() {
	existing := []*models.Session{
		s.existing("a", "therapist-2", models.SessionStatusScheduled, s.slotStart, s.slotEnd),
	}

	s.NoError(s.validator.CheckConflicts(s.request(), existing, ""))
}

func (s *ValidatorTestSuite) TestCheckConflictsHalfOpenIntervals() {
	// A session ending exactly at the candidate's start does not conflict,
	// nor does one starting exactly at its end
	existing := []*models.Session{
		s.existing("before", "therapist-1", models.SessionStatusScheduled,
			s.slotStart.Add(-time.Hour), s.slotStart),
		s.existing("after", "therapist-1", models.SessionStatusPending,
			s.slotEnd, s.slotEnd.Add(time.Hour)),
	}

	s.NoError(s.validator.CheckConflicts(s.request(), existing, ""))
}

func (s *ValidatorTestSuite) TestCheckConflictsIgnoresVacatedStatuses() {
	for _, status := range []models.SessionStatus{
		models.SessionStatusCancelled,
		models.SessionStatusCompleted,
		models.SessionStatusRescheduled,
	} {
		existing := []*models.Session{
			s.existing("a", "therapist-1", status, s.slotStart, s.slotEnd),
		}
		s.NoError(s.validator.CheckConflicts(s.request(), existing, ""), "status %s", status)
	}
}

func (s *ValidatorTestSuite) TestCheckConflictsExcludesOwnID() {
	existing := []*models.Session{
		s.existing("self", "therapist-1", models.SessionStatusScheduled, s.slotStart, s.slotEnd),
	}

	s.NoError(s.validator.CheckConflicts(s.request(), existing, "self"))
	s.ErrorIs(s.validator.CheckConflicts(s.request(), existing, "other"), ErrScheduleConflict)
}

func (s *ValidatorTestSuite) TestStatusTransitionTotality() {
	all := []models.SessionStatus{
		models.SessionStatusPending,
		models.SessionStatusScheduled,
		models.SessionStatusCancelled,
		models.SessionStatusCompleted,
		models.SessionStatusRescheduled,
	}

	legal := map[models.SessionStatus][]models.SessionStatus{
		models.SessionStatusPending:     {models.SessionStatusScheduled, models.SessionStatusCancelled},
		models.SessionStatusScheduled:   {models.SessionStatusCompleted, models.SessionStatusCancelled, models.SessionStatusRescheduled},
		models.SessionStatusCancelled:   {models.SessionStatusRescheduled},
		models.SessionStatusCompleted:   {},
		models.SessionStatusRescheduled: {models.SessionStatusScheduled, models.SessionStatusCompleted},
	}

	for _, current := range all {
		for _, next := range all {
			allowed := false
			for _, candidate := range legal[current] {
				if candidate == next {
					allowed = true
				}
			}

			err := s.validator.ValidateStatusTransition(current, next)
			if allowed {
				s.NoError(err, "%s -> %s", current, next)
			} else {
				s.ErrorIs(err, models.ErrBusinessRule, "%s -> %s", current, next)
			}
		}
	}
}

func (s *ValidatorTestSuite) TestParticipantLimit() {
	s.NoError(s.validator.ValidateParticipantLimit(nil))
	s.NoError(s.validator.ValidateParticipantLimit([]string{"p1", "p2", "p3", "p4", "p5"}))

	err := s.validator.ValidateParticipantLimit([]string{"p1", "p2", "p3", "p4", "p5", "p6"})
	s.ErrorIs(err, ErrTooManyParticipants)
	s.ErrorIs(err, models.ErrBusinessRule)

	// Duplicates count once
	s.NoError(s.validator.ValidateParticipantLimit([]string{"p1", "p1", "p2", "p3", "p4", "p5"}))
}

func (s *ValidatorTestSuite) TestNormalizeParticipants() {
	s.Equal([]string{"p1", "p2"}, NormalizeParticipants([]string{"p1", "p2", "p1", ""}))
	s.Empty(NormalizeParticipants(nil))
}

func (s *ValidatorTestSuite) TestValidateSearchFiltersParsesDates() {
	query, err := s.validator.ValidateSearchFilters(&SearchFilters{
		Status:         "SCHEDULED",
		PatientID:      "p1",
		StartTimeAfter: "2025-06-02T10:00:00Z",
		EndTimeBefore:  "2025-06-02T12:00:00Z",
		SearchTerm:     "follow-up",
	})
	s.Require().NoError(err)

	s.Equal(models.SessionStatusScheduled, query.Status)
	s.Equal("p1", query.PatientID)
	s.Equal("follow-up", query.SearchTerm)
	s.Require().NotNil(query.StartTimeAfter)
	s.True(query.StartTimeAfter.Equal(s.slotStart))
	s.Require().NotNil(query.EndTimeBefore)
	s.Nil(query.StartTimeBefore)
}

func (s *ValidatorTestSuite) TestValidateSearchFiltersRejectsBadDates() {
	_, err := s.validator.ValidateSearchFilters(&SearchFilters{
		CreatedAtAfter: "last tuesday",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, models.ErrValidation))
	s.Contains(err.Error(), "created_at_after")
}

func (s *ValidatorTestSuite) TestValidateSearchFiltersNilIsEmptyQuery() {
	query, err := s.validator.ValidateSearchFilters(nil)
	s.Require().NoError(err)
	s.Empty(query.Fingerprint())
}

func (s *ValidatorTestSuite) TestFingerprintStable() {
	filters := &SearchFilters{
		Status:         "PENDING",
		StartTimeAfter: "2025-06-02T10:00:00Z",
	}

	first, err := s.validator.ValidateSearchFilters(filters)
	s.Require().NoError(err)
	second, err := s.validator.ValidateSearchFilters(filters)
	s.Require().NoError(err)

	s.Equal(first.Fingerprint(), second.Fingerprint())
	s.Len(first.Fingerprint(), 2)
}
