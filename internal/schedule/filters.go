package schedule

import (
	"fmt"
	"time"

	"github.com/mindvale/clinic/internal/models"
)

// SearchFilters carries raw, caller-supplied filter values. Date fields are
// ISO-8601 strings exactly as they arrive from the transport layer; empty
// fields are unset.
type SearchFilters struct {
	Status          string
	PatientID       string
	StartTimeAfter  string
	StartTimeBefore string
	EndTimeAfter    string
	EndTimeBefore   string
	CreatedAtAfter  string
	CreatedAtBefore string
	SearchTerm      string
}

// SearchQuery is the validated form of SearchFilters, parsed once at
// construction. Nil time fields are unset.
type SearchQuery struct {
	Status          models.SessionStatus
	PatientID       string
	StartTimeAfter  *time.Time
	StartTimeBefore *time.Time
	EndTimeAfter    *time.Time
	EndTimeBefore   *time.Time
	CreatedAtAfter  *time.Time
	CreatedAtBefore *time.Time
	SearchTerm      string
}

// ValidateSearchFilters parses raw filters into a SearchQuery. Every
// date-typed value must be an ISO-8601 timestamp; the error names the
// offending field. No other semantic checks are applied.
func (v *Validator) ValidateSearchFilters(filters *SearchFilters) (*SearchQuery, error) {
	if filters == nil {
		filters = &SearchFilters{}
	}

	query := &SearchQuery{
		Status:     models.SessionStatus(filters.Status),
		PatientID:  filters.PatientID,
		SearchTerm: filters.SearchTerm,
	}

	dateFields := []struct {
		name   string
		value  string
		target **time.Time
	}{
		{"start_time_after", filters.StartTimeAfter, &query.StartTimeAfter},
		{"start_time_before", filters.StartTimeBefore, &query.StartTimeBefore},
		{"end_time_after", filters.EndTimeAfter, &query.EndTimeAfter},
		{"end_time_before", filters.EndTimeBefore, &query.EndTimeBefore},
		{"created_at_after", filters.CreatedAtAfter, &query.CreatedAtAfter},
		{"created_at_before", filters.CreatedAtBefore, &query.CreatedAtBefore},
	}

	for _, field := range dateFields {
		if field.value == "" {
			continue
		}

		parsed, err := time.Parse(time.RFC3339, field.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an ISO-8601 timestamp", models.ErrValidation, field.name)
		}

		utc := parsed.UTC()
		*field.target = &utc
	}

	return query, nil
}

// Fingerprint returns the set fields of the query as sorted-hashable pairs
// for cache-key derivation. Logically equal queries produce equal maps.
func (q *SearchQuery) Fingerprint() map[string]string {
	pairs := make(map[string]string)

	if q.Status != "" {
		pairs["status"] = string(q.Status)
	}
	if q.PatientID != "" {
		pairs["patient_id"] = q.PatientID
	}
	if q.SearchTerm != "" {
		pairs["search_term"] = q.SearchTerm
	}

	timeFields := []struct {
		name  string
		value *time.Time
	}{
		{"start_time_after", q.StartTimeAfter},
		{"start_time_before", q.StartTimeBefore},
		{"end_time_after", q.EndTimeAfter},
		{"end_time_before", q.EndTimeBefore},
		{"created_at_after", q.CreatedAtAfter},
		{"created_at_before", q.CreatedAtBefore},
	}
	for _, field := range timeFields {
		if field.value != nil {
			pairs[field.name] = field.value.UTC().Format(time.RFC3339Nano)
		}
	}

	return pairs
}
