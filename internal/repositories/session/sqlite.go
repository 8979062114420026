package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindvale/clinic/internal/cache"
	"github.com/mindvale/clinic/internal/common/clock"
	commonuuid "github.com/mindvale/clinic/internal/common/uuid"
	"github.com/mindvale/clinic/internal/models"
	"github.com/mindvale/clinic/internal/schedule"
)

const (
	// cacheNamespace prefixes every session cache key
	cacheNamespace = "session"

	// defaultCacheTTL bounds how stale a cached session may be
	defaultCacheTTL = 15 * time.Minute
)

const sessionColumns = "id, therapist_id, start_time, end_time, status, notes, payment_id, created_at, updated_at, cancelled_at, deleted_at"

// Config holds configuration for the SQLite session repository
type Config struct {
	// DB is the durable store handle
	DB *sql.DB

	// Cache is the shared cache client. The repository treats it as best
	// effort: cache failures never fail an operation.
	Cache cache.Client

	// CacheTTL overrides the default 15 minute cache TTL
	CacheTTL time.Duration

	// Clock provides timestamps; defaults to the system clock
	Clock clock.Clock

	// UUID provides session IDs; defaults to random UUIDs
	UUID commonuuid.UUID
}

// sqliteRepository implements the Repository interface with a cache-aside
// read path over SQLite. The durable store is the sole source of truth;
// the cache holds non-authoritative copies bounded by TTL.
type sqliteRepository struct {
	db    *sql.DB
	cache cache.Client
	keys  cache.Keys
	ttl   time.Duration
	clock clock.Clock
	uuid  commonuuid.UUID
}

// NewSQLite creates a new SQLite-backed session repository
func NewSQLite(cfg *Config) (*sqliteRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	if cfg.Cache == nil {
		return nil, errors.New("cache client cannot be nil")
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	uuider := cfg.UUID
	if uuider == nil {
		uuider = commonuuid.New()
	}

	return &sqliteRepository{
		db:    cfg.DB,
		cache: cfg.Cache,
		keys:  cache.NewKeys(cacheNamespace),
		ttl:   ttl,
		clock: clk,
		uuid:  uuider,
	}, nil
}

// GetSession retrieves a session by ID, consulting the cache first
func (r *sqliteRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	key := r.keys.Entity(input.SessionID)
	if cached, ok := r.cacheGetEntity(ctx, key); ok {
		return cached, nil
	}

	session, err := r.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	r.cachePut(ctx, key, session)

	return session, nil
}

// SearchSessions retrieves sessions matching the query. Results are cached
// under a key derived from the filter set and expire only via TTL: writes
// never invalidate search keys, so read-your-writes is guaranteed for
// single-entity reads only.
func (r *sqliteRepository) SearchSessions(ctx context.Context, input *SearchSessionsInput) ([]*models.Session, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	query := input.Query
	if query == nil {
		query = &schedule.SearchQuery{}
	}

	key := r.keys.Search(query.Fingerprint())
	if cached, ok := r.cacheGetList(ctx, key); ok {
		return cached, nil
	}

	sessions, err := r.querySessions(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sessions); err == nil {
		_ = r.cache.Set(ctx, key, data, r.ttl)
	}

	return sessions, nil
}

// FindConflicts retrieves calendar-occupying sessions of the same therapist
// that overlap the candidate interval. Intervals are half-open, so a
// session ending exactly when the candidate starts does not conflict.
func (r *sqliteRepository) FindConflicts(ctx context.Context, input *FindConflictsInput) ([]*models.Session, error) {
	if input == nil || input.TherapistID == "" {
		return nil, errors.New("input and therapist ID cannot be empty")
	}

	querySQL := fmt.Sprintf(`SELECT %s FROM sessions
		WHERE therapist_id = ?
		  AND deleted_at IS NULL
		  AND status IN (?, ?)
		  AND start_time < ?
		  AND ? < end_time
		  AND id != ?
		ORDER BY start_time`, sessionColumns)

	rows, err := r.db.QueryContext(ctx, querySQL,
		input.TherapistID,
		string(models.SessionStatusPending),
		string(models.SessionStatusScheduled),
		toMillis(input.EndTime),
		toMillis(input.StartTime),
		input.ExcludeSessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	return r.collectSessions(ctx, rows)
}

// CreateSession persists a new session, assigning its ID and timestamps.
// The conflict check runs again inside the write transaction, so two
// concurrent bookings for overlapping slots cannot both commit.
func (r *sqliteRepository) CreateSession(ctx context.Context, input *CreateSessionInput) (*models.Session, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	now := r.clock.Now().UTC()

	session := cloneSession(input.Session)
	session.ID = r.uuid.NewUUID()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.DeletedAt = nil

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if session.Status.OccupiesCalendar() {
		if err := r.checkConflictInTx(ctx, tx, session.TherapistID, session.StartTime, session.EndTime, session.ID); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO sessions
		(id, therapist_id, start_time, end_time, status, notes, payment_id, created_at, updated_at, cancelled_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.TherapistID,
		toMillis(session.StartTime),
		toMillis(session.EndTime),
		string(session.Status),
		session.Notes,
		nullString(session.PaymentID),
		toMillis(session.CreatedAt),
		toMillis(session.UpdatedAt),
		nullMillis(session.CancelledAt),
		nullMillis(session.DeletedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertParticipants(ctx, tx, session.ID, session.PatientIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	r.cachePut(ctx, r.keys.Entity(session.ID), session)

	return session, nil
}

// UpdateSession persists a mutated session. The stale cache entry is
// deleted after the store write and a fresh one set afterwards, so a read
// between the two sees either the store's new row or the new cache entry,
// never the old value.
func (r *sqliteRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	if input.Session.ID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	session := cloneSession(input.Session)
	session.UpdatedAt = r.clock.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if session.Status.OccupiesCalendar() {
		if err := r.checkConflictInTx(ctx, tx, session.TherapistID, session.StartTime, session.EndTime, session.ID); err != nil {
			return nil, err
		}
	}

	result, err := tx.ExecContext(ctx, `UPDATE sessions SET
		therapist_id = ?, start_time = ?, end_time = ?, status = ?, notes = ?,
		payment_id = ?, updated_at = ?, cancelled_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		session.TherapistID,
		toMillis(session.StartTime),
		toMillis(session.EndTime),
		string(session.Status),
		session.Notes,
		nullString(session.PaymentID),
		toMillis(session.UpdatedAt),
		nullMillis(session.CancelledAt),
		session.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrSessionNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM session_participants WHERE session_id = ?", session.ID); err != nil {
		return nil, fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, session.ID, session.PatientIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session update: %w", err)
	}

	key := r.keys.Entity(session.ID)
	_ = r.cache.Delete(ctx, key)
	r.cachePut(ctx, key, session)

	return session, nil
}

// SoftDeleteSession marks a session deleted and evicts its cache entry.
// Already-deleted and unknown sessions both report ErrSessionNotFound.
func (r *sqliteRepository) SoftDeleteSession(ctx context.Context, input *SoftDeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	now := toMillis(r.clock.Now().UTC())
	result, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, input.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	_ = r.cache.Delete(ctx, r.keys.Entity(input.SessionID))

	return nil
}

// checkConflictInTx re-runs the overlap predicate inside the write
// transaction, closing the check-then-act gap between service-level
// validation and the commit.
func (r *sqliteRepository) checkConflictInTx(ctx context.Context, tx *sql.Tx, therapistID string, start, end time.Time, excludeID string) error {
	var count int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions
		WHERE therapist_id = ?
		  AND deleted_at IS NULL
		  AND status IN (?, ?)
		  AND start_time < ?
		  AND ? < end_time
		  AND id != ?`,
		therapistID,
		string(models.SessionStatusPending),
		string(models.SessionStatusScheduled),
		toMillis(end),
		toMillis(start),
		excludeID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}

	if count > 0 {
		return schedule.ErrScheduleConflict
	}

	return nil
}

// loadSession reads one session and its roster from the durable store
func (r *sqliteRepository) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	querySQL := fmt.Sprintf("SELECT %s FROM sessions WHERE id = ? AND deleted_at IS NULL", sessionColumns)

	session, err := scanSession(r.db.QueryRowContext(ctx, querySQL, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := r.loadParticipants(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *sqliteRepository) loadParticipants(ctx context.Context, session *models.Session) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT patient_id FROM session_participants WHERE session_id = ? ORDER BY rowid", session.ID)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	session.PatientIDs = []string{}
	for rows.Next() {
		var patientID string
		if err := rows.Scan(&patientID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		session.PatientIDs = append(session.PatientIDs, patientID)
	}

	return rows.Err()
}

// querySessions executes a filtered search against the durable store.
// Soft-deleted sessions are always excluded.
func (r *sqliteRepository) querySessions(ctx context.Context, query *schedule.SearchQuery) ([]*models.Session, error) {
	var (
		clauses = []string{"deleted_at IS NULL"}
		args    []any
	)

	if query.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(query.Status))
	}
	if query.PatientID != "" {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM session_participants sp WHERE sp.session_id = sessions.id AND sp.patient_id = ?)")
		args = append(args, query.PatientID)
	}
	if query.StartTimeAfter != nil {
		clauses = append(clauses, "start_time >= ?")
		args = append(args, toMillis(*query.StartTimeAfter))
	}
	if query.StartTimeBefore != nil {
		clauses = append(clauses, "start_time <= ?")
		args = append(args, toMillis(*query.StartTimeBefore))
	}
	if query.EndTimeAfter != nil {
		clauses = append(clauses, "end_time >= ?")
		args = append(args, toMillis(*query.EndTimeAfter))
	}
	if query.EndTimeBefore != nil {
		clauses = append(clauses, "end_time <= ?")
		args = append(args, toMillis(*query.EndTimeBefore))
	}
	if query.CreatedAtAfter != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, toMillis(*query.CreatedAtAfter))
	}
	if query.CreatedAtBefore != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, toMillis(*query.CreatedAtBefore))
	}
	if query.SearchTerm != "" {
		clauses = append(clauses, "notes LIKE '%' || ? || '%'")
		args = append(args, query.SearchTerm)
	}

	querySQL := fmt.Sprintf("SELECT %s FROM sessions WHERE %s ORDER BY start_time",
		sessionColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sessions: %w", err)
	}
	defer rows.Close()

	return r.collectSessions(ctx, rows)
}

func (r *sqliteRepository) collectSessions(ctx context.Context, rows *sql.Rows) ([]*models.Session, error) {
	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	// Release the cursor before the roster queries: the single-connection
	// handle cannot run two statements at once.
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to close session rows: %w", err)
	}

	for _, session := range sessions {
		if err := r.loadParticipants(ctx, session); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// cacheGetEntity returns a cached session, or ok=false on any miss or
// cache failure
func (r *sqliteRepository) cacheGetEntity(ctx context.Context, key string) (*models.Session, bool) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}

	return &session, true
}

func (r *sqliteRepository) cacheGetList(ctx context.Context, key string) ([]*models.Session, bool) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var sessions []*models.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, false
	}

	return sessions, true
}

// cachePut stores a session best-effort; failures are ignored
func (r *sqliteRepository) cachePut(ctx context.Context, key string, session *models.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}

	_ = r.cache.Set(ctx, key, data, r.ttl)
}

func insertParticipants(ctx context.Context, tx *sql.Tx, sessionID string, patientIDs []string) error {
	for _, patientID := range patientIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO session_participants (session_id, patient_id) VALUES (?, ?)",
			sessionID, patientID)
		if err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", patientID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id, therapistID, status, notes     string
		paymentID                          sql.NullString
		startMs, endMs, createdMs, updated int64
		cancelledMs, deletedMs             sql.NullInt64
	)

	err := row.Scan(&id, &therapistID, &startMs, &endMs, &status, &notes,
		&paymentID, &createdMs, &updated, &cancelledMs, &deletedMs)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:          id,
		TherapistID: therapistID,
		StartTime:   fromMillis(startMs),
		EndTime:     fromMillis(endMs),
		Status:      models.SessionStatus(status),
		Notes:       notes,
		PaymentID:   paymentID.String,
		CreatedAt:   fromMillis(createdMs),
		UpdatedAt:   fromMillis(updated),
	}
	if cancelledMs.Valid {
		t := fromMillis(cancelledMs.Int64)
		session.CancelledAt = &t
	}
	if deletedMs.Valid {
		t := fromMillis(deletedMs.Int64)
		session.DeletedAt = &t
	}

	return session, nil
}

func cloneSession(session *models.Session) *models.Session {
	clone := *session
	clone.PatientIDs = append([]string(nil), session.PatientIDs...)
	return &clone
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}
