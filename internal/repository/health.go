package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
)

const (
	physicalColumns = `id, user_id, date, activity_type, duration_minutes, calories_burned, notes, created_at`
	mentalColumns   = `id, user_id, date, mood, stress_level, sleep_hours, journal_entry, created_at`
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// PhysicalLogRepository handles physical health log persistence.
type PhysicalLogRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPhysicalLogRepository creates a new PhysicalLogRepository.
func NewPhysicalLogRepository(db *sql.DB, timeout time.Duration) *PhysicalLogRepository {
	return &PhysicalLogRepository{db: db, timeout: timeout}
}

// Create inserts a new log, assigning its ID and creation time.
func (r *PhysicalLogRepository) Create(ctx context.Context, l *model.PhysicalHealthLog) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `INSERT INTO physical_health_logs (` + physicalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.UserID, l.Date, l.ActivityType, l.DurationMinutes, nullInt(l.CaloriesBurned), l.Notes, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting physical log: %w", err)
	}
	return nil
}

// GetByID retrieves a physical log regardless of owner.
func (r *PhysicalLogRepository) GetByID(ctx context.Context, id string) (*model.PhysicalHealthLog, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+physicalColumns+` FROM physical_health_logs WHERE id = ?`, id)

	l, err := scanPhysical(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying physical log: %w", err)
	}
	return l, nil
}

// ListByUser returns a user's logs, newest first. A limit of zero returns all of them.
func (r *PhysicalLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.PhysicalHealthLog, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + physicalColumns + ` FROM physical_health_logs WHERE user_id = ? ORDER BY date DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying physical logs: %w", err)
	}
	defer rows.Close()

	logs := []model.PhysicalHealthLog{}
	for rows.Next() {
		l, err := scanPhysical(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning physical log: %w", err)
		}
		logs = append(logs, *l)
	}

	return logs, rows.Err()
}

// Update overwrites the mutable fields of a physical log.
func (r *PhysicalLogRepository) Update(ctx context.Context, l *model.PhysicalHealthLog) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE physical_health_logs
		SET date = ?, activity_type = ?, duration_minutes = ?, calories_burned = ?, notes = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		l.Date, l.ActivityType, l.DurationMinutes, nullInt(l.CaloriesBurned), l.Notes, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating physical log: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a physical log.
func (r *PhysicalLogRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM physical_health_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting physical log: %w", err)
	}
	return checkAffected(result)
}

func scanPhysical(s scanner) (*model.PhysicalHealthLog, error) {
	l := &model.PhysicalHealthLog{}
	var calories sql.NullInt64
	if err := s.Scan(
		&l.ID, &l.UserID, &l.Date, &l.ActivityType, &l.DurationMinutes, &calories, &l.Notes, &l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.CaloriesBurned = intPtr(calories)
	return l, nil
}

// MentalLogRepository handles mental health log persistence.
type MentalLogRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewMentalLogRepository creates a new MentalLogRepository.
func NewMentalLogRepository(db *sql.DB, timeout time.Duration) *MentalLogRepository {
	return &MentalLogRepository{db: db, timeout: timeout}
}

// Create inserts a new log, assigning its ID and creation time.
func (r *MentalLogRepository) Create(ctx context.Context, l *model.MentalHealthLog) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `INSERT INTO mental_health_logs (` + mentalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.UserID, l.Date, l.Mood, nullInt(l.StressLevel), nullFloat(l.SleepHours), l.JournalEntry, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting mental log: %w", err)
	}
	return nil
}

// GetByID retrieves a mental log regardless of owner.
func (r *MentalLogRepository) GetByID(ctx context.Context, id string) (*model.MentalHealthLog, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+mentalColumns+` FROM mental_health_logs WHERE id = ?`, id)

	l, err := scanMental(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying mental log: %w", err)
	}
	return l, nil
}

// ListByUser returns a user's logs, newest first. A limit of zero returns all of them.
func (r *MentalLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.MentalHealthLog, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + mentalColumns + ` FROM mental_health_logs WHERE user_id = ? ORDER BY date DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mental logs: %w", err)
	}
	defer rows.Close()

	logs := []model.MentalHealthLog{}
	for rows.Next() {
		l, err := scanMental(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mental log: %w", err)
		}
		logs = append(logs, *l)
	}

	return logs, rows.Err()
}

// Update overwrites the mutable fields of a mental log.
func (r *MentalLogRepository) Update(ctx context.Context, l *model.MentalHealthLog) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE mental_health_logs
		SET date = ?, mood = ?, stress_level = ?, sleep_hours = ?, journal_entry = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		l.Date, l.Mood, nullInt(l.StressLevel), nullFloat(l.SleepHours), l.JournalEntry, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mental log: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a mental log.
func (r *MentalLogRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM mental_health_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting mental log: %w", err)
	}
	return checkAffected(result)
}

func scanMental(s scanner) (*model.MentalHealthLog, error) {
	l := &model.MentalHealthLog{}
	var (
		stress sql.NullInt64
		sleep  sql.NullFloat64
	)
	if err := s.Scan(
		&l.ID, &l.UserID, &l.Date, &l.Mood, &stress, &sleep, &l.JournalEntry, &l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.StressLevel = intPtr(stress)
	l.SleepHours = floatPtr(sleep)
	return l, nil
}
