package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
)

const appointmentColumns = `id, user_id, title, date, location, notes, status, created_at`

// AppointmentRepository handles appointment persistence operations.
type AppointmentRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *sql.DB, timeout time.Duration) *AppointmentRepository {
	return &AppointmentRepository{db: db, timeout: timeout}
}

// Create inserts a new appointment, assigning its ID and creation time.
func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `INSERT INTO appointments (` + appointmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Title, a.Date, a.Location, a.Notes, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment regardless of owner.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = ?`

	a := &model.Appointment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Title, &a.Date, &a.Location, &a.Notes, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying appointment: %w", err)
	}
	return a, nil
}

// ListByUser returns a user's appointments ordered by date ascending, optionally
// restricted to an inclusive date range.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string, filter model.AppointmentFilter) ([]model.Appointment, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if filter.From != nil {
		where = append(where, "date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, "date <= ?")
		args = append(args, *filter.To)
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date ASC`

	return r.list(ctx, query, args...)
}

// ListUpcoming returns up to limit scheduled appointments at or after since, soonest first.
func (r *AppointmentRepository) ListUpcoming(ctx context.Context, userID string, since time.Time, limit int) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE user_id = ? AND status = ? AND date >= ? ORDER BY date ASC LIMIT ?`

	return r.list(ctx, query, userID, model.StatusScheduled, since, limit)
}

// Update overwrites the mutable fields of an appointment. The owner never changes.
func (r *AppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE appointments SET title = ?, date = ?, location = ?, notes = ?, status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, a.Title, a.Date, a.Location, a.Notes, a.Status, a.ID)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}
	return checkAffected(result)
}

// Delete removes an appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	return checkAffected(result)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]model.Appointment, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	appointments := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.Date, &a.Location, &a.Notes, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		appointments = append(appointments, a)
	}

	return appointments, rows.Err()
}

// checkAffected maps an UPDATE or DELETE that matched no row to ErrRecordNotFound.
// NewDB enables CLIENT_FOUND_ROWS so an UPDATE that changes nothing still counts.
func checkAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
