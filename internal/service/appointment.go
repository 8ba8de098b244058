package service

import (
	"context"
	"strings"
	"time"

	"github.com/healthtrack/healthtrack-go/internal/model"
)

// AppointmentStore persists appointments.
type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID string, filter model.AppointmentFilter) ([]model.Appointment, error)
	ListUpcoming(ctx context.Context, userID string, since time.Time, limit int) ([]model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, id string) error
}

// AppointmentService handles appointment business logic.
type AppointmentService struct {
	store AppointmentStore
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(store AppointmentStore) *AppointmentService {
	return &AppointmentService{store: store}
}

// Create schedules a new appointment owned by userID.
func (s *AppointmentService) Create(ctx context.Context, userID string, req model.AppointmentRequest) (model.Appointment, error) {
	a := model.Appointment{UserID: userID, Status: model.StatusScheduled}
	if err := applyAppointment(&a, req); err != nil {
		return model.Appointment{}, err
	}

	if err := s.store.Create(ctx, &a); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// List returns userID's appointments, soonest first.
func (s *AppointmentService) List(ctx context.Context, userID string, filter model.AppointmentFilter) ([]model.Appointment, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, validationFailed("to must not be before from")
	}
	return s.store.ListByUser(ctx, userID, filter)
}

// Get returns a single appointment owned by userID.
func (s *AppointmentService) Get(ctx context.Context, userID, id string) (model.Appointment, error) {
	a, err := fetchOwned(ctx, userID, id, s.store.GetByID)
	if err != nil {
		return model.Appointment{}, err
	}
	return *a, nil
}

// Update applies the non-empty fields of req to an appointment owned by userID.
func (s *AppointmentService) Update(ctx context.Context, userID, id string, req model.AppointmentRequest) (model.Appointment, error) {
	a, err := fetchOwned(ctx, userID, id, s.store.GetByID)
	if err != nil {
		return model.Appointment{}, err
	}

	if err := applyAppointment(a, req); err != nil {
		return model.Appointment{}, err
	}

	if err := s.store.Update(ctx, a); err != nil {
		return model.Appointment{}, mapMissing(err)
	}
	return *a, nil
}

// Delete removes an appointment owned by userID.
func (s *AppointmentService) Delete(ctx context.Context, userID, id string) error {
	a, err := fetchOwned(ctx, userID, id, s.store.GetByID)
	if err != nil {
		return err
	}
	return mapMissing(s.store.Delete(ctx, a.ID))
}

// applyAppointment copies the non-empty request fields onto a and validates the result.
func applyAppointment(a *model.Appointment, req model.AppointmentRequest) error {
	if v := strings.TrimSpace(req.Title); v != "" {
		a.Title = v
	}
	if v := strings.TrimSpace(req.Date); v != "" {
		date, err := parseDate("date", v)
		if err != nil {
			return err
		}
		a.Date = date
	}
	if v := strings.TrimSpace(req.Location); v != "" {
		a.Location = v
	}
	if v := strings.TrimSpace(req.Notes); v != "" {
		a.Notes = v
	}
	if v := strings.TrimSpace(req.Status); v != "" {
		a.Status = v
	}
	return validateStruct(a)
}
