package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository/memory"
)

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
)

func newTestAppointmentService() *AppointmentService {
	return NewAppointmentService(memory.New().Appointments())
}

func TestAppointmentCreate_DefaultsToScheduled(t *testing.T) {
	svc := newTestAppointmentService()

	a, err := svc.Create(context.Background(), ownerA, model.AppointmentRequest{
		Title: "Dentist",
		Date:  "2030-01-15T10:00:00Z",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, ownerA, a.UserID)
	assert.Equal(t, model.StatusScheduled, a.Status)
	assert.Equal(t, time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC), a.Date)
}

func TestAppointmentCreate_Validation(t *testing.T) {
	svc := newTestAppointmentService()

	tests := []struct {
		name string
		req  model.AppointmentRequest
		want []string
	}{
		{"missing title and date", model.AppointmentRequest{}, []string{"please add an appointment title", "please add a date"}},
		{"bad date", model.AppointmentRequest{Title: "Dentist", Date: "soon"}, []string{"date must be a valid date"}},
		{"bad status", model.AppointmentRequest{Title: "Dentist", Date: "2030-01-15", Status: "Maybe"}, []string{"status must be one of: Scheduled, Completed, Cancelled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ownerA, tt.req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Messages)
		})
	}
}

func TestAppointmentOwnership(t *testing.T) {
	svc := newTestAppointmentService()
	ctx := context.Background()

	a, err := svc.Create(ctx, ownerA, model.AppointmentRequest{Title: "Dentist", Date: "2030-01-15"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, ownerB, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, ownerB, a.ID, model.AppointmentRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, ownerB, a.ID), ErrForbidden)

	got, err := svc.Get(ctx, ownerA, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dentist", got.Title)
}

func TestAppointmentLookupOrder(t *testing.T) {
	svc := newTestAppointmentService()
	ctx := context.Background()

	_, err := svc.Get(ctx, ownerA, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Get(ctx, ownerA, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, ownerA, "not-a-uuid"), ErrInvalidID)
}

func TestAppointmentUpdate_KeepsOmittedFields(t *testing.T) {
	svc := newTestAppointmentService()
	ctx := context.Background()

	a, err := svc.Create(ctx, ownerA, model.AppointmentRequest{Title: "Dentist", Date: "2030-01-15", Location: "Main St"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ownerA, a.ID, model.AppointmentRequest{Status: model.StatusCompleted})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Equal(t, "Dentist", updated.Title)
	assert.Equal(t, "Main St", updated.Location)

	got, err := svc.Get(ctx, ownerA, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestAppointmentDelete(t *testing.T) {
	svc := newTestAppointmentService()
	ctx := context.Background()

	a, err := svc.Create(ctx, ownerA, model.AppointmentRequest{Title: "Dentist", Date: "2030-01-15"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ownerA, a.ID))

	_, err = svc.Get(ctx, ownerA, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppointmentList(t *testing.T) {
	svc := newTestAppointmentService()
	ctx := context.Background()

	for _, date := range []string{"2030-03-01", "2030-01-01", "2030-02-01"} {
		_, err := svc.Create(ctx, ownerA, model.AppointmentRequest{Title: "Visit " + date, Date: date})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, ownerB, model.AppointmentRequest{Title: "Other", Date: "2030-01-10"})
	require.NoError(t, err)

	all, err := svc.List(ctx, ownerA, model.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Visit 2030-01-01", all[0].Title)
	assert.Equal(t, "Visit 2030-03-01", all[2].Title)

	from := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	ranged, err := svc.List(ctx, ownerA, model.AppointmentFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	to := from.AddDate(0, 0, -30)
	_, err = svc.List(ctx, ownerA, model.AppointmentFilter{From: &from, To: &to})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAuthorize(t *testing.T) {
	record := &model.Appointment{UserID: ownerA}

	assert.NoError(t, Authorize(ownerA, record))
	assert.ErrorIs(t, Authorize(ownerB, record), ErrForbidden)
	assert.ErrorIs(t, Authorize("", &model.Appointment{}), ErrForbidden)
}
