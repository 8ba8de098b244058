package memory

import (
	"context"
	"testing"
	"time"

	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersUniqueness(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	require.NoError(t, users.Create(ctx, &model.User{Username: "amy", Email: "a@x.com"}))

	err := users.Create(ctx, &model.User{Username: "other", Email: "a@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	err = users.Create(ctx, &model.User{Username: "amy", Email: "b@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	found, err := users.ExistsByUsername(ctx, "amy")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUsersUpdateProfileKeepsCredentials(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u := &model.User{Username: "amy", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, users.UpdateProfile(ctx, &model.User{ID: u.ID, FullName: "Amy Pond", Email: "evil@x.com", PasswordHash: "x"}))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amy Pond", got.FullName)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)

	assert.ErrorIs(t, users.UpdateProfile(ctx, &model.User{ID: "missing"}), repository.ErrUserNotFound)
}

func TestAppointmentsFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	appts := New().Appointments()
	base := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)

	for i, owner := range []string{"u-1", "u-2", "u-1", "u-1"} {
		a := &model.Appointment{UserID: owner, Title: "visit", Date: base.Add(time.Duration(3-i) * 24 * time.Hour), Status: model.StatusScheduled}
		require.NoError(t, appts.Create(ctx, a))
	}

	all, err := appts.ListByUser(ctx, "u-1", model.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Date.Before(all[i].Date), "appointments must be sorted ascending")
	}

	from := base.Add(12 * time.Hour)
	ranged, err := appts.ListByUser(ctx, "u-1", model.AppointmentFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	upcoming, err := appts.ListUpcoming(ctx, "u-1", base, 1)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, base, upcoming[0].Date)
}

func TestLogsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	logs := New().MentalLogs()
	base := time.Date(2026, 10, 1, 22, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		require.NoError(t, logs.Create(ctx, &model.MentalHealthLog{UserID: "u-1", Mood: "Calm", Date: base.Add(time.Duration(i) * time.Hour)}))
	}

	recent, err := logs.ListByUser(ctx, "u-1", 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, base.Add(6*time.Hour), recent[0].Date)
}

func TestDeleteMissing(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.ErrorIs(t, s.Appointments().Delete(ctx, "x"), repository.ErrRecordNotFound)
	assert.ErrorIs(t, s.PhysicalLogs().Delete(ctx, "x"), repository.ErrRecordNotFound)
	assert.ErrorIs(t, s.MentalLogs().Delete(ctx, "x"), repository.ErrRecordNotFound)
}
