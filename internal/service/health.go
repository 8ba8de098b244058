package service

import (
	"context"
	"strings"
	"time"

	"github.com/healthtrack/healthtrack-go/internal/model"
)

// dashboardLimit is how many entries of each kind the dashboard shows.
const dashboardLimit = 5

// PhysicalLogStore persists physical health logs.
type PhysicalLogStore interface {
	Create(ctx context.Context, l *model.PhysicalHealthLog) error
	GetByID(ctx context.Context, id string) (*model.PhysicalHealthLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.PhysicalHealthLog, error)
	Update(ctx context.Context, l *model.PhysicalHealthLog) error
	Delete(ctx context.Context, id string) error
}

// MentalLogStore persists mental health logs.
type MentalLogStore interface {
	Create(ctx context.Context, l *model.MentalHealthLog) error
	GetByID(ctx context.Context, id string) (*model.MentalHealthLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.MentalHealthLog, error)
	Update(ctx context.Context, l *model.MentalHealthLog) error
	Delete(ctx context.Context, id string) error
}

// HealthService handles physical and mental health logs and the dashboard.
type HealthService struct {
	physical     PhysicalLogStore
	mental       MentalLogStore
	appointments AppointmentStore
	now          func() time.Time
}

// NewHealthService creates a new HealthService.
func NewHealthService(physical PhysicalLogStore, mental MentalLogStore, appointments AppointmentStore) *HealthService {
	return &HealthService{
		physical:     physical,
		mental:       mental,
		appointments: appointments,
		now:          time.Now,
	}
}

// LogPhysical records a physical activity for userID. The date defaults to now.
func (s *HealthService) LogPhysical(ctx context.Context, userID string, req model.PhysicalLogRequest) (model.PhysicalHealthLog, error) {
	l := model.PhysicalHealthLog{UserID: userID, Date: s.now().UTC()}
	if err := applyPhysical(&l, req); err != nil {
		return model.PhysicalHealthLog{}, err
	}

	if err := s.physical.Create(ctx, &l); err != nil {
		return model.PhysicalHealthLog{}, err
	}
	return l, nil
}

// ListPhysical returns userID's physical logs, newest first.
func (s *HealthService) ListPhysical(ctx context.Context, userID string) ([]model.PhysicalHealthLog, error) {
	return s.physical.ListByUser(ctx, userID, 0)
}

// GetPhysical returns a single physical log owned by userID.
func (s *HealthService) GetPhysical(ctx context.Context, userID, id string) (model.PhysicalHealthLog, error) {
	l, err := fetchOwned(ctx, userID, id, s.physical.GetByID)
	if err != nil {
		return model.PhysicalHealthLog{}, err
	}
	return *l, nil
}

// UpdatePhysical applies the supplied fields of req to a physical log owned by userID.
func (s *HealthService) UpdatePhysical(ctx context.Context, userID, id string, req model.PhysicalLogRequest) (model.PhysicalHealthLog, error) {
	l, err := fetchOwned(ctx, userID, id, s.physical.GetByID)
	if err != nil {
		return model.PhysicalHealthLog{}, err
	}

	if err := applyPhysical(l, req); err != nil {
		return model.PhysicalHealthLog{}, err
	}

	if err := s.physical.Update(ctx, l); err != nil {
		return model.PhysicalHealthLog{}, mapMissing(err)
	}
	return *l, nil
}

// DeletePhysical removes a physical log owned by userID.
func (s *HealthService) DeletePhysical(ctx context.Context, userID, id string) error {
	l, err := fetchOwned(ctx, userID, id, s.physical.GetByID)
	if err != nil {
		return err
	}
	return mapMissing(s.physical.Delete(ctx, l.ID))
}

// LogMental records a mental health entry for userID. The date defaults to now.
func (s *HealthService) LogMental(ctx context.Context, userID string, req model.MentalLogRequest) (model.MentalHealthLog, error) {
	l := model.MentalHealthLog{UserID: userID, Date: s.now().UTC()}
	if err := applyMental(&l, req); err != nil {
		return model.MentalHealthLog{}, err
	}

	if err := s.mental.Create(ctx, &l); err != nil {
		return model.MentalHealthLog{}, err
	}
	return l, nil
}

// ListMental returns userID's mental logs, newest first.
func (s *HealthService) ListMental(ctx context.Context, userID string) ([]model.MentalHealthLog, error) {
	return s.mental.ListByUser(ctx, userID, 0)
}

// GetMental returns a single mental log owned by userID.
func (s *HealthService) GetMental(ctx context.Context, userID, id string) (model.MentalHealthLog, error) {
	l, err := fetchOwned(ctx, userID, id, s.mental.GetByID)
	if err != nil {
		return model.MentalHealthLog{}, err
	}
	return *l, nil
}

// UpdateMental applies the supplied fields of req to a mental log owned by userID.
func (s *HealthService) UpdateMental(ctx context.Context, userID, id string, req model.MentalLogRequest) (model.MentalHealthLog, error) {
	l, err := fetchOwned(ctx, userID, id, s.mental.GetByID)
	if err != nil {
		return model.MentalHealthLog{}, err
	}

	if err := applyMental(l, req); err != nil {
		return model.MentalHealthLog{}, err
	}

	if err := s.mental.Update(ctx, l); err != nil {
		return model.MentalHealthLog{}, mapMissing(err)
	}
	return *l, nil
}

// DeleteMental removes a mental log owned by userID.
func (s *HealthService) DeleteMental(ctx context.Context, userID, id string) error {
	l, err := fetchOwned(ctx, userID, id, s.mental.GetByID)
	if err != nil {
		return err
	}
	return mapMissing(s.mental.Delete(ctx, l.ID))
}

// Dashboard returns the latest physical and mental logs and the next scheduled
// appointments for userID.
func (s *HealthService) Dashboard(ctx context.Context, userID string) (model.Dashboard, error) {
	physical, err := s.physical.ListByUser(ctx, userID, dashboardLimit)
	if err != nil {
		return model.Dashboard{}, err
	}

	mental, err := s.mental.ListByUser(ctx, userID, dashboardLimit)
	if err != nil {
		return model.Dashboard{}, err
	}

	upcoming, err := s.appointments.ListUpcoming(ctx, userID, s.now().UTC(), dashboardLimit)
	if err != nil {
		return model.Dashboard{}, err
	}

	return model.Dashboard{
		RecentPhysical:       physical,
		RecentMental:         mental,
		UpcomingAppointments: upcoming,
	}, nil
}

func applyPhysical(l *model.PhysicalHealthLog, req model.PhysicalLogRequest) error {
	if v := strings.TrimSpace(req.ActivityType); v != "" {
		l.ActivityType = v
	}
	if req.DurationMinutes != nil {
		l.DurationMinutes = *req.DurationMinutes
	}
	if req.CaloriesBurned != nil {
		l.CaloriesBurned = req.CaloriesBurned
	}
	if v := strings.TrimSpace(req.Notes); v != "" {
		l.Notes = v
	}
	if v := strings.TrimSpace(req.Date); v != "" {
		date, err := parseDate("date", v)
		if err != nil {
			return err
		}
		l.Date = date
	}
	return validateStruct(l)
}

func applyMental(l *model.MentalHealthLog, req model.MentalLogRequest) error {
	if v := strings.TrimSpace(req.Mood); v != "" {
		l.Mood = v
	}
	if req.StressLevel != nil {
		l.StressLevel = req.StressLevel
	}
	if req.SleepHours != nil {
		l.SleepHours = req.SleepHours
	}
	if v := strings.TrimSpace(req.JournalEntry); v != "" {
		l.JournalEntry = v
	}
	if v := strings.TrimSpace(req.Date); v != "" {
		date, err := parseDate("date", v)
		if err != nil {
			return err
		}
		l.Date = date
	}
	return validateStruct(l)
}
