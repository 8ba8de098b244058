// Package memory provides process-local stores with the same behavior as the MySQL
// repositories. They back STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu           sync.RWMutex
	users        map[string]model.User
	appointments map[string]model.Appointment
	physical     map[string]model.PhysicalHealthLog
	mental       map[string]model.MentalHealthLog
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:        make(map[string]model.User),
		appointments: make(map[string]model.Appointment),
		physical:     make(map[string]model.PhysicalHealthLog),
		mental:       make(map[string]model.MentalHealthLog),
	}
}

// Users returns the user table view.
func (s *Store) Users() *Users { return &Users{s: s} }

// Appointments returns the appointment table view.
func (s *Store) Appointments() *Appointments { return &Appointments{s: s} }

// PhysicalLogs returns the physical log table view.
func (s *Store) PhysicalLogs() *PhysicalLogs { return &PhysicalLogs{s: s} }

// MentalLogs returns the mental log table view.
func (s *Store) MentalLogs() *MentalLogs { return &MentalLogs{s: s} }

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// Users is the in-memory counterpart of repository.UserRepository.
type Users struct{ s *Store }

func (u *Users) Create(ctx context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = *user
	return nil
}

func (u *Users) GetByID(ctx context.Context, id string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (u *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := u.GetByEmail(ctx, email)
	return err == nil, nil
}

func (u *Users) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (u *Users) UpdateProfile(ctx context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	existing, ok := u.s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	existing.FullName = user.FullName
	existing.DateOfBirth = user.DateOfBirth
	existing.Gender = user.Gender
	existing.UpdatedAt = now()
	user.UpdatedAt = existing.UpdatedAt
	u.s.users[user.ID] = existing
	return nil
}

// Appointments is the in-memory counterpart of repository.AppointmentRepository.
type Appointments struct{ s *Store }

func (a *Appointments) Create(ctx context.Context, appt *model.Appointment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	appt.CreatedAt = now()
	a.s.appointments[appt.ID] = *appt
	return nil
}

func (a *Appointments) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	appt, ok := a.s.appointments[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &appt, nil
}

func (a *Appointments) ListByUser(ctx context.Context, userID string, filter model.AppointmentFilter) ([]model.Appointment, error) {
	return a.collect(func(appt model.Appointment) bool {
		if appt.UserID != userID {
			return false
		}
		if filter.From != nil && appt.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && appt.Date.After(*filter.To) {
			return false
		}
		return true
	}, 0), nil
}

func (a *Appointments) ListUpcoming(ctx context.Context, userID string, since time.Time, limit int) ([]model.Appointment, error) {
	return a.collect(func(appt model.Appointment) bool {
		return appt.UserID == userID && appt.Status == model.StatusScheduled && !appt.Date.Before(since)
	}, limit), nil
}

func (a *Appointments) collect(keep func(model.Appointment) bool, limit int) []model.Appointment {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	out := []model.Appointment{}
	for _, appt := range a.s.appointments {
		if keep(appt) {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (a *Appointments) Update(ctx context.Context, appt *model.Appointment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	existing, ok := a.s.appointments[appt.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	existing.Title = appt.Title
	existing.Date = appt.Date
	existing.Location = appt.Location
	existing.Notes = appt.Notes
	existing.Status = appt.Status
	a.s.appointments[appt.ID] = existing
	return nil
}

func (a *Appointments) Delete(ctx context.Context, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.appointments[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(a.s.appointments, id)
	return nil
}

// PhysicalLogs is the in-memory counterpart of repository.PhysicalLogRepository.
type PhysicalLogs struct{ s *Store }

func (p *PhysicalLogs) Create(ctx context.Context, l *model.PhysicalHealthLog) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = now()
	p.s.physical[l.ID] = *l
	return nil
}

func (p *PhysicalLogs) GetByID(ctx context.Context, id string) (*model.PhysicalHealthLog, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	l, ok := p.s.physical[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &l, nil
}

func (p *PhysicalLogs) ListByUser(ctx context.Context, userID string, limit int) ([]model.PhysicalHealthLog, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	out := []model.PhysicalHealthLog{}
	for _, l := range p.s.physical {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *PhysicalLogs) Update(ctx context.Context, l *model.PhysicalHealthLog) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.physical[l.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	existing.Date = l.Date
	existing.ActivityType = l.ActivityType
	existing.DurationMinutes = l.DurationMinutes
	existing.CaloriesBurned = l.CaloriesBurned
	existing.Notes = l.Notes
	p.s.physical[l.ID] = existing
	return nil
}

func (p *PhysicalLogs) Delete(ctx context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.physical[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(p.s.physical, id)
	return nil
}

// MentalLogs is the in-memory counterpart of repository.MentalLogRepository.
type MentalLogs struct{ s *Store }

func (m *MentalLogs) Create(ctx context.Context, l *model.MentalHealthLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = now()
	m.s.mental[l.ID] = *l
	return nil
}

func (m *MentalLogs) GetByID(ctx context.Context, id string) (*model.MentalHealthLog, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	l, ok := m.s.mental[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &l, nil
}

func (m *MentalLogs) ListByUser(ctx context.Context, userID string, limit int) ([]model.MentalHealthLog, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := []model.MentalHealthLog{}
	for _, l := range m.s.mental {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MentalLogs) Update(ctx context.Context, l *model.MentalHealthLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	existing, ok := m.s.mental[l.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	existing.Date = l.Date
	existing.Mood = l.Mood
	existing.StressLevel = l.StressLevel
	existing.SleepHours = l.SleepHours
	existing.JournalEntry = l.JournalEntry
	m.s.mental[l.ID] = existing
	return nil
}

func (m *MentalLogs) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.mental[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.s.mental, id)
	return nil
}
