package model

import "time"

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Owned is implemented by every record that belongs to exactly one user.
type Owned interface {
	OwnerID() string
}

// Appointment is a scheduled visit owned by a single user.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user" validate:"required"`
	Title     string    `json:"title" validate:"required,max=200"`
	Date      time.Time `json:"date" validate:"required"`
	Location  string    `json:"location,omitempty" validate:"max=255"`
	Notes     string    `json:"notes,omitempty" validate:"max=5000"`
	Status    string    `json:"status" validate:"oneof=Scheduled Completed Cancelled"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerID returns the id of the user the appointment belongs to.
func (a *Appointment) OwnerID() string { return a.UserID }

// AppointmentRequest is the body of appointment create and update requests.
type AppointmentRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
}

// AppointmentFilter narrows an appointment listing to a date range. Nil bounds are open.
type AppointmentFilter struct {
	From *time.Time
	To   *time.Time
}
