package model

import "time"

// Moods accepted on a mental health log.
var Moods = []string{"Happy", "Sad", "Anxious", "Stressed", "Calm", "Neutral", "Other"}

// PhysicalHealthLog records a single physical activity.
type PhysicalHealthLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	ActivityType    string    `json:"activityType" validate:"required,max=100"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gte=1"`
	CaloriesBurned  *int      `json:"caloriesBurned,omitempty" validate:"omitempty,gte=0"`
	Notes           string    `json:"notes,omitempty" validate:"max=5000"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (l *PhysicalHealthLog) OwnerID() string { return l.UserID }

// PhysicalLogRequest is the body of physical log create and update requests.
type PhysicalLogRequest struct {
	ActivityType    string `json:"activityType"`
	DurationMinutes *int   `json:"durationMinutes"`
	CaloriesBurned  *int   `json:"caloriesBurned"`
	Notes           string `json:"notes"`
	Date            string `json:"date"`
}

// MentalHealthLog records mood, stress and sleep for a day.
type MentalHealthLog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	Mood         string    `json:"mood" validate:"required,oneof=Happy Sad Anxious Stressed Calm Neutral Other"`
	StressLevel  *int      `json:"stressLevel,omitempty" validate:"omitempty,gte=1,lte=10"`
	SleepHours   *float64  `json:"sleepHours,omitempty" validate:"omitempty,gte=0,lte=24"`
	JournalEntry string    `json:"journalEntry,omitempty" validate:"max=20000"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l *MentalHealthLog) OwnerID() string { return l.UserID }

// MentalLogRequest is the body of mental log create and update requests.
type MentalLogRequest struct {
	Mood         string   `json:"mood"`
	StressLevel  *int     `json:"stressLevel"`
	SleepHours   *float64 `json:"sleepHours"`
	JournalEntry string   `json:"journalEntry"`
	Date         string   `json:"date"`
}

// Dashboard summarizes a user's most recent activity.
type Dashboard struct {
	RecentPhysical       []PhysicalHealthLog `json:"recentPhysical"`
	RecentMental         []MentalHealthLog   `json:"recentMental"`
	UpcomingAppointments []Appointment       `json:"upcomingAppointments"`
}
