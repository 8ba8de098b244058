package model

import "time"

// User represents a user in the database.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	DateOfBirth  *time.Time
	Gender       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the user's public representation. It never carries the password hash.
func (u *User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		CreatedAt:   u.CreatedAt,
	}
}

// Identity is the authenticated subject of a request, safe for API responses.
type Identity struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	FullName string `json:"fullName" validate:"max=255"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the profile fields a user may change.
// Empty fields are left untouched.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    Identity `json:"user"`
}
