package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/healthtrack/healthtrack-go/internal/crypto"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
)

// UserStore persists user credentials and profiles.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

// AuthService handles registration, login and profile business logic.
type AuthService struct {
	users  UserStore
	tokens *crypto.TokenService
	hasher *crypto.Hasher

	// dummyHash is verified when the email is unknown so both login failures
	// take the same time.
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *crypto.TokenService, hasher *crypto.Hasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher}
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := validateStruct(req); err != nil {
		return model.AuthResponse{}, err
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if taken {
		return model.AuthResponse{}, ErrDuplicateEmail
	}

	taken, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if taken {
		return model.AuthResponse{}, ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
	}

	// The store's unique keys catch a registration that raced past the checks above.
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.AuthResponse{}, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicateUsername):
			return model.AuthResponse{}, ErrDuplicateUsername
		}
		return model.AuthResponse{}, err
	}
	slog.Info("user registered", "user_id", user.ID)

	return s.authResponse(user)
}

// Login authenticates a user and returns an auth token. Unknown emails and wrong
// passwords fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.burnVerify(req.Password)
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("verifying password for user %s: %w", user.ID, err)
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// GetUser retrieves a user by ID and returns its public identity.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Identity{}, ErrUserNotFound
		}
		return model.Identity{}, err
	}

	return user.Identity(), nil
}

// UpdateProfile changes the non-empty profile fields in req. Email, username and
// password are not updatable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Identity{}, ErrUserNotFound
		}
		return model.Identity{}, err
	}

	var msgs []string
	if v := strings.TrimSpace(req.FullName); v != "" {
		if len(v) > 255 {
			msgs = append(msgs, "fullName must be at most 255 characters")
		}
		user.FullName = v
	}
	if v := strings.TrimSpace(req.DateOfBirth); v != "" {
		dob, err := parseDate("dateOfBirth", v)
		if err != nil {
			msgs = append(msgs, "dateOfBirth must be a valid date")
		} else {
			dob = dob.Truncate(24 * time.Hour)
			user.DateOfBirth = &dob
		}
	}
	if v := strings.TrimSpace(req.Gender); v != "" {
		if len(v) > 32 {
			msgs = append(msgs, "gender must be at most 32 characters")
		}
		user.Gender = v
	}
	if len(msgs) > 0 {
		return model.Identity{}, validationFailed(msgs...)
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Identity{}, ErrUserNotFound
		}
		return model.Identity{}, err
	}

	return user.Identity(), nil
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Identity(),
	}, nil
}

func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("healthtrack-dummy-password")
		if err != nil {
			slog.Error("generating dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
